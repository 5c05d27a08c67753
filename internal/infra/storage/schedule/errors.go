package schedule

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrWorkingHoursNotFound возвращается, когда у мастера нет рабочих часов на день недели
	ErrWorkingHoursNotFound = errors.New("schedule.repository: working hours not found")

	// ErrBreakNotFound возвращается, когда перерыв не найден
	ErrBreakNotFound = errors.New("schedule.repository: break not found")

	// ErrDuplicateDay возвращается при второй активной записи на тот же день недели
	ErrDuplicateDay = errors.New("schedule.repository: duplicate active working hours for day")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
