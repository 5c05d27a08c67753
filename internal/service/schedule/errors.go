package schedule

import "errors"

var (
	// ErrStaffNotFound возвращается, когда мастер не найден
	ErrStaffNotFound = errors.New("schedule: staff not found")

	// ErrBreakNotFound возвращается, когда перерыв не найден
	ErrBreakNotFound = errors.New("schedule: break not found")

	// ErrDuplicateDay возвращается, когда на один день недели передано две активные записи
	ErrDuplicateDay = errors.New("schedule: duplicate working hours for day")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("schedule: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("schedule: internal error")
)
