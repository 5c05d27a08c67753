package schedule

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписания мастеров
type ScheduleRepository interface {
	ListWorkingHours(ctx context.Context, staffID int64) ([]domain.WorkingHours, error)
	ReplaceWorkingHours(ctx context.Context, staffID int64, hours []domain.WorkingHours) ([]domain.WorkingHours, error)
	ListBreaks(ctx context.Context, staffID int64) ([]domain.BreakPeriod, error)
	CreateBreak(ctx context.Context, brk *domain.BreakPeriod) (*domain.BreakPeriod, error)
	DeleteBreak(ctx context.Context, staffID, breakID int64) error
}

// StaffRepository интерфейс получения мастеров
type StaffRepository interface {
	GetStaff(ctx context.Context, id int64) (*domain.Staff, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
