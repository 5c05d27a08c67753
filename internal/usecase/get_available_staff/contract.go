package get_available_staff

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// CatalogRepository интерфейс справочника услуг и мастеров
type CatalogRepository interface {
	GetService(ctx context.Context, id int64) (*domain.Service, error)
	// ListStaffByService возвращает активных мастеров, оказывающих услугу
	ListStaffByService(ctx context.Context, serviceID int64) ([]domain.Staff, error)
}

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	GetWorkingHours(ctx context.Context, staffID int64, day time.Weekday) (*domain.WorkingHours, error)
}

// Clock интерфейс часов салона (для тестирования)
type Clock interface {
	Today() types.Date
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
