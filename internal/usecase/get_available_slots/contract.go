package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// CatalogRepository интерфейс справочника услуг и мастеров
type CatalogRepository interface {
	GetService(ctx context.Context, id int64) (*domain.Service, error)
	GetStaff(ctx context.Context, id int64) (*domain.Staff, error)
	StaffOffersService(ctx context.Context, staffID, serviceID int64) (bool, error)
}

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	// GetWorkingHours возвращает активные рабочие часы на день недели
	GetWorkingHours(ctx context.Context, staffID int64, day time.Weekday) (*domain.WorkingHours, error)
	// GetBreaksForDate возвращает еженедельные и разовые перерывы на дату
	GetBreaksForDate(ctx context.Context, staffID int64, date types.Date) ([]domain.BreakPeriod, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetActiveByStaffAndDate возвращает неотменённые бронирования мастера на дату
	GetActiveByStaffAndDate(ctx context.Context, staffID int64, date types.Date) ([]domain.Booking, error)
}

// Clock интерфейс часов салона (для тестирования)
type Clock interface {
	Today() types.Date
	MinuteOfDay() int
}

// Metrics интерфейс счётчиков
type Metrics interface {
	IncAvailability(outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
