package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetActiveByStaffAndDate(ctx context.Context, staffID int64, date types.Date) ([]domain.Booking, error)
	// LockStaffTimeline сериализует бронирования одного мастера на одну дату
	LockStaffTimeline(ctx context.Context, staffID int64, date types.Date) error
}

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	GetWorkingHours(ctx context.Context, staffID int64, day time.Weekday) (*domain.WorkingHours, error)
	GetBreaksForDate(ctx context.Context, staffID int64, date types.Date) ([]domain.BreakPeriod, error)
}

// CatalogRepository интерфейс справочника услуг и мастеров
type CatalogRepository interface {
	GetService(ctx context.Context, id int64) (*domain.Service, error)
	GetStaff(ctx context.Context, id int64) (*domain.Staff, error)
	StaffOffersService(ctx context.Context, staffID, serviceID int64) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями.
// Нужна изоляция READ COMMITTED: снимок берётся на каждый запрос, уже после блокировки.
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// ReferenceGenerator генератор публичного номера бронирования
type ReferenceGenerator interface {
	Generate() (string, error)
}

// Clock интерфейс часов салона (для тестирования)
type Clock interface {
	Today() types.Date
	MinuteOfDay() int
}

// Metrics интерфейс счётчиков
type Metrics interface {
	IncBookingCreated(category string)
	IncBookingConflict(reason string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
