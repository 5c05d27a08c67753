package domain

// Default configuration values
const (
	DefaultSlotStepMinutes        = 30
	DefaultServiceDurationMinutes = 30
	DefaultBookingsPageLimit      = 20
)

// Business validation constants
const (
	MinServiceDurationMinutes = 15
	MaxServiceDurationMinutes = 480 // 8 hours
	MaxNotesLength            = 500
	MaxCustomerNameLength     = 100
	MaxCustomerEmailLength    = 255
	MaxCustomerPhoneLength    = 20
	MaxBreakReasonLength      = 200
	MaxBookingsPageLimit      = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, которые занимают время мастера
var ActiveStatuses = []BookingStatus{
	StatusConfirmed,
	StatusCompleted,
	StatusNoShow,
}

// RevenueStatuses статусы, учитываемые в выручке
var RevenueStatuses = []BookingStatus{
	StatusConfirmed,
	StatusCompleted,
}

// BookingPolicy настройки расчёта слотов и приёма бронирований
type BookingPolicy struct {
	// SlotStepMinutes шаг сетки слотов, не зависит от длительности услуги
	SlotStepMinutes int
	// MinNoticeMinutes сколько минут от текущего момента закрыто для записи на сегодня
	MinNoticeMinutes int
	// MaxAdvanceDays на сколько дней вперёд можно записаться, 0 - без ограничения
	MaxAdvanceDays int
}

// DefaultBookingPolicy возвращает политику по умолчанию
func DefaultBookingPolicy() BookingPolicy {
	return BookingPolicy{SlotStepMinutes: DefaultSlotStepMinutes}
}
