package create_booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	StaffID       int64
	ServiceID     int64
	Date          types.Date       // Дата бронирования
	StartTime     types.TimeString // Время начала, проверяется на формат HH:MM
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Notes         *string // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	Reference       string // Публичный номер для поиска и отмены
	StaffID         int64
	ServiceID       int64
	BookingDate     types.Date
	StartTime       types.TimeString
	EndTime         types.TimeString // StartTime + длительность услуги на момент записи
	DurationMinutes int
	Status          string

	// Денормализованные данные
	ServiceName string
	StaffName   string
	Price       decimal.Decimal

	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Notes         *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
