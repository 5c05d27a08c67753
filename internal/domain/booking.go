package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
	StatusNoShow    BookingStatus = "no-show"
)

// IsValid returns true for the four known statuses
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	}
	return false
}

// Booking represents an appointment with one staff member.
// EndTime is fixed at creation as StartTime + DurationMinutes.
type Booking struct {
	ID              int64
	Reference       string
	StaffID         int64
	ServiceID       int64
	BookingDate     types.Date
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	Status          BookingStatus

	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Notes         *string

	// Price snapshot at booking time
	Price decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies the staff timeline
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusConfirmed
}

// Interval returns the occupied range
func (b *Booking) Interval() Interval {
	return MustInterval(b.StartTime.Minutes(), b.EndTime.Minutes())
}

// BookedIntervals returns the ranges of active bookings, skipping cancelled ones
func BookedIntervals(bookings []Booking) []Interval {
	out := make([]Interval, 0, len(bookings))
	for i := range bookings {
		if !bookings[i].IsActive() {
			continue
		}
		out = append(out, bookings[i].Interval())
	}
	return out
}

// BookingsFilter фильтр для списка бронирований в админке
type BookingsFilter struct {
	Date    *types.Date
	StaffID *int64
	Status  *BookingStatus
	Page    int
	Limit   int
}

// Offset returns the row offset for the page
func (f BookingsFilter) Offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit
}

// BookingStats сводка для дашборда
type BookingStats struct {
	TodayBookings   int
	TodayRevenue    decimal.Decimal
	MonthlyBookings int
}
