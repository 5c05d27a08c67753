package domain

import "github.com/shopspring/decimal"

// Service is a bookable salon service. Duration is the only input
// the availability engine needs from it.
type Service struct {
	ID              int64
	Name            string
	DurationMinutes int
	Price           decimal.Decimal
	Category        string
	IsActive        bool
}

// Staff is a salon employee whose timeline is booked
type Staff struct {
	ID       int64
	Name     string
	Email    string
	IsActive bool
}
