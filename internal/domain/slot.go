package domain

import "github.com/m04kA/SMC-SalonBooking/pkg/types"

// Slot is a candidate start time for a service on a staff member's day
type Slot struct {
	Time      types.TimeString
	Available bool
}
