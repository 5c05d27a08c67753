package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// WorkingHours is the working window of a staff member on one day of the week.
// At most one active row exists per (staff, day of week).
type WorkingHours struct {
	ID        int64
	StaffID   int64
	DayOfWeek time.Weekday
	StartTime types.TimeString
	EndTime   types.TimeString
	IsActive  bool
}

// Interval returns the working window. Stored rows are validated on write,
// so a malformed row is a programming error.
func (w *WorkingHours) Interval() Interval {
	return MustInterval(w.StartTime.Minutes(), w.EndTime.Minutes())
}

// BreakPeriod blocks part of a staff member's day.
// Exactly one of DayOfWeek (weekly) and BreakDate (one-off) is set.
type BreakPeriod struct {
	ID        int64
	StaffID   int64
	DayOfWeek *time.Weekday
	BreakDate *types.Date
	StartTime types.TimeString
	EndTime   types.TimeString
	Reason    *string
	CreatedAt time.Time
}

// IsRecurring returns true for weekly breaks
func (b *BreakPeriod) IsRecurring() bool {
	return b.DayOfWeek != nil
}

// AppliesTo reports whether the break blocks the given date
func (b *BreakPeriod) AppliesTo(date types.Date) bool {
	if b.DayOfWeek != nil && *b.DayOfWeek == date.Weekday() {
		return true
	}
	return b.BreakDate != nil && b.BreakDate.Equal(date)
}

// Interval returns the blocked range
func (b *BreakPeriod) Interval() Interval {
	return MustInterval(b.StartTime.Minutes(), b.EndTime.Minutes())
}

// BreakIntervals converts breaks to intervals
func BreakIntervals(breaks []BreakPeriod) []Interval {
	out := make([]Interval, 0, len(breaks))
	for i := range breaks {
		out = append(out, breaks[i].Interval())
	}
	return out
}

// WeeklySchedule is the full admin view of a staff member's schedule
type WeeklySchedule struct {
	StaffID      int64
	WorkingHours []WorkingHours
	Breaks       []BreakPeriod
}
