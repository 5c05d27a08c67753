package domain

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// ErrInvalidInterval is returned for inverted, empty or out-of-day ranges
var ErrInvalidInterval = errors.New("invalid interval")

// Interval is a half-open range [Start, End) in minutes since midnight.
// A range ending exactly where another starts does not overlap it.
type Interval struct {
	Start int
	End   int
}

// NewInterval validates bounds: 0 <= start < end <= 1440
func NewInterval(start, end int) (Interval, error) {
	if start < 0 || end > types.MinutesPerDay || start >= end {
		return Interval{}, fmt.Errorf("%w: [%d, %d)", ErrInvalidInterval, start, end)
	}
	return Interval{Start: start, End: end}, nil
}

// MustInterval is NewInterval for values that were already validated upstream.
// It panics on bad input.
func MustInterval(start, end int) Interval {
	i, err := NewInterval(start, end)
	if err != nil {
		panic(err)
	}
	return i
}

// IntervalFromTimes builds an interval from two wall-clock values
func IntervalFromTimes(start, end types.TimeString) (Interval, error) {
	if err := start.Validate(); err != nil {
		return Interval{}, err
	}
	if err := end.Validate(); err != nil {
		return Interval{}, err
	}
	return NewInterval(start.Minutes(), end.Minutes())
}

// Duration returns the length in minutes
func (i Interval) Duration() int {
	return i.End - i.Start
}

// Overlaps reports strict overlap: a.Start < b.End && b.Start < a.End
func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && other.Start < i.End
}

// FitsWithin reports whether i lies entirely inside outer
func (i Interval) FitsWithin(outer Interval) bool {
	return i.Start >= outer.Start && i.End <= outer.End
}

func (i Interval) String() string {
	start, _ := types.TimeStringFromMinutes(i.Start)
	end, _ := types.TimeStringFromMinutes(i.End)
	return fmt.Sprintf("%s-%s", start, end)
}

// OverlapsAny reports whether candidate overlaps at least one of the ranges.
// Overlapping ranges in the list behave as their union.
func OverlapsAny(candidate Interval, ranges []Interval) bool {
	for _, r := range ranges {
		if candidate.Overlaps(r) {
			return true
		}
	}
	return false
}
