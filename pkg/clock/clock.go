package clock

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Business is the wall clock of the salon's single timezone
type Business struct {
	loc *time.Location
	now func() time.Time
}

// NewBusiness returns a clock reading time.Now in loc. nil loc means UTC.
func NewBusiness(loc *time.Location) *Business {
	if loc == nil {
		loc = time.UTC
	}
	return &Business{loc: loc, now: time.Now}
}

// Fixed returns a clock frozen at t, for tests
func Fixed(t time.Time) *Business {
	return &Business{loc: t.Location(), now: func() time.Time { return t }}
}

// Now returns the current time in the business location
func (c *Business) Now() time.Time {
	return c.now().In(c.loc)
}

// Today returns the current business date
func (c *Business) Today() types.Date {
	return types.NewDate(c.Now())
}

// MinuteOfDay returns minutes since business midnight
func (c *Business) MinuteOfDay() int {
	n := c.Now()
	return n.Hour()*60 + n.Minute()
}
