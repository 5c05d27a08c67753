package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

func TestNewInterval(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
		wantErr    bool
	}{
		{"regular", 540, 1080, false},
		{"until midnight", 1380, 1440, false},
		{"zero length", 600, 600, true},
		{"inverted", 700, 600, true},
		{"negative", -1, 60, true},
		{"past midnight", 1400, 1441, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInterval(tt.start, tt.end)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInterval)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestMustInterval_Panics(t *testing.T) {
	assert.Panics(t, func() { MustInterval(600, 600) })
	assert.NotPanics(t, func() { MustInterval(600, 601) })
}

func TestInterval_Overlaps(t *testing.T) {
	brk := MustInterval(720, 780) // 12:00-13:00

	tests := []struct {
		name string
		in   Interval
		want bool
	}{
		{"ends at break start", MustInterval(690, 720), false},
		{"starts at break end", MustInterval(780, 810), false},
		{"crosses break start", MustInterval(705, 735), true},
		{"inside", MustInterval(730, 740), true},
		{"covers", MustInterval(700, 800), true},
		{"far before", MustInterval(540, 600), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Overlaps(brk))
			assert.Equal(t, tt.want, brk.Overlaps(tt.in))
		})
	}
}

func TestInterval_FitsWithin(t *testing.T) {
	day := MustInterval(540, 1080)

	assert.True(t, MustInterval(540, 585).FitsWithin(day))
	assert.True(t, MustInterval(1035, 1080).FitsWithin(day))
	assert.False(t, MustInterval(1050, 1095).FitsWithin(day))
	assert.False(t, MustInterval(510, 570).FitsWithin(day))
}

func TestOverlapsAny_UnionOfOverlappingRanges(t *testing.T) {
	ranges := []Interval{MustInterval(720, 780), MustInterval(750, 810)}

	assert.True(t, OverlapsAny(MustInterval(795, 825), ranges))
	assert.False(t, OverlapsAny(MustInterval(810, 840), ranges))
	assert.False(t, OverlapsAny(MustInterval(600, 630), nil))
}

func TestIntervalFromTimes(t *testing.T) {
	i, err := IntervalFromTimes("09:00", "18:00")
	require.NoError(t, err)
	assert.Equal(t, Interval{Start: 540, End: 1080}, i)
	assert.Equal(t, "09:00-18:00", i.String())

	_, err = IntervalFromTimes("9:00", "18:00")
	assert.ErrorIs(t, err, types.ErrInvalidTimeFormat)

	_, err = IntervalFromTimes("18:00", "09:00")
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestBreakPeriod_AppliesTo(t *testing.T) {
	wed := types.Date{Year: 2025, Month: time.September, Day: 3}
	thu := wed.AddDays(1)

	weekly := BreakPeriod{DayOfWeek: ptr.Ptr(time.Wednesday), StartTime: "12:00", EndTime: "13:00"}
	oneOff := BreakPeriod{BreakDate: &thu, StartTime: "15:00", EndTime: "15:30"}

	assert.True(t, weekly.IsRecurring())
	assert.True(t, weekly.AppliesTo(wed))
	assert.False(t, weekly.AppliesTo(thu))
	assert.True(t, weekly.AppliesTo(wed.AddDays(7)))

	assert.False(t, oneOff.IsRecurring())
	assert.True(t, oneOff.AppliesTo(thu))
	assert.False(t, oneOff.AppliesTo(thu.AddDays(7)))
}

func TestBookedIntervals_SkipsCancelled(t *testing.T) {
	bookings := []Booking{
		{StartTime: "14:00", EndTime: "14:45", Status: StatusConfirmed},
		{StartTime: "15:00", EndTime: "15:30", Status: StatusCancelled},
		{StartTime: "16:00", EndTime: "16:30", Status: StatusNoShow},
	}

	got := BookedIntervals(bookings)

	assert.Equal(t, []Interval{MustInterval(840, 885), MustInterval(960, 990)}, got)
}

func TestBookingStatus(t *testing.T) {
	assert.True(t, StatusNoShow.IsValid())
	assert.False(t, BookingStatus("pending").IsValid())

	b := Booking{Status: StatusConfirmed}
	assert.True(t, b.CanBeCancelled())
	b.Status = StatusCompleted
	assert.False(t, b.CanBeCancelled())
	assert.True(t, b.IsActive())
}

func TestBookingsFilter_Offset(t *testing.T) {
	assert.Equal(t, 0, BookingsFilter{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 40, BookingsFilter{Page: 3, Limit: 20}.Offset())
	assert.Equal(t, 0, BookingsFilter{Page: 0, Limit: 20}.Offset())
}
