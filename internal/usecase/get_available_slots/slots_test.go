package get_available_slots

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

func nineToSix() *domain.WorkingHours {
	return &domain.WorkingHours{StaffID: 1, StartTime: "09:00", EndTime: "18:00", IsActive: true}
}

func times(slots []domain.Slot) []types.TimeString {
	out := make([]types.TimeString, len(slots))
	for i, s := range slots {
		out[i] = s.Time
	}
	return out
}

func slotAt(t *testing.T, slots []domain.Slot, at types.TimeString) domain.Slot {
	t.Helper()
	for _, s := range slots {
		if s.Time == at {
			return s
		}
	}
	require.FailNowf(t, "slot not emitted", "%s", at)
	return domain.Slot{}
}

func TestGenerateSlots_NoTrailingPartialSlot(t *testing.T) {
	slots := generateSlots(nineToSix(), nil, nil, 45, 30)

	got := times(slots)
	require.NotEmpty(t, got)
	assert.Equal(t, types.TimeString("09:00"), got[0])
	assert.Equal(t, types.TimeString("09:30"), got[1])
	assert.Equal(t, types.TimeString("17:00"), got[len(got)-1])
	assert.NotContains(t, got, types.TimeString("17:30"))
	assert.Len(t, got, 17)
	for _, s := range slots {
		assert.True(t, s.Available)
	}
}

func TestGenerateSlots_LastSlotEndsAtClose(t *testing.T) {
	// 17:15 попадает в сетку только при шаге 15
	got := times(generateSlots(nineToSix(), nil, nil, 45, 15))

	assert.Equal(t, types.TimeString("17:15"), got[len(got)-1])
	assert.NotContains(t, got, types.TimeString("17:30"))
}

func TestGenerateSlots_Break(t *testing.T) {
	breaks := []domain.Interval{domain.MustInterval(720, 780)} // 12:00-13:00

	slots := generateSlots(nineToSix(), breaks, nil, 30, 15)

	assert.True(t, slotAt(t, slots, "11:30").Available)
	assert.False(t, slotAt(t, slots, "11:45").Available)
	assert.False(t, slotAt(t, slots, "12:30").Available)
	assert.True(t, slotAt(t, slots, "13:00").Available)
}

func TestGenerateSlots_Booking(t *testing.T) {
	booked := []domain.Interval{domain.MustInterval(840, 885)} // 14:00-14:45

	slots := generateSlots(nineToSix(), nil, booked, 30, 15)

	assert.True(t, slotAt(t, slots, "13:30").Available)
	assert.False(t, slotAt(t, slots, "13:45").Available)
	assert.False(t, slotAt(t, slots, "14:15").Available)
	assert.False(t, slotAt(t, slots, "14:30").Available)
	assert.True(t, slotAt(t, slots, "14:45").Available)
}

func TestGenerateSlots_OverlappingBreaksUnion(t *testing.T) {
	breaks := []domain.Interval{
		domain.MustInterval(720, 780), // 12:00-13:00
		domain.MustInterval(750, 810), // 12:30-13:30
	}

	slots := generateSlots(nineToSix(), breaks, nil, 30, 30)

	assert.False(t, slotAt(t, slots, "12:00").Available)
	assert.False(t, slotAt(t, slots, "13:00").Available)
	assert.True(t, slotAt(t, slots, "13:30").Available)
}

func TestGenerateSlots_NotWorking(t *testing.T) {
	assert.Empty(t, generateSlots(nil, nil, nil, 30, 30))

	inactive := nineToSix()
	inactive.IsActive = false
	assert.Empty(t, generateSlots(inactive, nil, nil, 30, 30))
}

func TestGenerateSlots_StepIndependentOfDuration(t *testing.T) {
	short := times(generateSlots(nineToSix(), nil, nil, 30, 30))
	long := times(generateSlots(nineToSix(), nil, nil, 90, 30))

	// одинаковый шаг, сетки отличаются только хвостом
	assert.Equal(t, short[:len(long)], long)
}

func TestGenerateSlots_Properties(t *testing.T) {
	breaks := []domain.Interval{domain.MustInterval(600, 630), domain.MustInterval(615, 700)}
	booked := []domain.Interval{domain.MustInterval(840, 885), domain.MustInterval(990, 1020)}

	for _, duration := range []int{15, 30, 45, 60, 90, 480} {
		for _, step := range []int{5, 15, 30, 60} {
			wh := nineToSix()
			window := wh.Interval()
			slots := generateSlots(wh, breaks, booked, duration, step)

			prev := -1
			for _, s := range slots {
				start := s.Time.Minutes()
				candidate := domain.MustInterval(start, start+duration)

				assert.GreaterOrEqual(t, start, window.Start)
				assert.LessOrEqual(t, start+duration, window.End)
				assert.Greater(t, start, prev, "slots must be strictly increasing")
				prev = start

				blocked := domain.OverlapsAny(candidate, breaks) || domain.OverlapsAny(candidate, booked)
				assert.Equal(t, !blocked, s.Available, "duration=%d step=%d slot=%s", duration, step, s.Time)
			}
		}
	}
}

func TestApplyNotice(t *testing.T) {
	slots := generateSlots(nineToSix(), nil, nil, 30, 30)

	applyNotice(slots, 10*60+15)

	assert.False(t, slotAt(t, slots, "10:00").Available)
	assert.True(t, slotAt(t, slots, "10:30").Available)
	assert.Len(t, slots, 18)
}
