package get_available_slots

import (
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// generateSlots проходит рабочий интервал с шагом step и предлагает кандидата длиной duration.
// Кандидат выдаётся, только если целиком помещается в рабочие часы.
// Доступен, если не пересекается ни с перерывом, ни с активным бронированием.
// Пересекающиеся перерывы работают как их объединение.
//
// Пример: 09:00-18:00, duration=45, step=30 → 09:00, 09:30, ..., 17:00;
// 17:30 не выдаётся, потому что 17:30+45 = 18:15.
func generateSlots(
	workingHours *domain.WorkingHours,
	breaks []domain.Interval,
	booked []domain.Interval,
	duration int,
	step int,
) []domain.Slot {
	slots := make([]domain.Slot, 0)
	if workingHours == nil || !workingHours.IsActive {
		return slots
	}

	window := workingHours.Interval()

	for t := window.Start; t+duration <= window.End; t += step {
		candidate := domain.MustInterval(t, t+duration)

		available := !domain.OverlapsAny(candidate, breaks) && !domain.OverlapsAny(candidate, booked)

		start, _ := types.TimeStringFromMinutes(t)
		slots = append(slots, domain.Slot{Time: start, Available: available})
	}

	return slots
}

// applyNotice закрывает слоты, начинающиеся раньше cutoff (минуты от полуночи).
// Слоты не удаляются, чтобы сетка оставалась одинаковой в течение дня.
func applyNotice(slots []domain.Slot, cutoff int) {
	for i := range slots {
		if slots[i].Time.Minutes() < cutoff {
			slots[i].Available = false
		}
	}
}
