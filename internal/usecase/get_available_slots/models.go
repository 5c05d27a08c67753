package get_available_slots

import (
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Request модель запроса на получение слотов
type Request struct {
	StaffID   int64
	ServiceID int64
	Date      types.Date // Календарная дата без времени и зоны
}

// Response модель ответа со слотами.
// Пустой Slots означает, что мастер в этот день не работает.
type Response struct {
	StaffID         int64
	ServiceID       int64
	Date            types.Date
	DurationMinutes int
	Slots           []domain.Slot
}
