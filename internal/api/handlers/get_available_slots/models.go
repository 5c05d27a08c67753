package get_available_slots

import (
	getAvailableSlots "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
)

// SlotResponse один кандидат на запись
type SlotResponse struct {
	Time      string `json:"time"` // "09:30"
	Available bool   `json:"available"`
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	StaffID         int64          `json:"staffId"`
	ServiceID       int64          `json:"serviceId"`
	Date            string         `json:"date"`
	DurationMinutes int            `json:"durationMinutes"`
	Slots           []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{Time: s.Time.String(), Available: s.Available})
	}

	return &AvailableSlotsResponse{
		StaffID:         resp.StaffID,
		ServiceID:       resp.ServiceID,
		Date:            resp.Date.String(),
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}
