package get_available_staff

import (
	getAvailableStaff "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_staff"
)

// StaffResponse мастер с рабочими часами на выбранный день
type StaffResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// AvailableStaffResponse HTTP response model
type AvailableStaffResponse struct {
	ServiceID int64           `json:"serviceId"`
	Date      string          `json:"date"`
	Staff     []StaffResponse `json:"staff"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableStaff.Response) *AvailableStaffResponse {
	staff := make([]StaffResponse, 0, len(resp.Staff))
	for _, s := range resp.Staff {
		staff = append(staff, StaffResponse{
			ID:        s.Staff.ID,
			Name:      s.Staff.Name,
			StartTime: s.WorkingHours.StartTime.String(),
			EndTime:   s.WorkingHours.EndTime.String(),
		})
	}

	return &AvailableStaffResponse{
		ServiceID: resp.ServiceID,
		Date:      resp.Date.String(),
		Staff:     staff,
	}
}
