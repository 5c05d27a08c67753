package update_booking_status

import (
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateStatusRequest) ToServiceRequest(adminID int64) *models.UpdateStatusRequest {
	return &models.UpdateStatusRequest{
		AdminID: adminID,
		Status:  r.Status,
	}
}
