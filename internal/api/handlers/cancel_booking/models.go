package cancel_booking

import (
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	Email string `json:"email"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CancelBookingRequest) ToServiceRequest(reference string) *models.CancelBookingRequest {
	return &models.CancelBookingRequest{
		Reference: reference,
		Email:     r.Email,
	}
}
