package get_available_slots

import (
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}

	if req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом и не дальше maxAdvanceDays
func validateDate(date, today types.Date, maxAdvanceDays int) error {
	if date.Before(today) {
		return ErrInvalidDate
	}

	// maxAdvanceDays = 0 - без ограничений
	if maxAdvanceDays == 0 {
		return nil
	}

	if today.AddDays(maxAdvanceDays).Before(date) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, maxAdvanceDays)
	}

	return nil
}
