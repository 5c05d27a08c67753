package create_booking

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

var phoneRe = regexp.MustCompile(`^\+?[0-9 ()\-]{7,20}$`)

// normalizeRequest убирает пробелы и приводит email к нижнему регистру
func normalizeRequest(req *Request) {
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.CustomerEmail = strings.ToLower(strings.TrimSpace(req.CustomerEmail))
	req.CustomerPhone = strings.TrimSpace(req.CustomerPhone)
	req.StartTime = types.TimeString(strings.TrimSpace(string(req.StartTime)))
	if req.Notes != nil {
		notes := strings.TrimSpace(*req.Notes)
		if notes == "" {
			req.Notes = nil
		} else {
			req.Notes = &notes
		}
	}
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Время начала разбирается на границе, до интервальной модели
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	startTime, err := types.NewTimeStringFromString(string(req.StartTime))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTimeFormat, err)
	}
	req.StartTime = startTime

	if req.CustomerName == "" || len([]rune(req.CustomerName)) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customerName is required and must be at most %d characters",
			ErrInvalidInput, domain.MaxCustomerNameLength)
	}

	if len(req.CustomerEmail) > domain.MaxCustomerEmailLength {
		return fmt.Errorf("%w: customerEmail must be at most %d characters", ErrInvalidInput, domain.MaxCustomerEmailLength)
	}
	if _, err := mail.ParseAddress(req.CustomerEmail); err != nil || strings.ContainsAny(req.CustomerEmail, "<> ") {
		return fmt.Errorf("%w: invalid customerEmail", ErrInvalidInput)
	}

	if !phoneRe.MatchString(req.CustomerPhone) {
		return fmt.Errorf("%w: invalid customerPhone", ErrInvalidInput)
	}

	if req.Notes != nil && len([]rune(*req.Notes)) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом и не дальше maxAdvanceDays
func validateDate(date, today types.Date, maxAdvanceDays int) error {
	if date.Before(today) {
		return ErrInvalidDate
	}

	if maxAdvanceDays == 0 {
		return nil
	}

	if today.AddDays(maxAdvanceDays).Before(date) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, maxAdvanceDays)
	}

	return nil
}

// validateBookingTime проверяет окно уведомления для записи на сегодня
func validateBookingTime(date, today types.Date, start, nowMinute, minNoticeMinutes int) error {
	if !date.Equal(today) {
		return nil
	}

	if start < nowMinute+minNoticeMinutes {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minNoticeMinutes)
	}

	return nil
}

// bookingInterval строит интервал [start, start+duration).
// Выход за 24:00 - ErrInvalidTimeSlot.
func bookingInterval(start types.TimeString, duration int) (domain.Interval, types.TimeString, error) {
	end, err := start.AddMinutes(duration)
	if err != nil {
		return domain.Interval{}, "", fmt.Errorf("%w: %s + %d minutes ends after midnight", ErrInvalidTimeSlot, start, duration)
	}

	interval, err := domain.NewInterval(start.Minutes(), end.Minutes())
	if err != nil {
		return domain.Interval{}, "", fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}

	return interval, end, nil
}

// findConflict возвращает первое активное бронирование, пересекающее интервал
func findConflict(proposed domain.Interval, bookings []domain.Booking) *domain.Booking {
	for i := range bookings {
		if !bookings[i].IsActive() {
			continue
		}
		if proposed.Overlaps(bookings[i].Interval()) {
			return &bookings[i]
		}
	}
	return nil
}
