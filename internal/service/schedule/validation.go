package schedule

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// parseRange разбирает начало и конец интервала.
// Начало в пределах 00:00-23:59, конец может быть "24:00".
func parseRange(start, end string) (types.TimeString, types.TimeString, error) {
	startTime, err := types.NewTimeStringFromString(strings.TrimSpace(start))
	if err != nil {
		return "", "", fmt.Errorf("%w: invalid start time %q", ErrInvalidInput, start)
	}

	endTime, err := types.NewEndTimeStringFromString(strings.TrimSpace(end))
	if err != nil {
		return "", "", fmt.Errorf("%w: invalid end time %q", ErrInvalidInput, end)
	}

	if _, err := domain.IntervalFromTimes(startTime, endTime); err != nil {
		return "", "", fmt.Errorf("%w: start time must be before end time", ErrInvalidInput)
	}

	return startTime, endTime, nil
}

func validDay(day int) bool {
	return day >= int(time.Sunday) && day <= int(time.Saturday)
}

// toWorkingHours проверяет недельное расписание и собирает domain модели
func toWorkingHours(staffID int64, days []models.WorkingHoursInput) ([]domain.WorkingHours, error) {
	seen := make(map[int]bool, len(days))
	result := make([]domain.WorkingHours, 0, len(days))

	for _, in := range days {
		if !validDay(in.DayOfWeek) {
			return nil, fmt.Errorf("%w: day of week must be between 0 and 6, got %d", ErrInvalidInput, in.DayOfWeek)
		}

		start, end, err := parseRange(in.StartTime, in.EndTime)
		if err != nil {
			return nil, err
		}

		active := in.IsActive == nil || *in.IsActive
		if active {
			if seen[in.DayOfWeek] {
				return nil, fmt.Errorf("%w: day %d", ErrDuplicateDay, in.DayOfWeek)
			}
			seen[in.DayOfWeek] = true
		}

		result = append(result, domain.WorkingHours{
			StaffID:   staffID,
			DayOfWeek: time.Weekday(in.DayOfWeek),
			StartTime: start,
			EndTime:   end,
			IsActive:  active,
		})
	}

	return result, nil
}

// toBreak проверяет перерыв: задан ровно один из dayOfWeek и date
func toBreak(staffID int64, req *models.CreateBreakRequest) (*domain.BreakPeriod, error) {
	if (req.DayOfWeek == nil) == (req.Date == nil) {
		return nil, fmt.Errorf("%w: exactly one of dayOfWeek and date must be set", ErrInvalidInput)
	}

	brk := &domain.BreakPeriod{StaffID: staffID}

	if req.DayOfWeek != nil {
		if !validDay(*req.DayOfWeek) {
			return nil, fmt.Errorf("%w: day of week must be between 0 and 6, got %d", ErrInvalidInput, *req.DayOfWeek)
		}
		day := time.Weekday(*req.DayOfWeek)
		brk.DayOfWeek = &day
	}

	if req.Date != nil {
		date, err := types.ParseDate(strings.TrimSpace(*req.Date))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		brk.BreakDate = &date
	}

	start, end, err := parseRange(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	brk.StartTime = start
	brk.EndTime = end

	if req.Reason != nil {
		reason := strings.TrimSpace(*req.Reason)
		if utf8.RuneCountInString(reason) > domain.MaxBreakReasonLength {
			return nil, fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxBreakReasonLength)
		}
		if reason != "" {
			brk.Reason = ptr.Ptr(reason)
		}
	}

	return brk, nil
}
