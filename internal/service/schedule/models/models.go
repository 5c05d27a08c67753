package models

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
)

// Request модели

// WorkingHoursInput рабочие часы на один день недели
type WorkingHoursInput struct {
	DayOfWeek int    `json:"dayOfWeek"` // 0 = воскресенье
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`   // "18:00", допускается "24:00"
	IsActive  *bool  `json:"isActive,omitempty"`
}

// ReplaceScheduleRequest полная замена недельного расписания мастера
type ReplaceScheduleRequest struct {
	AdminID int64               `json:"-"`
	Days    []WorkingHoursInput `json:"workingHours"`
}

// CreateBreakRequest создание перерыва: еженедельного или на конкретную дату
type CreateBreakRequest struct {
	AdminID   int64   `json:"-"`
	DayOfWeek *int    `json:"dayOfWeek,omitempty"`
	Date      *string `json:"date,omitempty"` // "2025-10-15"
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	Reason    *string `json:"reason,omitempty"`
}

// Response модели

// WorkingHoursResponse рабочие часы в ответе
type WorkingHoursResponse struct {
	ID        int64  `json:"id"`
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	IsActive  bool   `json:"isActive"`
}

// BreakResponse перерыв в ответе
type BreakResponse struct {
	ID        int64     `json:"id"`
	DayOfWeek *int      `json:"dayOfWeek,omitempty"`
	Date      *string   `json:"date,omitempty"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	Reason    *string   `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ScheduleResponse недельное расписание мастера
type ScheduleResponse struct {
	StaffID      int64                  `json:"staffId"`
	WorkingHours []WorkingHoursResponse `json:"workingHours"`
	Breaks       []BreakResponse        `json:"breaks"`
}

// Методы конвертации

// FromDomainWorkingHours конвертирует рабочие часы в DTO
func FromDomainWorkingHours(hours []domain.WorkingHours) []WorkingHoursResponse {
	result := make([]WorkingHoursResponse, 0, len(hours))
	for _, wh := range hours {
		result = append(result, WorkingHoursResponse{
			ID:        wh.ID,
			DayOfWeek: int(wh.DayOfWeek),
			StartTime: wh.StartTime.String(),
			EndTime:   wh.EndTime.String(),
			IsActive:  wh.IsActive,
		})
	}
	return result
}

// FromDomainBreak конвертирует перерыв в DTO
func FromDomainBreak(b *domain.BreakPeriod) *BreakResponse {
	resp := &BreakResponse{
		ID:        b.ID,
		StartTime: b.StartTime.String(),
		EndTime:   b.EndTime.String(),
		Reason:    b.Reason,
		CreatedAt: b.CreatedAt,
	}
	if b.DayOfWeek != nil {
		resp.DayOfWeek = ptr.Ptr(int(*b.DayOfWeek))
	}
	if b.BreakDate != nil {
		resp.Date = ptr.Ptr(b.BreakDate.String())
	}
	return resp
}

// FromDomainSchedule конвертирует недельное расписание в DTO
func FromDomainSchedule(s *domain.WeeklySchedule) *ScheduleResponse {
	resp := &ScheduleResponse{
		StaffID:      s.StaffID,
		WorkingHours: FromDomainWorkingHours(s.WorkingHours),
		Breaks:       make([]BreakResponse, 0, len(s.Breaks)),
	}
	for i := range s.Breaks {
		resp.Breaks = append(resp.Breaks, *FromDomainBreak(&s.Breaks[i]))
	}
	return resp
}
