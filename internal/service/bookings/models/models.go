package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос клиента на отмену по номеру бронирования
type CancelBookingRequest struct {
	Reference string `json:"reference"`
	Email     string `json:"email"`
}

// UpdateStatusRequest запрос администратора на смену статуса
type UpdateStatusRequest struct {
	AdminID int64  `json:"adminId"`
	Status  string `json:"status"`
}

// ListBookingsRequest запрос списка бронирований в админке
type ListBookingsRequest struct {
	Date    *types.Date `json:"date,omitempty"`
	StaffID *int64      `json:"staffId,omitempty"`
	Status  *string     `json:"status,omitempty"`
	Page    int         `json:"page"`
	Limit   int         `json:"limit"`
}

// ToDomainFilter конвертирует request в domain фильтр с дефолтной пагинацией
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		Date:    r.Date,
		StaffID: r.StaffID,
		Page:    r.Page,
		Limit:   r.Limit,
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = domain.DefaultBookingsPageLimit
	}
	if filter.Limit > domain.MaxBookingsPageLimit {
		filter.Limit = domain.MaxBookingsPageLimit
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64   `json:"id"`
	Reference       string  `json:"reference"`
	StaffID         int64   `json:"staffId"`
	ServiceID       int64   `json:"serviceId"`
	BookingDate     string  `json:"bookingDate"` // "2025-10-15"
	StartTime       string  `json:"startTime"`   // "10:00"
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	CustomerName    string  `json:"customerName"`
	CustomerEmail   string  `json:"customerEmail"`
	CustomerPhone   string  `json:"customerPhone"`
	Notes           *string `json:"notes,omitempty"`
	Price           string  `json:"price"` // decimal строкой, без потерь точности

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings   []BookingResponse `json:"bookings"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"totalPages"`
}

// StatsResponse сводка для дашборда
type StatsResponse struct {
	Date            string `json:"date"`
	TodayBookings   int    `json:"todayBookings"`
	TodayRevenue    string `json:"todayRevenue"`
	MonthlyBookings int    `json:"monthlyBookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:              b.ID,
		Reference:       b.Reference,
		StaffID:         b.StaffID,
		ServiceID:       b.ServiceID,
		BookingDate:     b.BookingDate.String(),
		StartTime:       b.StartTime.String(),
		EndTime:         b.EndTime.String(),
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		CustomerName:    b.CustomerName,
		CustomerEmail:   b.CustomerEmail,
		CustomerPhone:   b.CustomerPhone,
		Notes:           b.Notes,
		Price:           b.Price.StringFixed(2),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует страницу domain моделей в DTO
func FromDomainBookingList(bookings []domain.Booking, total int, filter domain.BookingsFilter) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings:   make([]BookingResponse, 0, len(bookings)),
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
	}

	for i := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(&bookings[i]))
	}

	return resp
}

// FromDomainStats конвертирует сводку в DTO
func FromDomainStats(today types.Date, s *domain.BookingStats) *StatsResponse {
	return &StatsResponse{
		Date:            today.String(),
		TodayBookings:   s.TodayBookings,
		TodayRevenue:    s.TodayRevenue.StringFixed(2),
		MonthlyBookings: s.MonthlyBookings,
	}
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

func totalPages(total, limit int) int {
	if limit <= 0 || total == 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
