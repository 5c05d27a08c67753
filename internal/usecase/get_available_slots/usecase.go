package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	scheduleRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/schedule"
)

const (
	outcomeSlots      = "slots"
	outcomeNotWorking = "not_working"
	outcomeError      = "error"
)

// UseCase use case расчёта свободных слотов мастера на дату
type UseCase struct {
	catalogRepo  CatalogRepository
	scheduleRepo ScheduleRepository
	bookingRepo  BookingRepository
	clock        Clock
	policy       domain.BookingPolicy
	metrics      Metrics
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalogRepo CatalogRepository,
	scheduleRepo ScheduleRepository,
	bookingRepo BookingRepository,
	clock Clock,
	policy domain.BookingPolicy,
	metrics Metrics,
	logger Logger,
) *UseCase {
	if policy.SlotStepMinutes <= 0 {
		policy.SlotStepMinutes = domain.DefaultSlotStepMinutes
	}
	return &UseCase{
		catalogRepo:  catalogRepo,
		scheduleRepo: scheduleRepo,
		bookingRepo:  bookingRepo,
		clock:        clock,
		policy:       policy,
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute выполняет use case получения слотов.
// Мастер не работает в этот день - пустой список, не ошибка.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("GetAvailableSlots: staff=%d, service=%d, date=%s", req.StaffID, req.ServiceID, req.Date)

	today := uc.clock.Today()
	if err := validateDate(req.Date, today, uc.policy.MaxAdvanceDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 2. Услуга и мастер
	service, err := uc.catalogRepo.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		return nil, uc.internal("failed to get service", err)
	}
	if !service.IsActive {
		uc.logger.Warn("GetAvailableSlots: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	staff, err := uc.catalogRepo.GetStaff(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrStaffNotFound) {
			uc.logger.Warn("GetAvailableSlots: staff id=%d not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		return nil, uc.internal("failed to get staff", err)
	}
	if !staff.IsActive {
		uc.logger.Warn("GetAvailableSlots: staff id=%d is inactive", req.StaffID)
		return nil, ErrStaffNotFound
	}

	offers, err := uc.catalogRepo.StaffOffersService(ctx, req.StaffID, req.ServiceID)
	if err != nil {
		return nil, uc.internal("failed to check staff services", err)
	}
	if !offers {
		uc.logger.Warn("GetAvailableSlots: staff id=%d does not offer service id=%d", req.StaffID, req.ServiceID)
		return nil, ErrServiceNotOffered
	}

	resp := &Response{
		StaffID:         req.StaffID,
		ServiceID:       req.ServiceID,
		Date:            req.Date,
		DurationMinutes: service.DurationMinutes,
		Slots:           []domain.Slot{},
	}

	// 3. Рабочие часы на день недели, посчитанный из календарной даты
	workingHours, err := uc.scheduleRepo.GetWorkingHours(ctx, req.StaffID, req.Date.Weekday())
	if err != nil && !errors.Is(err, scheduleRepo.ErrWorkingHoursNotFound) {
		return nil, uc.internal("failed to get working hours", err)
	}
	if workingHours == nil || !workingHours.IsActive {
		uc.logger.Info("GetAvailableSlots: staff=%d does not work on %s", req.StaffID, req.Date)
		uc.metrics.IncAvailability(outcomeNotWorking)
		return resp, nil
	}

	// 4. Препятствия: перерывы и активные бронирования
	breaks, err := uc.scheduleRepo.GetBreaksForDate(ctx, req.StaffID, req.Date)
	if err != nil {
		return nil, uc.internal("failed to get breaks", err)
	}

	bookings, err := uc.bookingRepo.GetActiveByStaffAndDate(ctx, req.StaffID, req.Date)
	if err != nil {
		return nil, uc.internal("failed to get bookings", err)
	}

	// 5. Генерация слотов
	resp.Slots = generateSlots(
		workingHours,
		domain.BreakIntervals(breaks),
		domain.BookedIntervals(bookings),
		service.DurationMinutes,
		uc.policy.SlotStepMinutes,
	)

	// 6. На сегодня закрываем прошедшее время и окно уведомления
	if req.Date.Equal(today) {
		applyNotice(resp.Slots, uc.clock.MinuteOfDay()+uc.policy.MinNoticeMinutes)
	}

	uc.metrics.IncAvailability(outcomeSlots)
	uc.logger.Info("GetAvailableSlots: generated %d slots for staff=%d, service=%d, date=%s",
		len(resp.Slots), req.StaffID, req.ServiceID, req.Date)

	return resp, nil
}

func (uc *UseCase) internal(msg string, err error) error {
	uc.logger.Error("GetAvailableSlots: %s: %v", msg, err)
	uc.metrics.IncAvailability(outcomeError)
	return fmt.Errorf("%w: %s: %v", ErrInternal, msg, err)
}
