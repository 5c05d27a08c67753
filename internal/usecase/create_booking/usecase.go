package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	scheduleRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/schedule"
)

const (
	conflictOverlap    = "overlap"
	conflictConstraint = "constraint"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	catalogRepo  CatalogRepository
	txManager    TransactionManager
	refGenerator ReferenceGenerator
	clock        Clock
	policy       domain.BookingPolicy
	metrics      Metrics
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	catalogRepo CatalogRepository,
	txManager TransactionManager,
	refGenerator ReferenceGenerator,
	clock Clock,
	policy domain.BookingPolicy,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		catalogRepo:  catalogRepo,
		txManager:    txManager,
		refGenerator: refGenerator,
		clock:        clock,
		policy:       policy,
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка конфликта и вставка выполняются в одной транзакции READ COMMITTED
// под advisory-блокировкой таймлайна мастера. Каждый запрос после блокировки
// читает свежий снимок, поэтому второй из двух одновременных запросов видит
// уже закоммиченную запись и получает ErrSlotConflict. Exclusion constraint
// bookings_no_overlap остаётся последней защитой.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}

	// 1. Валидация входных данных
	normalizeRequest(req)
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateBooking: staff=%d, service=%d, date=%s, time=%s",
		req.StaffID, req.ServiceID, req.Date, req.StartTime)

	today := uc.clock.Today()
	if err := validateDate(req.Date, today, uc.policy.MaxAdvanceDays); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 2. Услуга и мастер
	service, err := uc.catalogRepo.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsActive {
		uc.logger.Warn("CreateBooking: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	staff, err := uc.catalogRepo.GetStaff(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrStaffNotFound) {
			uc.logger.Warn("CreateBooking: staff id=%d not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("CreateBooking: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}
	if !staff.IsActive {
		uc.logger.Warn("CreateBooking: staff id=%d is inactive", req.StaffID)
		return nil, ErrStaffNotFound
	}

	offers, err := uc.catalogRepo.StaffOffersService(ctx, req.StaffID, req.ServiceID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to check staff services: %v", err)
		return nil, fmt.Errorf("%w: failed to check staff services: %v", ErrInternal, err)
	}
	if !offers {
		uc.logger.Warn("CreateBooking: staff id=%d does not offer service id=%d", req.StaffID, req.ServiceID)
		return nil, ErrServiceNotOffered
	}

	// 3. Конец фиксируется сейчас и больше не пересчитывается
	proposed, endTime, err := bookingInterval(req.StartTime, service.DurationMinutes)
	if err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	if err := validateBookingTime(req.Date, today, proposed.Start, uc.clock.MinuteOfDay(), uc.policy.MinNoticeMinutes); err != nil {
		uc.logger.Warn("CreateBooking: booking time validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking

	// 4. Проверка и вставка в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 4.1. Точка сериализации по мастеру и дате, до любого чтения
		if err := uc.bookingRepo.LockStaffTimeline(txCtx, req.StaffID, req.Date); err != nil {
			uc.logger.Error("CreateBooking: failed to lock timeline: %v", err)
			return fmt.Errorf("%w: failed to lock timeline: %w", ErrInternal, err)
		}

		// 4.2. Рабочие часы
		workingHours, err := uc.scheduleRepo.GetWorkingHours(txCtx, req.StaffID, req.Date.Weekday())
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrWorkingHoursNotFound) {
				uc.logger.Warn("CreateBooking: staff=%d does not work on %s", req.StaffID, req.Date)
				return ErrStaffNotWorking
			}
			uc.logger.Error("CreateBooking: failed to get working hours: %v", err)
			return fmt.Errorf("%w: failed to get working hours: %w", ErrInternal, err)
		}
		if !workingHours.IsActive {
			return ErrStaffNotWorking
		}
		if !proposed.FitsWithin(workingHours.Interval()) {
			uc.logger.Warn("CreateBooking: %s is outside working hours %s", proposed, workingHours.Interval())
			return ErrOutsideWorkingHours
		}

		// 4.3. Перерывы
		breaks, err := uc.scheduleRepo.GetBreaksForDate(txCtx, req.StaffID, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get breaks: %v", err)
			return fmt.Errorf("%w: failed to get breaks: %w", ErrInternal, err)
		}
		if domain.OverlapsAny(proposed, domain.BreakIntervals(breaks)) {
			uc.logger.Warn("CreateBooking: %s overlaps a break", proposed)
			return ErrBreakOverlap
		}

		// 4.4. Проверка конфликта по заблокированным (FOR UPDATE) бронированиям
		bookings, err := uc.bookingRepo.GetActiveByStaffAndDate(txCtx, req.StaffID, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}
		if conflict := findConflict(proposed, bookings); conflict != nil {
			uc.logger.Warn("CreateBooking: %s conflicts with booking %s (%s-%s)",
				proposed, conflict.Reference, conflict.StartTime, conflict.EndTime)
			uc.metrics.IncBookingConflict(conflictOverlap)
			return ErrSlotConflict
		}

		// 4.5. Вставка
		reference, err := uc.refGenerator.Generate()
		if err != nil {
			return fmt.Errorf("%w: failed to generate reference: %v", ErrInternal, err)
		}

		booking := &domain.Booking{
			Reference:       reference,
			StaffID:         req.StaffID,
			ServiceID:       req.ServiceID,
			BookingDate:     req.Date,
			StartTime:       req.StartTime,
			EndTime:         endTime,
			DurationMinutes: service.DurationMinutes,
			Status:          domain.StatusConfirmed,
			CustomerName:    req.CustomerName,
			CustomerEmail:   req.CustomerEmail,
			CustomerPhone:   req.CustomerPhone,
			Notes:           req.Notes,
			Price:           service.Price,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotNotAvailable) {
				uc.logger.Warn("CreateBooking: overlap rejected by constraint: %v", err)
				uc.metrics.IncBookingConflict(conflictConstraint)
				return ErrSlotConflict
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.metrics.IncBookingCreated(service.Category)
	uc.logger.Info("CreateBooking: successfully created booking id=%d ref=%s", result.ID, result.Reference)

	return &Response{
		ID:              result.ID,
		Reference:       result.Reference,
		StaffID:         result.StaffID,
		ServiceID:       result.ServiceID,
		BookingDate:     result.BookingDate,
		StartTime:       result.StartTime,
		EndTime:         result.EndTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ServiceName:     service.Name,
		StaffName:       staff.Name,
		Price:           result.Price,
		CustomerName:    result.CustomerName,
		CustomerEmail:   result.CustomerEmail,
		CustomerPhone:   result.CustomerPhone,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}
