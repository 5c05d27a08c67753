package get_available_staff

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	scheduleRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/schedule"
)

// UseCase use case поиска мастеров, которые оказывают услугу и работают в дату
type UseCase struct {
	catalogRepo  CatalogRepository
	scheduleRepo ScheduleRepository
	clock        Clock
	policy       domain.BookingPolicy
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalogRepo CatalogRepository,
	scheduleRepo ScheduleRepository,
	clock Clock,
	policy domain.BookingPolicy,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalogRepo:  catalogRepo,
		scheduleRepo: scheduleRepo,
		clock:        clock,
		policy:       policy,
		logger:       logger,
	}
}

// Execute возвращает активных мастеров услуги с активными рабочими часами
// на день недели даты. Свободные слоты не считаются.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}
	if req.ServiceID <= 0 {
		return nil, fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	uc.logger.Info("GetAvailableStaff: service=%d, date=%s", req.ServiceID, req.Date)

	today := uc.clock.Today()
	if req.Date.Before(today) {
		uc.logger.Warn("GetAvailableStaff: date %s is in the past", req.Date)
		return nil, ErrInvalidDate
	}
	if uc.policy.MaxAdvanceDays > 0 && today.AddDays(uc.policy.MaxAdvanceDays).Before(req.Date) {
		uc.logger.Warn("GetAvailableStaff: date %s is too far ahead", req.Date)
		return nil, fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, uc.policy.MaxAdvanceDays)
	}

	service, err := uc.catalogRepo.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableStaff: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableStaff: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsActive {
		uc.logger.Warn("GetAvailableStaff: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	staff, err := uc.catalogRepo.ListStaffByService(ctx, req.ServiceID)
	if err != nil {
		uc.logger.Error("GetAvailableStaff: failed to list staff for service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to list staff: %v", ErrInternal, err)
	}

	weekday := req.Date.Weekday()
	resp := &Response{
		ServiceID: req.ServiceID,
		Date:      req.Date,
		Staff:     make([]StaffAvailability, 0, len(staff)),
	}

	for _, member := range staff {
		if !member.IsActive {
			continue
		}

		workingHours, err := uc.scheduleRepo.GetWorkingHours(ctx, member.ID, weekday)
		if errors.Is(err, scheduleRepo.ErrWorkingHoursNotFound) {
			continue
		}
		if err != nil {
			uc.logger.Error("GetAvailableStaff: failed to get working hours for staff id=%d: %v", member.ID, err)
			return nil, fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
		}
		if !workingHours.IsActive {
			continue
		}

		resp.Staff = append(resp.Staff, StaffAvailability{Staff: member, WorkingHours: *workingHours})
	}

	uc.logger.Info("GetAvailableStaff: %d of %d staff work on %s for service=%d",
		len(resp.Staff), len(staff), req.Date, req.ServiceID)

	return resp, nil
}
