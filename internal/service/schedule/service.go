package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	scheduleRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-SalonBooking/internal/service/schedule/models"
)

// Service сервис управления расписанием мастеров
type Service struct {
	scheduleRepo ScheduleRepository
	staffRepo    StaffRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	scheduleRepo ScheduleRepository,
	staffRepo StaffRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		staffRepo:    staffRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetSchedule возвращает недельные рабочие часы и перерывы мастера
func (s *Service) GetSchedule(ctx context.Context, staffID int64) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: fetching schedule for staff=%d", staffID)

	if err := s.ensureStaff(ctx, "GetSchedule", staffID); err != nil {
		return nil, err
	}

	hours, err := s.scheduleRepo.ListWorkingHours(ctx, staffID)
	if err != nil {
		s.logger.Error("GetSchedule: failed to list working hours for staff=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	breaks, err := s.scheduleRepo.ListBreaks(ctx, staffID)
	if err != nil {
		s.logger.Error("GetSchedule: failed to list breaks for staff=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSchedule(&domain.WeeklySchedule{
		StaffID:      staffID,
		WorkingHours: hours,
		Breaks:       breaks,
	}), nil
}

// ReplaceWeeklySchedule заменяет всё недельное расписание мастера одной транзакцией
func (s *Service) ReplaceWeeklySchedule(ctx context.Context, staffID int64, req *models.ReplaceScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("ReplaceWeeklySchedule: replacing %d days for staff=%d by admin=%d",
		len(req.Days), staffID, req.AdminID)

	hours, err := toWorkingHours(staffID, req.Days)
	if err != nil {
		s.logger.Warn("ReplaceWeeklySchedule: validation failed: %v", err)
		return nil, err
	}

	if err := s.ensureStaff(ctx, "ReplaceWeeklySchedule", staffID); err != nil {
		return nil, err
	}

	var saved []domain.WorkingHours
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		result, err := s.scheduleRepo.ReplaceWorkingHours(txCtx, staffID, hours)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrDuplicateDay) {
				return ErrDuplicateDay
			}
			return fmt.Errorf("%w: ReplaceWeeklySchedule - repository error: %v", ErrInternal, err)
		}
		saved = result
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("ReplaceWeeklySchedule: %v", err)
		}
		return nil, err
	}

	breaks, err := s.scheduleRepo.ListBreaks(ctx, staffID)
	if err != nil {
		s.logger.Error("ReplaceWeeklySchedule: failed to list breaks for staff=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: ReplaceWeeklySchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ReplaceWeeklySchedule: saved %d days for staff=%d", len(saved), staffID)
	return models.FromDomainSchedule(&domain.WeeklySchedule{
		StaffID:      staffID,
		WorkingHours: saved,
		Breaks:       breaks,
	}), nil
}

// CreateBreak добавляет перерыв. Пересекающиеся перерывы допускаются.
func (s *Service) CreateBreak(ctx context.Context, staffID int64, req *models.CreateBreakRequest) (*models.BreakResponse, error) {
	s.logger.Info("CreateBreak: creating break for staff=%d by admin=%d", staffID, req.AdminID)

	brk, err := toBreak(staffID, req)
	if err != nil {
		s.logger.Warn("CreateBreak: validation failed: %v", err)
		return nil, err
	}

	if err := s.ensureStaff(ctx, "CreateBreak", staffID); err != nil {
		return nil, err
	}

	created, err := s.scheduleRepo.CreateBreak(ctx, brk)
	if err != nil {
		s.logger.Error("CreateBreak: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateBreak - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateBreak: created break id=%d for staff=%d", created.ID, staffID)
	return models.FromDomainBreak(created), nil
}

// DeleteBreak удаляет перерыв мастера
func (s *Service) DeleteBreak(ctx context.Context, staffID, breakID int64) error {
	s.logger.Info("DeleteBreak: deleting break id=%d for staff=%d", breakID, staffID)

	if err := s.scheduleRepo.DeleteBreak(ctx, staffID, breakID); err != nil {
		if errors.Is(err, scheduleRepo.ErrBreakNotFound) {
			s.logger.Warn("DeleteBreak: break id=%d not found for staff=%d", breakID, staffID)
			return ErrBreakNotFound
		}
		s.logger.Error("DeleteBreak: repository error for break id=%d: %v", breakID, err)
		return fmt.Errorf("%w: DeleteBreak - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteBreak: successfully deleted break id=%d", breakID)
	return nil
}

func (s *Service) ensureStaff(ctx context.Context, op string, staffID int64) error {
	if _, err := s.staffRepo.GetStaff(ctx, staffID); err != nil {
		if errors.Is(err, catalogRepo.ErrStaffNotFound) {
			s.logger.Warn("%s: staff id=%d not found", op, staffID)
			return ErrStaffNotFound
		}
		s.logger.Error("%s: failed to get staff id=%d: %v", op, staffID, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return nil
}
