package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/bookingref"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	clock       Clock
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	clock Clock,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		clock:       clock,
		logger:      logger,
	}
}

// GetByReference получает бронирование по публичному номеру
func (s *Service) GetByReference(ctx context.Context, reference string) (*models.BookingResponse, error) {
	reference = bookingref.Normalize(reference)
	s.logger.Info("GetByReference: fetching booking ref=%s", reference)

	if !bookingref.IsValid(reference) {
		s.logger.Warn("GetByReference: malformed reference %q", reference)
		return nil, ErrBookingNotFound
	}

	booking, err := s.bookingRepo.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByReference: booking ref=%s not found", reference)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByReference: repository error for ref=%s: %v", reference, err)
		return nil, fmt.Errorf("%w: GetByReference - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// CancelByReference отменяет бронирование по номеру и email клиента.
// Email сравнивается без учёта регистра и пробелов по краям.
// При несовпадении email ответ такой же, как для несуществующего номера.
func (s *Service) CancelByReference(ctx context.Context, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	reference := bookingref.Normalize(req.Reference)
	email := normalizeEmail(req.Email)
	s.logger.Info("CancelByReference: cancelling booking ref=%s", reference)

	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if !bookingref.IsValid(reference) {
		return nil, ErrBookingNotFound
	}

	var result *domain.Booking

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByReference(txCtx, reference)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: CancelByReference - repository error: %v", ErrInternal, err)
		}

		if normalizeEmail(booking.CustomerEmail) != email {
			s.logger.Warn("CancelByReference: email mismatch for ref=%s", reference)
			return ErrBookingNotFound
		}

		switch {
		case booking.Status == domain.StatusCancelled:
			return ErrAlreadyCancelled
		case !booking.CanBeCancelled():
			s.logger.Warn("CancelByReference: booking ref=%s cannot be cancelled, status=%s", reference, booking.Status)
			return ErrCannotCancel
		}

		if err := s.bookingRepo.Cancel(txCtx, booking.ID); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: CancelByReference - repository error: %v", ErrInternal, err)
		}

		booking.Status = domain.StatusCancelled
		result = booking
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("CancelByReference: %v", err)
		}
		return nil, err
	}

	s.logger.Info("CancelByReference: successfully cancelled booking ref=%s", reference)
	return models.FromDomainBooking(result), nil
}

// UpdateStatus обновляет статус бронирования (админка).
// Возврат отменённой записи в активный статус повторно проверяет пересечения
// под блокировкой таймлайна. Снимок SERIALIZABLE транзакции фиксируется
// раньше блокировки, поэтому гонку ловят exclusion constraint или ошибка
// сериализации, обе дают ErrSlotConflict.
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by admin=%d",
		bookingID, req.Status, req.AdminID)

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s", req.Status)
		return nil, ErrInvalidStatus
	}

	var result *domain.Booking

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: UpdateStatus - repository error: %w", ErrInternal, err)
		}

		if booking.Status == newStatus {
			result = booking
			return nil
		}

		if !booking.IsActive() && newStatus != domain.StatusCancelled {
			if err := s.ensureNoConflict(txCtx, booking); err != nil {
				return err
			}
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, bookingID, newStatus); err != nil {
			switch {
			case errors.Is(err, bookingRepo.ErrBookingNotFound):
				return ErrBookingNotFound
			case errors.Is(err, bookingRepo.ErrSlotNotAvailable):
				return ErrSlotConflict
			}
			return fmt.Errorf("%w: UpdateStatus - repository error: %w", ErrInternal, err)
		}

		booking.Status = newStatus
		result = booking
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerialization) {
			s.logger.Warn("UpdateStatus: serialization retries exhausted for booking id=%d: %v", bookingID, err)
			return nil, ErrSlotConflict
		}
		if errors.Is(err, ErrInternal) {
			s.logger.Error("UpdateStatus: %v", err)
		}
		return nil, err
	}

	s.logger.Info("UpdateStatus: booking id=%d is now %s", bookingID, newStatus)
	return models.FromDomainBooking(result), nil
}

func (s *Service) ensureNoConflict(ctx context.Context, booking *domain.Booking) error {
	if err := s.bookingRepo.LockStaffTimeline(ctx, booking.StaffID, booking.BookingDate); err != nil {
		return fmt.Errorf("%w: UpdateStatus - lock timeline: %w", ErrInternal, err)
	}

	active, err := s.bookingRepo.GetActiveByStaffAndDate(ctx, booking.StaffID, booking.BookingDate)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - repository error: %w", ErrInternal, err)
	}

	if domain.OverlapsAny(booking.Interval(), domain.BookedIntervals(active)) {
		s.logger.Warn("UpdateStatus: booking id=%d overlaps an active booking", booking.ID)
		return ErrSlotConflict
	}

	return nil
}

// List возвращает страницу бронирований (админка)
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid status filter", ErrInvalidInput)
	}

	s.logger.Info("List: page=%d, limit=%d, staff=%d", filter.Page, filter.Limit, ptr.Deref(filter.StaffID))

	bookings, total, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings, total, filter), nil
}

// Stats возвращает сводку на сегодня в часовом поясе салона
func (s *Service) Stats(ctx context.Context) (*models.StatsResponse, error) {
	today := s.clock.Today()

	stats, err := s.bookingRepo.Stats(ctx, today)
	if err != nil {
		s.logger.Error("Stats: repository error: %v", err)
		return nil, fmt.Errorf("%w: Stats - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainStats(today, stats), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
