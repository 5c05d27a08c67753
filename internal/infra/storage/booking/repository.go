package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

const tableName = "bookings"

var columns = []string{
	"id",
	"reference",
	"staff_id",
	"service_id",
	"booking_date",
	"start_time",
	"end_time",
	"duration_minutes",
	"status",
	"customer_name",
	"customer_email",
	"customer_phone",
	"notes",
	"price",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её.
// Пересечение с активным бронированием того же мастера ловит exclusion constraint,
// в этом случае возвращается ErrSlotNotAvailable.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"reference",
			"staff_id",
			"service_id",
			"booking_date",
			"start_time",
			"end_time",
			"duration_minutes",
			"status",
			"customer_name",
			"customer_email",
			"customer_phone",
			"notes",
			"price",
		).
		Values(
			booking.Reference,
			booking.StaffID,
			booking.ServiceID,
			booking.BookingDate,
			booking.StartTime,
			booking.EndTime,
			booking.DurationMinutes,
			booking.Status,
			booking.CustomerName,
			booking.CustomerEmail,
			booking.CustomerPhone,
			booking.Notes,
			booking.Price,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isSlotConflict(err) {
			return nil, fmt.Errorf("%w: Create - %v", ErrSlotNotAvailable, err)
		}
		// Ошибку сериализации оборачиваем через %w, чтобы txmanager повторил транзакцию
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByReference получает бронирование по публичному номеру
func (r *Repository) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	return r.getOne(ctx, "GetByReference", squirrel.Eq{"reference": reference})
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Sqlizer) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(where)

	// Внутри транзакции блокируем строку до смены статуса
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan booking: %w", ErrScanRow, op, err)
	}

	return booking, nil
}

// GetActiveByStaffAndDate возвращает неотменённые бронирования мастера на дату по возрастанию времени.
// Внутри транзакции строки блокируются FOR UPDATE: это чтение проверки конфликта перед вставкой.
func (r *Repository) GetActiveByStaffAndDate(ctx context.Context, staffID int64, date types.Date) ([]domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"staff_id": staffID, "booking_date": date}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByStaffAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByStaffAndDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// LockStaffTimeline берёт транзакционную advisory-блокировку на (мастер, дата).
// Все попытки бронирования одного мастера на одну дату проходят через неё по очереди.
func (r *Repository) LockStaffTimeline(ctx context.Context, staffID int64, date types.Date) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return fmt.Errorf("%w: LockStaffTimeline", ErrTransaction)
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select().
		Column(squirrel.Expr("pg_advisory_xact_lock(hashtextextended(?, 0))", timelineLockKey(staffID, date))).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: LockStaffTimeline - build query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: LockStaffTimeline - execute: %w", ErrExecQuery, err)
	}

	return nil
}

// timelineLockKey ключ блокировки таймлайна мастера на дату
func timelineLockKey(staffID int64, date types.Date) string {
	return fmt.Sprintf("bookings:staff:%d:%s", staffID, date.String())
}

// List возвращает страницу бронирований по фильтру и общее количество
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]domain.Booking, int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	where := squirrel.And{}
	if filter.Date != nil {
		where = append(where, squirrel.Eq{"booking_date": *filter.Date})
	}
	if filter.StaffID != nil {
		where = append(where, squirrel.Eq{"staff_id": *filter.StaffID})
	}
	if filter.Status != nil {
		where = append(where, squirrel.Eq{"status": *filter.Status})
	}

	countQuery, countArgs, err := psqlbuilder.Select("COUNT(*)").
		From(tableName).
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build count query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: List - count: %w", ErrScanRow, err)
	}

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(where).
		OrderBy("booking_date DESC", "start_time DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset())).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := scanBookings(rows)
	if err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

// Stats считает сводку за день и за месяц до этого дня включительно
func (r *Repository) Stats(ctx context.Context, today types.Date) (*domain.BookingStats, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	revenue := []string{string(domain.StatusConfirmed), string(domain.StatusCompleted)}

	query, args, err := psqlbuilder.Select().
		Column(squirrel.Expr(
			"COUNT(*) FILTER (WHERE booking_date = ? AND status = ?)",
			today, domain.StatusConfirmed,
		)).
		Column(squirrel.Expr(
			"COALESCE(SUM(price) FILTER (WHERE booking_date = ? AND status = ANY(?)), 0)",
			today, pq.Array(revenue),
		)).
		Column(squirrel.Expr(
			"COUNT(*) FILTER (WHERE booking_date BETWEEN ? AND ? AND status = ANY(?))",
			today.FirstOfMonth(), today, pq.Array(revenue),
		)).
		From(tableName).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Stats - build query: %v", ErrBuildQuery, err)
	}

	var stats domain.BookingStats
	var revenueSum decimal.Decimal
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&stats.TodayBookings,
		&revenueSum,
		&stats.MonthlyBookings,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Stats - scan: %w", ErrScanRow, err)
	}
	stats.TodayRevenue = revenueSum

	return &stats, nil
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isSlotConflict(err) {
			// возврат отменённой записи в активный статус поверх чужого бронирования
			return fmt.Errorf("%w: UpdateStatus - %v", ErrSlotNotAvailable, err)
		}
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Cancel переводит бронирование в статус cancelled
func (r *Repository) Cancel(ctx context.Context, id int64) error {
	return r.UpdateStatus(ctx, id, domain.StatusCancelled)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.Reference,
		&booking.StaffID,
		&booking.ServiceID,
		&booking.BookingDate,
		&booking.StartTime,
		&booking.EndTime,
		&booking.DurationMinutes,
		&booking.Status,
		&booking.CustomerName,
		&booking.CustomerEmail,
		&booking.CustomerPhone,
		&booking.Notes,
		&booking.Price,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]domain.Booking, error) {
	bookings := make([]domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %w", ErrScanRow, err)
		}
		bookings = append(bookings, *booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}
