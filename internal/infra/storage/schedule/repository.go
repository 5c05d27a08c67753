package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

const (
	workingHoursTable = "working_hours"
	breaksTable       = "break_periods"
)

var workingHoursColumns = []string{"id", "staff_id", "day_of_week", "start_time", "end_time", "is_active"}

var breakColumns = []string{"id", "staff_id", "day_of_week", "break_date", "start_time", "end_time", "reason", "created_at"}

// Repository репозиторий рабочих часов и перерывов мастеров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetWorkingHours возвращает активные рабочие часы мастера на день недели.
// Нет строки или она неактивна - ErrWorkingHoursNotFound.
func (r *Repository) GetWorkingHours(ctx context.Context, staffID int64, day time.Weekday) (*domain.WorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(workingHoursColumns...).
		From(workingHoursTable).
		Where(squirrel.Eq{"staff_id": staffID, "day_of_week": int(day), "is_active": true}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWorkingHours - build select query: %v", ErrBuildQuery, err)
	}

	wh, err := scanWorkingHours(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWorkingHoursNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetWorkingHours - scan: %w", ErrScanRow, err)
	}

	return wh, nil
}

// ListWorkingHours возвращает всю неделю мастера, включая неактивные дни
func (r *Repository) ListWorkingHours(ctx context.Context, staffID int64) ([]domain.WorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(workingHoursColumns...).
		From(workingHoursTable).
		Where(squirrel.Eq{"staff_id": staffID}).
		OrderBy("day_of_week ASC", "start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListWorkingHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWorkingHours - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.WorkingHours, 0)
	for rows.Next() {
		wh, err := scanWorkingHours(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListWorkingHours - scan row: %w", ErrScanRow, err)
		}
		result = append(result, *wh)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListWorkingHours - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

// ReplaceWorkingHours удаляет всю неделю мастера и вставляет новый набор.
// Вызывать внутри транзакции, иначе между DELETE и INSERT мастер остаётся без расписания.
func (r *Repository) ReplaceWorkingHours(ctx context.Context, staffID int64, hours []domain.WorkingHours) ([]domain.WorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	delQuery, delArgs, err := psqlbuilder.Delete(workingHoursTable).
		Where(squirrel.Eq{"staff_id": staffID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ReplaceWorkingHours - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, delQuery, delArgs...); err != nil {
		return nil, fmt.Errorf("%w: ReplaceWorkingHours - execute delete: %w", ErrExecQuery, err)
	}

	if len(hours) == 0 {
		return []domain.WorkingHours{}, nil
	}

	insert := psqlbuilder.Insert(workingHoursTable).
		Columns("staff_id", "day_of_week", "start_time", "end_time", "is_active")
	for _, wh := range hours {
		insert = insert.Values(staffID, int(wh.DayOfWeek), wh.StartTime, wh.EndTime, wh.IsActive)
	}

	query, args, err := insert.
		Suffix("RETURNING " + strings.Join(workingHoursColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ReplaceWorkingHours - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: ReplaceWorkingHours - %v", ErrDuplicateDay, err)
		}
		return nil, fmt.Errorf("%w: ReplaceWorkingHours - execute insert: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.WorkingHours, 0, len(hours))
	for rows.Next() {
		wh, err := scanWorkingHours(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ReplaceWorkingHours - scan row: %w", ErrScanRow, err)
		}
		result = append(result, *wh)
	}
	if err := rows.Err(); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: ReplaceWorkingHours - %v", ErrDuplicateDay, err)
		}
		return nil, fmt.Errorf("%w: ReplaceWorkingHours - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

// GetBreaksForDate возвращает перерывы, действующие в дату:
// еженедельные по дню недели и разовые на саму дату
func (r *Repository) GetBreaksForDate(ctx context.Context, staffID int64, date types.Date) ([]domain.BreakPeriod, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(breakColumns...).
		From(breaksTable).
		Where(squirrel.Eq{"staff_id": staffID}).
		Where(squirrel.Or{
			squirrel.Eq{"day_of_week": int(date.Weekday())},
			squirrel.Eq{"break_date": date},
		}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBreaksForDate - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryBreaks(ctx, executor, "GetBreaksForDate", query, args)
}

// ListBreaks возвращает все перерывы мастера
func (r *Repository) ListBreaks(ctx context.Context, staffID int64) ([]domain.BreakPeriod, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(breakColumns...).
		From(breaksTable).
		Where(squirrel.Eq{"staff_id": staffID}).
		OrderBy("break_date ASC NULLS FIRST", "day_of_week ASC", "start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBreaks - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryBreaks(ctx, executor, "ListBreaks", query, args)
}

// CreateBreak создает перерыв. Пересечение с другими перерывами допускается.
func (r *Repository) CreateBreak(ctx context.Context, brk *domain.BreakPeriod) (*domain.BreakPeriod, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var day interface{}
	if brk.DayOfWeek != nil {
		day = int(*brk.DayOfWeek)
	}

	query, args, err := psqlbuilder.Insert(breaksTable).
		Columns("staff_id", "day_of_week", "break_date", "start_time", "end_time", "reason").
		Values(brk.StaffID, day, brk.BreakDate, brk.StartTime, brk.EndTime, brk.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateBreak - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&brk.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: CreateBreak - execute insert: %w", ErrExecQuery, err)
	}
	brk.CreatedAt = createdAt.Time

	return brk, nil
}

// DeleteBreak удаляет перерыв мастера
func (r *Repository) DeleteBreak(ctx context.Context, staffID, breakID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(breaksTable).
		Where(squirrel.Eq{"id": breakID, "staff_id": staffID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteBreak - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteBreak - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteBreak - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBreakNotFound
	}

	return nil
}

func (r *Repository) queryBreaks(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) ([]domain.BreakPeriod, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	result := make([]domain.BreakPeriod, 0)
	for rows.Next() {
		brk, err := scanBreak(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		result = append(result, *brk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanWorkingHours(row rowScanner) (*domain.WorkingHours, error) {
	var wh domain.WorkingHours
	var day int

	if err := row.Scan(&wh.ID, &wh.StaffID, &day, &wh.StartTime, &wh.EndTime, &wh.IsActive); err != nil {
		return nil, err
	}
	wh.DayOfWeek = time.Weekday(day)

	return &wh, nil
}

func scanBreak(row rowScanner) (*domain.BreakPeriod, error) {
	var brk domain.BreakPeriod
	var day sql.NullInt16
	var createdAt sql.NullTime

	err := row.Scan(
		&brk.ID,
		&brk.StaffID,
		&day,
		&brk.BreakDate,
		&brk.StartTime,
		&brk.EndTime,
		&brk.Reason,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if day.Valid {
		wd := time.Weekday(day.Int16)
		brk.DayOfWeek = &wd
	}
	brk.CreatedAt = createdAt.Time

	return &brk, nil
}
