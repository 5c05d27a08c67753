package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

const staffServicesTable = "staff_services"

// Repository читает справочники услуг и мастеров. Записью в них занимается админка.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetService получает услугу по ID
func (r *Repository) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"duration_minutes",
		"price",
		"category",
		"is_active",
	).
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	var service domain.Service
	var category sql.NullString

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&service.ID,
		&service.Name,
		&service.DurationMinutes,
		&service.Price,
		&category,
		&service.IsActive,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan service: %w", ErrScanRow, err)
	}
	service.Category = category.String

	return &service, nil
}

// GetStaff получает мастера по ID
func (r *Repository) GetStaff(ctx context.Context, id int64) (*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "email", "is_active").
		From("staff").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetStaff - build select query: %v", ErrBuildQuery, err)
	}

	var staff domain.Staff
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&staff.ID,
		&staff.Name,
		&staff.Email,
		&staff.IsActive,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStaffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetStaff - scan staff: %w", ErrScanRow, err)
	}

	return &staff, nil
}

// StaffOffersService проверяет, оказывает ли мастер услугу
func (r *Repository) StaffOffersService(ctx context.Context, staffID, serviceID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From(staffServicesTable).
		Where(squirrel.Eq{"staff_id": staffID, "service_id": serviceID}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: StaffOffersService - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: StaffOffersService - scan: %w", ErrScanRow, err)
	}

	return true, nil
}

// ListStaffByService возвращает активных мастеров, оказывающих услугу, по имени
func (r *Repository) ListStaffByService(ctx context.Context, serviceID int64) ([]domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("s.id", "s.name", "s.email", "s.is_active").
		From("staff s").
		Join(staffServicesTable+" ss ON ss.staff_id = s.id").
		Where(squirrel.Eq{"ss.service_id": serviceID, "s.is_active": true}).
		OrderBy("s.name ASC", "s.id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListStaffByService - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListStaffByService - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.Staff, 0)
	for rows.Next() {
		var staff domain.Staff
		if err := rows.Scan(&staff.ID, &staff.Name, &staff.Email, &staff.IsActive); err != nil {
			return nil, fmt.Errorf("%w: ListStaffByService - scan row: %w", ErrScanRow, err)
		}
		result = append(result, staff)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListStaffByService - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}
