package workinghours

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/salon-booking-service/internal/domain"
	"github.com/m04kA/salon-booking-service/pkg/dbmetrics"
	"github.com/m04kA/salon-booking-service/pkg/psqlbuilder"
)

// Repository репозиторий графиков работы мастеров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория графиков
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByStaffAndWeekday активный график мастера на день недели или ErrWorkingHoursNotFound (выходной)
func (r *Repository) GetByStaffAndWeekday(ctx context.Context, staffID string, weekday int) (*domain.WorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := hoursSelect().
		Where(squirrel.Eq{"staff_id": staffID, "weekday": weekday, "active": true}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStaffAndWeekday - build select query: %v", ErrBuildQuery, err)
	}

	var h domain.WorkingHours
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&h.ID, &h.StaffID, &h.Weekday, &h.StartTime, &h.EndTime, &h.Active,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWorkingHoursNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStaffAndWeekday - scan working hours: %w", ErrScanRow, err)
	}

	return &h, nil
}

// ListByStaff график мастера на неделю по дням
func (r *Repository) ListByStaff(ctx context.Context, staffID string) ([]*domain.WorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := hoursSelect().
		Where(squirrel.Eq{"staff_id": staffID}).
		OrderBy("weekday ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByStaff - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByStaff - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.WorkingHours, 0)
	for rows.Next() {
		var h domain.WorkingHours
		if err := rows.Scan(&h.ID, &h.StaffID, &h.Weekday, &h.StartTime, &h.EndTime, &h.Active); err != nil {
			return nil, fmt.Errorf("%w: ListByStaff - scan working hours: %w", ErrScanRow, err)
		}
		result = append(result, &h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByStaff - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

// ReplaceForStaff заменяет весь график мастера
// Должен вызываться внутри транзакции, иначе при ошибке вставки график останется пустым
func (r *Repository) ReplaceForStaff(ctx context.Context, staffID string, hours []domain.WorkingHours) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("working_hours").
		Where(squirrel.Eq{"staff_id": staffID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceForStaff - build delete query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceForStaff - execute delete: %w", ErrExecQuery, err)
	}

	if len(hours) == 0 {
		return nil
	}

	insert := psqlbuilder.Insert("working_hours").
		Columns("id", "staff_id", "weekday", "start_time", "end_time", "active")
	for _, h := range hours {
		id := h.ID
		if id == "" {
			id = uuid.NewString()
		}
		insert = insert.Values(id, staffID, h.Weekday, h.StartTime, h.EndTime, h.Active)
	}

	query, args, err = insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceForStaff - build insert query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceForStaff - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

func hoursSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select("id", "staff_id", "weekday", "start_time", "end_time", "active").
		From("working_hours")
}
