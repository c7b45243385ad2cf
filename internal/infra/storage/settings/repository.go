package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/salon-booking-service/internal/domain"
	"github.com/m04kA/salon-booking-service/pkg/dbmetrics"
	"github.com/m04kA/salon-booking-service/pkg/pgerrors"
	"github.com/m04kA/salon-booking-service/pkg/psqlbuilder"
)

// Repository репозиторий настроек расписания (одна строка)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get возвращает настройки или ErrConfigNotFound
// Строка никогда не создается неявно, для этого есть Create (команда provision)
func (r *Repository) Get(ctx context.Context) (*domain.SchedulingConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(
		"id",
		"salon_name",
		"slot_minutes",
		"buffer_minutes",
		"min_advance_minutes",
		"timezone",
		"created_at",
		"updated_at",
	).
		From("scheduling_config").
		Where(squirrel.Eq{"singleton_key": domain.SchedulingConfigSingletonKey})

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.SchedulingConfig
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID,
		&c.SalonName,
		&c.SlotMinutes,
		&c.BufferMinutes,
		&c.MinAdvanceMinutes,
		&c.Timezone,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan config: %w", ErrScanRow, err)
	}

	return &c, nil
}

// Create создает строку настроек, ErrConfigExists если она уже есть
func (r *Repository) Create(ctx context.Context, c *domain.SchedulingConfig) (*domain.SchedulingConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("scheduling_config").
		Columns(
			"id",
			"singleton_key",
			"salon_name",
			"slot_minutes",
			"buffer_minutes",
			"min_advance_minutes",
			"timezone",
		).
		Values(
			c.ID,
			domain.SchedulingConfigSingletonKey,
			c.SalonName,
			c.SlotMinutes,
			c.BufferMinutes,
			c.MinAdvanceMinutes,
			c.Timezone,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if pgerrors.IsUniqueViolation(err) {
			return nil, ErrConfigExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return c, nil
}

// Update сохраняет все изменяемые поля настроек
func (r *Repository) Update(ctx context.Context, c *domain.SchedulingConfig) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("scheduling_config").
		Set("salon_name", c.SalonName).
		Set("slot_minutes", c.SlotMinutes).
		Set("buffer_minutes", c.BufferMinutes).
		Set("min_advance_minutes", c.MinAdvanceMinutes).
		Set("timezone", c.Timezone).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"singleton_key": domain.SchedulingConfigSingletonKey}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrConfigNotFound
	}

	return nil
}
