package staff

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/salon-booking-service/internal/domain"
	"github.com/m04kA/salon-booking-service/pkg/dbmetrics"
	"github.com/m04kA/salon-booking-service/pkg/psqlbuilder"
)

// Repository репозиторий мастеров (только чтение)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория мастеров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает мастера по ID без учета активности
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Staff, error) {
	query, args, err := staffSelect().
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}
	return r.getOne(ctx, "GetByID", query, args)
}

// GetFirstActive мастер по умолчанию: первый активный по дате создания, затем по id
func (r *Repository) GetFirstActive(ctx context.Context) (*domain.Staff, error) {
	query, args, err := staffSelect().
		Where(squirrel.Eq{"active": true}).
		OrderBy("created_at ASC", "id ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetFirstActive - build select query: %v", ErrBuildQuery, err)
	}
	return r.getOne(ctx, "GetFirstActive", query, args)
}

// ListActive активные мастера по имени
func (r *Repository) ListActive(ctx context.Context) ([]*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := staffSelect().
		Where(squirrel.Eq{"active": true}).
		OrderBy("name ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.Staff, 0)
	for rows.Next() {
		var s domain.Staff
		if err := rows.Scan(&s.ID, &s.Name, &s.Active, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan staff: %w", ErrScanRow, err)
		}
		result = append(result, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

func (r *Repository) getOne(ctx context.Context, op, query string, args []interface{}) (*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var s domain.Staff
	err := executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.Name, &s.Active, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStaffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan staff: %w", ErrScanRow, op, err)
	}
	return &s, nil
}

func staffSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select("id", "name", "active", "created_at").From("staff")
}
