package block

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/salon-booking-service/internal/domain"
	"github.com/m04kA/salon-booking-service/pkg/dbmetrics"
	"github.com/m04kA/salon-booking-service/pkg/psqlbuilder"
)

var blockColumns = []string{"id", "staff_id", "start_at", "end_at", "reason", "created_at"}

// Repository репозиторий блокировок времени мастеров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет блокировку
func (r *Repository) Create(ctx context.Context, b *domain.Block) (*domain.Block, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blocks").
		Columns("id", "staff_id", "start_at", "end_at", "reason").
		Values(b.ID, b.StaffID, b.StartAt, b.EndAt, b.Reason).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&b.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return b, nil
}

// Delete удаляет блокировку
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocks").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBlockNotFound
	}

	return nil
}

// ListOverlapping возвращает блокировки мастера, пересекающие интервал [from, to)
func (r *Repository) ListOverlapping(ctx context.Context, staffID string, from, to time.Time) ([]*domain.Block, error) {
	return r.List(ctx, domain.BlocksFilter{StaffID: &staffID, From: &from, To: &to})
}

// List возвращает блокировки по фильтру, по возрастанию начала
// From/To задают интервал пересечения, а не начала
func (r *Repository) List(ctx context.Context, filter domain.BlocksFilter) ([]*domain.Block, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(blockColumns...).
		From("blocks").
		OrderBy("start_at ASC", "id ASC")

	if filter.StaffID != nil {
		builder = builder.Where(squirrel.Eq{"staff_id": *filter.StaffID})
	}
	if filter.To != nil {
		builder = builder.Where(squirrel.Lt{"start_at": *filter.To})
	}
	if filter.From != nil {
		builder = builder.Where(squirrel.Gt{"end_at": *filter.From})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.Block, 0)
	for rows.Next() {
		var b domain.Block
		if err := rows.Scan(&b.ID, &b.StaffID, &b.StartAt, &b.EndAt, &b.Reason, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: List - scan block: %w", ErrScanRow, err)
		}
		result = append(result, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}
