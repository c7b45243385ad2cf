package client

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/salon-booking-service/internal/domain"
	"github.com/m04kA/salon-booking-service/pkg/dbmetrics"
	"github.com/m04kA/salon-booking-service/pkg/psqlbuilder"
)

// Repository репозиторий клиентов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// FindOrCreateByPhone возвращает клиента с телефоном c.Phone, создавая его при отсутствии
// Уникальный индекс по phone и ON CONFLICT DO NOTHING гарантируют не больше одного клиента на номер
// при параллельных вызовах. Имя и email существующего клиента не перезаписываются.
func (r *Repository) FindOrCreateByPhone(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("clients").
		Columns("id", "name", "phone", "email").
		Values(c.ID, c.Name, c.Phone, c.Email).
		Suffix("ON CONFLICT (phone) DO NOTHING").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindOrCreateByPhone - build insert query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: FindOrCreateByPhone - execute insert: %w", ErrExecQuery, err)
	}

	query, args, err = psqlbuilder.Select("id", "name", "phone", "email", "created_at").
		From("clients").
		Where(squirrel.Eq{"phone": c.Phone}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindOrCreateByPhone - build select query: %v", ErrBuildQuery, err)
	}

	var result domain.Client
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&result.ID, &result.Name, &result.Phone, &result.Email, &result.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: FindOrCreateByPhone - scan client: %w", ErrScanRow, err)
	}

	return &result, nil
}
