package catalog

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

var optionColumns = []string{
	"o.id",
	"o.service_id",
	"o.type",
	"o.duration_minutes",
	"o.price_cents",
	"o.deposit_cents",
	"o.active",
	"s.id",
	"s.name",
	"s.description",
	"s.active",
	"s.created_at",
}

// typeOrder сначала нанесение, потом коррекция
const typeOrder = "CASE o.type WHEN 'APPLICATION' THEN 0 WHEN 'MAINTENANCE' THEN 1 ELSE 2 END"

// Repository репозиторий каталога услуг (только чтение)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetOption получает опцию вместе с услугой без учета активности
func (r *Repository) GetOption(ctx context.Context, optionID string) (*domain.BookableOption, error) {
	query, args, err := optionSelect().
		Where(squirrel.Eq{"o.id": optionID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOption - build select query: %v", ErrBuildQuery, err)
	}

	return r.getOne(ctx, "GetOption", query, args)
}

// GetDefaultOption получает первую активную опцию услуги (APPLICATION раньше MAINTENANCE)
// Используется для запросов со старым параметром serviceId
func (r *Repository) GetDefaultOption(ctx context.Context, serviceID string) (*domain.BookableOption, error) {
	query, args, err := optionSelect().
		Where(squirrel.Eq{"o.service_id": serviceID, "o.active": true}).
		OrderBy(typeOrder, "o.id ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetDefaultOption - build select query: %v", ErrBuildQuery, err)
	}

	return r.getOne(ctx, "GetDefaultOption", query, args)
}

// ListActiveServices возвращает активные услуги с активными опциями
// Услуги без активных опций не попадают в результат
func (r *Repository) ListActiveServices(ctx context.Context) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := optionSelect().
		Where(squirrel.Eq{"o.active": true, "s.active": true}).
		OrderBy("s.name ASC", "s.id ASC", typeOrder).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveServices - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.Service, 0)
	index := make(map[string]*domain.Service)
	for rows.Next() {
		b, err := scanOption(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActiveServices - scan option: %w", ErrScanRow, err)
		}

		svc, ok := index[b.Service.ID]
		if !ok {
			s := b.Service
			svc = &s
			index[svc.ID] = svc
			result = append(result, svc)
		}
		svc.Options = append(svc.Options, b.Option)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveServices - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

func (r *Repository) getOne(ctx context.Context, op, query string, args []interface{}) (*domain.BookableOption, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	b, err := scanOption(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan option: %w", ErrScanRow, op, err)
	}
	return b, nil
}

func optionSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(optionColumns...).
		From("service_options o").
		Join("services s ON s.id = o.service_id")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOption(row rowScanner) (*domain.BookableOption, error) {
	var b domain.BookableOption
	err := row.Scan(
		&b.Option.ID,
		&b.Option.ServiceID,
		&b.Option.Type,
		&b.Option.DurationMinutes,
		&b.Option.PriceCents,
		&b.Option.DepositCents,
		&b.Option.Active,
		&b.Service.ID,
		&b.Service.Name,
		&b.Service.Description,
		&b.Service.Active,
		&b.Service.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
