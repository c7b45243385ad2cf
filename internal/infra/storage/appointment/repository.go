package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/salon-booking-service/internal/domain"
	"github.com/m04kA/salon-booking-service/pkg/dbmetrics"
	"github.com/m04kA/salon-booking-service/pkg/pgerrors"
	"github.com/m04kA/salon-booking-service/pkg/psqlbuilder"
)

var appointmentColumns = []string{
	"a.id",
	"a.staff_id",
	"a.service_option_id",
	"a.client_id",
	"a.start_at",
	"a.end_at",
	"a.status",
	"a.price_cents",
	"a.deposit_cents",
	"a.notes",
	"a.internal_notes",
	"a.created_at",
	"a.updated_at",
}

var detailsColumns = append(append([]string{}, appointmentColumns...),
	"s.name",
	"o.type",
	"st.name",
	"c.name",
	"c.phone",
)

// Repository репозиторий записей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет запись
// Если exclusion constraint отклонил пересекающийся интервал, возвращает ErrSlotNotAvailable
func (r *Repository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"id",
			"staff_id",
			"service_option_id",
			"client_id",
			"start_at",
			"end_at",
			"status",
			"price_cents",
			"deposit_cents",
			"notes",
		).
		Values(
			a.ID,
			a.StaffID,
			a.ServiceOptionID,
			a.ClientID,
			a.StartAt,
			a.EndAt,
			string(a.Status),
			a.PriceCents,
			a.DepositCents,
			a.Notes,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if pgerrors.IsExclusionViolation(err) {
			return nil, fmt.Errorf("%w: %w", ErrSlotNotAvailable, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return a, nil
}

// GetByID получает запись по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(appointmentColumns...).
		From("appointments a").
		Where(squirrel.Eq{"a.id": id})

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %w", ErrScanRow, err)
	}

	return a, nil
}

// GetDetails получает запись вместе с названием услуги, типом опции, мастером и клиентом
func (r *Repository) GetDetails(ctx context.Context, id string) (*domain.AppointmentDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := detailsSelect().
		Where(squirrel.Eq{"a.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetDetails - build select query: %v", ErrBuildQuery, err)
	}

	d, err := scanDetails(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetDetails - scan appointment: %w", ErrScanRow, err)
	}

	return d, nil
}

// ListOccupying возвращает записи мастера в статусах PENDING_PAYMENT/CONFIRMED,
// пересекающие интервал [from, to), по возрастанию начала
// Внутри транзакции строки блокируются (FOR UPDATE), чтобы параллельные бронирования сериализовались
func (r *Repository) ListOccupying(ctx context.Context, staffID string, from, to time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(appointmentColumns...).
		From("appointments a").
		Where(squirrel.Eq{"a.staff_id": staffID}).
		Where(squirrel.Eq{"a.status": occupyingStatuses()}).
		Where(squirrel.Lt{"a.start_at": to}).
		Where(squirrel.Gt{"a.end_at": from}).
		OrderBy("a.start_at ASC")

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListOccupying - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOccupying - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListOccupying - scan appointment: %w", ErrScanRow, err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListOccupying - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

// List возвращает записи для CRM по фильтру, по возрастанию начала
func (r *Repository) List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.AppointmentDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := detailsSelect().OrderBy("a.start_at ASC", "a.id ASC")

	if filter.From != nil {
		builder = builder.Where(squirrel.GtOrEq{"a.start_at": *filter.From})
	}
	if filter.To != nil {
		builder = builder.Where(squirrel.Lt{"a.start_at": *filter.To})
	}
	if filter.StaffID != nil {
		builder = builder.Where(squirrel.Eq{"a.staff_id": *filter.StaffID})
	}
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"a.status": string(*filter.Status)})
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

	result := make([]*domain.AppointmentDetails, 0)
	for rows.Next() {
		d, err := scanDetails(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan appointment: %w", ErrScanRow, err)
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

// UpdateStatus меняет статус записи
// Exclusion violation при возврате записи в календарь превращается в ErrSlotNotAvailable
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) error {
	return r.update(ctx, "UpdateStatus", id, squirrel.Eq{"status": string(status)})
}

// UpdateInternalNotes меняет внутренние заметки администратора
func (r *Repository) UpdateInternalNotes(ctx context.Context, id string, notes *string) error {
	return r.update(ctx, "UpdateInternalNotes", id, squirrel.Eq{"internal_notes": notes})
}

func (r *Repository) update(ctx context.Context, op, id string, fields squirrel.Eq) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		SetMap(fields).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if pgerrors.IsExclusionViolation(err) {
			return fmt.Errorf("%w: %w", ErrSlotNotAvailable, err)
		}
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

func detailsSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(detailsColumns...).
		From("appointments a").
		Join("service_options o ON o.id = a.service_option_id").
		Join("services s ON s.id = o.service_id").
		Join("staff st ON st.id = a.staff_id").
		Join("clients c ON c.id = a.client_id")
}

func occupyingStatuses() []string {
	result := make([]string, len(domain.OccupyingStatuses))
	for i, s := range domain.OccupyingStatuses {
		result[i] = string(s)
	}
	return result
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func appointmentFields(a *domain.Appointment) []interface{} {
	return []interface{}{
		&a.ID,
		&a.StaffID,
		&a.ServiceOptionID,
		&a.ClientID,
		&a.StartAt,
		&a.EndAt,
		&a.Status,
		&a.PriceCents,
		&a.DepositCents,
		&a.Notes,
		&a.InternalNotes,
		&a.CreatedAt,
		&a.UpdatedAt,
	}
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var a domain.Appointment
	if err := row.Scan(appointmentFields(&a)...); err != nil {
		return nil, err
	}
	return &a, nil
}

func scanDetails(row rowScanner) (*domain.AppointmentDetails, error) {
	var d domain.AppointmentDetails
	fields := append(appointmentFields(&d.Appointment),
		&d.ServiceName,
		&d.OptionType,
		&d.StaffName,
		&d.ClientName,
		&d.ClientPhone,
	)
	if err := row.Scan(fields...); err != nil {
		return nil, err
	}
	return &d, nil
}
