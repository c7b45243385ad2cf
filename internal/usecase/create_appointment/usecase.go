package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/salon-booking-service/internal/domain"
	appointmentRepo "github.com/m04kA/salon-booking-service/internal/infra/storage/appointment"
	workingHoursRepo "github.com/m04kA/salon-booking-service/internal/infra/storage/workinghours"
	"github.com/m04kA/salon-booking-service/internal/integrations/events"
	"github.com/m04kA/salon-booking-service/internal/service/scheduling"
	"github.com/m04kA/salon-booking-service/pkg/metrics"
	"github.com/m04kA/salon-booking-service/pkg/ptr"
	"github.com/m04kA/salon-booking-service/pkg/types"
)

// UseCase use case для создания записи
type UseCase struct {
	resolver         Resolver
	appointmentRepo  AppointmentRepository
	blockRepo        BlockRepository
	workingHoursRepo WorkingHoursRepository
	clientRepo       ClientRepository
	txManager        TransactionManager
	publisher        EventPublisher
	metrics          Metrics
	timeProvider     TimeProvider
	newID            IDGenerator
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
// publisher, metrics, timeProvider и idGen могут быть nil, тогда используются значения по умолчанию
func NewUseCase(
	resolver Resolver,
	appointmentRepo AppointmentRepository,
	blockRepo BlockRepository,
	workingHoursRepo WorkingHoursRepository,
	clientRepo ClientRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	timeProvider TimeProvider,
	idGen IDGenerator,
	logger Logger,
) *UseCase {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	if idGen == nil {
		idGen = uuid.NewString
	}
	return &UseCase{
		resolver:         resolver,
		appointmentRepo:  appointmentRepo,
		blockRepo:        blockRepo,
		workingHoursRepo: workingHoursRepo,
		clientRepo:       clientRepo,
		txManager:        txManager,
		publisher:        publisher,
		metrics:          metrics,
		timeProvider:     timeProvider,
		newID:            idGen,
		logger:           logger,
	}
}

// Execute выполняет use case создания записи
// Проверка пересечений и вставка выполняются в одной сериализуемой транзакции,
// поэтому две параллельные записи на пересекающееся время не могут пройти обе
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: option=%q, staff=%q, date=%s, time=%s",
		req.ServiceOptionID, ptr.Value(req.StaffID), req.Date.Format(types.DateFormat), req.Time)

	// 1. Валидация входных данных
	normalizeRequest(req)
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		uc.metrics.ObserveBooking(metrics.BookingRejected)
		return nil, err
	}

	var (
		created *domain.Appointment
		res     *scheduling.Resolution
	)

	// 2. Все чтения и запись в одной сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error

		// 2.1. Опция, настройки, мастер - так же, как при запросе слотов
		res, err = uc.resolver.Resolve(txCtx, scheduling.Target{
			ServiceOptionID: req.ServiceOptionID,
			StaffID:         req.StaffID,
		})
		if err != nil {
			return mapResolveError(err)
		}

		// 2.2. Интервал записи: начало + длительность + буфер
		startAt, err := req.Time.On(req.Date, res.Location)
		if err != nil {
			return fmt.Errorf("%w: time: %v", ErrInvalidInput, err)
		}
		endAt := types.AddMinutes(startAt, res.Option.DurationMinutes+res.Config.BufferMinutes)
		candidate := domain.Interval{Start: startAt, End: endAt}

		// 2.3. Время не раньше now + minAdvance
		minStart := types.AddMinutes(uc.timeProvider.Now(), res.Config.MinAdvanceMinutes)
		if startAt.Before(minStart) {
			uc.logger.Warn("CreateAppointment: start %s is earlier than allowed %s", startAt, minStart)
			return fmt.Errorf("%w: too late to book this time", ErrSlotNotAvailable)
		}

		// 2.4. Интервал целиком внутри рабочего окна мастера
		if err := uc.checkWorkingHours(txCtx, res, req, candidate); err != nil {
			return err
		}

		// 2.5. Свежая проверка пересечений с блокировками и записями (строки блокируются FOR UPDATE)
		blocks, err := uc.blockRepo.ListOverlapping(txCtx, res.Staff.ID, startAt, endAt)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get blocks: %v", err)
			return fmt.Errorf("%w: failed to get blocks: %w", ErrInternal, err)
		}
		if domain.HasConflict(candidate, domain.BlockIntervals(blocks)) {
			uc.logger.Warn("CreateAppointment: %s-%s is blocked for staff id=%s", startAt, endAt, res.Staff.ID)
			return ErrSlotNotAvailable
		}

		appointments, err := uc.appointmentRepo.ListOccupying(txCtx, res.Staff.ID, startAt, endAt)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %w", ErrInternal, err)
		}
		if domain.HasConflict(candidate, domain.AppointmentIntervals(appointments)) {
			uc.logger.Warn("CreateAppointment: %s-%s overlaps %d appointments of staff id=%s",
				startAt, endAt, len(appointments), res.Staff.ID)
			return ErrSlotNotAvailable
		}

		// 2.6. Клиент по телефону
		client, err := uc.clientRepo.FindOrCreateByPhone(txCtx, &domain.Client{
			ID:    uc.newID(),
			Name:  req.Client.Name,
			Phone: req.Client.Phone,
			Email: req.Client.Email,
		})
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to find or create client: %v", err)
			return fmt.Errorf("%w: failed to find or create client: %w", ErrInternal, err)
		}

		// 2.7. Запись: с депозитом ожидает оплаты, без депозита сразу подтверждена
		created, err = uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			ID:              uc.newID(),
			StaffID:         res.Staff.ID,
			ServiceOptionID: res.Option.ID,
			ClientID:        client.ID,
			StartAt:         startAt,
			EndAt:           endAt,
			Status:          domain.InitialStatus(res.Option.DepositCents),
			Notes:           req.Notes,
			PriceCents:      res.Option.PriceCents,
			DepositCents:    res.Option.DepositCents,
		})
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotNotAvailable) {
				uc.logger.Warn("CreateAppointment: overlap rejected by database for staff id=%s", res.Staff.ID)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		uc.metrics.ObserveBooking(bookingResult(err))
		if !isKnown(err) {
			uc.logger.Error("CreateAppointment: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: %w", ErrInternal, err)
		}
		return nil, err
	}

	uc.metrics.ObserveBooking(metrics.BookingCreated)
	uc.logger.Info("CreateAppointment: created appointment id=%s status=%s staff=%s %s-%s",
		created.ID, created.Status, created.StaffID, created.StartAt, created.EndAt)

	// 3. Событие публикуется после коммита, ошибка публикации не отменяет запись
	if err := uc.publisher.Publish(ctx, events.NewCreated(created, uc.timeProvider.Now())); err != nil {
		uc.logger.Error("CreateAppointment: failed to publish event for id=%s: %v", created.ID, err)
	}

	return &Response{
		AppointmentID:   created.ID,
		Status:          string(created.Status),
		StartAt:         created.StartAt,
		EndAt:           created.EndAt,
		StaffID:         created.StaffID,
		ServiceName:     res.Service.Name,
		OptionType:      string(res.Option.Type),
		RequiresDeposit: res.Option.RequiresDeposit(),
		DepositCents:    res.Option.DepositCents,
		TotalCents:      res.Option.PriceCents,
	}, nil
}

// checkWorkingHours проверяет, что мастер работает в этот день и интервал помещается в рабочее окно
func (uc *UseCase) checkWorkingHours(ctx context.Context, res *scheduling.Resolution, req *Request, candidate domain.Interval) error {
	hours, err := uc.workingHoursRepo.GetByStaffAndWeekday(ctx, res.Staff.ID, types.Weekday(req.Date))
	if err != nil {
		if errors.Is(err, workingHoursRepo.ErrWorkingHoursNotFound) {
			uc.logger.Warn("CreateAppointment: staff id=%s does not work on %s", res.Staff.ID, req.Date.Format(types.DateFormat))
			return fmt.Errorf("%w: staff does not work on this day", ErrSlotNotAvailable)
		}
		uc.logger.Error("CreateAppointment: failed to get working hours: %v", err)
		return fmt.Errorf("%w: failed to get working hours: %w", ErrInternal, err)
	}

	dayStart, err := hours.StartTime.On(req.Date, res.Location)
	if err != nil {
		return fmt.Errorf("%w: invalid working hours: %w", ErrInternal, err)
	}
	dayEnd, err := hours.EndTime.On(req.Date, res.Location)
	if err != nil {
		return fmt.Errorf("%w: invalid working hours: %w", ErrInternal, err)
	}

	if candidate.Start.Before(dayStart) || candidate.End.After(dayEnd) {
		uc.logger.Warn("CreateAppointment: %s-%s is outside working hours %s-%s",
			candidate.Start, candidate.End, hours.StartTime, hours.EndTime)
		return fmt.Errorf("%w: outside working hours", ErrSlotNotAvailable)
	}

	return nil
}

// isKnown ошибки, которые возвращаются вызывающему как есть
func isKnown(err error) bool {
	for _, known := range []error{
		ErrInvalidInput,
		ErrServiceUnavailable,
		ErrStaffUnavailable,
		ErrSlotNotAvailable,
		ErrConfigMissing,
		ErrNoActiveStaff,
		ErrInvalidTimezone,
		ErrInternal,
	} {
		if errors.Is(err, known) {
			return true
		}
	}
	return false
}

// bookingResult результат бронирования для метрики
func bookingResult(err error) string {
	switch {
	case errors.Is(err, ErrSlotNotAvailable):
		return metrics.BookingConflict
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrServiceUnavailable), errors.Is(err, ErrStaffUnavailable):
		return metrics.BookingRejected
	default:
		return metrics.BookingFailed
	}
}
