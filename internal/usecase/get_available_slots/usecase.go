package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/salon-booking-service/internal/domain"
	workingHoursRepo "github.com/m04kA/salon-booking-service/internal/infra/storage/workinghours"
	"github.com/m04kA/salon-booking-service/internal/service/scheduling"
	"github.com/m04kA/salon-booking-service/pkg/ptr"
	"github.com/m04kA/salon-booking-service/pkg/types"
)

// UseCase use case для получения доступных слотов
// Только чтение: ничего не создает, даже если настройки отсутствуют
type UseCase struct {
	resolver         Resolver
	workingHoursRepo WorkingHoursRepository
	appointmentRepo  AppointmentRepository
	blockRepo        BlockRepository
	metrics          Metrics
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
// timeProvider == nil означает реальное время, metrics == nil - без метрик
func NewUseCase(
	resolver Resolver,
	workingHoursRepo WorkingHoursRepository,
	appointmentRepo AppointmentRepository,
	blockRepo BlockRepository,
	metrics Metrics,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &UseCase{
		resolver:         resolver,
		workingHoursRepo: workingHoursRepo,
		appointmentRepo:  appointmentRepo,
		blockRepo:        blockRepo,
		metrics:          metrics,
		timeProvider:     timeProvider,
		logger:           logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: option=%q, service=%q, date=%s, staff=%q",
		req.ServiceOptionID, req.ServiceID, req.Date.Format(types.DateFormat), ptr.Value(req.StaffID))

	// 1. Валидация входных данных (до любых обращений к данным)
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Опция, настройки, мастер
	res, err := uc.resolver.Resolve(ctx, scheduling.Target{
		ServiceOptionID: req.ServiceOptionID,
		ServiceID:       req.ServiceID,
		StaffID:         req.StaffID,
	})
	if err != nil {
		return nil, mapResolveError(err)
	}

	response := &Response{
		Date:            req.Date,
		StaffID:         res.Staff.ID,
		ServiceOptionID: res.Option.ID,
		Slots:           []string{},
	}

	// 3. График мастера на день недели; нет графика - выходной, пустой список
	hours, err := uc.workingHoursRepo.GetByStaffAndWeekday(ctx, res.Staff.ID, types.Weekday(req.Date))
	if err != nil {
		if errors.Is(err, workingHoursRepo.ErrWorkingHoursNotFound) {
			uc.logger.Info("GetAvailableSlots: staff id=%s does not work on %s", res.Staff.ID, req.Date.Format(types.DateFormat))
			uc.metrics.ObserveSlots(0)
			return response, nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get working hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get working hours: %w", ErrInternal, err)
	}

	// 4. Границы рабочего окна в часовом поясе салона
	dayStart, err := hours.StartTime.On(req.Date, res.Location)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: invalid working hours start %q: %v", hours.StartTime, err)
		return nil, fmt.Errorf("%w: invalid working hours: %w", ErrInternal, err)
	}
	dayEnd, err := hours.EndTime.On(req.Date, res.Location)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: invalid working hours end %q: %v", hours.EndTime, err)
		return nil, fmt.Errorf("%w: invalid working hours: %w", ErrInternal, err)
	}

	// 5. Занятость мастера в этот календарный день
	calendarStart, calendarEnd := types.DayBounds(req.Date, res.Location)

	blocks, err := uc.blockRepo.ListOverlapping(ctx, res.Staff.ID, calendarStart, calendarEnd)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get blocks: %v", err)
		return nil, fmt.Errorf("%w: failed to get blocks: %w", ErrInternal, err)
	}

	appointments, err := uc.appointmentRepo.ListOccupying(ctx, res.Staff.ID, calendarStart, calendarEnd)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %w", ErrInternal, err)
	}

	// 6. Генерация слотов
	now := uc.timeProvider.Now()
	response.Slots = generateSlots(slotParams{
		dayStart:        dayStart,
		dayEnd:          dayEnd,
		durationMinutes: res.Option.DurationMinutes,
		bufferMinutes:   res.Config.BufferMinutes,
		slotMinutes:     res.Config.SlotMinutes,
		minStart:        types.AddMinutes(now, res.Config.MinAdvanceMinutes),
		blocks:          domain.BlockIntervals(blocks),
		appointments:    domain.AppointmentIntervals(appointments),
		location:        res.Location,
	})

	uc.metrics.ObserveSlots(len(response.Slots))
	uc.logger.Info("GetAvailableSlots: %d slots for staff id=%s on %s",
		len(response.Slots), res.Staff.ID, req.Date.Format(types.DateFormat))

	return response, nil
}
