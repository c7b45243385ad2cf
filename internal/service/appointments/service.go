package appointments

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/salon-booking-service/internal/domain"
	appointmentRepo "github.com/m04kA/salon-booking-service/internal/infra/storage/appointment"
	"github.com/m04kA/salon-booking-service/internal/integrations/events"
	"github.com/m04kA/salon-booking-service/internal/service/appointments/models"
	"github.com/m04kA/salon-booking-service/pkg/ptr"
)

// Service сервис для работы с записями
type Service struct {
	appointmentRepo AppointmentRepository
	blockRepo       BlockRepository
	txManager       TransactionManager
	publisher       EventPublisher
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
// publisher, metrics и timeProvider могут быть nil
func NewService(
	appointmentRepo AppointmentRepository,
	blockRepo BlockRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	return &Service{
		appointmentRepo: appointmentRepo,
		blockRepo:       blockRepo,
		txManager:       txManager,
		publisher:       publisher,
		metrics:         metrics,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// GetByID получает запись вместе с услугой, мастером и клиентом
func (s *Service) GetByID(ctx context.Context, id string) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%s", id)

	details, err := s.appointmentRepo.GetDetails(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%s not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%s", id)
	return models.FromDomainDetails(details), nil
}

// List получает записи за период, отсортированные по времени начала
func (s *Service) List(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("List: fetching appointments staff=%q, status=%q", ptr.Value(req.StaffID), ptr.Value(req.Status))

	filter := domain.AppointmentsFilter{
		From:    req.From,
		To:      req.To,
		StaffID: req.StaffID,
	}

	if req.From != nil && req.To != nil && !req.From.Before(*req.To) {
		s.logger.Warn("List: invalid period %s - %s", req.From, req.To)
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	if req.Status != nil {
		status, err := domain.ParseStatus(*req.Status)
		if err != nil {
			s.logger.Warn("List: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		filter.Status = &status
	}

	list, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d appointments", len(list))
	return models.FromDomainDetailsList(list), nil
}

// Update меняет статус и/или внутренние заметки записи
// Смена статуса проходит через таблицу переходов; возврат отмененной записи в календарь
// повторно проверяет пересечения в той же сериализуемой транзакции
func (s *Service) Update(ctx context.Context, id string, req *models.UpdateAppointmentRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Update: updating appointment id=%s, status=%q", id, ptr.Value(req.Status))

	// 1. Валидация входных данных
	if req.IsEmpty() {
		s.logger.Warn("Update: nothing to update for appointment id=%s", id)
		return nil, fmt.Errorf("%w: status or internalNotes is required", ErrInvalidInput)
	}

	var newStatus *domain.AppointmentStatus
	if req.Status != nil {
		status, err := domain.ParseStatus(*req.Status)
		if err != nil {
			s.logger.Warn("Update: invalid status=%s for appointment id=%s", *req.Status, id)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		newStatus = &status
	}

	if req.InternalNotes != nil && utf8.RuneCountInString(*req.InternalNotes) > domain.MaxNotesLength {
		s.logger.Warn("Update: internal notes too long for appointment id=%s", id)
		return nil, fmt.Errorf("%w: internalNotes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	var (
		previous domain.AppointmentStatus
		updated  *domain.AppointmentDetails
	)

	// 2. Чтение, проверка и запись в одной транзакции
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		appointment, err := s.appointmentRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: Update - failed to get appointment: %w", ErrInternal, err)
		}
		previous = appointment.Status

		if newStatus != nil {
			if err := s.changeStatus(txCtx, appointment, *newStatus); err != nil {
				return err
			}
		}

		if req.InternalNotes != nil {
			if err := s.appointmentRepo.UpdateInternalNotes(txCtx, id, req.InternalNotes); err != nil {
				return fmt.Errorf("%w: Update - failed to update internal notes: %w", ErrInternal, err)
			}
		}

		updated, err = s.appointmentRepo.GetDetails(txCtx, id)
		if err != nil {
			return fmt.Errorf("%w: Update - failed to reload appointment: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrAppointmentNotFound):
			s.logger.Warn("Update: appointment id=%s not found", id)
		case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrSlotNotAvailable):
			s.logger.Warn("Update: appointment id=%s: %v", id, err)
		case errors.Is(err, ErrInternal):
			s.logger.Error("Update: appointment id=%s: %v", id, err)
		default:
			s.logger.Error("Update: transaction failed for appointment id=%s: %v", id, err)
			return nil, fmt.Errorf("%w: %w", ErrInternal, err)
		}
		return nil, err
	}

	// 3. Метрика и событие после коммита
	if updated.Status != previous {
		s.metrics.ObserveStatusTransition(string(previous), string(updated.Status))
		if err := s.publisher.Publish(ctx, events.NewStatusChanged(&updated.Appointment, previous, s.timeProvider.Now())); err != nil {
			s.logger.Error("Update: failed to publish event for appointment id=%s: %v", id, err)
		}
	}

	s.logger.Info("Update: successfully updated appointment id=%s, status %s -> %s", id, previous, updated.Status)
	return models.FromDomainDetails(updated), nil
}

// changeStatus проверяет переход и при возврате в календарь повторно ищет пересечения
func (s *Service) changeStatus(ctx context.Context, a *domain.Appointment, to domain.AppointmentStatus) error {
	if err := domain.ValidateTransition(a.Status, to); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	}

	if domain.Reoccupies(a.Status, to) {
		blocks, err := s.blockRepo.ListOverlapping(ctx, a.StaffID, a.StartAt, a.EndAt)
		if err != nil {
			return fmt.Errorf("%w: changeStatus - failed to get blocks: %w", ErrInternal, err)
		}
		if domain.HasConflict(a.Interval(), domain.BlockIntervals(blocks)) {
			return fmt.Errorf("%w: interval is blocked", ErrSlotNotAvailable)
		}

		occupying, err := s.appointmentRepo.ListOccupying(ctx, a.StaffID, a.StartAt, a.EndAt)
		if err != nil {
			return fmt.Errorf("%w: changeStatus - failed to get appointments: %w", ErrInternal, err)
		}
		others := make([]*domain.Appointment, 0, len(occupying))
		for _, other := range occupying {
			if other.ID != a.ID {
				others = append(others, other)
			}
		}
		if domain.HasConflict(a.Interval(), domain.AppointmentIntervals(others)) {
			return fmt.Errorf("%w: interval overlaps another appointment", ErrSlotNotAvailable)
		}
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, a.ID, to); err != nil {
		if errors.Is(err, appointmentRepo.ErrSlotNotAvailable) {
			return fmt.Errorf("%w: rejected by database", ErrSlotNotAvailable)
		}
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		return fmt.Errorf("%w: changeStatus - failed to update status: %w", ErrInternal, err)
	}

	return nil
}
