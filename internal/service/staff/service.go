package staff

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/salon-booking-service/internal/domain"
	staffRepo "github.com/m04kA/salon-booking-service/internal/infra/storage/staff"
	"github.com/m04kA/salon-booking-service/internal/service/staff/models"
)

// Service сервис мастеров и их графиков
type Service struct {
	staffRepo        StaffRepository
	workingHoursRepo WorkingHoursRepository
	txManager        TransactionManager
	logger           Logger
}

// NewService создает новый экземпляр сервиса мастеров
func NewService(
	staffRepo StaffRepository,
	workingHoursRepo WorkingHoursRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		staffRepo:        staffRepo,
		workingHoursRepo: workingHoursRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

// ListActive активные мастера, отсортированные по имени
func (s *Service) ListActive(ctx context.Context) (*models.StaffListResponse, error) {
	list, err := s.staffRepo.ListActive(ctx)
	if err != nil {
		s.logger.Error("ListActive: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListActive - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListActive: fetched %d staff", len(list))
	return models.FromDomainStaffList(list), nil
}

// GetWorkingHours график мастера на неделю
func (s *Service) GetWorkingHours(ctx context.Context, staffID string) (*models.WeekResponse, error) {
	s.logger.Info("GetWorkingHours: fetching hours for staff=%s", staffID)

	if err := s.ensureStaff(ctx, staffID); err != nil {
		return nil, err
	}

	hours, err := s.workingHoursRepo.ListByStaff(ctx, staffID)
	if err != nil {
		s.logger.Error("GetWorkingHours: repository error for staff=%s: %v", staffID, err)
		return nil, fmt.Errorf("%w: GetWorkingHours - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainWeek(staffID, hours), nil
}

// ReplaceWorkingHours заменяет весь график мастера одной транзакцией
// Неактивные записи отбрасываются, на день недели допускается одна запись
func (s *Service) ReplaceWorkingHours(ctx context.Context, req *models.ReplaceWorkingHoursRequest) (*models.WeekResponse, error) {
	s.logger.Info("ReplaceWorkingHours: staff=%s, entries=%d", req.StaffID, len(req.Hours))

	// 1. Валидация
	if req.StaffID == "" {
		s.logger.Warn("ReplaceWorkingHours: empty staffId")
		return nil, fmt.Errorf("%w: staffId is required", ErrInvalidInput)
	}

	hours, err := req.ToDomain()
	if err != nil {
		s.logger.Warn("ReplaceWorkingHours: invalid time for staff=%s: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	week, err := domain.NormalizeWeek(req.StaffID, hours)
	if err != nil {
		s.logger.Warn("ReplaceWorkingHours: invalid week for staff=%s: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.ensureStaff(ctx, req.StaffID); err != nil {
		return nil, err
	}

	// 2. Удаление старого и вставка нового графика в одной транзакции
	var saved []*domain.WorkingHours
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.workingHoursRepo.ReplaceForStaff(txCtx, req.StaffID, week); err != nil {
			return err
		}
		saved, err = s.workingHoursRepo.ListByStaff(txCtx, req.StaffID)
		return err
	})
	if err != nil {
		s.logger.Error("ReplaceWorkingHours: failed for staff=%s: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: ReplaceWorkingHours - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ReplaceWorkingHours: staff=%s now works %d days", req.StaffID, len(saved))
	return models.FromDomainWeek(req.StaffID, saved), nil
}

func (s *Service) ensureStaff(ctx context.Context, staffID string) error {
	if _, err := s.staffRepo.GetByID(ctx, staffID); err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			s.logger.Warn("staff id=%s not found", staffID)
			return ErrStaffNotFound
		}
		s.logger.Error("failed to get staff id=%s: %v", staffID, err)
		return fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}
	return nil
}
