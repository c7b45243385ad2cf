package blocks

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/salon-booking-service/internal/domain"
	blockRepo "github.com/m04kA/salon-booking-service/internal/infra/storage/block"
	staffRepo "github.com/m04kA/salon-booking-service/internal/infra/storage/staff"
	"github.com/m04kA/salon-booking-service/internal/service/blocks/models"
	"github.com/m04kA/salon-booking-service/pkg/ptr"
)

// Service сервис блокировок календаря мастеров
type Service struct {
	blockRepo BlockRepository
	staffRepo StaffRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса блокировок
func NewService(blockRepo BlockRepository, staffRepo StaffRepository, logger Logger) *Service {
	return &Service{
		blockRepo: blockRepo,
		staffRepo: staffRepo,
		logger:    logger,
	}
}

// List получает блокировки, пересекающие период
func (s *Service) List(ctx context.Context, req *models.ListBlocksRequest) (*models.BlockListResponse, error) {
	s.logger.Info("List: fetching blocks staff=%q", ptr.Value(req.StaffID))

	if req.From != nil && req.To != nil && !req.From.Before(*req.To) {
		s.logger.Warn("List: invalid period %s - %s", req.From, req.To)
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	list, err := s.blockRepo.List(ctx, domain.BlocksFilter{
		StaffID: req.StaffID,
		From:    req.From,
		To:      req.To,
	})
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d blocks", len(list))
	return models.FromDomainBlockList(list), nil
}

// Create закрывает интервал [startAt, endAt) мастера
// Существующие записи не затрагиваются, блокировка влияет только на новые слоты
func (s *Service) Create(ctx context.Context, req *models.CreateBlockRequest) (*models.BlockResponse, error) {
	s.logger.Info("Create: blocking staff=%s %s - %s", req.StaffID, req.StartAt, req.EndAt)

	block := &domain.Block{
		ID:      uuid.NewString(),
		StaffID: req.StaffID,
		StartAt: req.StartAt,
		EndAt:   req.EndAt,
		Reason:  req.Reason,
	}
	if err := block.Validate(); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if block.Reason != nil && utf8.RuneCountInString(*block.Reason) > domain.MaxReasonLength {
		s.logger.Warn("Create: reason too long")
		return nil, fmt.Errorf("%w: reason must not exceed %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	if _, err := s.staffRepo.GetByID(ctx, req.StaffID); err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			s.logger.Warn("Create: staff id=%s not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		s.logger.Error("Create: failed to get staff id=%s: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: Create - failed to get staff: %v", ErrInternal, err)
	}

	created, err := s.blockRepo.Create(ctx, block)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: block id=%s created for staff=%s", created.ID, created.StaffID)
	return models.FromDomainBlock(created), nil
}

// Delete удаляет блокировку
func (s *Service) Delete(ctx context.Context, id string) error {
	s.logger.Info("Delete: deleting block id=%s", id)

	if err := s.blockRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, blockRepo.ErrBlockNotFound) {
			s.logger.Warn("Delete: block id=%s not found", id)
			return ErrBlockNotFound
		}
		s.logger.Error("Delete: repository error for block id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: block id=%s deleted", id)
	return nil
}
