package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/salon-booking-service/internal/domain"
	settingsRepo "github.com/m04kA/salon-booking-service/internal/infra/storage/settings"
	"github.com/m04kA/salon-booking-service/internal/service/settings/models"
)

// Service сервис настроек расписания
type Service struct {
	settingsRepo SettingsRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(settingsRepo SettingsRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Get возвращает настройки; отсутствие строки - ошибка, здесь значения по умолчанию не создаются
func (s *Service) Get(ctx context.Context) (*models.SettingsResponse, error) {
	s.logger.Info("Get: fetching scheduling config")

	config, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrConfigNotFound) {
			s.logger.Warn("Get: scheduling config is not provisioned")
			return nil, ErrConfigNotFound
		}
		s.logger.Error("Get: repository error: %v", err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainConfig(config), nil
}

// Update частично обновляет настройки
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	patch := req.ToPatch()
	if patch.IsEmpty() {
		s.logger.Warn("Update: empty patch")
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	var updated domain.SchedulingConfig

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Текущие настройки (под блокировкой строки)
		current, err := s.settingsRepo.Get(txCtx)
		if err != nil {
			if errors.Is(err, settingsRepo.ErrConfigNotFound) {
				return ErrConfigNotFound
			}
			return fmt.Errorf("%w: Update - failed to get config: %w", ErrInternal, err)
		}

		// 2. Применяем изменения к копии и валидируем
		updated = patch.Apply(*current)
		if err := updated.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		// 3. Сохраняем
		if err := s.settingsRepo.Update(txCtx, &updated); err != nil {
			return fmt.Errorf("%w: Update - repository error: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrConfigNotFound):
			s.logger.Warn("Update: scheduling config is not provisioned")
		case errors.Is(err, ErrInvalidInput):
			s.logger.Warn("Update: validation failed: %v", err)
		default:
			s.logger.Error("Update: failed to update config: %v", err)
			if !errors.Is(err, ErrInternal) {
				return nil, fmt.Errorf("%w: %w", ErrInternal, err)
			}
		}
		return nil, err
	}

	s.logger.Info("Update: scheduling config updated: slot=%d, buffer=%d, advance=%d, tz=%s",
		updated.SlotMinutes, updated.BufferMinutes, updated.MinAdvanceMinutes, updated.Timezone)
	return models.FromDomainConfig(&updated), nil
}

// Provision создает настройки со значениями по умолчанию, если их еще нет
// Возвращает существующие настройки без изменений, если строка уже создана
func (s *Service) Provision(ctx context.Context, req *models.ProvisionRequest) (*models.SettingsResponse, bool, error) {
	s.logger.Info("Provision: ensuring scheduling config exists (tz=%s)", req.Timezone)

	config := &domain.SchedulingConfig{
		ID:                uuid.NewString(),
		SalonName:         req.SalonName,
		SlotMinutes:       req.SlotMinutes,
		BufferMinutes:     req.BufferMinutes,
		MinAdvanceMinutes: req.MinAdvanceMinutes,
		Timezone:          req.Timezone,
	}
	if err := config.Validate(); err != nil {
		s.logger.Warn("Provision: invalid defaults: %v", err)
		return nil, false, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.settingsRepo.Create(ctx, config)
	if err == nil {
		s.logger.Info("Provision: scheduling config created id=%s", created.ID)
		return models.FromDomainConfig(created), true, nil
	}
	if !errors.Is(err, settingsRepo.ErrConfigExists) {
		s.logger.Error("Provision: failed to create config: %v", err)
		return nil, false, fmt.Errorf("%w: Provision - repository error: %v", ErrInternal, err)
	}

	existing, err := s.settingsRepo.Get(ctx)
	if err != nil {
		s.logger.Error("Provision: failed to read existing config: %v", err)
		return nil, false, fmt.Errorf("%w: Provision - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Provision: scheduling config already exists id=%s", existing.ID)
	return models.FromDomainConfig(existing), false, nil
}
