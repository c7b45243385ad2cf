package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/salon-booking-service/internal/domain"
	catalogRepo "github.com/m04kA/salon-booking-service/internal/infra/storage/catalog"
	settingsRepo "github.com/m04kA/salon-booking-service/internal/infra/storage/settings"
	staffRepo "github.com/m04kA/salon-booking-service/internal/infra/storage/staff"
)

// Target что бронируется: опция (или услуга по старому параметру serviceId) и, опционально, мастер
type Target struct {
	ServiceOptionID string
	ServiceID       string // используется, только если ServiceOptionID пуст
	StaffID         *string
}

// Resolution всё, что нужно для расчета слотов и записи
type Resolution struct {
	Option   domain.ServiceOption
	Service  domain.Service
	Config   domain.SchedulingConfig
	Location *time.Location
	Staff    domain.Staff
}

// Resolver общий для запроса слотов и записи шаг: опция -> настройки -> мастер
type Resolver struct {
	catalogRepo  CatalogRepository
	settingsRepo SettingsRepository
	staffRepo    StaffRepository
	logger       Logger
}

// NewResolver создает новый экземпляр резолвера
func NewResolver(
	catalogRepo CatalogRepository,
	settingsRepo SettingsRepository,
	staffRepo StaffRepository,
	logger Logger,
) *Resolver {
	return &Resolver{
		catalogRepo:  catalogRepo,
		settingsRepo: settingsRepo,
		staffRepo:    staffRepo,
		logger:       logger,
	}
}

// Resolve выполняет три шага по порядку и останавливается на первой ошибке
func (r *Resolver) Resolve(ctx context.Context, target Target) (*Resolution, error) {
	// 1. Опция услуги
	option, err := r.resolveOption(ctx, target)
	if err != nil {
		return nil, err
	}

	// 2. Настройки расписания
	config, loc, err := r.resolveConfig(ctx)
	if err != nil {
		return nil, err
	}

	// 3. Мастер
	staff, err := r.resolveStaff(ctx, target.StaffID)
	if err != nil {
		return nil, err
	}

	return &Resolution{
		Option:   option.Option,
		Service:  option.Service,
		Config:   *config,
		Location: loc,
		Staff:    *staff,
	}, nil
}

func (r *Resolver) resolveOption(ctx context.Context, target Target) (*domain.BookableOption, error) {
	var (
		option *domain.BookableOption
		err    error
	)
	if target.ServiceOptionID != "" {
		option, err = r.catalogRepo.GetOption(ctx, target.ServiceOptionID)
	} else {
		option, err = r.catalogRepo.GetDefaultOption(ctx, target.ServiceID)
	}

	if err != nil {
		if errors.Is(err, catalogRepo.ErrOptionNotFound) {
			r.logger.Warn("Resolve: option not found (option=%q, service=%q)", target.ServiceOptionID, target.ServiceID)
			return nil, ErrServiceUnavailable
		}
		r.logger.Error("Resolve: failed to get option: %v", err)
		return nil, fmt.Errorf("%w: failed to get option: %w", ErrInternal, err)
	}

	if !option.IsBookable() {
		r.logger.Warn("Resolve: option id=%s is not bookable (option active=%t, service active=%t, duration=%d)",
			option.Option.ID, option.Option.Active, option.Service.Active, option.Option.DurationMinutes)
		return nil, ErrServiceUnavailable
	}

	return option, nil
}

func (r *Resolver) resolveConfig(ctx context.Context) (*domain.SchedulingConfig, *time.Location, error) {
	config, err := r.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrConfigNotFound) {
			r.logger.Error("Resolve: scheduling config is not provisioned")
			return nil, nil, ErrConfigMissing
		}
		r.logger.Error("Resolve: failed to get scheduling config: %v", err)
		return nil, nil, fmt.Errorf("%w: failed to get config: %w", ErrInternal, err)
	}

	loc, err := config.Location()
	if err != nil {
		r.logger.Error("Resolve: failed to load timezone %q: %v", config.Timezone, err)
		return nil, nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, config.Timezone)
	}

	return config, loc, nil
}

func (r *Resolver) resolveStaff(ctx context.Context, staffID *string) (*domain.Staff, error) {
	if staffID != nil && *staffID != "" {
		staff, err := r.staffRepo.GetByID(ctx, *staffID)
		if err != nil {
			if errors.Is(err, staffRepo.ErrStaffNotFound) {
				r.logger.Warn("Resolve: staff id=%s not found", *staffID)
				return nil, ErrStaffUnavailable
			}
			r.logger.Error("Resolve: failed to get staff id=%s: %v", *staffID, err)
			return nil, fmt.Errorf("%w: failed to get staff: %w", ErrInternal, err)
		}
		if !staff.Active {
			r.logger.Warn("Resolve: staff id=%s is inactive", *staffID)
			return nil, ErrStaffUnavailable
		}
		return staff, nil
	}

	staff, err := r.staffRepo.GetFirstActive(ctx)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			r.logger.Error("Resolve: no active staff")
			return nil, ErrNoActiveStaff
		}
		r.logger.Error("Resolve: failed to get default staff: %v", err)
		return nil, fmt.Errorf("%w: failed to get default staff: %w", ErrInternal, err)
	}

	return staff, nil
}
