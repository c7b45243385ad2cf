package scheduling

import (
	"context"

	"github.com/m04kA/salon-booking-service/internal/domain"
)

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	GetOption(ctx context.Context, optionID string) (*domain.BookableOption, error)
	GetDefaultOption(ctx context.Context, serviceID string) (*domain.BookableOption, error)
}

// SettingsRepository интерфейс репозитория настроек расписания
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.SchedulingConfig, error)
}

// StaffRepository интерфейс репозитория мастеров
type StaffRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Staff, error)
	GetFirstActive(ctx context.Context) (*domain.Staff, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
