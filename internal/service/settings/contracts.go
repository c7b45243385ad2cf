package settings

import (
	"context"

	"github.com/m04kA/salon-booking-service/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек расписания
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.SchedulingConfig, error)
	Create(ctx context.Context, config *domain.SchedulingConfig) (*domain.SchedulingConfig, error)
	Update(ctx context.Context, config *domain.SchedulingConfig) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
