package staff

import (
	"context"

	"github.com/m04kA/salon-booking-service/internal/domain"
)

// StaffRepository интерфейс репозитория мастеров
type StaffRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Staff, error)
	ListActive(ctx context.Context) ([]*domain.Staff, error)
}

// WorkingHoursRepository интерфейс репозитория графиков
type WorkingHoursRepository interface {
	ListByStaff(ctx context.Context, staffID string) ([]*domain.WorkingHours, error)
	ReplaceForStaff(ctx context.Context, staffID string, hours []domain.WorkingHours) error
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
