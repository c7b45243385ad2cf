package appointments

import (
	"context"
	"time"

	"github.com/m04kA/salon-booking-service/internal/domain"
	"github.com/m04kA/salon-booking-service/internal/integrations/events"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	GetDetails(ctx context.Context, id string) (*domain.AppointmentDetails, error)
	List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.AppointmentDetails, error)
	ListOccupying(ctx context.Context, staffID string, from, to time.Time) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) error
	UpdateInternalNotes(ctx context.Context, id string, notes *string) error
}

// BlockRepository интерфейс репозитория блокировок
type BlockRepository interface {
	ListOverlapping(ctx context.Context, staffID string, from, to time.Time) ([]*domain.Block, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher публикация событий о записях
type EventPublisher interface {
	Publish(ctx context.Context, event events.AppointmentEvent) error
}

// Metrics метрики смены статусов
type Metrics interface {
	ObserveStatusTransition(from, to string)
}

// TimeProvider источник текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type noopMetrics struct{}

func (noopMetrics) ObserveStatusTransition(string, string) {}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
