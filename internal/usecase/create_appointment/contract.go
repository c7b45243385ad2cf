package create_appointment

import (
	"context"
	"time"

	"github.com/m04kA/salon-booking-service/internal/domain"
	"github.com/m04kA/salon-booking-service/internal/integrations/events"
	"github.com/m04kA/salon-booking-service/internal/service/scheduling"
)

// Resolver резолвер опции, настроек и мастера
type Resolver interface {
	Resolve(ctx context.Context, target scheduling.Target) (*scheduling.Resolution, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
	ListOccupying(ctx context.Context, staffID string, from, to time.Time) ([]*domain.Appointment, error)
}

// BlockRepository интерфейс репозитория блокировок
type BlockRepository interface {
	ListOverlapping(ctx context.Context, staffID string, from, to time.Time) ([]*domain.Block, error)
}

// WorkingHoursRepository интерфейс репозитория графиков
type WorkingHoursRepository interface {
	GetByStaffAndWeekday(ctx context.Context, staffID string, weekday int) (*domain.WorkingHours, error)
}

// ClientRepository интерфейс репозитория клиентов
type ClientRepository interface {
	FindOrCreateByPhone(ctx context.Context, client *domain.Client) (*domain.Client, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher публикация событий о записях
type EventPublisher interface {
	Publish(ctx context.Context, event events.AppointmentEvent) error
}

// Metrics метрики бронирований
type Metrics interface {
	ObserveBooking(result string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// IDGenerator генератор идентификаторов
type IDGenerator func() string

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

type noopMetrics struct{}

func (noopMetrics) ObserveBooking(string) {}
