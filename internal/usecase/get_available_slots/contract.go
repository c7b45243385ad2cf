package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/salon-booking-service/internal/domain"
	"github.com/m04kA/salon-booking-service/internal/service/scheduling"
)

// Resolver резолвер опции, настроек и мастера
type Resolver interface {
	Resolve(ctx context.Context, target scheduling.Target) (*scheduling.Resolution, error)
}

// WorkingHoursRepository интерфейс репозитория графиков
type WorkingHoursRepository interface {
	GetByStaffAndWeekday(ctx context.Context, staffID string, weekday int) (*domain.WorkingHours, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	ListOccupying(ctx context.Context, staffID string, from, to time.Time) ([]*domain.Appointment, error)
}

// BlockRepository интерфейс репозитория блокировок
type BlockRepository interface {
	ListOverlapping(ctx context.Context, staffID string, from, to time.Time) ([]*domain.Block, error)
}

// Metrics метрики запросов слотов
type Metrics interface {
	ObserveSlots(count int)
}

type noopMetrics struct{}

func (noopMetrics) ObserveSlots(int) {}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

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
