package blocks

import (
	"context"

	"github.com/m04kA/salon-booking-service/internal/domain"
)

// BlockRepository интерфейс репозитория блокировок
type BlockRepository interface {
	Create(ctx context.Context, block *domain.Block) (*domain.Block, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter domain.BlocksFilter) ([]*domain.Block, error)
}

// StaffRepository интерфейс репозитория мастеров
type StaffRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Staff, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
