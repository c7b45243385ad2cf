package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidBlock некорректный интервал блокировки
var ErrInvalidBlock = errors.New("domain: invalid block")

// Block закрытый администратором интервал мастера [StartAt, EndAt)
type Block struct {
	ID        string
	StaffID   string
	StartAt   time.Time
	EndAt     time.Time
	Reason    *string
	CreatedAt time.Time
}

// Interval интервал блокировки
func (b *Block) Interval() Interval {
	return Interval{Start: b.StartAt, End: b.EndAt}
}

// Validate startAt должен быть строго раньше endAt
func (b *Block) Validate() error {
	if b.StaffID == "" {
		return fmt.Errorf("%w: staffId is required", ErrInvalidBlock)
	}
	if !b.StartAt.Before(b.EndAt) {
		return fmt.Errorf("%w: startAt must be before endAt", ErrInvalidBlock)
	}
	return nil
}

// BlocksFilter фильтр для списка блокировок
type BlocksFilter struct {
	StaffID *string
	From    *time.Time
	To      *time.Time
}
