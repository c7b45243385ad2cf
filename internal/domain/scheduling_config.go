package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidSchedulingConfig значения настроек вне допустимых диапазонов
var ErrInvalidSchedulingConfig = errors.New("domain: invalid scheduling config")

// ErrHostTimezone часовой пояс не задан явно ("" или "Local" означают зону хоста)
var ErrHostTimezone = errors.New("domain: timezone must be an explicit IANA name")

// LoadSalonLocation загружает IANA зону салона.
// "" и "Local" отклоняются: расписание не должно зависеть от зоны сервера.
func LoadSalonLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return nil, fmt.Errorf("%w: %q", ErrHostTimezone, name)
	}
	return time.LoadLocation(name)
}

// SchedulingConfig настройки расписания салона (одна строка на систему)
type SchedulingConfig struct {
	ID                string
	SalonName         string
	SlotMinutes       int // шаг сетки слотов
	BufferMinutes     int // перерыв после каждой записи
	MinAdvanceMinutes int // минимальный запас времени до начала записи
	Timezone          string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Location загружает часовой пояс салона
func (c *SchedulingConfig) Location() (*time.Location, error) {
	return LoadSalonLocation(c.Timezone)
}

// Validate проверяет диапазоны значений и часовой пояс
func (c *SchedulingConfig) Validate() error {
	if c.SlotMinutes <= 0 || c.SlotMinutes > MaxSlotMinutes {
		return fmt.Errorf("%w: slotMinutes must be in 1..%d", ErrInvalidSchedulingConfig, MaxSlotMinutes)
	}
	if c.BufferMinutes < 0 || c.BufferMinutes > MaxBufferMinutes {
		return fmt.Errorf("%w: bufferMinutes must be in 0..%d", ErrInvalidSchedulingConfig, MaxBufferMinutes)
	}
	if c.MinAdvanceMinutes < 0 || c.MinAdvanceMinutes > MaxMinAdvanceMinutes {
		return fmt.Errorf("%w: minAdvanceMinutes must be in 0..%d", ErrInvalidSchedulingConfig, MaxMinAdvanceMinutes)
	}
	if c.Timezone == "" {
		return fmt.Errorf("%w: timezone is required", ErrInvalidSchedulingConfig)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("%w: timezone %q: %v", ErrInvalidSchedulingConfig, c.Timezone, err)
	}
	return nil
}

// SchedulingConfigPatch частичное обновление настроек
type SchedulingConfigPatch struct {
	SalonName         *string
	SlotMinutes       *int
	BufferMinutes     *int
	MinAdvanceMinutes *int
	Timezone          *string
}

// Apply применяет изменения к копии настроек
func (p SchedulingConfigPatch) Apply(c SchedulingConfig) SchedulingConfig {
	if p.SalonName != nil {
		c.SalonName = *p.SalonName
	}
	if p.SlotMinutes != nil {
		c.SlotMinutes = *p.SlotMinutes
	}
	if p.BufferMinutes != nil {
		c.BufferMinutes = *p.BufferMinutes
	}
	if p.MinAdvanceMinutes != nil {
		c.MinAdvanceMinutes = *p.MinAdvanceMinutes
	}
	if p.Timezone != nil {
		c.Timezone = *p.Timezone
	}
	return c
}

// IsEmpty true, если ни одно поле не задано
func (p SchedulingConfigPatch) IsEmpty() bool {
	return p.SalonName == nil && p.SlotMinutes == nil && p.BufferMinutes == nil &&
		p.MinAdvanceMinutes == nil && p.Timezone == nil
}
