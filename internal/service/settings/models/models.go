package models

import (
	"time"

	"github.com/m04kA/salon-booking-service/internal/domain"
)

// Request модели

// UpdateSettingsRequest частичное обновление настроек
// Обновляются только переданные поля
type UpdateSettingsRequest struct {
	SalonName         *string `json:"salonName,omitempty"`
	SlotMinutes       *int    `json:"slotMinutes,omitempty"`
	BufferMinutes     *int    `json:"bufferMinutes,omitempty"`
	MinAdvanceMinutes *int    `json:"minAdvanceMinutes,omitempty"`
	Timezone          *string `json:"timezone,omitempty"`
}

// ToPatch конвертирует запрос в domain патч
func (r *UpdateSettingsRequest) ToPatch() domain.SchedulingConfigPatch {
	return domain.SchedulingConfigPatch{
		SalonName:         r.SalonName,
		SlotMinutes:       r.SlotMinutes,
		BufferMinutes:     r.BufferMinutes,
		MinAdvanceMinutes: r.MinAdvanceMinutes,
		Timezone:          r.Timezone,
	}
}

// ProvisionRequest значения по умолчанию для первичного создания настроек
type ProvisionRequest struct {
	SalonName         string
	SlotMinutes       int
	BufferMinutes     int
	MinAdvanceMinutes int
	Timezone          string
}

// Response модели

// SettingsResponse настройки расписания салона
type SettingsResponse struct {
	ID                string    `json:"id"`
	SalonName         string    `json:"salonName"`
	SlotMinutes       int       `json:"slotMinutes"`
	BufferMinutes     int       `json:"bufferMinutes"`
	MinAdvanceMinutes int       `json:"minAdvanceMinutes"`
	Timezone          string    `json:"timezone"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.SchedulingConfig) *SettingsResponse {
	if c == nil {
		return nil
	}
	return &SettingsResponse{
		ID:                c.ID,
		SalonName:         c.SalonName,
		SlotMinutes:       c.SlotMinutes,
		BufferMinutes:     c.BufferMinutes,
		MinAdvanceMinutes: c.MinAdvanceMinutes,
		Timezone:          c.Timezone,
		UpdatedAt:         c.UpdatedAt,
	}
}
