package events

import (
	"time"

	"github.com/m04kA/salon-booking-service/internal/domain"
)

// Типы событий записей
const (
	TypeAppointmentCreated       = "appointment.created"
	TypeAppointmentStatusChanged = "appointment.status_changed"
)

// AppointmentEvent событие о записи, публикуется после коммита транзакции
type AppointmentEvent struct {
	Type           string    `json:"type"`
	AppointmentID  string    `json:"appointmentId"`
	StaffID        string    `json:"staffId"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previousStatus,omitempty"`
	StartAt        time.Time `json:"startAt"`
	EndAt          time.Time `json:"endAt"`
	OccurredAt     time.Time `json:"occurredAt"`
}

// NewCreated событие о новой записи
func NewCreated(a *domain.Appointment, now time.Time) AppointmentEvent {
	return AppointmentEvent{
		Type:          TypeAppointmentCreated,
		AppointmentID: a.ID,
		StaffID:       a.StaffID,
		Status:        string(a.Status),
		StartAt:       a.StartAt,
		EndAt:         a.EndAt,
		OccurredAt:    now.UTC(),
	}
}

// NewStatusChanged событие о смене статуса
func NewStatusChanged(a *domain.Appointment, previous domain.AppointmentStatus, now time.Time) AppointmentEvent {
	e := NewCreated(a, now)
	e.Type = TypeAppointmentStatusChanged
	e.PreviousStatus = string(previous)
	return e
}
