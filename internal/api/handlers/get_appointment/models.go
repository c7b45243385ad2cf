package get_appointment

import (
	"time"

	"github.com/m04kA/salon-booking-service/internal/service/appointments/models"
)

// PublicAppointmentResponse запись в том виде, в котором ее видит клиент
// Телефон и внутренние заметки салона не отдаются
type PublicAppointmentResponse struct {
	ID              string    `json:"id"`
	Status          string    `json:"status"`
	StartAt         time.Time `json:"startAt"`
	EndAt           time.Time `json:"endAt"`
	StaffID         string    `json:"staffId"`
	StaffName       string    `json:"staffName"`
	ServiceOptionID string    `json:"serviceOptionId"`
	ServiceName     string    `json:"serviceName"`
	OptionType      string    `json:"optionType"`
	ClientName      string    `json:"clientName"`
	PriceCents      int       `json:"priceCents"`
	DepositCents    int       `json:"depositCents"`
	Notes           *string   `json:"notes,omitempty"`
}

// FromServiceResponse конвертирует ответ сервиса в публичную модель
func FromServiceResponse(a *models.AppointmentResponse) *PublicAppointmentResponse {
	return &PublicAppointmentResponse{
		ID:              a.ID,
		Status:          a.Status,
		StartAt:         a.StartAt,
		EndAt:           a.EndAt,
		StaffID:         a.StaffID,
		StaffName:       a.StaffName,
		ServiceOptionID: a.ServiceOptionID,
		ServiceName:     a.ServiceName,
		OptionType:      a.OptionType,
		ClientName:      a.ClientName,
		PriceCents:      a.PriceCents,
		DepositCents:    a.DepositCents,
		Notes:           a.Notes,
	}
}
