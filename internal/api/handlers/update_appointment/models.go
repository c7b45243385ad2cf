package update_appointment

import (
	"github.com/m04kA/salon-booking-service/internal/service/appointments/models"
)

// UpdateAppointmentRequest HTTP request model
type UpdateAppointmentRequest struct {
	Status        *string `json:"status,omitempty"`        // CONFIRMED, CANCELLED, DONE, NO_SHOW
	InternalNotes *string `json:"internalNotes,omitempty"` // заметки администратора
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateAppointmentRequest) ToServiceRequest() *models.UpdateAppointmentRequest {
	return &models.UpdateAppointmentRequest{
		Status:        r.Status,
		InternalNotes: r.InternalNotes,
	}
}
