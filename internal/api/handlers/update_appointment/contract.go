package update_appointment

import (
	"context"

	"github.com/m04kA/salon-booking-service/internal/service/appointments/models"
)

type AppointmentService interface {
	Update(ctx context.Context, id string, req *models.UpdateAppointmentRequest) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
