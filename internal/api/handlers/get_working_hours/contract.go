package get_working_hours

import (
	"context"

	"github.com/m04kA/salon-booking-service/internal/service/staff/models"
)

type StaffService interface {
	GetWorkingHours(ctx context.Context, staffID string) (*models.WeekResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
