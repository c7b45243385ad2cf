package replace_working_hours

import (
	"context"

	"github.com/m04kA/salon-booking-service/internal/service/staff/models"
)

type StaffService interface {
	ReplaceWorkingHours(ctx context.Context, req *models.ReplaceWorkingHoursRequest) (*models.WeekResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
