package list_staff

import (
	"context"

	"github.com/m04kA/salon-booking-service/internal/service/staff/models"
)

type StaffService interface {
	ListActive(ctx context.Context) (*models.StaffListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
