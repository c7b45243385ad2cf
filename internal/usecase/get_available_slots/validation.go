package get_available_slots

import (
	"errors"
	"fmt"

	"github.com/m04kA/salon-booking-service/internal/service/scheduling"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ServiceOptionID == "" && req.ServiceID == "" {
		return fmt.Errorf("%w: serviceOptionId or serviceId is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StaffID != nil && *req.StaffID == "" {
		return fmt.Errorf("%w: staffId must not be empty", ErrInvalidInput)
	}

	return nil
}

// mapResolveError переводит ошибки резолвера в ошибки usecase
func mapResolveError(err error) error {
	switch {
	case errors.Is(err, scheduling.ErrServiceUnavailable):
		return ErrServiceUnavailable
	case errors.Is(err, scheduling.ErrStaffUnavailable):
		return ErrStaffUnavailable
	case errors.Is(err, scheduling.ErrConfigMissing):
		return ErrConfigMissing
	case errors.Is(err, scheduling.ErrNoActiveStaff):
		return ErrNoActiveStaff
	case errors.Is(err, scheduling.ErrInvalidTimezone):
		return ErrInvalidTimezone
	default:
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}
}
