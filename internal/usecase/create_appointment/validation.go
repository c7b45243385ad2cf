package create_appointment

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/salon-booking-service/internal/domain"
	"github.com/m04kA/salon-booking-service/internal/service/scheduling"
)

// normalizeRequest обрезает пробелы в контактах и пустой email превращает в nil
func normalizeRequest(req *Request) {
	req.Client.Name = strings.TrimSpace(req.Client.Name)
	req.Client.Phone = strings.TrimSpace(req.Client.Phone)
	if req.Client.Email != nil {
		email := strings.TrimSpace(*req.Client.Email)
		if email == "" {
			req.Client.Email = nil
		} else {
			req.Client.Email = &email
		}
	}
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ServiceOptionID == "" {
		return fmt.Errorf("%w: serviceOptionId is required", ErrInvalidInput)
	}

	if req.StaffID != nil && *req.StaffID == "" {
		return fmt.Errorf("%w: staffId must not be empty", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.Time.Validate(); err != nil {
		return fmt.Errorf("%w: time: %v", ErrInvalidInput, err)
	}

	if n := utf8.RuneCountInString(req.Client.Name); n < 2 || n > domain.MaxNameLength {
		return fmt.Errorf("%w: client name must be 2..%d characters", ErrInvalidInput, domain.MaxNameLength)
	}

	if n := len(req.Client.Phone); n < domain.MinPhoneLength || n > domain.MaxPhoneLength {
		return fmt.Errorf("%w: client phone must be %d..%d characters", ErrInvalidInput, domain.MinPhoneLength, domain.MaxPhoneLength)
	}

	if req.Client.Email != nil {
		if _, err := mail.ParseAddress(*req.Client.Email); err != nil {
			return fmt.Errorf("%w: invalid client email", ErrInvalidInput)
		}
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
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
