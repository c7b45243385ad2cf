package list_appointments

import (
	"net/url"

	"github.com/m04kA/salon-booking-service/internal/api/handlers"
	"github.com/m04kA/salon-booking-service/internal/service/appointments/models"
)

// ToServiceRequest собирает фильтр из query параметров
// from/to принимают дату YYYY-MM-DD или RFC3339, staffId должен быть UUID
func ToServiceRequest(q url.Values) (*models.ListAppointmentsRequest, error) {
	from, err := handlers.OptionalTime(q, "from")
	if err != nil {
		return nil, err
	}
	to, err := handlers.OptionalTime(q, "to")
	if err != nil {
		return nil, err
	}

	staffID, err := handlers.OptionalID(q, "staffId")
	if err != nil {
		return nil, err
	}

	return &models.ListAppointmentsRequest{
		From:    from,
		To:      to,
		StaffID: staffID,
		Status:  handlers.OptionalString(q, "status"),
	}, nil
}
