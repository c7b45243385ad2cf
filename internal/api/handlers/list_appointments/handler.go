package list_appointments

import (
	"errors"
	"net/http"

	"github.com/m04kA/salon-booking-service/internal/api/handlers"
	"github.com/m04kA/salon-booking-service/internal/service/appointments"
)

const (
	msgInvalidPeriod = "некорректный период, ожидается YYYY-MM-DD или RFC3339"
	msgInvalidFilter = "некорректный фильтр записей"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/crm/appointments
// Query params: from, to, staffId, status (все опциональны)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := ToServiceRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /crm/appointments - Invalid parameters: %v", err)
		if errors.Is(err, handlers.ErrInvalidID) {
			handlers.RespondBadRequest(w, msgInvalidFilter)
		} else {
			handlers.RespondBadRequest(w, msgInvalidPeriod)
		}
		return
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /crm/appointments - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /crm/appointments - Failed to list appointments: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /crm/appointments - Appointments retrieved: count=%d", len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
