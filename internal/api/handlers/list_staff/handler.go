package list_staff

import (
	"net/http"

	"github.com/m04kA/salon-booking-service/internal/api/handlers"
)

type Handler struct {
	service StaffService
	logger  Logger
}

func NewHandler(service StaffService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/crm/staff
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListActive(r.Context())
	if err != nil {
		h.logger.Error("GET /crm/staff - Failed to list staff: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /crm/staff - Staff retrieved: count=%d", len(result.Staff))
	handlers.RespondJSON(w, http.StatusOK, result)
}
