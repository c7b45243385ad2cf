package get_working_hours

import (
	"errors"
	"net/http"

	"github.com/m04kA/salon-booking-service/internal/api/handlers"
	"github.com/m04kA/salon-booking-service/internal/service/staff"
)

const (
	msgMissingStaffID = "укажите staffId"
	msgStaffNotFound  = "мастер не найден"
	msgInvalidStaffID = "некорректный ID мастера"
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

// Handle GET /api/crm/working-hours?staffId=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staffID := r.URL.Query().Get("staffId")
	if staffID == "" {
		h.logger.Warn("GET /crm/working-hours - Missing staffId")
		handlers.RespondBadRequest(w, msgMissingStaffID)
		return
	}

	if err := handlers.ValidateID(staffID); err != nil {
		h.logger.Warn("GET /crm/working-hours - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	result, err := h.service.GetWorkingHours(r.Context(), staffID)
	if err != nil {
		switch {
		case errors.Is(err, staff.ErrStaffNotFound):
			h.logger.Warn("GET /crm/working-hours - Staff not found: staff=%s", staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		default:
			h.logger.Error("GET /crm/working-hours - Failed to get working hours: staff=%s, error=%v", staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /crm/working-hours - Working hours retrieved: staff=%s, days=%d", staffID, len(result.Hours))
	handlers.RespondJSON(w, http.StatusOK, result)
}
