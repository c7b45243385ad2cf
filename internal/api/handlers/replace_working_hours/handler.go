package replace_working_hours

import (
	"errors"
	"net/http"

	"github.com/m04kA/salon-booking-service/internal/api/handlers"
	"github.com/m04kA/salon-booking-service/internal/service/staff"
	"github.com/m04kA/salon-booking-service/internal/service/staff/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректный график работы"
	msgStaffNotFound      = "мастер не найден"
	msgInvalidStaffID     = "некорректный ID мастера"
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

// Handle PUT /api/crm/working-hours
// Тело запроса полностью заменяет график мастера
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.ReplaceWorkingHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /crm/working-hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.ValidateID(req.StaffID); err != nil {
		h.logger.Warn("PUT /crm/working-hours - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	result, err := h.service.ReplaceWorkingHours(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, staff.ErrInvalidInput):
			h.logger.Warn("PUT /crm/working-hours - Invalid data: staff=%s, error=%v", req.StaffID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, staff.ErrStaffNotFound):
			h.logger.Warn("PUT /crm/working-hours - Staff not found: staff=%s", req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		default:
			h.logger.Error("PUT /crm/working-hours - Failed to replace working hours: staff=%s, error=%v",
				req.StaffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /crm/working-hours - Working hours replaced: staff=%s, days=%d", req.StaffID, len(result.Hours))
	handlers.RespondJSON(w, http.StatusOK, result)
}
