package create_block

import (
	"errors"
	"net/http"

	"github.com/m04kA/salon-booking-service/internal/api/handlers"
	"github.com/m04kA/salon-booking-service/internal/service/blocks"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректный интервал блокировки"
	msgStaffNotFound      = "мастер не найден"
	msgInvalidStaffID     = "некорректный ID мастера"
)

type Handler struct {
	service BlockService
	logger  Logger
}

func NewHandler(service BlockService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/crm/blocks
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBlockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /crm/blocks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.ValidateID(req.StaffID); err != nil {
		h.logger.Warn("POST /crm/blocks - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	result, err := h.service.Create(r.Context(), req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, blocks.ErrInvalidInput):
			h.logger.Warn("POST /crm/blocks - Invalid data: staff=%s, error=%v", req.StaffID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, blocks.ErrStaffNotFound):
			h.logger.Warn("POST /crm/blocks - Staff not found: staff=%s", req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		default:
			h.logger.Error("POST /crm/blocks - Failed to create block: staff=%s, error=%v", req.StaffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /crm/blocks - Block created: id=%s, staff=%s", result.ID, result.StaffID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
