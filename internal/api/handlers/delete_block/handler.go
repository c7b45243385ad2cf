package delete_block

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/salon-booking-service/internal/api/handlers"
	"github.com/m04kA/salon-booking-service/internal/service/blocks"
)

const (
	msgInvalidBlockID = "некорректный ID блокировки"
	msgNotFound       = "блокировка не найдена"
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

// Handle DELETE /api/crm/blocks/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	blockID := mux.Vars(r)["id"]
	if err := handlers.ValidateID(blockID); err != nil {
		h.logger.Warn("DELETE /crm/blocks/{id} - Invalid block ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBlockID)
		return
	}

	if err := h.service.Delete(r.Context(), blockID); err != nil {
		switch {
		case errors.Is(err, blocks.ErrBlockNotFound):
			h.logger.Warn("DELETE /crm/blocks/{id} - Block not found: id=%s", blockID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /crm/blocks/{id} - Failed to delete block: id=%s, error=%v", blockID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /crm/blocks/{id} - Block deleted: id=%s", blockID)
	handlers.RespondNoContent(w)
}
