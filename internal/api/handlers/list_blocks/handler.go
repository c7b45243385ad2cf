package list_blocks

import (
	"errors"
	"net/http"

	"github.com/m04kA/salon-booking-service/internal/api/handlers"
	"github.com/m04kA/salon-booking-service/internal/service/blocks"
	"github.com/m04kA/salon-booking-service/internal/service/blocks/models"
)

const (
	msgInvalidPeriod  = "некорректный период, ожидается YYYY-MM-DD или RFC3339"
	msgInvalidStaffID = "некорректный ID мастера"
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

// Handle GET /api/crm/blocks
// Query params: staffId, from, to (все опциональны)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	from, err := handlers.OptionalTime(q, "from")
	if err != nil {
		h.logger.Warn("GET /crm/blocks - Invalid from: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}
	to, err := handlers.OptionalTime(q, "to")
	if err != nil {
		h.logger.Warn("GET /crm/blocks - Invalid to: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	staffID, err := handlers.OptionalID(q, "staffId")
	if err != nil {
		h.logger.Warn("GET /crm/blocks - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	result, err := h.service.List(r.Context(), &models.ListBlocksRequest{
		StaffID: staffID,
		From:    from,
		To:      to,
	})
	if err != nil {
		switch {
		case errors.Is(err, blocks.ErrInvalidInput):
			h.logger.Warn("GET /crm/blocks - Invalid period: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		default:
			h.logger.Error("GET /crm/blocks - Failed to list blocks: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /crm/blocks - Blocks retrieved: count=%d", len(result.Blocks))
	handlers.RespondJSON(w, http.StatusOK, result)
}
