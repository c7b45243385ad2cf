package get_settings

import (
	"errors"
	"net/http"

	"github.com/m04kA/salon-booking-service/internal/api/handlers"
	"github.com/m04kA/salon-booking-service/internal/service/settings"
)

const msgNotFound = "настройки расписания не созданы"

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/crm/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Get(r.Context())
	if err != nil {
		if errors.Is(err, settings.ErrConfigNotFound) {
			h.logger.Warn("GET /crm/settings - Config not provisioned")
			handlers.RespondNotFound(w, msgNotFound)
			return
		}

		h.logger.Error("GET /crm/settings - Failed to get settings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /crm/settings - Settings retrieved: id=%s", result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
