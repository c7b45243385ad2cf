package update_settings

import (
	"errors"
	"net/http"

	"github.com/m04kA/salon-booking-service/internal/api/handlers"
	"github.com/m04kA/salon-booking-service/internal/service/settings"
	"github.com/m04kA/salon-booking-service/internal/service/settings/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные настройки расписания"
	msgNotFound           = "настройки расписания не созданы"
)

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

// Handle PATCH /api/crm/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /crm/settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrInvalidInput):
			h.logger.Warn("PATCH /crm/settings - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, settings.ErrConfigNotFound):
			h.logger.Warn("PATCH /crm/settings - Config not provisioned")
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PATCH /crm/settings - Failed to update settings: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /crm/settings - Settings updated: slot=%d, buffer=%d, timezone=%s",
		result.SlotMinutes, result.BufferMinutes, result.Timezone)
	handlers.RespondJSON(w, http.StatusOK, result)
}
