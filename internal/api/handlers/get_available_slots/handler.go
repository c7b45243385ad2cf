package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/salon-booking-service/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/salon-booking-service/internal/usecase/get_available_slots"
)

const (
	msgInvalidParams      = "укажите serviceOptionId (или serviceId) и date в формате YYYY-MM-DD"
	msgServiceUnavailable = "услуга недоступна"
	msgStaffUnavailable   = "мастер недоступен"
	msgNotConfigured      = "расписание салона не настроено"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/public/availability
// Query params: serviceOptionId | serviceId, date, staffId (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	useCaseReq, err := ToUseCaseRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /availability - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, getAvailableSlots.ErrServiceUnavailable):
			h.logger.Warn("GET /availability - Service unavailable: option=%s, service=%s",
				useCaseReq.ServiceOptionID, useCaseReq.ServiceID)
			handlers.RespondNotFound(w, msgServiceUnavailable)

		case errors.Is(err, getAvailableSlots.ErrStaffUnavailable):
			h.logger.Warn("GET /availability - Staff unavailable: %v", err)
			handlers.RespondNotFound(w, msgStaffUnavailable)

		case errors.Is(err, getAvailableSlots.ErrConfigMissing),
			errors.Is(err, getAvailableSlots.ErrNoActiveStaff),
			errors.Is(err, getAvailableSlots.ErrInvalidTimezone):
			h.logger.Error("GET /availability - Salon is not configured: %v", err)
			handlers.RespondError(w, http.StatusInternalServerError, msgNotConfigured)

		default:
			h.logger.Error("GET /availability - Failed to get slots: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - Slots retrieved: date=%s, staff=%s, count=%d",
		r.URL.Query().Get("date"), result.StaffID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
