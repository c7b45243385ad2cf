package update_appointment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/salon-booking-service/internal/api/handlers"
	"github.com/m04kA/salon-booking-service/internal/service/appointments"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidData          = "некорректные данные записи"
	msgNotFound             = "запись не найдена"
	msgInvalidTransition    = "недопустимая смена статуса"
	msgSlotNotAvailable     = "время записи уже занято"
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

// Handle PATCH /api/crm/appointments/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID := mux.Vars(r)["id"]
	if err := handlers.ValidateID(appointmentID); err != nil {
		h.logger.Warn("PATCH /crm/appointments/{id} - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req UpdateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /crm/appointments/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), appointmentID, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("PATCH /crm/appointments/{id} - Invalid data: id=%s, error=%v", appointmentID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /crm/appointments/{id} - Appointment not found: id=%s", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrInvalidTransition):
			h.logger.Warn("PATCH /crm/appointments/{id} - Invalid transition: id=%s, error=%v", appointmentID, err)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, appointments.ErrSlotNotAvailable):
			h.logger.Warn("PATCH /crm/appointments/{id} - Slot taken: id=%s", appointmentID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		default:
			h.logger.Error("PATCH /crm/appointments/{id} - Failed to update appointment: id=%s, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /crm/appointments/{id} - Appointment updated: id=%s, status=%s", appointmentID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
