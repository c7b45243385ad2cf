package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/salon-booking-service/internal/api/handlers"
	createAppointment "github.com/m04kA/salon-booking-service/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgInvalidData        = "некорректные данные записи"
	msgInvalidID          = "некорректный идентификатор услуги или мастера"
	msgServiceUnavailable = "услуга недоступна"
	msgStaffUnavailable   = "мастер недоступен"
	msgSlotNotAvailable   = "выбранное время уже недоступно"
	msgNotConfigured      = "расписание салона не настроено"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/public/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		var pe *parseError
		switch {
		case errors.As(err, &pe) && pe.field == "time":
			handlers.RespondBadRequest(w, msgInvalidTime)
		case errors.Is(err, handlers.ErrInvalidID):
			handlers.RespondBadRequest(w, msgInvalidID)
		default:
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, createAppointment.ErrServiceUnavailable):
			h.logger.Warn("POST /appointments - Service unavailable: option=%s", req.ServiceOptionID)
			handlers.RespondNotFound(w, msgServiceUnavailable)

		case errors.Is(err, createAppointment.ErrStaffUnavailable):
			h.logger.Warn("POST /appointments - Staff unavailable: %v", err)
			handlers.RespondNotFound(w, msgStaffUnavailable)

		case errors.Is(err, createAppointment.ErrSlotNotAvailable):
			h.logger.Warn("POST /appointments - Slot not available: option=%s, date=%s, time=%s",
				req.ServiceOptionID, req.Date, req.Time)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createAppointment.ErrConfigMissing),
			errors.Is(err, createAppointment.ErrNoActiveStaff),
			errors.Is(err, createAppointment.ErrInvalidTimezone):
			h.logger.Error("POST /appointments - Salon is not configured: %v", err)
			handlers.RespondError(w, http.StatusInternalServerError, msgNotConfigured)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: option=%s, error=%v",
				req.ServiceOptionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: id=%s, status=%s, staff=%s",
		result.AppointmentID, result.Status, result.StaffID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
