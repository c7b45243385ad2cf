package update_appointment

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/salon-booking-service/internal/service/appointments"
	"github.com/m04kA/salon-booking-service/internal/service/appointments/models"
	"github.com/m04kA/salon-booking-service/pkg/logger"
)

type mockService struct{ mock.Mock }

func (m *mockService) Update(ctx context.Context, id string, req *models.UpdateAppointmentRequest) (*models.AppointmentResponse, error) {
	args := m.Called(ctx, id, req)
	resp, _ := args.Get(0).(*models.AppointmentResponse)
	return resp, args.Error(1)
}

const appointmentID = "4fb0c1d2-6e7a-4b8c-9d0e-1f2a3b4c5d6e"

func patch(h *Handler, id, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPatch, "/api/crm/appointments/"+id, strings.NewReader(body))
	r = mux.SetURLVars(r, map[string]string{"id": id})
	w := httptest.NewRecorder()
	h.Handle(w, r)
	return w
}

func TestHandle_Success(t *testing.T) {
	svc := &mockService{}
	svc.On("Update", mock.Anything, appointmentID, mock.MatchedBy(func(req *models.UpdateAppointmentRequest) bool {
		return req.Status != nil && *req.Status == "CONFIRMED" && req.InternalNotes == nil
	})).Return(&models.AppointmentResponse{ID: appointmentID, Status: "CONFIRMED"}, nil)

	w := patch(NewHandler(svc, logger.Nop()), appointmentID, `{"status":"CONFIRMED"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"CONFIRMED"`)
	svc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{err: appointments.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{err: appointments.ErrAppointmentNotFound, wantStatus: http.StatusNotFound},
		{err: appointments.ErrInvalidTransition, wantStatus: http.StatusConflict},
		{err: appointments.ErrSlotNotAvailable, wantStatus: http.StatusConflict},
		{err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			svc := &mockService{}
			svc.On("Update", mock.Anything, appointmentID, mock.Anything).Return(nil, tt.err)

			w := patch(NewHandler(svc, logger.Nop()), appointmentID, `{"status":"DONE"}`)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestHandle_InvalidBody(t *testing.T) {
	svc := &mockService{}
	w := patch(NewHandler(svc, logger.Nop()), appointmentID, `{"status":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandle_MalformedID(t *testing.T) {
	svc := &mockService{}
	h := NewHandler(svc, logger.Nop())

	for _, id := range []string{"", "abc", "a-1"} {
		w := patch(h, id, `{"status":"CONFIRMED"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code, id)
		assert.Contains(t, w.Body.String(), msgInvalidAppointmentID)
	}
	svc.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}
