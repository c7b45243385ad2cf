package list_appointments

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/salon-booking-service/internal/service/appointments"
	"github.com/m04kA/salon-booking-service/internal/service/appointments/models"
	"github.com/m04kA/salon-booking-service/pkg/logger"
)

type mockService struct{ mock.Mock }

func (m *mockService) List(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.AppointmentListResponse)
	return resp, args.Error(1)
}

const staffID = "2d9a8c74-5e3f-4b0a-9c4d-7f8e9a0b1c23"

func list(h *Handler, query string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodGet, "/api/crm/appointments"+query, nil))
	return w
}

func TestHandle_PassesFilter(t *testing.T) {
	svc := &mockService{}
	svc.On("List", mock.Anything, mock.MatchedBy(func(req *models.ListAppointmentsRequest) bool {
		return req.From != nil && req.From.Equal(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)) &&
			req.To != nil && req.To.Equal(time.Date(2026, 5, 15, 9, 0, 0, 0, time.UTC)) &&
			req.StaffID != nil && *req.StaffID == staffID &&
			req.Status != nil && *req.Status == "CONFIRMED"
	})).Return(&models.AppointmentListResponse{Appointments: []models.AppointmentResponse{{ID: "a-1"}}}, nil)

	w := list(NewHandler(svc, logger.Nop()), "?from=2026-05-01&to=2026-05-15T09:00:00Z&staffId="+staffID+"&status=CONFIRMED")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"a-1"`)
	svc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	svc := &mockService{}
	h := NewHandler(svc, logger.Nop())

	assert.Equal(t, http.StatusBadRequest, list(h, "?from=yesterday").Code)
	w := list(h, "?staffId=staff-1")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), msgInvalidFilter)
	svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything)

	svc.On("List", mock.Anything, mock.Anything).Return(nil, appointments.ErrInvalidInput).Once()
	assert.Equal(t, http.StatusBadRequest, list(h, "?status=UNKNOWN").Code)

	svc.On("List", mock.Anything, mock.Anything).Return(nil, appointments.ErrInternal).Once()
	assert.Equal(t, http.StatusInternalServerError, list(h, "").Code)
}
