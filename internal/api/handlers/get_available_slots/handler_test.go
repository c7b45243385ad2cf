package get_available_slots

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	getAvailableSlots "github.com/m04kA/salon-booking-service/internal/usecase/get_available_slots"
	"github.com/m04kA/salon-booking-service/pkg/logger"
)

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*getAvailableSlots.Response)
	return resp, args.Error(1)
}

const (
	optionID  = "0b7e6a52-3c1d-4f8e-9a2b-5d6c7e8f9a01"
	serviceID = "1c8f7b63-4d2e-4a9f-8b3c-6e7d8f9a0b12"
	staffID   = "2d9a8c74-5e3f-4b0a-9c4d-7f8e9a0b1c23"
)

func TestHandle_Success(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *getAvailableSlots.Request) bool {
		return req.ServiceOptionID == optionID && req.StaffID != nil && *req.StaffID == staffID &&
			req.Date.Equal(time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC))
	})).Return(&getAvailableSlots.Response{
		Date: time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC), StaffID: staffID, ServiceOptionID: optionID,
		Slots: []string{"10:30", "11:00"},
	}, nil)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/public/availability?serviceOptionId="+optionID+"&date=2026-05-15&staffId="+staffID, nil)
	NewHandler(uc, logger.Nop()).Handle(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []string{"10:30", "11:00"}, body.Slots)
	assert.Equal(t, "2026-05-15", body.Date)
	uc.AssertExpectations(t)
}

func TestHandle_EmptyListIsArray(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.Anything).Return(&getAvailableSlots.Response{StaffID: staffID}, nil)

	w := httptest.NewRecorder()
	NewHandler(uc, logger.Nop()).Handle(w, httptest.NewRequest(http.MethodGet, "/?serviceId="+serviceID+"&date=2026-05-16", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"slots":[]`)
}

func TestHandle_BadParams(t *testing.T) {
	for _, query := range []string{
		"?date=2026-05-15",
		"?serviceOptionId=" + optionID,
		"?serviceOptionId=" + optionID + "&date=15.05.2026",
		"?serviceOptionId=abc&date=2026-05-15",
		"?serviceId=svc-1&date=2026-05-15",
		"?serviceOptionId=" + optionID + "&date=2026-05-15&staffId=staff-1",
	} {
		uc := &mockUseCase{}
		w := httptest.NewRecorder()
		NewHandler(uc, logger.Nop()).Handle(w, httptest.NewRequest(http.MethodGet, "/"+query, nil))

		assert.Equal(t, http.StatusBadRequest, w.Code, query)
		uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
	}
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{err: getAvailableSlots.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{err: getAvailableSlots.ErrServiceUnavailable, wantStatus: http.StatusNotFound},
		{err: getAvailableSlots.ErrStaffUnavailable, wantStatus: http.StatusNotFound},
		{err: getAvailableSlots.ErrConfigMissing, wantStatus: http.StatusInternalServerError},
		{err: getAvailableSlots.ErrNoActiveStaff, wantStatus: http.StatusInternalServerError},
		{err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := httptest.NewRecorder()
			NewHandler(uc, logger.Nop()).Handle(w, httptest.NewRequest(http.MethodGet, "/?serviceOptionId="+optionID+"&date=2026-05-15", nil))
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
