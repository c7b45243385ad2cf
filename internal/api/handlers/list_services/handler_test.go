package list_services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/salon-booking-service/internal/service/catalog/models"
	"github.com/m04kA/salon-booking-service/pkg/logger"
)

type stubService struct {
	resp *models.ServiceListResponse
	err  error
}

func (s *stubService) ListActive(context.Context) (*models.ServiceListResponse, error) {
	return s.resp, s.err
}

func TestHandle(t *testing.T) {
	svc := &stubService{resp: &models.ServiceListResponse{Services: []models.ServiceResponse{
		{ID: "svc-1", Name: "Маникюр", Options: []models.OptionResponse{{ID: "opt-1", Type: "BASIC", DurationMinutes: 60}}},
	}}}

	w := httptest.NewRecorder()
	NewHandler(svc, logger.Nop()).Handle(w, httptest.NewRequest(http.MethodGet, "/api/public/services", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"opt-1"`)

	w = httptest.NewRecorder()
	NewHandler(&stubService{err: errors.New("db down")}, logger.Nop()).
		Handle(w, httptest.NewRequest(http.MethodGet, "/api/public/services", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
