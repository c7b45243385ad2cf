package get_settings

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/salon-booking-service/internal/service/settings"
	"github.com/m04kA/salon-booking-service/internal/service/settings/models"
	"github.com/m04kA/salon-booking-service/pkg/logger"
)

type stubService struct {
	resp *models.SettingsResponse
	err  error
}

func (s *stubService) Get(context.Context) (*models.SettingsResponse, error) {
	return s.resp, s.err
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name       string
		svc        *stubService
		wantStatus int
	}{
		{name: "ok", svc: &stubService{resp: &models.SettingsResponse{ID: "cfg-1", SlotMinutes: 30}}, wantStatus: http.StatusOK},
		{name: "not provisioned", svc: &stubService{err: settings.ErrConfigNotFound}, wantStatus: http.StatusNotFound},
		{name: "internal", svc: &stubService{err: errors.New("boom")}, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			NewHandler(tt.svc, logger.Nop()).Handle(w, httptest.NewRequest(http.MethodGet, "/api/crm/settings", nil))
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
