package create_block

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/salon-booking-service/internal/domain"
	"github.com/m04kA/salon-booking-service/internal/service/blocks"
	"github.com/m04kA/salon-booking-service/internal/service/blocks/models"
	"github.com/m04kA/salon-booking-service/internal/testutil/memstore"
	"github.com/m04kA/salon-booking-service/pkg/logger"
)

const (
	staffID = "2d9a8c74-5e3f-4b0a-9c4d-7f8e9a0b1c23"
	ghostID = "8df40516-0c1e-4f2a-9b3c-5d6e7f8091a2"
)

func newHandler() (*Handler, *memstore.Store) {
	store := memstore.New()
	store.AddStaff(domain.Staff{ID: staffID, Name: "Ольга", Active: true})
	return NewHandler(blocks.NewService(store.Blocks(), store.Staff(), logger.Nop()), logger.Nop()), store
}

func post(h *Handler, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodPost, "/api/crm/blocks", strings.NewReader(body)))
	return w
}

func TestHandle_Created(t *testing.T) {
	h, store := newHandler()

	w := post(h, `{"staffId":"`+staffID+`","startAt":"2026-05-15T13:00:00+03:00","endAt":"2026-05-15T14:00:00+03:00","reason":"обед"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	var block models.BlockResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &block))
	assert.NotEmpty(t, block.ID)
	assert.True(t, block.StartAt.Equal(time.Date(2026, 5, 15, 10, 0, 0, 0, time.UTC)))

	list, err := store.Blocks().List(context.Background(), domain.BlocksFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestHandle_Rejects(t *testing.T) {
	h, _ := newHandler()

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{name: "not rfc3339", body: `{"staffId":"` + staffID + `","startAt":"2026-05-15 13:00","endAt":"2026-05-15 14:00"}`, wantStatus: http.StatusBadRequest},
		{name: "empty interval", body: `{"staffId":"` + staffID + `","startAt":"2026-05-15T13:00:00Z","endAt":"2026-05-15T13:00:00Z"}`, wantStatus: http.StatusBadRequest},
		{name: "staff id not uuid", body: `{"staffId":"staff-1","startAt":"2026-05-15T13:00:00Z","endAt":"2026-05-15T14:00:00Z"}`, wantStatus: http.StatusBadRequest},
		{name: "unknown staff", body: `{"staffId":"` + ghostID + `","startAt":"2026-05-15T13:00:00Z","endAt":"2026-05-15T14:00:00Z"}`, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, post(h, tt.body).Code)
		})
	}
}
