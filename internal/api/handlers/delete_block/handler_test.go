package delete_block

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/salon-booking-service/internal/domain"
	"github.com/m04kA/salon-booking-service/internal/service/blocks"
	"github.com/m04kA/salon-booking-service/internal/testutil/memstore"
	"github.com/m04kA/salon-booking-service/pkg/logger"
)

const (
	blockID = "7ce3f405-9b0d-4e1f-8a2b-4c5d6e7f8091"
	staffID = "2d9a8c74-5e3f-4b0a-9c4d-7f8e9a0b1c23"
)

func TestHandle(t *testing.T) {
	store := memstore.New()
	start := time.Date(2026, 5, 15, 13, 0, 0, 0, time.UTC)
	store.AddBlock(domain.Block{ID: blockID, StaffID: staffID, StartAt: start, EndAt: start.Add(time.Hour)})
	h := NewHandler(blocks.NewService(store.Blocks(), store.Staff(), logger.Nop()), logger.Nop())

	del := func(id string) *httptest.ResponseRecorder {
		r := mux.SetURLVars(httptest.NewRequest(http.MethodDelete, "/api/crm/blocks/"+id, nil), map[string]string{"id": id})
		w := httptest.NewRecorder()
		h.Handle(w, r)
		return w
	}

	assert.Equal(t, http.StatusNoContent, del(blockID).Code)
	assert.Equal(t, http.StatusNotFound, del(blockID).Code)
	assert.Equal(t, http.StatusBadRequest, del("blk-1").Code)
	assert.Equal(t, http.StatusBadRequest, del("").Code)
}
