package list_staff

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/salon-booking-service/internal/domain"
	"github.com/m04kA/salon-booking-service/internal/service/staff"
	"github.com/m04kA/salon-booking-service/internal/testutil/memstore"
	"github.com/m04kA/salon-booking-service/pkg/logger"
)

func TestHandle(t *testing.T) {
	store := memstore.New()
	store.AddStaff(domain.Staff{ID: "staff-1", Name: "Ольга", Active: true})
	store.AddStaff(domain.Staff{ID: "staff-2", Name: "Ирина", Active: false})
	h := NewHandler(staff.NewService(store.Staff(), store.WorkingHours(), store.TxManager(), logger.Nop()), logger.Nop())

	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodGet, "/api/crm/staff", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "staff-1")
	assert.NotContains(t, w.Body.String(), "staff-2")

	store.Err = errors.New("db down")
	w = httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodGet, "/api/crm/staff", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
