package get_working_hours

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/salon-booking-service/internal/domain"
	"github.com/m04kA/salon-booking-service/internal/service/staff"
	"github.com/m04kA/salon-booking-service/internal/testutil/memstore"
	"github.com/m04kA/salon-booking-service/pkg/logger"
)

const (
	staffID = "2d9a8c74-5e3f-4b0a-9c4d-7f8e9a0b1c23"
	ghostID = "8df40516-0c1e-4f2a-9b3c-5d6e7f8091a2"
)

func TestHandle(t *testing.T) {
	store := memstore.New()
	store.AddStaff(domain.Staff{ID: staffID, Name: "Ольга", Active: true})
	store.AddWorkingHours(domain.WorkingHours{StaffID: staffID, Weekday: 1, StartTime: "09:00", EndTime: "18:00", Active: true})
	h := NewHandler(staff.NewService(store.Staff(), store.WorkingHours(), store.TxManager(), logger.Nop()), logger.Nop())

	get := func(query string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		h.Handle(w, httptest.NewRequest(http.MethodGet, "/api/crm/working-hours"+query, nil))
		return w
	}

	w := get("?staffId=" + staffID)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"startTime":"09:00"`)

	assert.Equal(t, http.StatusBadRequest, get("").Code)
	assert.Equal(t, http.StatusBadRequest, get("?staffId=staff-1").Code)
	assert.Equal(t, http.StatusNotFound, get("?staffId="+ghostID).Code)
}
