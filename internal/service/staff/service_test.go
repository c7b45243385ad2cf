package staff

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/salon-booking-service/internal/domain"
	"github.com/m04kA/salon-booking-service/internal/service/staff/models"
	"github.com/m04kA/salon-booking-service/internal/testutil/memstore"
	"github.com/m04kA/salon-booking-service/pkg/logger"
)

func newStore() *memstore.Store {
	s := memstore.New()
	s.AddStaff(domain.Staff{ID: "staff-2", Name: "Bia", Active: true})
	s.AddStaff(domain.Staff{ID: "staff-1", Name: "Ana", Active: true})
	s.AddStaff(domain.Staff{ID: "staff-3", Name: "Carla", Active: false})
	s.AddWorkingHours(domain.WorkingHours{StaffID: "staff-1", Weekday: 1, StartTime: "09:00", EndTime: "18:00", Active: true})
	s.AddWorkingHours(domain.WorkingHours{StaffID: "staff-2", Weekday: 1, StartTime: "10:00", EndTime: "16:00", Active: true})
	return s
}

func newService(s *memstore.Store) *Service {
	return NewService(s.Staff(), s.WorkingHours(), s.TxManager(), logger.Nop())
}

func TestListActive(t *testing.T) {
	resp, err := newService(newStore()).ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Staff, 2)
	assert.Equal(t, "Ana", resp.Staff[0].Name)
	assert.Equal(t, "Bia", resp.Staff[1].Name)
}

func TestGetWorkingHours(t *testing.T) {
	resp, err := newService(newStore()).GetWorkingHours(context.Background(), "staff-1")
	require.NoError(t, err)
	require.Len(t, resp.Hours, 1)
	assert.Equal(t, "09:00", resp.Hours[0].StartTime)

	_, err = newService(newStore()).GetWorkingHours(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestReplaceWorkingHours(t *testing.T) {
	s := newStore()

	resp, err := newService(s).ReplaceWorkingHours(context.Background(), &models.ReplaceWorkingHoursRequest{
		StaffID: "staff-1",
		Hours: []models.WorkingHoursInput{
			{Weekday: 2, StartTime: "09:00", EndTime: "13:00", Active: true},
			{Weekday: 4, StartTime: "12:00", EndTime: "20:00", Active: true},
			{Weekday: 6, StartTime: "10:00", EndTime: "14:00", Active: false},
		},
	})
	require.NoError(t, err)

	weekdays := make([]int, 0, len(resp.Hours))
	for _, h := range resp.Hours {
		weekdays = append(weekdays, h.Weekday)
	}
	assert.Equal(t, []int{2, 4}, weekdays)

	// график другого мастера не затронут
	other, err := newService(s).GetWorkingHours(context.Background(), "staff-2")
	require.NoError(t, err)
	assert.Len(t, other.Hours, 1)
}

func TestReplaceWorkingHours_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		hours []models.WorkingHoursInput
	}{
		{name: "bad format", hours: []models.WorkingHoursInput{{Weekday: 1, StartTime: "9am", EndTime: "18:00", Active: true}}},
		{name: "start after end", hours: []models.WorkingHoursInput{{Weekday: 1, StartTime: "18:00", EndTime: "09:00", Active: true}}},
		{name: "weekday out of range", hours: []models.WorkingHoursInput{{Weekday: 7, StartTime: "09:00", EndTime: "18:00", Active: true}}},
		{name: "duplicate weekday", hours: []models.WorkingHoursInput{
			{Weekday: 1, StartTime: "09:00", EndTime: "12:00", Active: true},
			{Weekday: 1, StartTime: "13:00", EndTime: "18:00", Active: true},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore()

			_, err := newService(s).ReplaceWorkingHours(context.Background(), &models.ReplaceWorkingHoursRequest{
				StaffID: "staff-1", Hours: tt.hours,
			})
			assert.ErrorIs(t, err, ErrInvalidInput)

			week, err := newService(s).GetWorkingHours(context.Background(), "staff-1")
			require.NoError(t, err)
			assert.Len(t, week.Hours, 1)
		})
	}
}

func TestReplaceWorkingHours_UnknownStaff(t *testing.T) {
	_, err := newService(newStore()).ReplaceWorkingHours(context.Background(), &models.ReplaceWorkingHoursRequest{StaffID: "ghost"})
	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestListActive_RepositoryError(t *testing.T) {
	s := newStore()
	s.Err = errors.New("connection reset")

	_, err := newService(s).ListActive(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}
