package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeWeek(t *testing.T) {
	hours := []WorkingHours{
		{Weekday: 1, StartTime: "09:00", EndTime: "18:00", Active: true},
		{Weekday: 2, StartTime: "09:00", EndTime: "18:00", Active: false},
		{Weekday: 2, StartTime: "10:00", EndTime: "14:00", Active: true},
	}

	got, err := NormalizeWeek("staff-1", hours)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "staff-1", got[0].StaffID)
	assert.Equal(t, 2, got[1].Weekday)
}

func TestNormalizeWeek_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		hours []WorkingHours
	}{
		{name: "duplicate weekday", hours: []WorkingHours{
			{Weekday: 1, StartTime: "09:00", EndTime: "12:00", Active: true},
			{Weekday: 1, StartTime: "13:00", EndTime: "18:00", Active: true},
		}},
		{name: "start after end", hours: []WorkingHours{{Weekday: 3, StartTime: "18:00", EndTime: "09:00", Active: true}}},
		{name: "bad format", hours: []WorkingHours{{Weekday: 3, StartTime: "9:00", EndTime: "18:00", Active: true}}},
		{name: "bad weekday", hours: []WorkingHours{{Weekday: 7, StartTime: "09:00", EndTime: "18:00", Active: true}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeWeek("staff-1", tt.hours)
			assert.ErrorIs(t, err, ErrInvalidWorkingHours)
		})
	}
}
