package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateTransition(t *testing.T) {
	cases := []struct {
		from  AppointmentStatus
		to    AppointmentStatus
		valid bool
	}{
		{StatusPendingPayment, StatusConfirmed, true},
		{StatusPendingPayment, StatusCancelled, true},
		{StatusConfirmed, StatusDone, true},
		{StatusConfirmed, StatusNoShow, true},
		{StatusCancelled, StatusConfirmed, true},
		{StatusDone, StatusCancelled, true},
		{StatusConfirmed, StatusPendingPayment, false},
		{StatusCancelled, StatusPendingPayment, false},
		{StatusConfirmed, "ARCHIVED", false},
		{"ARCHIVED", StatusConfirmed, false},
	}

	for _, tt := range cases {
		err := ValidateTransition(tt.from, tt.to)
		if tt.valid {
			assert.NoError(t, err, "%s -> %s", tt.from, tt.to)
		} else {
			assert.ErrorIs(t, err, ErrInvalidTransition, "%s -> %s", tt.from, tt.to)
		}
	}
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus("NO_SHOW")
	assert.NoError(t, err)
	assert.Equal(t, StatusNoShow, st)

	_, err = ParseStatus("confirmed")
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, StatusConfirmed, InitialStatus(0))
	assert.Equal(t, StatusPendingPayment, InitialStatus(5000))
}

func TestReoccupies(t *testing.T) {
	assert.True(t, Reoccupies(StatusCancelled, StatusConfirmed))
	assert.False(t, Reoccupies(StatusPendingPayment, StatusConfirmed))
	assert.False(t, Reoccupies(StatusConfirmed, StatusCancelled))
	assert.False(t, Reoccupies(StatusDone, StatusNoShow))
}
