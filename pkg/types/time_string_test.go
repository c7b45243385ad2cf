package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid morning", input: "09:00"},
		{name: "valid last minute", input: "23:59"},
		{name: "midnight", input: "00:00"},
		{name: "single digit hour", input: "9:00", wantErr: true},
		{name: "seconds", input: "09:00:00", wantErr: true},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "minute out of range", input: "10:60", wantErr: true},
		{name: "garbage", input: "ab:cd", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, ts.String())
		})
	}
}

func TestTimeString_On(t *testing.T) {
	loc, err := time.LoadLocation("America/Belem")
	require.NoError(t, err)

	date := time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC)
	got, err := TimeString("09:30").On(date, loc)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 5, 15, 9, 30, 0, 0, loc), got)
	// Belem UTC-3
	assert.Equal(t, time.Date(2026, 5, 15, 12, 30, 0, 0, time.UTC), got.UTC())

	_, err = TimeString("9:30").On(date, loc)
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}

func TestTimeString_MinutesAndCompare(t *testing.T) {
	assert.Equal(t, 9*60+30, TimeString("09:30").Minutes())
	assert.True(t, TimeString("09:00").IsBefore("09:01"))
	assert.False(t, TimeString("12:00").IsBefore("12:00"))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("09:00:00"))
	assert.Equal(t, TimeString("09:00"), ts)

	require.NoError(t, ts.Scan([]byte("18:30")))
	assert.Equal(t, TimeString("18:30"), ts)

	assert.Error(t, ts.Scan(42))
}

func TestDayBoundsAndWeekday(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	date, err := ParseDate("2026-05-15")
	require.NoError(t, err)

	start, end := DayBounds(date, loc)
	assert.Equal(t, time.Date(2026, 5, 15, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2026, 5, 16, 0, 0, 0, 0, loc), end)
	assert.Equal(t, 5, Weekday(date)) // пятница

	_, err = ParseDate("15/05/2026")
	assert.ErrorIs(t, err, ErrInvalidDateFormat)

	assert.Equal(t, start.Add(75*time.Minute), AddMinutes(start, 75))
}
