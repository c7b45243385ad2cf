package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/salon-booking-service/pkg/ptr"
)

func TestLoadSalonLocation(t *testing.T) {
	loc, err := LoadSalonLocation("UTC")
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())

	for _, name := range []string{"", "Local"} {
		_, err := LoadSalonLocation(name)
		assert.ErrorIs(t, err, ErrHostTimezone, name)
	}

	_, err = LoadSalonLocation("Mars/Base")
	assert.Error(t, err)
}

func TestSchedulingConfig_Validate(t *testing.T) {
	valid := SchedulingConfig{SlotMinutes: 30, BufferMinutes: 15, MinAdvanceMinutes: 120, Timezone: "UTC"}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name  string
		patch SchedulingConfigPatch
	}{
		{name: "zero slot", patch: SchedulingConfigPatch{SlotMinutes: ptr.Ptr(0)}},
		{name: "negative buffer", patch: SchedulingConfigPatch{BufferMinutes: ptr.Ptr(-5)}},
		{name: "empty timezone", patch: SchedulingConfigPatch{Timezone: ptr.Ptr("")}},
		{name: "host timezone", patch: SchedulingConfigPatch{Timezone: ptr.Ptr("Local")}},
		{name: "unknown timezone", patch: SchedulingConfigPatch{Timezone: ptr.Ptr("Mars/Base")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.patch.Apply(valid)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidSchedulingConfig)
		})
	}
}
