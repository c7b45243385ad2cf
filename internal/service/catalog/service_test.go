package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/salon-booking-service/internal/domain"
	"github.com/m04kA/salon-booking-service/internal/testutil/memstore"
	"github.com/m04kA/salon-booking-service/pkg/logger"
)

func TestListActive(t *testing.T) {
	s := memstore.New()
	lashes := domain.Service{ID: "svc-1", Name: "Lashes", Active: true}
	s.AddOption(lashes, domain.ServiceOption{ID: "opt-m", Type: domain.OptionMaintenance, DurationMinutes: 60, Active: true})
	s.AddOption(lashes, domain.ServiceOption{ID: "opt-a", Type: domain.OptionApplication, DurationMinutes: 120, DepositCents: 3000, Active: true})
	s.AddOption(lashes, domain.ServiceOption{ID: "opt-off", Type: domain.OptionMaintenance, DurationMinutes: 30, Active: false})
	s.AddOption(domain.Service{ID: "svc-2", Name: "Brows", Active: false},
		domain.ServiceOption{ID: "opt-b", Type: domain.OptionApplication, DurationMinutes: 30, Active: true})

	resp, err := NewService(s.Catalog(), logger.Nop()).ListActive(context.Background())
	require.NoError(t, err)

	require.Len(t, resp.Services, 1)
	svc := resp.Services[0]
	assert.Equal(t, "Lashes", svc.Name)
	require.Len(t, svc.Options, 2)
	assert.Equal(t, "opt-a", svc.Options[0].ID)
	assert.True(t, svc.Options[0].RequiresDeposit)
	assert.Equal(t, "opt-m", svc.Options[1].ID)
	assert.False(t, svc.Options[1].RequiresDeposit)
}

func TestListActive_RepositoryError(t *testing.T) {
	s := memstore.New()
	s.Err = errors.New("connection reset")

	_, err := NewService(s.Catalog(), logger.Nop()).ListActive(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}
