package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_ObserveBooking(t *testing.T) {
	m := New("salon-booking")

	m.ObserveBooking(BookingCreated)
	m.ObserveBooking(BookingCreated)
	m.ObserveBooking(BookingConflict)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.BookingsTotal.WithLabelValues(BookingCreated)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.BookingsTotal.WithLabelValues(BookingConflict)))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveBooking(BookingFailed)
		m.ObserveSlots(3)
		m.ObserveStatusTransition("CONFIRMED", "DONE")
	})
}

func TestNew_IndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New("a")
		New("a")
	})
}
