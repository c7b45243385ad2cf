package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Результаты попытки бронирования для метрики bookings_total
const (
	BookingCreated  = "created"
	BookingConflict = "conflict"
	BookingRejected = "rejected"
	BookingFailed   = "failed"
)

// Metrics набор prometheus метрик сервиса
// Каждый экземпляр использует собственный registry
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration  *prometheus.HistogramVec
	DBErrorsTotal    *prometheus.CounterVec
	DBConnections    *prometheus.GaugeVec
	BookingsTotal    *prometheus.CounterVec
	SlotsReturned    *prometheus.HistogramVec
	StatusTransition *prometheus.CounterVec
}

// New создает и регистрирует метрики
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		DBErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_errors_total",
			Help:        "Database errors by operation",
			ConstLabels: constLabels,
		}, []string{"operation"}),
		DBConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections",
			Help:        "Database connection pool state",
			ConstLabels: constLabels,
		}, []string{"state"}),
		BookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_total",
			Help:        "Booking attempts by result",
			ConstLabels: constLabels,
		}, []string{"result"}),
		SlotsReturned: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "availability_slots_returned",
			Help:        "Number of slots returned by availability queries",
			ConstLabels: constLabels,
			Buckets:     []float64{0, 1, 2, 5, 10, 20, 40, 80},
		}, []string{}),
		StatusTransition: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "appointment_status_transitions_total",
			Help:        "Appointment status transitions",
			ConstLabels: constLabels,
		}, []string{"from", "to"}),
	}

	m.registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBErrorsTotal,
		m.DBConnections,
		m.BookingsTotal,
		m.SlotsReturned,
		m.StatusTransition,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Handler http.Handler для эндпоинта /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry возвращает registry метрик (используется в тестах)
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveBooking учитывает результат попытки бронирования
func (m *Metrics) ObserveBooking(result string) {
	if m == nil {
		return
	}
	m.BookingsTotal.WithLabelValues(result).Inc()
}

// ObserveSlots учитывает количество слотов, отданных клиенту
func (m *Metrics) ObserveSlots(count int) {
	if m == nil {
		return
	}
	m.SlotsReturned.WithLabelValues().Observe(float64(count))
}

// ObserveStatusTransition учитывает смену статуса записи
func (m *Metrics) ObserveStatusTransition(from, to string) {
	if m == nil {
		return
	}
	m.StatusTransition.WithLabelValues(from, to).Inc()
}
