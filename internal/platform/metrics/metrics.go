package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all shipping-portal metrics
type Metrics struct {
	serviceName string
	registry    *prometheus.Registry

	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Upstream API metrics
	UpstreamRequestsTotal   *prometheus.CounterVec
	UpstreamRequestDuration *prometheus.HistogramVec

	// Business metrics
	ShipmentsCreated  *prometheus.CounterVec
	ShipmentsDeleted  *prometheus.CounterVec
	ShipmentsImported *prometheus.CounterVec
	TrackingLookups   *prometheus.CounterVec
	QuoteRequests     *prometheus.CounterVec
	CodeSearches      *prometheus.CounterVec

	// Circuit breaker metrics
	CircuitBreakerState *prometheus.GaugeVec
	CircuitBreakerTrips *prometheus.CounterVec
}

// Config holds metrics configuration
type Config struct {
	ServiceName string
	Namespace   string
}

// DefaultConfig returns default metrics configuration
func DefaultConfig(serviceName string) *Config {
	return &Config{
		ServiceName: serviceName,
		Namespace:   "shipping",
	}
}

// New creates a new Metrics instance
func New(config *Config) *Metrics {
	registry := prometheus.NewRegistry()

	registry.MustRegister(prometheus.NewGoCollector())
	registry.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))

	m := &Metrics{
		serviceName: config.ServiceName,
		registry:    registry,
	}

	m.HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"service", "method", "path", "status"},
	)

	m.HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: config.Namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"service", "method", "path"},
	)

	m.HTTPRequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Name:        "http_requests_in_flight",
			Help:        "Number of HTTP requests currently being processed",
			ConstLabels: prometheus.Labels{"service": config.ServiceName},
		},
	)

	m.UpstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "upstream_requests_total",
			Help:      "Total number of requests to upstream Ukrposhta APIs",
		},
		[]string{"service", "upstream", "operation", "status"},
	)

	m.UpstreamRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: config.Namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Upstream request duration in seconds",
			Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"service", "upstream", "operation"},
	)

	m.ShipmentsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "shipments_created_total",
			Help:      "Total number of shipments created",
		},
		[]string{"service", "type"},
	)

	m.ShipmentsDeleted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "shipments_deleted_total",
			Help:      "Total number of shipments deleted",
		},
		[]string{"service"},
	)

	m.ShipmentsImported = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "shipments_imported_total",
			Help:      "Total number of shipments imported by barcode",
		},
		[]string{"service"},
	)

	m.TrackingLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "tracking_lookups_total",
			Help:      "Total number of tracking lookups",
		},
		[]string{"service", "outcome"},
	)

	m.QuoteRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "quote_requests_total",
			Help:      "Total number of price quote requests",
		},
		[]string{"service", "source"},
	)

	m.CodeSearches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "code_searches_total",
			Help:      "Total number of classification code searches",
		},
		[]string{"service", "outcome"},
	)

	m.CircuitBreakerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: config.Namespace,
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"service", "name"},
	)

	m.CircuitBreakerTrips = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "circuit_breaker_trips_total",
			Help:      "Total number of circuit breaker trips",
		},
		[]string{"service", "name"},
	)

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestsInFlight,
		m.UpstreamRequestsTotal,
		m.UpstreamRequestDuration,
		m.ShipmentsCreated,
		m.ShipmentsDeleted,
		m.ShipmentsImported,
		m.TrackingLookups,
		m.QuoteRequests,
		m.CodeSearches,
		m.CircuitBreakerState,
		m.CircuitBreakerTrips,
	)

	return m
}

// Handler returns the HTTP handler for the /metrics endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying prometheus registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(m.serviceName, method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(m.serviceName, method, path).Observe(duration.Seconds())
}

// RecordUpstreamRequest records a call to an upstream API
func (m *Metrics) RecordUpstreamRequest(upstream, operation, status string, duration time.Duration) {
	m.UpstreamRequestsTotal.WithLabelValues(m.serviceName, upstream, operation, status).Inc()
	m.UpstreamRequestDuration.WithLabelValues(m.serviceName, upstream, operation).Observe(duration.Seconds())
}

// RecordShipmentCreated records a shipment creation
func (m *Metrics) RecordShipmentCreated(shipmentType string) {
	m.ShipmentsCreated.WithLabelValues(m.serviceName, shipmentType).Inc()
}

// RecordShipmentDeleted records a shipment deletion
func (m *Metrics) RecordShipmentDeleted() {
	m.ShipmentsDeleted.WithLabelValues(m.serviceName).Inc()
}

// RecordShipmentImported records a shipment import
func (m *Metrics) RecordShipmentImported() {
	m.ShipmentsImported.WithLabelValues(m.serviceName).Inc()
}

// RecordTrackingLookup records a tracking lookup outcome
func (m *Metrics) RecordTrackingLookup(outcome string) {
	m.TrackingLookups.WithLabelValues(m.serviceName, outcome).Inc()
}

// RecordQuoteRequest records a price quote request and its source
func (m *Metrics) RecordQuoteRequest(source string) {
	m.QuoteRequests.WithLabelValues(m.serviceName, source).Inc()
}

// RecordCodeSearch records a classification code search outcome
func (m *Metrics) RecordCodeSearch(outcome string) {
	m.CodeSearches.WithLabelValues(m.serviceName, outcome).Inc()
}

// SetCircuitBreakerState sets the circuit breaker state gauge
func (m *Metrics) SetCircuitBreakerState(name string, state int) {
	m.CircuitBreakerState.WithLabelValues(m.serviceName, name).Set(float64(state))
}

// RecordCircuitBreakerTrip records a circuit breaker trip
func (m *Metrics) RecordCircuitBreakerTrip(name string) {
	m.CircuitBreakerTrips.WithLabelValues(m.serviceName, name).Inc()
}

// IncrementHTTPRequestsInFlight increments the in-flight gauge
func (m *Metrics) IncrementHTTPRequestsInFlight() {
	m.HTTPRequestsInFlight.Inc()
}

// DecrementHTTPRequestsInFlight decrements the in-flight gauge
func (m *Metrics) DecrementHTTPRequestsInFlight() {
	m.HTTPRequestsInFlight.Dec()
}
