package observability

import "time"

// MetricsRegistry provides an interface for recording application metrics
// This replaces direct access to global Prometheus metrics with dependency injection
type MetricsRegistry interface {
	// HTTP Request metrics
	IncrementRequests(endpoint, method, status string)
	RecordRequestLatency(endpoint, method string, duration time.Duration)
	IncrementDeviceRequests(device string)

	// Upstream provider metrics
	IncrementUpstreamRequests(outcome string)
	RecordUpstreamLatency(duration time.Duration)

	// Pipeline metrics
	IncrementIPFallbacks()
	AddOffersDeduped(count int)
	RecordOffersReturned(count int)
}

// PrometheusRegistry implements MetricsRegistry using the global Prometheus metrics
type PrometheusRegistry struct{}

// NewPrometheusRegistry creates a new PrometheusRegistry
func NewPrometheusRegistry() *PrometheusRegistry {
	return &PrometheusRegistry{}
}

// HTTP Request metrics
func (r *PrometheusRegistry) IncrementRequests(endpoint, method, status string) {
	RequestCount.WithLabelValues(endpoint, method, status).Inc()
}

func (r *PrometheusRegistry) RecordRequestLatency(endpoint, method string, duration time.Duration) {
	RequestLatency.WithLabelValues(endpoint, method).Observe(duration.Seconds())
}

func (r *PrometheusRegistry) IncrementDeviceRequests(device string) {
	DeviceRequestCount.WithLabelValues(device).Inc()
}

// Upstream provider metrics
func (r *PrometheusRegistry) IncrementUpstreamRequests(outcome string) {
	UpstreamRequests.WithLabelValues(outcome).Inc()
}

func (r *PrometheusRegistry) RecordUpstreamLatency(duration time.Duration) {
	UpstreamLatency.Observe(duration.Seconds())
}

// Pipeline metrics
func (r *PrometheusRegistry) IncrementIPFallbacks() {
	IPFallbackCount.Inc()
}

func (r *PrometheusRegistry) AddOffersDeduped(count int) {
	OffersDeduped.Add(float64(count))
}

func (r *PrometheusRegistry) RecordOffersReturned(count int) {
	OffersReturned.Observe(float64(count))
}

// NoOpRegistry implements MetricsRegistry with no-op methods for testing
type NoOpRegistry struct{}

// NewNoOpRegistry creates a new NoOpRegistry
func NewNoOpRegistry() *NoOpRegistry {
	return &NoOpRegistry{}
}

func (r *NoOpRegistry) IncrementRequests(endpoint, method, status string)                    {}
func (r *NoOpRegistry) RecordRequestLatency(endpoint, method string, duration time.Duration) {}
func (r *NoOpRegistry) IncrementDeviceRequests(device string)                                {}
func (r *NoOpRegistry) IncrementUpstreamRequests(outcome string)                             {}
func (r *NoOpRegistry) RecordUpstreamLatency(duration time.Duration)                         {}
func (r *NoOpRegistry) IncrementIPFallbacks()                                                {}
func (r *NoOpRegistry) AddOffersDeduped(count int)                                           {}
func (r *NoOpRegistry) RecordOffersReturned(count int)                                       {}
