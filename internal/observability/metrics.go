package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// total requests per endpoint, method and status code
	RequestCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "offergate_requests_total",
			Help: "Total API requests received",
		},
		[]string{"endpoint", "method", "status"},
	)

	// request latency in seconds per endpoint/method
	RequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "offergate_request_duration_seconds",
			Help:    "Histogram of request latencies",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method"},
	)

	// offer requests by device class derived from the user agent
	DeviceRequestCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "offergate_device_requests_total",
			Help: "Total offer requests by device class",
		},
		[]string{"device"},
	)

	// upstream provider calls labelled by outcome (2xx status or "error")
	UpstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "offergate_upstream_requests_total",
			Help: "Total upstream offer API requests",
		},
		[]string{"outcome"},
	)

	// latency of upstream provider calls
	UpstreamLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "offergate_upstream_duration_seconds",
			Help:    "Duration of upstream offer API requests",
			Buckets: prometheus.DefBuckets,
		},
	)

	// times the client IP resolver fell back to the fixed public IP
	IPFallbackCount = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "offergate_ip_fallback_total",
			Help: "Total requests resolved to the fallback client IP",
		},
	)

	// duplicate offers dropped per aggregation run
	OffersDeduped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "offergate_offers_deduped_total",
			Help: "Total duplicate offers collapsed",
		},
	)

	// final offer counts returned to callers
	OffersReturned = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "offergate_offers_returned",
			Help:    "Histogram of offer counts returned per request",
			Buckets: prometheus.LinearBuckets(0, 1, 11),
		},
	)
)

func init() {
	// register all metrics
	prometheus.MustRegister(
		RequestCount,
		RequestLatency,
		DeviceRequestCount,
		UpstreamRequests,
		UpstreamLatency,
		IPFallbackCount,
		OffersDeduped,
		OffersReturned,
	)
}
