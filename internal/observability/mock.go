package observability

import (
	"sync"
	"time"
)

// MockMetricsRegistry is a MetricsRegistry for tests that records counts
// so assertions can be made against recorded metrics.
type MockMetricsRegistry struct {
	mu               sync.Mutex
	Requests         map[string]int
	DeviceRequests   map[string]int
	UpstreamOutcomes map[string]int
	IPFallbacks      int
	Deduped          int
	Returned         []int
}

// NewMockMetricsRegistry creates a MockMetricsRegistry with initialised maps.
func NewMockMetricsRegistry() *MockMetricsRegistry {
	return &MockMetricsRegistry{
		Requests:         make(map[string]int),
		DeviceRequests:   make(map[string]int),
		UpstreamOutcomes: make(map[string]int),
	}
}

func (m *MockMetricsRegistry) IncrementRequests(endpoint, method, status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests[endpoint+"/"+method+"/"+status]++
}

func (m *MockMetricsRegistry) RecordRequestLatency(endpoint, method string, duration time.Duration) {}

func (m *MockMetricsRegistry) IncrementDeviceRequests(device string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeviceRequests[device]++
}

func (m *MockMetricsRegistry) IncrementUpstreamRequests(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpstreamOutcomes[outcome]++
}

func (m *MockMetricsRegistry) RecordUpstreamLatency(duration time.Duration) {}

func (m *MockMetricsRegistry) IncrementIPFallbacks() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.IPFallbacks++
}

func (m *MockMetricsRegistry) AddOffersDeduped(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Deduped += count
}

func (m *MockMetricsRegistry) RecordOffersReturned(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Returned = append(m.Returned, count)
}
