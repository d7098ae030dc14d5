package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics provides basic in-memory counters.
type Metrics struct {
	mu                sync.Mutex
	requestCount      map[string]int64
	errorCount        map[string]int64
	sweepCount        int64
	violationCount    map[string]int64
	notificationCount map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount:      make(map[string]int64),
		errorCount:        make(map[string]int64),
		violationCount:    make(map[string]int64),
		notificationCount: make(map[string]int64),
	}
}

// RecordRequest increments counters for HTTP requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pathKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// RecordSweep counts completed SLA sweeps.
func (m *Metrics) RecordSweep() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweepCount++
}

// RecordViolation counts newly detected violations per deadline type.
func (m *Metrics) RecordViolation(violationType string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.violationCount[violationType]++
}

// RecordNotification counts dispatch attempts per channel and outcome.
func (m *Metrics) RecordNotification(channel string, ok bool) {
	if m == nil {
		return
	}
	key := channel + "|sent"
	if !ok {
		key = channel + "|failed"
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notificationCount[key]++
}

// ViolationCount returns the counter for a deadline type.
func (m *Metrics) ViolationCount(violationType string) int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.violationCount[violationType]
}

// SweepCount returns the number of completed sweeps.
func (m *Metrics) SweepCount() int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sweepCount
}

func pathKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
