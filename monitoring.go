package fieldcipher

import (
	"context"
	"sync"
	"time"
)

// MetricsCollector defines the interface for collecting and reporting metrics.
type MetricsCollector interface {
	// Counters
	IncrementCounter(name string, tags map[string]string)

	// Histograms/Timing
	RecordTiming(name string, duration time.Duration, tags map[string]string)

	// Flush any buffered metrics
	Flush() error
}

// ObservabilityHook defines hooks for monitoring record transforms.
type ObservabilityHook interface {
	// Called before a record's field loop starts
	OnProcessStart(ctx context.Context, operation string, metadata map[string]any)

	// Called after a record completes (success or failure)
	OnProcessComplete(ctx context.Context, operation string, duration time.Duration, err error, metadata map[string]any)

	// Called when a field transform fails
	OnError(ctx context.Context, operation string, err error, metadata map[string]any)
}

// NoOpMetricsCollector is a no-op implementation of MetricsCollector.
type NoOpMetricsCollector struct{}

func (n *NoOpMetricsCollector) IncrementCounter(name string, tags map[string]string) {}
func (n *NoOpMetricsCollector) RecordTiming(name string, duration time.Duration, tags map[string]string) {
}
func (n *NoOpMetricsCollector) Flush() error { return nil }

// NoOpObservabilityHook is a no-op implementation of ObservabilityHook.
type NoOpObservabilityHook struct{}

func (n *NoOpObservabilityHook) OnProcessStart(ctx context.Context, operation string, metadata map[string]any) {
}
func (n *NoOpObservabilityHook) OnProcessComplete(ctx context.Context, operation string, duration time.Duration, err error, metadata map[string]any) {
}
func (n *NoOpObservabilityHook) OnError(ctx context.Context, operation string, err error, metadata map[string]any) {
}

// TimingMetric is a recorded timing observation.
type TimingMetric struct {
	Name     string
	Duration time.Duration
	Tags     map[string]string
	Time     time.Time
}

// InMemoryMetricsCollector is a simple in-memory implementation for testing
// and development.
type InMemoryMetricsCollector struct {
	mu       sync.Mutex
	counters map[string]int64
	timings  []TimingMetric
}

// NewInMemoryMetricsCollector creates an empty in-memory collector.
func NewInMemoryMetricsCollector() *InMemoryMetricsCollector {
	return &InMemoryMetricsCollector{counters: make(map[string]int64)}
}

func (m *InMemoryMetricsCollector) IncrementCounter(name string, tags map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[name]++
}

func (m *InMemoryMetricsCollector) RecordTiming(name string, duration time.Duration, tags map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timings = append(m.timings, TimingMetric{Name: name, Duration: duration, Tags: tags, Time: time.Now()})
}

func (m *InMemoryMetricsCollector) Flush() error { return nil }

// CounterValue returns the current value of a counter.
func (m *InMemoryMetricsCollector) CounterValue(name string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counters[name]
}

// Timings returns a copy of the recorded timing observations.
func (m *InMemoryMetricsCollector) Timings() []TimingMetric {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]TimingMetric, len(m.timings))
	copy(out, m.timings)
	return out
}
