// Package metrics provides interfaces and implementations for collecting
// execution metrics from the instruction processor.
//
// The Metrics interface supports counters and gauges for monitoring
// operational health; the processor reports processed and failed instruction
// counts through a Collection.
package metrics

import (
	"context"
	"log/slog"
	"sync"
)

// Counter names reported by the instruction processor.
const (
	CounterInstructionsProcessed = "instructions_processed"
	CounterInstructionsFailed    = "instructions_failed"
)

// Gauge names reported by the instruction processor.
const (
	GaugeStoredAccounts = "stored_accounts"
)

// Metrics defines the interface for collecting execution metrics.
// Implementations can send metrics to various backends.
type Metrics interface {
	// UpdateGauge sets a gauge metric to the specified value.
	UpdateGauge(ctx context.Context, name string, value float64) error

	// IncrementCounter increments a counter metric by the specified value.
	IncrementCounter(ctx context.Context, name string, value uint64) error
}

// Collection manages multiple Metrics implementations and delegates calls to
// all of them.
type Collection struct {
	mu      sync.RWMutex
	metrics []Metrics
}

// NewCollection creates a new Collection with the given implementations.
func NewCollection(metrics ...Metrics) *Collection {
	return &Collection{
		metrics: metrics,
	}
}

// Add adds a new Metrics implementation to the collection.
func (c *Collection) Add(m Metrics) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.metrics = append(c.metrics, m)
}

// UpdateGauge updates a gauge on all metrics in the collection.
func (c *Collection) UpdateGauge(ctx context.Context, name string, value float64) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, m := range c.metrics {
		if err := m.UpdateGauge(ctx, name, value); err != nil {
			return err
		}
	}
	return nil
}

// IncrementCounter increments a counter on all metrics in the collection.
func (c *Collection) IncrementCounter(ctx context.Context, name string, value uint64) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, m := range c.metrics {
		if err := m.IncrementCounter(ctx, name, value); err != nil {
			return err
		}
	}
	return nil
}

// LogMetrics is a Metrics implementation that records values through slog at
// debug level. Useful for development and tests.
type LogMetrics struct {
	logger *slog.Logger

	mu       sync.Mutex
	counters map[string]uint64
	gauges   map[string]float64
}

// NewLogMetrics creates a LogMetrics backed by the given logger.
func NewLogMetrics(logger *slog.Logger) *LogMetrics {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMetrics{
		logger:   logger,
		counters: make(map[string]uint64),
		gauges:   make(map[string]float64),
	}
}

// UpdateGauge implements Metrics.
func (m *LogMetrics) UpdateGauge(ctx context.Context, name string, value float64) error {
	m.mu.Lock()
	m.gauges[name] = value
	m.mu.Unlock()

	m.logger.DebugContext(ctx, "gauge", "name", name, "value", value)
	return nil
}

// IncrementCounter implements Metrics.
func (m *LogMetrics) IncrementCounter(ctx context.Context, name string, value uint64) error {
	m.mu.Lock()
	m.counters[name] += value
	total := m.counters[name]
	m.mu.Unlock()

	m.logger.DebugContext(ctx, "counter", "name", name, "total", total)
	return nil
}

// Counter returns the accumulated value of a counter.
func (m *LogMetrics) Counter(name string) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counters[name]
}

// Gauge returns the last recorded value of a gauge.
func (m *LogMetrics) Gauge(name string) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gauges[name]
}
