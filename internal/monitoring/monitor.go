package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus collectors, registered once and shared by every Monitor.
var (
	turnsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "comanda_conversation_turns_total",
		Help: "User turns handled by the dialogue orchestrator.",
	})
	escalationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "comanda_escalations_total",
		Help: "Pending questions created for the kitchen.",
	})
	faqHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "comanda_faq_hits_total",
		Help: "Turns answered from the FAQ without an LLM call.",
	})
	llmCallsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "comanda_llm_calls_total",
		Help: "Completion provider invocations.",
	})
	llmFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "comanda_llm_failures_total",
		Help: "Completion provider invocations that returned an error.",
	})
	ordersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "comanda_orders_created_total",
		Help: "Orders confirmed into the kitchen queue.",
	})
)

// Monitor collects and provides runtime metrics for the assistant.
type Monitor struct {
	metrics      map[string]interface{}
	metricsMutex sync.RWMutex
	startTime    time.Time
}

// NewMonitor creates a new monitoring instance
func NewMonitor() *Monitor {
	return &Monitor{
		metrics:   make(map[string]interface{}),
		startTime: time.Now(),
	}
}

// RecordMetric records a metric value
func (m *Monitor) RecordMetric(name string, value interface{}) {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	m.metrics[name] = value
}

// GetMetric returns a specific metric value
func (m *Monitor) GetMetric(name string) (interface{}, bool) {
	m.metricsMutex.RLock()
	defer m.metricsMutex.RUnlock()
	value, exists := m.metrics[name]
	return value, exists
}

// GetMetrics returns all current metrics
func (m *Monitor) GetMetrics() map[string]interface{} {
	m.metricsMutex.RLock()
	defer m.metricsMutex.RUnlock()

	// Create a copy to avoid concurrent map access
	metrics := make(map[string]interface{}, len(m.metrics))
	for k, v := range m.metrics {
		metrics[k] = v
	}

	// Add system metrics
	metrics["uptime_seconds"] = time.Since(m.startTime).Seconds()

	return metrics
}

// Reset clears all metrics
func (m *Monitor) Reset() {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	m.metrics = make(map[string]interface{})
}

func (m *Monitor) incr(name string) {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	n, _ := m.metrics[name].(int64)
	m.metrics[name] = n + 1
}

// RecordTurn counts a handled user turn.
func (m *Monitor) RecordTurn() {
	turnsTotal.Inc()
	m.incr("conversation_turns")
}

// RecordEscalation counts a pending question created for the kitchen.
func (m *Monitor) RecordEscalation() {
	escalationsTotal.Inc()
	m.incr("escalations")
}

// RecordFAQHit counts a turn answered from the FAQ.
func (m *Monitor) RecordFAQHit() {
	faqHitsTotal.Inc()
	m.incr("faq_hits")
}

// RecordLLMCall counts a completion invocation and whether it failed.
func (m *Monitor) RecordLLMCall(err error) {
	llmCallsTotal.Inc()
	m.incr("llm_calls")
	if err != nil {
		llmFailuresTotal.Inc()
		m.incr("llm_failures")
	}
}

// RecordOrderCreated counts a confirmed order.
func (m *Monitor) RecordOrderCreated() {
	ordersCreatedTotal.Inc()
	m.incr("orders_created")
}
