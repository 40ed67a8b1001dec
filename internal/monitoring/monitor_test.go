package monitoring

import (
	"errors"
	"testing"
)

func TestMonitor_GetMetrics(t *testing.T) {
	m := NewMonitor()
	m.RecordMetric("test_metric", 42)

	metrics := m.GetMetrics()

	// Check if our metric is present
	value, exists := metrics["test_metric"]
	if !exists {
		t.Fatalf("Expected 'test_metric' to be present in metrics, but it was not")
	}

	// Check value
	if value != 42 {
		t.Errorf("Expected 'test_metric' to be 42, but got %v", value)
	}

	// Check uptime presence
	_, exists = metrics["uptime_seconds"]
	if !exists {
		t.Errorf("Expected 'uptime_seconds' to be present in metrics, but it was not")
	}
}

func TestMonitor_Counters(t *testing.T) {
	m := NewMonitor()

	m.RecordTurn()
	m.RecordTurn()
	m.RecordEscalation()
	m.RecordFAQHit()
	m.RecordOrderCreated()

	metrics := m.GetMetrics()

	if v, _ := metrics["conversation_turns"].(int64); v != 2 {
		t.Errorf("Expected 'conversation_turns' to be 2, but got %v", metrics["conversation_turns"])
	}
	if v, _ := metrics["escalations"].(int64); v != 1 {
		t.Errorf("Expected 'escalations' to be 1, but got %v", metrics["escalations"])
	}
	if v, _ := metrics["faq_hits"].(int64); v != 1 {
		t.Errorf("Expected 'faq_hits' to be 1, but got %v", metrics["faq_hits"])
	}
	if v, _ := metrics["orders_created"].(int64); v != 1 {
		t.Errorf("Expected 'orders_created' to be 1, but got %v", metrics["orders_created"])
	}
}

func TestMonitor_RecordLLMCall(t *testing.T) {
	m := NewMonitor()

	m.RecordLLMCall(nil)
	m.RecordLLMCall(errors.New("boom"))

	metrics := m.GetMetrics()

	if v, _ := metrics["llm_calls"].(int64); v != 2 {
		t.Errorf("Expected 'llm_calls' to be 2, but got %v", metrics["llm_calls"])
	}
	if v, _ := metrics["llm_failures"].(int64); v != 1 {
		t.Errorf("Expected 'llm_failures' to be 1, but got %v", metrics["llm_failures"])
	}
}

func TestMonitor_Reset(t *testing.T) {
	m := NewMonitor()
	m.RecordMetric("test_metric", 42)

	m.Reset()

	metrics := m.GetMetrics()

	// Our test metric should be gone, but uptime should still be there
	_, exists := metrics["test_metric"]
	if exists {
		t.Errorf("Expected 'test_metric' to be removed after Reset(), but it was present")
	}

	// Uptime should still be present (it's added on GetMetrics call)
	_, exists = metrics["uptime_seconds"]
	if !exists {
		t.Errorf("Expected 'uptime_seconds' to be present in metrics, but it was not")
	}
}
