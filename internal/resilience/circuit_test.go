package resilience

import (
	"errors"
	"testing"
	"time"
)

func trippingErr() error {
	return NewTransientError(errors.New("upstream down"), 503)
}

func TestCircuit_OpensAfterThreshold(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 3})

	for i := 0; i < 3; i++ {
		if err := cb.Allow(); err != nil {
			t.Fatalf("request %d unexpectedly rejected: %v", i, err)
		}
		cb.Record(trippingErr())
	}

	if cb.State() != CircuitOpen {
		t.Fatalf("expected open state, got %v", cb.State())
	}
	if err := cb.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("expected ErrCircuitOpen, got %v", err)
	}
}

func TestCircuit_NonTrippingErrorsDoNotOpen(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 2})

	// Empty results and malformed queries say nothing about service health.
	for i := 0; i < 10; i++ {
		_ = cb.Allow()
		cb.Record(NewPermanentError(errors.New("bad query"), 400))
	}

	if cb.State() != CircuitClosed {
		t.Errorf("permanent errors must not trip the breaker, state=%v", cb.State())
	}
}

func TestCircuit_HalfOpenRecovery(t *testing.T) {
	now := time.Now()
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 1,
		ResetTimeout:     10 * time.Second,
	})
	cb.nowFunc = func() time.Time { return now }

	_ = cb.Allow()
	cb.Record(trippingErr())
	if cb.State() != CircuitOpen {
		t.Fatalf("expected open, got %v", cb.State())
	}

	// Before the reset timeout the breaker rejects.
	if err := cb.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected rejection before reset timeout, got %v", err)
	}

	// After the timeout a probe is allowed, and success closes the circuit.
	now = now.Add(11 * time.Second)
	if err := cb.Allow(); err != nil {
		t.Fatalf("expected probe to be allowed, got %v", err)
	}
	cb.Record(nil)
	if cb.State() != CircuitClosed {
		t.Errorf("expected closed after successful probe, got %v", cb.State())
	}
}

func TestCircuit_HalfOpenFailureReopens(t *testing.T) {
	now := time.Now()
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 1,
		ResetTimeout:     10 * time.Second,
	})
	cb.nowFunc = func() time.Time { return now }

	_ = cb.Allow()
	cb.Record(trippingErr())

	now = now.Add(11 * time.Second)
	if err := cb.Allow(); err != nil {
		t.Fatalf("expected probe allowed, got %v", err)
	}
	cb.Record(trippingErr())

	if cb.State() != CircuitOpen {
		t.Errorf("expected reopened circuit, got %v", cb.State())
	}
}

func TestCircuit_StateChangeCallback(t *testing.T) {
	var transitions []string
	cb := NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 1,
		OnStateChange: func(from, to CircuitState) {
			transitions = append(transitions, from.String()+"->"+to.String())
		},
	})

	_ = cb.Allow()
	cb.Record(trippingErr())
	cb.Reset()

	want := []string{"closed->open", "open->closed"}
	if len(transitions) != len(want) {
		t.Fatalf("expected %v, got %v", want, transitions)
	}
	for i := range want {
		if transitions[i] != want[i] {
			t.Errorf("transition %d: expected %s, got %s", i, want[i], transitions[i])
		}
	}
}

func TestFromCircuitConfig(t *testing.T) {
	cfg := FromCircuitConfig(7, 60)
	if cfg.FailureThreshold != 7 {
		t.Errorf("expected threshold 7, got %d", cfg.FailureThreshold)
	}
	if cfg.ResetTimeout != 60*time.Second {
		t.Errorf("expected 60s reset, got %v", cfg.ResetTimeout)
	}

	def := FromCircuitConfig(0, 0)
	if def.FailureThreshold != DefaultCircuitBreakerConfig().FailureThreshold {
		t.Errorf("expected default threshold, got %d", def.FailureThreshold)
	}
}
