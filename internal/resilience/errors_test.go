package resilience

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"transient wrapper", NewTransientError(errors.New("x"), 503), true},
		{"wrapped transient", fmt.Errorf("outer: %w", NewTransientError(errors.New("x"), 500)), true},
		{"rate limit", NewRateLimitError(errors.New("slow down"), time.Second), true},
		{"permanent wrapper", NewPermanentError(errors.New("bad query"), 400), false},
		{"plain error", errors.New("something broke"), false},
		{"connection reset string", errors.New("read tcp: connection reset by peer"), true},
		{"timeout string", errors.New("dial tcp: i/o timeout"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTransient(tt.err); got != tt.want {
				t.Errorf("IsTransient(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsTransientHTTPStatus(t *testing.T) {
	for _, code := range []int{408, 429, 500, 502, 503, 504} {
		if !IsTransientHTTPStatus(code) {
			t.Errorf("expected %d to be transient", code)
		}
	}
	for _, code := range []int{200, 400, 401, 403, 404, 422} {
		if IsTransientHTTPStatus(code) {
			t.Errorf("expected %d to be non-transient", code)
		}
	}
}

func TestRetryAfterHint(t *testing.T) {
	if got := RetryAfterHint(errors.New("plain")); got != 0 {
		t.Errorf("expected zero hint for plain error, got %v", got)
	}

	err := fmt.Errorf("search: %w", NewRateLimitError(errors.New("429"), 5*time.Second))
	if got := RetryAfterHint(err); got != 5*time.Second {
		t.Errorf("expected 5s hint, got %v", got)
	}
}

func TestIsPermanent(t *testing.T) {
	err := fmt.Errorf("query shape: %w", NewPermanentError(errors.New("bad field"), 422))
	if !IsPermanent(err) {
		t.Error("expected wrapped PermanentError to be detected")
	}
	if IsPermanent(NewTransientError(errors.New("x"), 503)) {
		t.Error("transient must not be permanent")
	}
}
