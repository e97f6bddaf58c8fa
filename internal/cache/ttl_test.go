package cache

import (
	"errors"
	"testing"
	"time"
)

func TestTTL_GetSet(t *testing.T) {
	c := NewTTL[string, int](time.Minute, 10)
	if _, ok := c.Get("a"); ok {
		t.Fatal("expected miss on empty cache")
	}

	c.Set("a", 1)
	v, ok := c.Get("a")
	if !ok || v != 1 {
		t.Fatalf("expected hit with 1, got %d ok=%v", v, ok)
	}
}

func TestTTL_Expiry(t *testing.T) {
	now := time.Now()
	c := NewTTL[string, int](time.Minute, 10).WithNow(func() time.Time { return now })

	c.Set("a", 1)
	now = now.Add(2 * time.Minute)

	if _, ok := c.Get("a"); ok {
		t.Fatal("expected expired entry to miss")
	}
}

func TestTTL_Bound(t *testing.T) {
	c := NewTTL[int, int](time.Minute, 3)
	for i := 0; i < 10; i++ {
		c.Set(i, i)
	}
	if c.Len() > 3 {
		t.Errorf("cache grew past bound: %d entries", c.Len())
	}
}

func TestTTL_GetOrSet(t *testing.T) {
	c := NewTTL[string, string](time.Minute, 10)

	calls := 0
	compute := func() (string, error) {
		calls++
		return "value", nil
	}

	for i := 0; i < 3; i++ {
		v, err := c.GetOrSet("k", compute)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v != "value" {
			t.Fatalf("got %q", v)
		}
	}
	if calls != 1 {
		t.Errorf("expected 1 compute call, got %d", calls)
	}
}

func TestTTL_GetOrSet_ErrorNotCached(t *testing.T) {
	c := NewTTL[string, string](time.Minute, 10)

	wantErr := errors.New("lookup failed")
	_, err := c.GetOrSet("k", func() (string, error) { return "", wantErr })
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected lookup error, got %v", err)
	}

	if _, ok := c.Get("k"); ok {
		t.Error("failed compute must not populate the cache")
	}
}
