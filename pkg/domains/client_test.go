package domains

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_WebsiteShortCircuits(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := NewClient("k", WithBaseURL(srv.URL))
	d, err := c.Resolve(context.Background(), "Acme", "https://www.acme.com/about")
	require.NoError(t, err)
	assert.Equal(t, "acme.com", d)
	assert.False(t, called, "known website must not trigger a lookup")
}

func TestResolve_Lookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/domains/find", r.URL.Path)
		assert.Equal(t, "Acme Corp", r.URL.Query().Get("name"))
		_ = json.NewEncoder(w).Encode(map[string]string{"domain": "Acme.com"})
	}))
	defer srv.Close()

	c := NewClient("k", WithBaseURL(srv.URL))
	d, err := c.Resolve(context.Background(), "Acme Corp", "")
	require.NoError(t, err)
	assert.Equal(t, "acme.com", d)
}

func TestResolve_NotFoundMeansNoGuess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient("k", WithBaseURL(srv.URL))
	d, err := c.Resolve(context.Background(), "Unknown Co", "")
	require.NoError(t, err)
	assert.Empty(t, d)
}

func TestResolve_EmptyCompany(t *testing.T) {
	c := NewClient("k")
	_, err := c.Resolve(context.Background(), "  ", "")
	assert.Error(t, err)
}

func TestDomainFromWebsite(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"https://www.acme.com", "acme.com"},
		{"http://acme.com/path?x=1", "acme.com"},
		{"acme.io", "acme.io"},
		{"https://sub.acme.co.uk:8080", "sub.acme.co.uk"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DomainFromWebsite(tt.in), "input %q", tt.in)
	}
}
