package hunter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deenabandi004-byte/Final-offerloop-sub001/internal/resilience"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient("test-key", WithBaseURL(srv.URL))
}

func TestFind_Success(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/email-finder", r.URL.Path)
		assert.Equal(t, "jane", r.URL.Query().Get("first_name"))
		assert.Equal(t, "doe", r.URL.Query().Get("last_name"))
		assert.Equal(t, "acme.com", r.URL.Query().Get("domain"))
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"email": "jane.doe@acme.com", "score": 92},
		})
	})

	res, err := c.Find(context.Background(), "jane", "doe", "acme.com")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "jane.doe@acme.com", res.Email)
	assert.Equal(t, 92, res.Score)
}

func TestFind_NoCandidate(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"email": "", "score": 0}})
	})

	res, err := c.Find(context.Background(), "jane", "doe", "acme.com")
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestFind_RequiresArguments(t *testing.T) {
	c := NewClient("k")
	_, err := c.Find(context.Background(), "", "doe", "acme.com")
	assert.Error(t, err)
}

func TestVerify_Score(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/email-verifier", r.URL.Path)
		assert.Equal(t, "x@acme.com", r.URL.Query().Get("email"))
		_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"score": 85}})
	})

	score, err := c.Verify(context.Background(), "x@acme.com")
	require.NoError(t, err)
	assert.Equal(t, 85, score)
}

func TestDomainPattern(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/domain-search", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"pattern": "{first}.{last}"}})
	})

	pattern, err := c.DomainPattern(context.Background(), "acme.com")
	require.NoError(t, err)
	assert.Equal(t, "{first}.{last}", pattern)
}

func TestGet_TransientOn5xx(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := c.Verify(context.Background(), "x@acme.com")
	require.Error(t, err)
	assert.True(t, resilience.IsTransient(err))
}

func TestGet_PlainErrorOn4xx(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"errors":["invalid"]}`, http.StatusBadRequest)
	})

	_, err := c.Verify(context.Background(), "x@acme.com")
	require.Error(t, err)
	assert.False(t, resilience.IsTransient(err))
}
