// Package peoplesearch is the client for the external person-search index.
// It speaks the index's boolean-query wire format and maps the index's status
// conventions onto the error taxonomy the search layer expects: 404 is a
// valid empty result, 429 carries a Retry-After hint, remaining 4xx are
// permanent, 5xx are transient.
package peoplesearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/deenabandi004-byte/Final-offerloop-sub001/internal/model"
	"github.com/deenabandi004-byte/Final-offerloop-sub001/internal/resilience"
)

// Default base URL for the person-search API.
const defaultBaseURL = "https://api.peopledatalabs.com/v5"

// MaxPageSize is the index's hard cap on results per page.
const MaxPageSize = 100

// ErrNoResults is returned when the index reports a valid empty result (404).
// It is a signal, not a failure: relaxation proceeds without burning retries.
var ErrNoResults = eris.New("peoplesearch: no matching records")

// Client defines the person-search API operations.
type Client interface {
	Search(ctx context.Context, req SearchRequest) (*SearchResponse, error)
	Retrieve(ctx context.Context, id string) (*model.RawPersonRecord, error)
}

// SearchRequest is the body for POST /person/search.
type SearchRequest struct {
	Query       map[string]any `json:"query"`
	Size        int            `json:"size"`
	ScrollToken string         `json:"scroll_token,omitempty"`
}

// SearchResponse is the response from POST /person/search.
type SearchResponse struct {
	Status      int                     `json:"status"`
	Records     []model.RawPersonRecord `json:"data"`
	ScrollToken string                  `json:"scroll_token"`
	Total       int                     `json:"total"`
}

// retrieveResponse is the response from GET /person/retrieve/{id}.
type retrieveResponse struct {
	Status int                   `json:"status"`
	Data   model.RawPersonRecord `json:"data"`
}

// APIError is returned when the index responds with an unexpected status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("peoplesearch: HTTP %d: %s", e.StatusCode, e.Body)
}

// Option configures the httpClient.
type Option func(*httpClient)

// WithBaseURL overrides the default base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRateLimit overrides the client-side request rate (requests per second).
func WithRateLimit(rps float64) Option {
	return func(c *httpClient) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), max(int(rps), 1))
	}
}

// httpClient implements Client using net/http.
type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a new person-search client. The underlying HTTP client
// pools connections for process lifetime.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter: rate.NewLimiter(5, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	if req.Size <= 0 || req.Size > MaxPageSize {
		return nil, eris.Errorf("peoplesearch: page size %d out of range 1..%d", req.Size, MaxPageSize)
	}

	buf, err := json.Marshal(req)
	if err != nil {
		return nil, eris.Wrap(err, "peoplesearch: marshal search request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/person/search", bytes.NewReader(buf))
	if err != nil {
		return nil, eris.Wrap(err, "peoplesearch: create request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Api-Key", c.apiKey)

	var resp SearchResponse
	if err := c.do(ctx, httpReq, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *httpClient) Retrieve(ctx context.Context, id string) (*model.RawPersonRecord, error) {
	if id == "" {
		return nil, eris.New("peoplesearch: empty profile id")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/person/retrieve/"+id, nil)
	if err != nil {
		return nil, eris.Wrap(err, "peoplesearch: create request")
	}
	httpReq.Header.Set("X-Api-Key", c.apiKey)

	var resp retrieveResponse
	if err := c.do(ctx, httpReq, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// do executes the request and classifies the response status. Callers get
// ErrNoResults, a transient error, a permanent error, or decoded output.
func (c *httpClient) do(ctx context.Context, req *http.Request, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return eris.Wrap(err, "peoplesearch: rate limiter")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrap(err, "peoplesearch: execute request")
	}
	defer resp.Body.Close() //nolint:errcheck

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "peoplesearch: read response body")
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNoResults
	case resp.StatusCode == http.StatusTooManyRequests:
		return resilience.NewRateLimitError(
			&APIError{StatusCode: resp.StatusCode, Body: truncate(data)},
			parseRetryAfter(resp.Header.Get("Retry-After")),
		)
	case resp.StatusCode >= 500:
		return resilience.NewTransientError(
			&APIError{StatusCode: resp.StatusCode, Body: truncate(data)},
			resp.StatusCode,
		)
	case resp.StatusCode >= 400:
		return resilience.NewPermanentError(
			&APIError{StatusCode: resp.StatusCode, Body: truncate(data)},
			resp.StatusCode,
		)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return eris.Wrap(err, "peoplesearch: decode response")
	}
	return nil
}

// parseRetryAfter reads a Retry-After header given in seconds. HTTP-date
// values are ignored; the retry policy falls back to computed backoff.
func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 0
	}
	secs, err := strconv.Atoi(header)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

func truncate(body []byte) string {
	const limit = 512
	if len(body) > limit {
		return string(body[:limit]) + "..."
	}
	return string(body)
}
