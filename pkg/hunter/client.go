// Package hunter is the client for the active email-finder and
// email-verification service. Scores are 0..100 confidence values; the
// resolution layer owns the acceptance threshold.
package hunter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/deenabandi004-byte/Final-offerloop-sub001/internal/resilience"
)

// Default base URL for the Hunter v2 API.
const defaultBaseURL = "https://api.hunter.io/v2"

// Client defines the email finder/verifier operations.
type Client interface {
	// Find looks up an address for (first, last, domain). A nil result with
	// nil error means the service had no candidate.
	Find(ctx context.Context, first, last, domain string) (*FindResult, error)
	// Verify returns the deliverability confidence score for an address.
	Verify(ctx context.Context, email string) (int, error)
	// DomainPattern returns the known send pattern for a domain
	// (e.g. "{first}.{last}"), or "" if unknown.
	DomainPattern(ctx context.Context, domain string) (string, error)
}

// FindResult is a located address plus the service's match confidence.
type FindResult struct {
	Email string
	Score int
}

// APIError is returned on a non-2xx response.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("hunter: HTTP %d: %s", e.StatusCode, e.Body)
}

// Option configures the httpClient.
type Option func(*httpClient)

// WithBaseURL overrides the default base URL.
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = u
	}
}

// WithHTTPClient sets a custom *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// httpClient implements Client using net/http.
type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a new Hunter client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter: rate.NewLimiter(10, 2),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) Find(ctx context.Context, first, last, domain string) (*FindResult, error) {
	if first == "" || last == "" || domain == "" {
		return nil, eris.New("hunter: find requires first, last and domain")
	}

	q := url.Values{}
	q.Set("first_name", first)
	q.Set("last_name", last)
	q.Set("domain", domain)

	var resp struct {
		Data struct {
			Email string `json:"email"`
			Score int    `json:"score"`
		} `json:"data"`
	}
	if err := c.get(ctx, "/email-finder", q, &resp); err != nil {
		return nil, eris.Wrap(err, "hunter: email finder")
	}

	if resp.Data.Email == "" {
		return nil, nil
	}
	return &FindResult{Email: resp.Data.Email, Score: resp.Data.Score}, nil
}

func (c *httpClient) Verify(ctx context.Context, email string) (int, error) {
	if email == "" {
		return 0, eris.New("hunter: verify requires an email")
	}

	q := url.Values{}
	q.Set("email", email)

	var resp struct {
		Data struct {
			Score int `json:"score"`
		} `json:"data"`
	}
	if err := c.get(ctx, "/email-verifier", q, &resp); err != nil {
		return 0, eris.Wrap(err, "hunter: email verifier")
	}
	return resp.Data.Score, nil
}

func (c *httpClient) DomainPattern(ctx context.Context, domain string) (string, error) {
	if domain == "" {
		return "", eris.New("hunter: domain pattern requires a domain")
	}

	q := url.Values{}
	q.Set("domain", domain)

	var resp struct {
		Data struct {
			Pattern string `json:"pattern"`
		} `json:"data"`
	}
	if err := c.get(ctx, "/domain-search", q, &resp); err != nil {
		return "", eris.Wrap(err, "hunter: domain search")
	}
	return resp.Data.Pattern, nil
}

func (c *httpClient) get(ctx context.Context, path string, q url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return eris.Wrap(err, "rate limiter")
	}

	q.Set("api_key", c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return eris.Wrap(err, "create request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrap(err, "execute request")
	}
	defer resp.Body.Close() //nolint:errcheck

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: string(data)}
		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			return resilience.NewTransientError(apiErr, resp.StatusCode)
		}
		return apiErr
	}

	if err := json.Unmarshal(data, out); err != nil {
		return eris.Wrap(err, "decode response")
	}
	return nil
}
