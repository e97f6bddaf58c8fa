// Package domains is the client for the domain-resolution service: best-guess
// sending domain for a company name. Results are cached by the caller; this
// client is a thin wire wrapper.
package domains

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/deenabandi004-byte/Final-offerloop-sub001/internal/resilience"
)

// Default base URL for the company-to-domain API.
const defaultBaseURL = "https://company.clearbit.com/v1"

// Client resolves company names to sending domains.
type Client interface {
	// Resolve returns the best-guess domain for a company. A known website
	// short-circuits the lookup. "" with nil error means no guess.
	Resolve(ctx context.Context, company, website string) (string, error)
}

// APIError is returned on a non-2xx response.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("domains: HTTP %d: %s", e.StatusCode, e.Body)
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

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a new domain-resolution client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 15 * time.Second,
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

func (c *httpClient) Resolve(ctx context.Context, company, website string) (string, error) {
	// A caller-supplied website is authoritative; no network call needed.
	if d := DomainFromWebsite(website); d != "" {
		return d, nil
	}
	if strings.TrimSpace(company) == "" {
		return "", eris.New("domains: empty company name")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", eris.Wrap(err, "domains: rate limiter")
	}

	q := url.Values{}
	q.Set("name", company)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/domains/find?"+q.Encode(), nil)
	if err != nil {
		return "", eris.Wrap(err, "domains: create request")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", eris.Wrap(err, "domains: execute request")
	}
	defer resp.Body.Close() //nolint:errcheck

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", eris.Wrap(err, "domains: read response body")
	}

	if resp.StatusCode == http.StatusNotFound {
		return "", nil // no guess for this company
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: string(data)}
		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			return "", resilience.NewTransientError(apiErr, resp.StatusCode)
		}
		return "", apiErr
	}

	var out struct {
		Domain string `json:"domain"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return "", eris.Wrap(err, "domains: decode response")
	}
	return strings.ToLower(out.Domain), nil
}

// DomainFromWebsite extracts the bare domain from a website URL, or "" when
// the input is empty or unparseable.
func DomainFromWebsite(website string) string {
	website = strings.TrimSpace(website)
	if website == "" {
		return ""
	}
	if !strings.Contains(website, "://") {
		website = "https://" + website
	}
	u, err := url.Parse(website)
	if err != nil || u.Host == "" {
		return ""
	}
	host := strings.ToLower(u.Host)
	host = strings.TrimPrefix(host, "www.")
	if i := strings.Index(host, ":"); i >= 0 {
		host = host[:i]
	}
	return host
}
