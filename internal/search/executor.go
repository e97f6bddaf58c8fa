// Package search runs queries against the person-search index: scroll
// pagination with retries and a circuit breaker per page, and the
// progressive-relaxation ladder that widens a query until enough raw
// candidates come back.
package search

import (
	"context"
	"errors"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/deenabandi004-byte/Final-offerloop-sub001/internal/model"
	"github.com/deenabandi004-byte/Final-offerloop-sub001/internal/resilience"
	"github.com/deenabandi004-byte/Final-offerloop-sub001/pkg/peoplesearch"
)

// maxScrollPages bounds one query's pagination regardless of what the index
// claims is available.
const maxScrollPages = 10

// Stats summarizes one executed query.
type Stats struct {
	Pages   int
	Fetched int
}

// Executor pages through index results for a single query. Each page fetch
// goes through the retry policy; the breaker spans pages so a dying index
// stops the scroll instead of burning the full retry budget per page.
type Executor struct {
	client   peoplesearch.Client
	retry    resilience.RetryConfig
	breaker  *resilience.CircuitBreaker
	pageSize int
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithRetryConfig overrides the default retry policy.
func WithRetryConfig(cfg resilience.RetryConfig) ExecutorOption {
	return func(e *Executor) {
		e.retry = cfg
	}
}

// WithBreaker sets a shared circuit breaker. Callers running several
// executors against the same index should share one.
func WithBreaker(cb *resilience.CircuitBreaker) ExecutorOption {
	return func(e *Executor) {
		e.breaker = cb
	}
}

// WithPageSize overrides the per-page fetch size. Values are clamped to the
// index maximum.
func WithPageSize(n int) ExecutorOption {
	return func(e *Executor) {
		if n > 0 {
			e.pageSize = min(n, peoplesearch.MaxPageSize)
		}
	}
}

// NewExecutor creates an executor over the given client.
func NewExecutor(client peoplesearch.Client, opts ...ExecutorOption) *Executor {
	e := &Executor{
		client:   client,
		retry:    resilience.DefaultRetryConfig(),
		breaker:  resilience.NewCircuitBreaker(resilience.DefaultCircuitBreakerConfig()),
		pageSize: peoplesearch.MaxPageSize,
	}
	e.retry.OnRetry = resilience.RetryLogger("peoplesearch", "search")
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute pages through results for query until want records are collected,
// the scroll ends, or the page bound is hit. A 404 on the first page is a
// valid empty result: ([], stats, nil). A 404 mid-scroll ends the scroll and
// returns what was already collected.
func (e *Executor) Execute(ctx context.Context, query map[string]any, want int) ([]model.RawPersonRecord, Stats, error) {
	if want <= 0 {
		return nil, Stats{}, eris.Errorf("search: want %d records, need at least 1", want)
	}

	var (
		records []model.RawPersonRecord
		stats   Stats
		scroll  string
	)

	for len(records) < want && stats.Pages < maxScrollPages {
		size := min(want-len(records), e.pageSize)

		resp, err := e.fetchPage(ctx, peoplesearch.SearchRequest{
			Query:       query,
			Size:        size,
			ScrollToken: scroll,
		})
		if errors.Is(err, peoplesearch.ErrNoResults) {
			break
		}
		if err != nil {
			return records, stats, err
		}

		stats.Pages++
		stats.Fetched += len(resp.Records)
		records = append(records, resp.Records...)

		if resp.ScrollToken == "" || len(resp.Records) == 0 {
			break
		}
		scroll = resp.ScrollToken
	}

	zap.L().Debug("search query executed",
		zap.Int("pages", stats.Pages),
		zap.Int("fetched", stats.Fetched),
		zap.Int("want", want))

	return records, stats, nil
}

// fetchPage fetches one page under the breaker and the retry policy.
// ErrNoResults bypasses both: it is a result, not a failure.
func (e *Executor) fetchPage(ctx context.Context, req peoplesearch.SearchRequest) (*peoplesearch.SearchResponse, error) {
	if err := e.breaker.Allow(); err != nil {
		return nil, eris.Wrap(err, "search: index unavailable")
	}

	resp, err := resilience.DoVal(ctx, e.retry, func(ctx context.Context) (*peoplesearch.SearchResponse, error) {
		return e.client.Search(ctx, req)
	})
	e.breaker.Record(err)
	return resp, err
}

// RetrieveOne fetches a single profile by index ID with the same retry and
// breaker treatment as a search page.
func (e *Executor) RetrieveOne(ctx context.Context, id string) (*model.RawPersonRecord, error) {
	if err := e.breaker.Allow(); err != nil {
		return nil, eris.Wrap(err, "search: index unavailable")
	}

	rec, err := resilience.DoVal(ctx, e.retry, func(ctx context.Context) (*model.RawPersonRecord, error) {
		return e.client.Retrieve(ctx, id)
	})
	e.breaker.Record(err)
	return rec, err
}
