package main

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/deenabandi004-byte/Final-offerloop-sub001/internal/alias"
	"github.com/deenabandi004-byte/Final-offerloop-sub001/internal/email"
	"github.com/deenabandi004-byte/Final-offerloop-sub001/internal/enrich"
	"github.com/deenabandi004-byte/Final-offerloop-sub001/internal/location"
	"github.com/deenabandi004-byte/Final-offerloop-sub001/internal/query"
	"github.com/deenabandi004-byte/Final-offerloop-sub001/internal/resilience"
	"github.com/deenabandi004-byte/Final-offerloop-sub001/internal/search"
	anthropicpkg "github.com/deenabandi004-byte/Final-offerloop-sub001/pkg/anthropic"
	"github.com/deenabandi004-byte/Final-offerloop-sub001/pkg/domains"
	"github.com/deenabandi004-byte/Final-offerloop-sub001/pkg/hunter"
	"github.com/deenabandi004-byte/Final-offerloop-sub001/pkg/peoplesearch"
)

// initPipeline validates the config for mode and assembles the enrichment
// pipeline with all service clients.
func initPipeline(mode string) (*enrich.Pipeline, error) {
	if err := cfg.Validate(mode); err != nil {
		return nil, err
	}

	indexClient := peoplesearch.NewClient(cfg.PeopleSearch.Key,
		peoplesearch.WithBaseURL(cfg.PeopleSearch.BaseURL),
		peoplesearch.WithRateLimit(cfg.PeopleSearch.RateLimitRPS),
	)
	hunterClient := hunter.NewClient(cfg.Hunter.Key, hunter.WithBaseURL(cfg.Hunter.BaseURL))
	domainsClient := domains.NewClient(cfg.Domains.Key, domains.WithBaseURL(cfg.Domains.BaseURL))

	retry := resilience.FromRetryConfig(
		cfg.Resilience.RetryMaxAttempts,
		cfg.Resilience.RetryInitialBackoffMs,
		cfg.Resilience.RetryMaxBackoffMs,
		cfg.Resilience.RetryMultiplier,
		cfg.Resilience.RetryJitterFraction,
	)
	retry.OnRetry = resilience.RetryLogger("peoplesearch", "search")
	breaker := resilience.NewCircuitBreaker(resilience.FromCircuitConfig(
		cfg.Resilience.CircuitFailureThreshold,
		cfg.Resilience.CircuitResetSecs,
	))

	exec := search.NewExecutor(indexClient,
		search.WithRetryConfig(retry),
		search.WithBreaker(breaker),
	)
	resolver := email.NewResolver(hunterClient, domainsClient)

	opts := []enrich.PipelineOption{}

	if cfg.Anthropic.Key != "" {
		aiClient := anthropicpkg.NewClient(cfg.Anthropic.Key)
		opts = append(opts, enrich.WithTitleEnricher(query.NewLLMEnricher(aiClient, cfg.Anthropic.Model)))
	}
	if cfg.Search.LenientAlumni {
		opts = append(opts, enrich.WithLenientAlumni())
	}

	if cfg.Search.PeerTable != "" {
		expander := alias.NewExpander()
		if err := expander.LoadPeerTable(cfg.Search.PeerTable); err != nil {
			return nil, eris.Wrap(err, "load peer table")
		}
		opts = append(opts, enrich.WithAliasExpander(expander))
		zap.L().Info("loaded school peer table", zap.String("path", cfg.Search.PeerTable))
	}
	if cfg.Search.MetroTable != "" {
		selector := location.NewSelector()
		if err := selector.LoadMetroTable(cfg.Search.MetroTable); err != nil {
			return nil, eris.Wrap(err, "load metro table")
		}
		opts = append(opts, enrich.WithLocationSelector(selector))
		zap.L().Info("loaded metro table", zap.String("path", cfg.Search.MetroTable))
	}

	return enrich.NewPipeline(exec, resolver, opts...), nil
}
