// Package email resolves a best-effort address for each contact through a
// fixed priority chain: verified source email, active finder, known domain
// pattern, default pattern, personal fallback. Resolution never fails a
// batch; the worst outcome is the "unavailable" sentinel.
package email

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/deenabandi004-byte/Final-offerloop-sub001/internal/cache"
	"github.com/deenabandi004-byte/Final-offerloop-sub001/internal/model"
	"github.com/deenabandi004-byte/Final-offerloop-sub001/pkg/domains"
	"github.com/deenabandi004-byte/Final-offerloop-sub001/pkg/hunter"
)

// acceptScore is the minimum confidence for accepting a verified or
// finder-located address.
const acceptScore = 80

// Input is the per-contact material the chain works from. Company is the
// search's target company, not the record's possibly stale employer.
type Input struct {
	FirstName       string
	LastName        string
	Company         string
	Website         string
	SourceWorkEmail string
	PersonalEmails  []string
}

// Result is the chain's outcome plus where the address came from.
type Result struct {
	Candidate model.EmailCandidate
	// Personal is true when the address is a source-provided personal one.
	Personal bool
	// Domain is the resolved target-company domain, "" when unknown.
	Domain string
}

// Resolver runs the priority chain. Domain lookups are cached per distinct
// company so a batch of N contacts at one employer resolves the domain once.
type Resolver struct {
	finder  hunter.Client
	domains domains.Client
	cache   *cache.TTL[string, string]
}

// NewResolver creates a resolver over the given service clients.
func NewResolver(finder hunter.Client, dom domains.Client) *Resolver {
	return &Resolver{
		finder:  finder,
		domains: dom,
		cache:   cache.NewTTL[string, string](time.Hour, 512),
	}
}

// Resolve walks the chain and always returns a usable Result. Service
// failures at any step degrade to the next step, never to an error.
func (r *Resolver) Resolve(ctx context.Context, in Input) Result {
	domain := r.targetDomain(ctx, in.Company, in.Website)
	if domain == "" {
		return r.personalFallback(in, "")
	}

	// Step 1: a source work email already on the target domain, verified.
	// A mismatched domain means a stale employer; skip, never trust it.
	if in.SourceWorkEmail != "" && addressDomain(in.SourceWorkEmail) == domain {
		if score, err := r.finder.Verify(ctx, in.SourceWorkEmail); err == nil && score >= acceptScore {
			return Result{
				Candidate: model.EmailCandidate{
					Address:  in.SourceWorkEmail,
					Source:   model.EmailSourceIndex,
					Verified: true,
				},
				Domain: domain,
			}
		} else if err != nil {
			zap.L().Debug("source email verification failed",
				zap.String("domain", domain), zap.Error(err))
		}
	}

	// Step 2: active finder lookup against the target domain.
	if found, err := r.finder.Find(ctx, in.FirstName, in.LastName, domain); err == nil && found != nil && found.Score >= acceptScore {
		return Result{
			Candidate: model.EmailCandidate{
				Address:  found.Email,
				Source:   model.EmailSourceFinder,
				Verified: true,
			},
			Domain: domain,
		}
	} else if err != nil {
		zap.L().Debug("email finder lookup failed",
			zap.String("domain", domain), zap.Error(err))
	}

	// Step 3: known per-domain send pattern, verified when possible.
	if pattern, err := r.finder.DomainPattern(ctx, domain); err == nil && pattern != "" {
		if addr := GenerateFromPattern(pattern, in.FirstName, in.LastName, domain); addr != "" {
			verified := false
			if score, verr := r.finder.Verify(ctx, addr); verr == nil && score >= acceptScore {
				verified = true
			}
			return Result{
				Candidate: model.EmailCandidate{
					Address:  addr,
					Source:   model.EmailSourcePattern,
					Verified: verified,
				},
				Domain: domain,
			}
		}
	} else if err != nil {
		zap.L().Debug("domain pattern lookup failed",
			zap.String("domain", domain), zap.Error(err))
	}

	// Step 4: fixed first-initial + last-name guess, unverified.
	if addr := DefaultAddress(in.FirstName, in.LastName, domain); addr != "" {
		return Result{
			Candidate: model.EmailCandidate{
				Address: addr,
				Source:  model.EmailSourcePattern,
			},
			Domain: domain,
		}
	}

	// Step 5: any source-provided personal email, unverified.
	return r.personalFallback(in, domain)
}

func (r *Resolver) personalFallback(in Input, domain string) Result {
	for _, addr := range in.PersonalEmails {
		if addr != "" {
			return Result{
				Candidate: model.EmailCandidate{
					Address: addr,
					Source:  model.EmailSourceIndex,
				},
				Personal: true,
				Domain:   domain,
			}
		}
	}
	return Result{
		Candidate: model.EmailCandidate{
			Address: model.EmailUnavailable,
			Source:  model.EmailSourceNone,
		},
		Domain: domain,
	}
}

// targetDomain resolves and caches the sending domain for a company.
// A failed lookup caches "" so the batch asks each company at most once.
func (r *Resolver) targetDomain(ctx context.Context, company, website string) string {
	key := model.NormalizeName(company) + "|" + website
	if key == "|" {
		return ""
	}
	domain, _ := r.cache.GetOrSet(key, func() (string, error) {
		d, err := r.domains.Resolve(ctx, company, website)
		if err != nil {
			zap.L().Warn("domain resolution failed",
				zap.String("company", company), zap.Error(err))
			return "", nil
		}
		return d, nil
	})
	return domain
}
