package enrich

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/deenabandi004-byte/Final-offerloop-sub001/internal/alias"
	"github.com/deenabandi004-byte/Final-offerloop-sub001/internal/email"
	"github.com/deenabandi004-byte/Final-offerloop-sub001/internal/location"
	"github.com/deenabandi004-byte/Final-offerloop-sub001/internal/model"
	"github.com/deenabandi004-byte/Final-offerloop-sub001/internal/query"
	"github.com/deenabandi004-byte/Final-offerloop-sub001/internal/search"
	"github.com/deenabandi004-byte/Final-offerloop-sub001/internal/verify"
)

// enrichWorkers bounds concurrent extract+resolve work per search.
const enrichWorkers = 10

// ErrUnresolvedLocation is returned when the location cannot be classified
// and the caller did not permit an unscoped search.
var ErrUnresolvedLocation = eris.New("enrich: location could not be resolved; refusing to search globally")

// defaultMaxResults applies when the caller does not say how many contacts
// they want.
const defaultMaxResults = 10

// Pipeline wires the search and enrichment stages behind the two public
// operations, Search and Resolve.
type Pipeline struct {
	expander *alias.Expander
	selector *location.Selector
	enricher query.TitleEnricher
	relaxer  *search.Relaxer
	exec     *search.Executor
	resolver *email.Resolver

	// lenientAlumni skips straight to the lenient policy instead of trying
	// strict first. Bulk callers set this.
	lenientAlumni bool
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithLenientAlumni makes the alumni filter use the lenient policy
// unconditionally.
func WithLenientAlumni() PipelineOption {
	return func(p *Pipeline) {
		p.lenientAlumni = true
	}
}

// WithTitleEnricher replaces the title enrichment source.
func WithTitleEnricher(e query.TitleEnricher) PipelineOption {
	return func(p *Pipeline) {
		p.enricher = e
	}
}

// WithAliasExpander replaces the school alias expander, e.g. one loaded
// with an external peer table.
func WithAliasExpander(e *alias.Expander) PipelineOption {
	return func(p *Pipeline) {
		p.expander = e
	}
}

// WithLocationSelector replaces the location strategy selector.
func WithLocationSelector(s *location.Selector) PipelineOption {
	return func(p *Pipeline) {
		p.selector = s
	}
}

// NewPipeline assembles a pipeline from its stage implementations.
func NewPipeline(exec *search.Executor, resolver *email.Resolver, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		expander: alias.NewExpander(),
		selector: location.NewSelector(),
		enricher: query.StaticEnricher{},
		relaxer:  search.NewRelaxer(exec),
		exec:     exec,
		resolver: resolver,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Search runs the full flow: strategy selection, relaxed query execution,
// alumni filtering, dedup, ranking, then parallel extraction and email
// resolution. The returned list is ordered by rank and capped at
// filters.MaxResults; the meta reports how the search concluded.
func (p *Pipeline) Search(ctx context.Context, filters model.SearchFilters) ([]model.Contact, model.SearchMeta, error) {
	meta := model.SearchMeta{RunID: uuid.NewString()}
	log := zap.L().With(zap.String("run_id", meta.RunID))

	want := filters.MaxResults
	if want <= 0 {
		want = defaultMaxResults
	}

	strategy := p.selector.Select(filters.Location)
	if strategy.Kind == model.StrategyUnresolved && !filters.AllowUnscoped {
		return nil, meta, ErrUnresolvedLocation
	}

	var aliases model.AliasSet
	if filters.SchoolAlumni != "" {
		aliases = p.expander.Expand(filters.SchoolAlumni)
	}

	similar, err := p.enricher.SimilarTitles(ctx, filters.JobTitle)
	if err != nil {
		log.Warn("title enrichment unavailable", zap.Error(err))
	}

	records, outcome, err := p.relaxer.Run(ctx, search.Plan{
		Title:         filters.JobTitle,
		SimilarTitles: similar,
		Company:       filters.Company,
		Strategy:      strategy,
		Aliases:       aliases,
	}, want)
	meta.StrategyUsed = outcome.StrategyUsed
	meta.Pages = outcome.Pages
	if err != nil {
		return nil, meta, eris.Wrap(err, "enrich: search")
	}

	records = p.filterAlumni(records, aliases, log)
	records = Dedupe(records)
	Rank(records, filters.JobTitle)
	meta.Attempted = len(records)

	contacts := p.enrichAll(ctx, records, filters, want, log)
	if len(contacts) > want {
		contacts = contacts[:want]
	}
	meta.Returned = len(contacts)

	log.Info("search complete",
		zap.String("strategy", meta.StrategyUsed),
		zap.Int("attempted", meta.Attempted),
		zap.Int("returned", meta.Returned))
	return contacts, meta, nil
}

// Resolve fetches one profile by index ID and enriches it. No query
// building, no relaxation.
func (p *Pipeline) Resolve(ctx context.Context, profileID string) (*model.Contact, error) {
	rec, err := p.exec.RetrieveOne(ctx, profileID)
	if err != nil {
		return nil, eris.Wrap(err, "enrich: retrieve profile")
	}
	if !rec.Valid() {
		return nil, eris.Errorf("enrich: profile %s lacks a usable name", profileID)
	}

	contact := Extract(*rec, rec.CurrentCompany())
	p.resolveEmail(ctx, &contact, *rec)
	return &contact, nil
}

// filterAlumni applies the school filter. The strict policy runs first;
// when it would starve the result set entirely, the lenient policy is
// retried so the caller gets weaker matches over nothing.
func (p *Pipeline) filterAlumni(records []model.RawPersonRecord, aliases model.AliasSet, log *zap.Logger) []model.RawPersonRecord {
	if len(aliases) == 0 {
		return records
	}

	policy := verify.StrictVerify
	if p.lenientAlumni {
		policy = verify.LenientVerify
	}

	passed := filterBy(records, aliases, policy)
	if len(passed) == 0 && !p.lenientAlumni {
		passed = filterBy(records, aliases, verify.LenientVerify)
		if len(passed) > 0 {
			log.Info("strict alumni filter starved result set, using lenient matches",
				zap.Int("lenient_matches", len(passed)))
		}
	}
	return passed
}

func filterBy(records []model.RawPersonRecord, aliases model.AliasSet, policy func(model.RawPersonRecord, model.AliasSet) bool) []model.RawPersonRecord {
	out := records[:0:0]
	for _, rec := range records {
		if policy(rec, aliases) {
			out = append(out, rec)
		}
	}
	return out
}

// enrichAll runs extraction and email resolution over ranked records with a
// bounded worker pool. Once enough emailed contacts exist to comfortably
// cover the requested count, the remaining work is cancelled. Output order
// follows the input ranking regardless of worker completion order.
func (p *Pipeline) enrichAll(ctx context.Context, records []model.RawPersonRecord, filters model.SearchFilters, want int, log *zap.Logger) []model.Contact {
	results := make([]*model.Contact, len(records))

	var (
		emailed  atomic.Int64
		admitted = struct {
			sync.Mutex
			ids map[model.ContactIdentity]struct{}
		}{ids: make(map[model.ContactIdentity]struct{})}
	)
	// stop once emailed contacts comfortably exceed the ask
	target := int64(want * 2)

	poolCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, poolCtx := errgroup.WithContext(poolCtx)
	g.SetLimit(enrichWorkers)

	for i, rec := range records {
		i, rec := i, rec
		if poolCtx.Err() != nil {
			break
		}
		g.Go(func() error {
			if poolCtx.Err() != nil {
				return nil
			}

			id := recordIdentity(rec)
			if filters.Excluded(id) {
				return nil
			}
			admitted.Lock()
			if _, dup := admitted.ids[id]; dup {
				admitted.Unlock()
				return nil
			}
			admitted.ids[id] = struct{}{}
			admitted.Unlock()

			contact := Extract(rec, filters.Company)
			p.resolveEmail(poolCtx, &contact, rec)
			results[i] = &contact

			if contact.HasAnyEmail() && emailed.Add(1) >= target {
				cancel()
			}
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; failures degrade per contact

	out := make([]model.Contact, 0, len(records))
	for _, c := range results {
		if c != nil {
			out = append(out, *c)
		}
	}
	log.Debug("enrichment pool drained",
		zap.Int("candidates", len(records)),
		zap.Int("enriched", len(out)))
	return out
}

// resolveEmail fills the contact's email fields from the resolver's chain
// outcome. A per-contact failure leaves the sentinel, never an error.
func (p *Pipeline) resolveEmail(ctx context.Context, c *model.Contact, rec model.RawPersonRecord) {
	res := p.resolver.Resolve(ctx, email.Input{
		FirstName:       rec.FirstName,
		LastName:        rec.LastName,
		Company:         c.Company,
		Website:         rec.JobCompanyWebsite,
		SourceWorkEmail: rec.WorkEmail,
		PersonalEmails:  rec.PersonalEmails,
	})

	c.Email = res.Candidate.Address
	c.EmailSource = res.Candidate.Source
	c.EmailVerified = res.Candidate.Verified
	switch {
	case res.Personal:
		c.PersonalEmail = res.Candidate.Address
	case res.Candidate.Source != model.EmailSourceNone:
		c.WorkEmail = res.Candidate.Address
	}
}
