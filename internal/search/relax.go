package search

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/deenabandi004-byte/Final-offerloop-sub001/internal/model"
	"github.com/deenabandi004-byte/Final-offerloop-sub001/internal/query"
	"github.com/deenabandi004-byte/Final-offerloop-sub001/internal/resilience"
)

// rawOverscan is how many raw records to fetch per requested contact.
// Verification, dedup and email resolution all shrink the pool downstream.
const rawOverscan = 3

// Step is one rung of the relaxation ladder. Company and school constraints
// are never dropped; only title and location loosen.
type Step struct {
	Name          string
	Mode          query.Mode
	RelaxLocation bool
}

// DefaultLadder is the relaxation order: loosen the title first (cheapest
// signal to lose), then the location, then both.
var DefaultLadder = []Step{
	{Name: "strict", Mode: query.ModePrecise},
	{Name: "relaxed_title", Mode: query.ModeRelaxed},
	{Name: "relaxed_location", Mode: query.ModePrecise, RelaxLocation: true},
	{Name: "relaxed_both", Mode: query.ModeRelaxed, RelaxLocation: true},
}

// Plan is the fixed query material the ladder reshapes per step.
type Plan struct {
	Title         string
	SimilarTitles []string
	Company       string
	Strategy      model.LocationStrategy
	Aliases       model.AliasSet
}

// Outcome records how a ladder run went.
type Outcome struct {
	// StrategyUsed is the name of the last step that contributed records,
	// or the last step attempted when nothing matched.
	StrategyUsed string
	Steps        int
	Pages        int
	Fetched      int
}

// Relaxer walks the ladder until enough raw candidates are collected.
// The ladder is finite and each step runs at most once, so a run always
// terminates regardless of what the index returns.
type Relaxer struct {
	exec   *Executor
	ladder []Step
}

// NewRelaxer creates a relaxer over the given executor using DefaultLadder.
func NewRelaxer(exec *Executor) *Relaxer {
	return &Relaxer{exec: exec, ladder: DefaultLadder}
}

// WithLadder replaces the relaxation ladder. Empty ladders are ignored.
func (r *Relaxer) WithLadder(ladder []Step) *Relaxer {
	if len(ladder) > 0 {
		r.ladder = ladder
	}
	return r
}

// Run executes ladder steps in order until want*rawOverscan distinct raw
// records are collected or the ladder is exhausted. Records from earlier
// steps are kept; duplicates by index ID are dropped. A permanent error
// invalidates that query shape only; the next step still runs. Any other
// step failure degrades to a partial result when records were already
// collected. An error surfaces only when no step completed.
func (r *Relaxer) Run(ctx context.Context, plan Plan, want int) ([]model.RawPersonRecord, Outcome, error) {
	target := want * rawOverscan

	var (
		collected    []model.RawPersonRecord
		outcome      Outcome
		seen         = map[string]struct{}{}
		contributing string
		completed    int
		stepErr      error
	)

	for _, step := range r.ladder {
		if len(collected) >= target {
			break
		}
		outcome.Steps++
		outcome.StrategyUsed = step.Name

		q := query.Build(query.Params{
			Title:         plan.Title,
			SimilarTitles: plan.SimilarTitles,
			Company:       plan.Company,
			Strategy:      plan.Strategy,
			Aliases:       plan.Aliases,
			Mode:          step.Mode,
			RelaxLocation: step.RelaxLocation,
		})

		records, stats, err := r.exec.Execute(ctx, q, target-len(collected))
		outcome.Pages += stats.Pages
		outcome.Fetched += stats.Fetched
		if err != nil {
			stepErr = err
			if resilience.IsPermanent(err) {
				// the index rejected this query shape; a looser one may work
				zap.L().Warn("query shape rejected, moving to next relaxation step",
					zap.String("step", step.Name),
					zap.Error(err))
				continue
			}
			if len(collected) > 0 {
				zap.L().Warn("relaxation step failed, returning partial results",
					zap.String("step", step.Name),
					zap.Int("collected", len(collected)),
					zap.Error(err))
				outcome.StrategyUsed = contributing
				return collected, outcome, nil
			}
			return nil, outcome, err
		}
		completed++

		added := 0
		for _, rec := range records {
			if !rec.Valid() {
				continue
			}
			key := rec.ID
			if key == "" {
				key = model.NormalizeName(rec.FirstName) + "|" + model.NormalizeName(rec.LastName) + "|" + model.NormalizeName(rec.JobCompany)
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			collected = append(collected, rec)
			added++
		}

		if added > 0 {
			contributing = step.Name
		}

		zap.L().Info("relaxation step complete",
			zap.String("step", step.Name),
			zap.Int("added", added),
			zap.Int("collected", len(collected)),
			zap.Int("target", target))
	}

	if contributing != "" {
		outcome.StrategyUsed = contributing
	}
	if completed == 0 && stepErr != nil {
		return nil, outcome, eris.Wrap(stepErr, "search: every relaxation step failed")
	}
	return collected, outcome, nil
}
