package query

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/deenabandi004-byte/Final-offerloop-sub001/internal/cache"
	"github.com/deenabandi004-byte/Final-offerloop-sub001/pkg/anthropic"
)

// TitleEnricher supplies related job titles for the precise title clause.
// Implementations must be safe for concurrent use.
type TitleEnricher interface {
	SimilarTitles(ctx context.Context, title string) ([]string, error)
}

// staticTitles is the offline enrichment table. Keys are normalized titles.
var staticTitles = map[string][]string{
	"software engineer":       {"software developer", "backend engineer", "full stack engineer", "member of technical staff"},
	"product manager":         {"product owner", "program manager", "product lead", "technical product manager"},
	"data scientist":          {"machine learning engineer", "data analyst", "research scientist", "applied scientist"},
	"investment banker":       {"investment banking analyst", "investment banking associate", "m&a analyst", "corporate finance analyst"},
	"consultant":              {"management consultant", "strategy consultant", "associate consultant", "business analyst"},
	"recruiter":               {"talent acquisition specialist", "technical recruiter", "talent partner", "sourcing specialist"},
	"marketing manager":       {"brand manager", "growth marketing manager", "digital marketing manager", "marketing lead"},
	"account executive":       {"sales executive", "account manager", "enterprise account executive", "business development representative"},
	"financial analyst":       {"finance analyst", "fp&a analyst", "equity research analyst", "corporate finance analyst"},
	"mechanical engineer":     {"design engineer", "manufacturing engineer", "product engineer", "mechanical design engineer"},
	"electrical engineer":     {"hardware engineer", "embedded engineer", "power systems engineer", "electronics engineer"},
	"software engineering intern": {"software developer intern", "engineering intern", "swe intern", "technology intern"},
}

// StaticEnricher serves similar titles from the built-in table. Unknown
// titles yield no enrichment, never an error.
type StaticEnricher struct{}

func (StaticEnricher) SimilarTitles(_ context.Context, title string) ([]string, error) {
	key := strings.TrimSpace(strings.ToLower(title))
	titles, ok := staticTitles[key]
	if !ok {
		return nil, nil
	}
	out := make([]string, len(titles))
	copy(out, titles)
	return out, nil
}

// LLMEnricher asks the language model for adjacent titles, caches results,
// and falls back to the static table when the call fails. Enrichment is an
// optimization; it must never fail a search.
type LLMEnricher struct {
	ai       anthropic.Client
	model    string
	cache    *cache.TTL[string, []string]
	fallback TitleEnricher
}

// NewLLMEnricher creates an enricher backed by the given client and model.
func NewLLMEnricher(ai anthropic.Client, model string) *LLMEnricher {
	return &LLMEnricher{
		ai:       ai,
		model:    model,
		cache:    cache.NewTTL[string, []string](24*time.Hour, 512),
		fallback: StaticEnricher{},
	}
}

const titleSystemPrompt = `You expand job titles into closely related ones for a people search.
Given one job title, reply with up to 4 alternative titles that the same
person might hold at a different company. Reply with one title per line and
nothing else. Do not repeat the input title.`

func (e *LLMEnricher) SimilarTitles(ctx context.Context, title string) ([]string, error) {
	key := strings.TrimSpace(strings.ToLower(title))
	if key == "" {
		return nil, nil
	}

	return e.cache.GetOrSet(key, func() ([]string, error) {
		titles, err := e.ask(ctx, key)
		if err != nil {
			zap.L().Warn("title enrichment failed, using static table",
				zap.String("title", key),
				zap.Error(err))
			return e.fallback.SimilarTitles(ctx, key)
		}
		return titles, nil
	})
}

func (e *LLMEnricher) ask(ctx context.Context, title string) ([]string, error) {
	resp, err := e.ai.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     e.model,
		MaxTokens: 256,
		System:    titleSystemPrompt,
		Messages: []anthropic.Message{
			{Role: "user", Content: title},
		},
	})
	if err != nil {
		return nil, err
	}
	return parseTitleList(resp.Text(), title), nil
}

// parseTitleList splits model output into normalized titles, dropping
// blanks, list markers, duplicates and the original title.
func parseTitleList(text, original string) []string {
	seen := map[string]struct{}{original: {}}
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-*0123456789. ")
		line = strings.ToLower(strings.TrimSpace(line))
		if line == "" {
			continue
		}
		if _, dup := seen[line]; dup {
			continue
		}
		seen[line] = struct{}{}
		out = append(out, line)
		if len(out) >= maxSimilarTitles {
			break
		}
	}
	return out
}
