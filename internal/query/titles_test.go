package query

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deenabandi004-byte/Final-offerloop-sub001/pkg/anthropic"
)

type fakeAI struct {
	text  string
	err   error
	calls int
}

func (f *fakeAI) CreateMessage(_ context.Context, _ anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{Type: "text", Text: f.text}},
	}, nil
}

func TestStaticEnricher_KnownTitle(t *testing.T) {
	titles, err := StaticEnricher{}.SimilarTitles(context.Background(), "Software Engineer")
	require.NoError(t, err)
	assert.Contains(t, titles, "backend engineer")
}

func TestStaticEnricher_UnknownTitle(t *testing.T) {
	titles, err := StaticEnricher{}.SimilarTitles(context.Background(), "lion tamer")
	require.NoError(t, err)
	assert.Empty(t, titles)
}

func TestLLMEnricher_ParsesAndCaches(t *testing.T) {
	ai := &fakeAI{text: "Backend Engineer\n- Platform Engineer\n2. Systems Engineer\n\nsoftware engineer"}
	e := NewLLMEnricher(ai, "test-model")

	titles, err := e.SimilarTitles(context.Background(), "Software Engineer")
	require.NoError(t, err)
	assert.Equal(t, []string{"backend engineer", "platform engineer", "systems engineer"}, titles)

	again, err := e.SimilarTitles(context.Background(), "software engineer")
	require.NoError(t, err)
	assert.Equal(t, titles, again)
	assert.Equal(t, 1, ai.calls, "second lookup must come from cache")
}

func TestLLMEnricher_FallsBackToStaticTable(t *testing.T) {
	ai := &fakeAI{err: eris.New("model unavailable")}
	e := NewLLMEnricher(ai, "test-model")

	titles, err := e.SimilarTitles(context.Background(), "product manager")
	require.NoError(t, err)
	assert.Contains(t, titles, "product owner")
}

func TestLLMEnricher_EmptyTitle(t *testing.T) {
	ai := &fakeAI{}
	e := NewLLMEnricher(ai, "test-model")

	titles, err := e.SimilarTitles(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, titles)
	assert.Zero(t, ai.calls)
}

func TestParseTitleList_CapsAtFour(t *testing.T) {
	got := parseTitleList("a\nb\nc\nd\ne\nf", "x")
	assert.Len(t, got, maxSimilarTitles)
}
