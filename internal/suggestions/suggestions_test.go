package suggestions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumatch/internal/llm"
	"resumatch/pkg/models"
)

type fakeProvider struct {
	response string
	err      error
}

func (f *fakeProvider) CompleteText(ctx context.Context, prompt string) (string, error) {
	return f.response, f.err
}

func (f *fakeProvider) CompleteStructured(ctx context.Context, prompt string, out any) error {
	if f.err != nil {
		return f.err
	}
	if err := json.Unmarshal([]byte(f.response), out); err != nil {
		return fmt.Errorf("%w: %v", llm.ErrMalformedResponse, err)
	}
	return nil
}

func (f *fakeProvider) IsHealthy(ctx context.Context) error { return nil }

func (f *fakeProvider) Name() string { return "fake" }

func TestGenerateParsesSuggestions(t *testing.T) {
	g := NewGenerator(&fakeProvider{response: `[
		{
			"category": "skills",
			"priority": "high",
			"suggestion": "Add Kubernetes experience",
			"impact_score": 90,
			"examples": ["Mention cluster operations"]
		},
		{
			"category": "keywords",
			"priority": "medium",
			"suggestion": "Use the term microservices",
			"examples": []
		}
	]`})

	suggestions, err := g.Generate(context.Background(), &models.MatchAnalysis{})
	require.NoError(t, err)
	require.Len(t, suggestions, 2)

	assert.Equal(t, "skills", suggestions[0].Category)
	assert.Equal(t, "high", suggestions[0].Priority)
	require.NotNil(t, suggestions[0].ImpactScore)
	assert.Equal(t, 90, *suggestions[0].ImpactScore)
	assert.Equal(t, "keywords", suggestions[1].Category)
	assert.Nil(t, suggestions[1].ImpactScore)
}

func TestGenerateMalformedResponseUsesDefaults(t *testing.T) {
	g := NewGenerator(&fakeProvider{response: "no json here"})

	suggestions, err := g.Generate(context.Background(), &models.MatchAnalysis{})
	require.NoError(t, err)
	assert.Equal(t, DefaultSuggestions(), suggestions)
}

func TestGenerateInvalidCategoryUsesDefaults(t *testing.T) {
	g := NewGenerator(&fakeProvider{response: `[
		{"category": "astrology", "priority": "high", "suggestion": "something", "examples": []}
	]`})

	suggestions, err := g.Generate(context.Background(), &models.MatchAnalysis{})
	require.NoError(t, err)
	assert.Equal(t, DefaultSuggestions(), suggestions)
}

func TestGenerateEmptyListUsesDefaults(t *testing.T) {
	g := NewGenerator(&fakeProvider{response: `[]`})

	suggestions, err := g.Generate(context.Background(), &models.MatchAnalysis{})
	require.NoError(t, err)
	assert.Equal(t, DefaultSuggestions(), suggestions)
}

func TestGenerateTransportErrorPropagates(t *testing.T) {
	providerErr := errors.New("rate limited")
	g := NewGenerator(&fakeProvider{err: providerErr})

	_, err := g.Generate(context.Background(), &models.MatchAnalysis{})
	assert.ErrorIs(t, err, providerErr)
}

func TestDefaultSuggestions(t *testing.T) {
	defaults := DefaultSuggestions()
	require.Len(t, defaults, 3)

	assert.Equal(t, "skills", defaults[0].Category)
	assert.Equal(t, "high", defaults[0].Priority)
	require.NotNil(t, defaults[0].ImpactScore)
	assert.Equal(t, 85, *defaults[0].ImpactScore)

	assert.Equal(t, "keywords", defaults[1].Category)
	assert.Equal(t, "high", defaults[1].Priority)
	require.NotNil(t, defaults[1].ImpactScore)
	assert.Equal(t, 80, *defaults[1].ImpactScore)

	assert.Equal(t, "experience", defaults[2].Category)
	assert.Equal(t, "medium", defaults[2].Priority)
	require.NotNil(t, defaults[2].ImpactScore)
	assert.Equal(t, 75, *defaults[2].ImpactScore)

	for _, s := range defaults {
		assert.NotEmpty(t, s.Suggestion)
		assert.NotEmpty(t, s.Examples)
	}
}
