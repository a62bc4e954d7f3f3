package analyzer

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

// fakeProvider returns a canned response for structured completions.
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

func testResume() *models.NormalizedResume {
	return &models.NormalizedResume{
		ResumeID: "resume-1",
		Skills:   []models.SkillEntry{{Name: "Go"}},
	}
}

func testJob() *models.NormalizedJob {
	return &models.NormalizedJob{
		JobID: "job-1",
		Title: "Backend Engineer",
	}
}

const validAnalysisJSON = `{
	"skills_analysis": {
		"matching_skills": ["Go"],
		"missing_skills": ["Kubernetes"],
		"skill_score": 80
	},
	"experience_analysis": {
		"relevant_experience": ["Backend development"],
		"experience_score": 60
	},
	"education_analysis": {
		"education_match": 90
	},
	"keyword_analysis": {
		"matching_keywords": ["go"],
		"missing_keywords": ["k8s"],
		"keyword_score": 55
	},
	"gap_analysis": {
		"major_gaps": ["Kubernetes"],
		"strengths": ["Go"],
		"overall_fit": 70
	}
}`

func TestAnalyzeParsesModelResponse(t *testing.T) {
	a := NewAnalyzer(&fakeProvider{response: validAnalysisJSON})

	analysis, usedFallback, err := a.Analyze(context.Background(), testResume(), testJob())
	require.NoError(t, err)
	assert.False(t, usedFallback)

	require.NotNil(t, analysis.SkillsAnalysis.SkillScore)
	assert.Equal(t, 80, *analysis.SkillsAnalysis.SkillScore)
	assert.Equal(t, []string{"Kubernetes"}, analysis.SkillsAnalysis.MissingSkills)
	require.NotNil(t, analysis.ExperienceAnalysis.ExperienceScore)
	assert.Equal(t, 60, *analysis.ExperienceAnalysis.ExperienceScore)
	assert.Equal(t, []string{"Kubernetes"}, analysis.GapAnalysis.MajorGaps)
}

func TestAnalyzeMalformedResponseUsesDefault(t *testing.T) {
	a := NewAnalyzer(&fakeProvider{response: "I could not produce JSON, sorry."})

	analysis, usedFallback, err := a.Analyze(context.Background(), testResume(), testJob())
	require.NoError(t, err)
	assert.True(t, usedFallback)
	assert.Equal(t, DefaultAnalysis(), analysis)
}

func TestAnalyzeInvalidScoresUseDefault(t *testing.T) {
	// skill_score out of range fails validation
	a := NewAnalyzer(&fakeProvider{response: `{
		"skills_analysis": {"matching_skills": [], "missing_skills": [], "skill_score": 150},
		"experience_analysis": {"relevant_experience": []},
		"education_analysis": {},
		"keyword_analysis": {"matching_keywords": [], "missing_keywords": []},
		"gap_analysis": {"major_gaps": [], "strengths": []}
	}`})

	analysis, usedFallback, err := a.Analyze(context.Background(), testResume(), testJob())
	require.NoError(t, err)
	assert.True(t, usedFallback)
	assert.Equal(t, DefaultAnalysis(), analysis)
}

func TestAnalyzeTransportErrorPropagates(t *testing.T) {
	providerErr := errors.New("connection refused")
	a := NewAnalyzer(&fakeProvider{err: providerErr})

	_, _, err := a.Analyze(context.Background(), testResume(), testJob())
	assert.ErrorIs(t, err, providerErr)
}

func TestDefaultAnalysisScores(t *testing.T) {
	analysis := DefaultAnalysis()

	require.NotNil(t, analysis.SkillsAnalysis.SkillScore)
	assert.Equal(t, 70, *analysis.SkillsAnalysis.SkillScore)
	require.NotNil(t, analysis.ExperienceAnalysis.ExperienceScore)
	assert.Equal(t, 75, *analysis.ExperienceAnalysis.ExperienceScore)
	require.NotNil(t, analysis.EducationAnalysis.EducationMatch)
	assert.Equal(t, 80, *analysis.EducationAnalysis.EducationMatch)
	require.NotNil(t, analysis.KeywordAnalysis.KeywordScore)
	assert.Equal(t, 65, *analysis.KeywordAnalysis.KeywordScore)
	require.NotNil(t, analysis.GapAnalysis.OverallFit)
	assert.Equal(t, 70, *analysis.GapAnalysis.OverallFit)

	assert.NotNil(t, analysis.SkillsAnalysis.MatchingSkills)
	assert.NotNil(t, analysis.GapAnalysis.Strengths)
}
