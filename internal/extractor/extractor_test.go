package extractor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumatch/internal/config"
	"resumatch/internal/llm"
	"resumatch/pkg/models"
	"resumatch/pkg/utils"
)

// fakeProvider dispatches on prompt content so extraction, scoring and
// feedback calls can each get their own canned response.
type fakeProvider struct {
	respond func(prompt string) (string, error)
}

func (f *fakeProvider) CompleteText(ctx context.Context, prompt string) (string, error) {
	return f.respond(prompt)
}

func (f *fakeProvider) CompleteStructured(ctx context.Context, prompt string, out any) error {
	response, err := f.respond(prompt)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(response), out); err != nil {
		return fmt.Errorf("%w: %v", llm.ErrMalformedResponse, err)
	}
	return nil
}

func (f *fakeProvider) IsHealthy(ctx context.Context) error { return nil }

func (f *fakeProvider) Name() string { return "fake" }

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LLM.Model = "claude-3-haiku-20240307"
	return cfg
}

const resumeExtractionJSON = `{
	"personal_data": {"full_name": "Ada Example", "email": "ada@example.com"},
	"experiences": [{"job_title": "Engineer", "company": "Acme", "current": true}],
	"projects": [],
	"skills": [{"name": "Go", "category": "programming"}],
	"education": [{"institution": "State University", "degree": "BSc"}],
	"extracted_keywords": ["go", "backend"]
}`

const resumeScoresJSON = `{
	"ats_compatibility": 82,
	"keyword_density": 74,
	"structure_quality": 88,
	"content_relevance": 79,
	"overall_score": 81
}`

const resumeFeedbackJSON = `{
	"strengths": ["Clear experience section"],
	"weaknesses": ["Sparse skills list"],
	"suggestions": ["Add more skills"],
	"missing_elements": ["Certifications"],
	"ats_recommendations": ["Use standard headings"]
}`

const jobExtractionJSON = `{
	"title": "Backend Engineer",
	"company_profile": {"name": "Acme"},
	"location": "Remote",
	"employment_type": "full-time",
	"summary": "Build backend services",
	"key_responsibilities": ["Design APIs"],
	"qualifications": {"required": ["Go"]},
	"compensation_and_benefits": {},
	"application_info": {},
	"extracted_keywords": ["go", "api"]
}`

const jobScoresJSON = `{
	"requirements_clarity_score": 85,
	"keyword_complexity_score": 65,
	"match_potential_score": 78,
	"overall_job_quality": 80
}`

func resumeResponder(t *testing.T, extraction, scores, feedback string) func(string) (string, error) {
	t.Helper()
	return func(prompt string) (string, error) {
		switch {
		case strings.Contains(prompt, "resume parser"):
			return extraction, nil
		case strings.Contains(prompt, "ATS Compatibility"):
			return scores, nil
		case strings.Contains(prompt, "detailed feedback"):
			return feedback, nil
		}
		t.Fatalf("unexpected prompt: %.80s", prompt)
		return "", nil
	}
}

func TestExtractResume(t *testing.T) {
	provider := &fakeProvider{respond: resumeResponder(t, resumeExtractionJSON, resumeScoresJSON, resumeFeedbackJSON)}
	e := NewExtractor(testConfig(), provider)

	resume, err := e.ExtractResume(context.Background(), "Ada Example, backend engineer at Acme since 2019, Go and SQL.")
	require.NoError(t, err)

	assert.NotEmpty(t, resume.ResumeID)
	assert.Equal(t, "Ada Example", resume.PersonalData.FullName)
	require.Len(t, resume.Experiences, 1)
	assert.Equal(t, "Acme", resume.Experiences[0].Company)
	assert.Equal(t, []string{"go", "backend"}, resume.ExtractedKeywords)

	require.NotNil(t, resume.AnalysisScores)
	assert.Equal(t, 82, resume.AnalysisScores.ATSCompatibility)
	require.NotNil(t, resume.Feedback)
	assert.Equal(t, []string{"Clear experience section"}, resume.Feedback.Strengths)

	assert.Equal(t, "1.0", resume.Metadata.AnalysisVersion)
	assert.Equal(t, "claude-3-haiku-20240307", resume.Metadata.ModelUsed)
	assert.Empty(t, resume.Metadata.Errors)
	assert.False(t, resume.ProcessedAt.IsZero())
}

func TestExtractResumeNoFallbackOnExtractionFailure(t *testing.T) {
	provider := &fakeProvider{respond: func(prompt string) (string, error) {
		return "not json at all", nil
	}}
	e := NewExtractor(testConfig(), provider)

	_, err := e.ExtractResume(context.Background(), "some resume text")
	require.Error(t, err)

	var customErr *utils.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, 502, customErr.Code)
}

func TestExtractResumeScoreFallbacks(t *testing.T) {
	// Extraction succeeds, scoring and feedback come back unparseable
	provider := &fakeProvider{respond: resumeResponder(t, resumeExtractionJSON, "garbage", "garbage")}
	e := NewExtractor(testConfig(), provider)

	resume, err := e.ExtractResume(context.Background(), "some resume text")
	require.NoError(t, err)

	assert.Equal(t, DefaultResumeScores(), resume.AnalysisScores)
	assert.Equal(t, DefaultResumeFeedback(), resume.Feedback)
}

func TestExtractResumeTransportErrorOnAnalysisIsRecorded(t *testing.T) {
	transportErr := errors.New("connection reset")
	provider := &fakeProvider{respond: func(prompt string) (string, error) {
		if strings.Contains(prompt, "resume parser") {
			return resumeExtractionJSON, nil
		}
		return "", transportErr
	}}
	e := NewExtractor(testConfig(), provider)

	resume, err := e.ExtractResume(context.Background(), "some resume text")
	require.NoError(t, err)

	assert.Nil(t, resume.AnalysisScores)
	assert.Nil(t, resume.Feedback)
	require.Len(t, resume.Metadata.Errors, 2)
	assert.Contains(t, resume.Metadata.Errors[0], "connection reset")
}

func TestExtractJob(t *testing.T) {
	provider := &fakeProvider{respond: func(prompt string) (string, error) {
		if strings.Contains(prompt, "job posting parser") {
			return jobExtractionJSON, nil
		}
		return jobScoresJSON, nil
	}}
	e := NewExtractor(testConfig(), provider)

	input := models.JobDescriptionInput{
		Company:     "Acme",
		Description: "We are hiring a backend engineer to build Go services.",
	}
	job, err := e.ExtractJob(context.Background(), "resume-1", input)
	require.NoError(t, err)

	assert.NotEmpty(t, job.JobID)
	assert.Equal(t, "resume-1", job.ResumeID)
	assert.Equal(t, "Backend Engineer", job.Title)
	assert.Equal(t, "Remote", job.Location)
	require.NotNil(t, job.AnalysisScores)
	assert.Equal(t, 85, job.AnalysisScores.RequirementsClarity)
}

func TestExtractJobBackfillsInputMetadata(t *testing.T) {
	// Extraction came back with empty title and location
	sparse := `{
		"title": "",
		"location": "",
		"employment_type": "",
		"summary": "A job",
		"key_responsibilities": [],
		"qualifications": {},
		"extracted_keywords": []
	}`
	provider := &fakeProvider{respond: func(prompt string) (string, error) {
		if strings.Contains(prompt, "job posting parser") {
			return sparse, nil
		}
		return jobScoresJSON, nil
	}}
	e := NewExtractor(testConfig(), provider)

	input := models.JobDescriptionInput{
		JobTitle:       "Platform Engineer",
		Location:       "Berlin",
		EmploymentType: "contract",
		Description:    "Long enough description of a platform engineering role.",
	}
	job, err := e.ExtractJob(context.Background(), "resume-1", input)
	require.NoError(t, err)

	assert.Equal(t, "Platform Engineer", job.Title)
	assert.Equal(t, "Berlin", job.Location)
	assert.Equal(t, "contract", job.EmploymentType)
}

func TestBuildJobContentFieldOrder(t *testing.T) {
	input := models.JobDescriptionInput{
		Company:        "Acme",
		JobTitle:       "Backend Engineer",
		Location:       "Remote",
		EmploymentType: "full-time",
	}

	content := buildJobContent(input, "Build Go services.")

	want := "Company: Acme\n\n" +
		"Job Title: Backend Engineer\n\n" +
		"Job Description:\nBuild Go services.\n\n" +
		"Location: Remote\n\n" +
		"Employment Type: full-time"
	assert.Equal(t, want, content)

	// Absent fields are skipped entirely
	assert.Equal(t, "Job Description:\nBuild Go services.",
		buildJobContent(models.JobDescriptionInput{}, "Build Go services."))
}

func TestDefaultScores(t *testing.T) {
	scores := DefaultResumeScores()
	assert.Equal(t, 75, scores.ATSCompatibility)
	assert.Equal(t, 70, scores.KeywordDensity)
	assert.Equal(t, 80, scores.StructureQuality)
	assert.Equal(t, 75, scores.ContentRelevance)
	assert.Equal(t, 75, scores.OverallScore)

	jobScores := DefaultJobScores()
	assert.Equal(t, 75, jobScores.RequirementsClarity)
	assert.Equal(t, 70, jobScores.KeywordComplexity)
	assert.Equal(t, 80, jobScores.MatchPotential)
	assert.Equal(t, 75, jobScores.OverallJobQuality)

	feedback := DefaultResumeFeedback()
	assert.Len(t, feedback.Strengths, 1)
	assert.Len(t, feedback.Weaknesses, 1)
	assert.Len(t, feedback.Suggestions, 1)
	assert.Len(t, feedback.MissingElements, 1)
	assert.Len(t, feedback.ATSRecommendations, 1)
}

func TestMetadataProcessingTime(t *testing.T) {
	e := NewExtractor(testConfig(), &fakeProvider{respond: func(string) (string, error) { return "", nil }})

	start := time.Now().Add(-50 * time.Millisecond)
	meta := e.metadata(start, nil)

	assert.GreaterOrEqual(t, meta.ProcessingTimeMs, int64(50))
	assert.Equal(t, 0.85, meta.ConfidenceScore)
}
