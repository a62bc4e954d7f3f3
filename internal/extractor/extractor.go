package extractor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"resumatch/internal/config"
	"resumatch/internal/llm"
	"resumatch/internal/llm/processors"
	"resumatch/internal/logging"
	"resumatch/internal/scoring"
	"resumatch/pkg/models"
	"resumatch/pkg/utils"
)

// Confidence recorded in analysis metadata for model-produced records.
const defaultConfidence = 0.85

// Extractor turns raw resume text and job descriptions into normalized
// records via structured model completions
type Extractor struct {
	provider llm.Provider
	cleaner  *processors.HTMLCleaner
	validate *validator.Validate
	logger   logging.Logger
	model    string
}

// NewExtractor creates a new extractor
func NewExtractor(cfg *config.Config, provider llm.Provider) *Extractor {
	return &Extractor{
		provider: provider,
		cleaner:  processors.NewHTMLCleaner(),
		validate: validator.New(),
		logger:   logging.GetGlobalLogger(),
		model:    cfg.LLM.Model,
	}
}

// resumePayload is the shape requested from the model for resume extraction
type resumePayload struct {
	PersonalData      models.PersonalData      `json:"personal_data"`
	Experiences       []models.ExperienceEntry `json:"experiences"`
	Projects          []models.ProjectEntry    `json:"projects"`
	Skills            []models.SkillEntry      `json:"skills"`
	Education         []models.EducationEntry  `json:"education"`
	ExtractedKeywords []string                 `json:"extracted_keywords"`
}

// jobPayload is the shape requested from the model for job extraction
type jobPayload struct {
	Title               string              `json:"title"`
	CompanyProfile      map[string]string   `json:"company_profile"`
	Location            string              `json:"location"`
	DatePosted          string              `json:"date_posted"`
	EmploymentType      string              `json:"employment_type"`
	Summary             string              `json:"summary"`
	KeyResponsibilities []string            `json:"key_responsibilities"`
	Qualifications      map[string][]string `json:"qualifications"`
	Compensation        map[string]string   `json:"compensation_and_benefits"`
	ApplicationInfo     map[string]string   `json:"application_info"`
	ExtractedKeywords   []string            `json:"extracted_keywords"`
}

// DefaultResumeScores returns the scores substituted when the resume
// scoring response cannot be parsed
func DefaultResumeScores() *models.ResumeAnalysisScores {
	return &models.ResumeAnalysisScores{
		ATSCompatibility: 75,
		KeywordDensity:   70,
		StructureQuality: 80,
		ContentRelevance: 75,
		OverallScore:     75,
	}
}

// DefaultResumeFeedback returns the feedback substituted when the resume
// feedback response cannot be parsed
func DefaultResumeFeedback() *models.ResumeFeedback {
	return &models.ResumeFeedback{
		Strengths:          []string{"Resume contains relevant work experience"},
		Weaknesses:         []string{"Could benefit from more specific achievements"},
		Suggestions:        []string{"Add quantifiable results to experience descriptions"},
		MissingElements:    []string{"Skills section could be more comprehensive"},
		ATSRecommendations: []string{"Use standard section headings for better ATS parsing"},
	}
}

// DefaultJobScores returns the scores substituted when the job scoring
// response cannot be parsed
func DefaultJobScores() *models.JobAnalysisScores {
	return &models.JobAnalysisScores{
		RequirementsClarity: 75,
		KeywordComplexity:   70,
		MatchPotential:      80,
		OverallJobQuality:   75,
	}
}

// ExtractResume extracts a normalized resume record from raw document
// text. Structured extraction has no fallback: a resume with no usable
// structured content has no safe synthetic substitute, so any completion
// or validation failure is an AI processing error.
func (e *Extractor) ExtractResume(ctx context.Context, text string) (*models.NormalizedResume, error) {
	startTime := time.Now()

	cleaned, err := e.cleaner.ExtractText(text)
	if err != nil {
		return nil, utils.NewValidationError(fmt.Sprintf("failed to normalize resume text: %v", err))
	}

	var payload resumePayload
	if err := e.provider.CompleteStructured(ctx, buildResumeExtractionPrompt(cleaned), &payload); err != nil {
		return nil, utils.NewAIProcessingError(fmt.Sprintf("resume extraction failed: %v", err))
	}
	if err := e.validate.Struct(&payload); err != nil {
		return nil, utils.NewAIProcessingError(fmt.Sprintf("resume extraction produced invalid structure: %v", err))
	}

	resume := &models.NormalizedResume{
		ResumeID:          uuid.New().String(),
		PersonalData:      payload.PersonalData,
		Experiences:       payload.Experiences,
		Projects:          payload.Projects,
		Skills:            payload.Skills,
		Education:         payload.Education,
		ExtractedKeywords: payload.ExtractedKeywords,
		RawText:           cleaned,
		ProcessedAt:       time.Now().UTC(),
	}

	var analysisErrors []string

	scores, scoreErr := e.resumeScores(ctx, resume)
	if scoreErr != nil {
		analysisErrors = append(analysisErrors, scoreErr.Error())
	}
	resume.AnalysisScores = scores

	feedback, feedbackErr := e.resumeFeedback(ctx, resume, scores)
	if feedbackErr != nil {
		analysisErrors = append(analysisErrors, feedbackErr.Error())
	}
	resume.Feedback = feedback

	resume.Metadata = e.metadata(startTime, analysisErrors)

	e.logger.Info("Resume extraction completed", map[string]interface{}{
		"resume_id":       resume.ResumeID,
		"experiences":     len(resume.Experiences),
		"skills":          len(resume.Skills),
		"keywords":        len(resume.ExtractedKeywords),
		"processing_time": time.Since(startTime).String(),
	})

	return resume, nil
}

// ExtractJob extracts a normalized job record from one job description
// input, associated with the given resume
func (e *Extractor) ExtractJob(ctx context.Context, resumeID string, input models.JobDescriptionInput) (*models.NormalizedJob, error) {
	startTime := time.Now()

	description, err := e.cleaner.ExtractText(input.Description)
	if err != nil {
		return nil, utils.NewValidationError(fmt.Sprintf("failed to normalize job description: %v", err))
	}

	content := buildJobContent(input, description)

	var payload jobPayload
	if err := e.provider.CompleteStructured(ctx, buildJobExtractionPrompt(content), &payload); err != nil {
		return nil, utils.NewAIProcessingError(fmt.Sprintf("job extraction failed: %v", err))
	}
	if err := e.validate.Struct(&payload); err != nil {
		return nil, utils.NewAIProcessingError(fmt.Sprintf("job extraction produced invalid structure: %v", err))
	}

	job := &models.NormalizedJob{
		JobID:               uuid.New().String(),
		ResumeID:            resumeID,
		Title:               payload.Title,
		CompanyProfile:      payload.CompanyProfile,
		Location:            payload.Location,
		DatePosted:          payload.DatePosted,
		EmploymentType:      payload.EmploymentType,
		Summary:             payload.Summary,
		KeyResponsibilities: payload.KeyResponsibilities,
		Qualifications:      payload.Qualifications,
		Compensation:        payload.Compensation,
		ApplicationInfo:     payload.ApplicationInfo,
		ExtractedKeywords:   payload.ExtractedKeywords,
		ProcessedAt:         time.Now().UTC(),
	}

	// Fall back to the caller-supplied metadata when extraction came
	// back empty
	if job.Title == "" {
		job.Title = input.JobTitle
	}
	if job.Location == "" {
		job.Location = input.Location
	}
	if job.EmploymentType == "" {
		job.EmploymentType = input.EmploymentType
	}

	var analysisErrors []string

	scores, scoreErr := e.jobScores(ctx, job)
	if scoreErr != nil {
		analysisErrors = append(analysisErrors, scoreErr.Error())
	}
	job.AnalysisScores = scores

	job.Metadata = e.metadata(startTime, analysisErrors)

	e.logger.Info("Job extraction completed", map[string]interface{}{
		"job_id":          job.JobID,
		"resume_id":       resumeID,
		"title":           job.Title,
		"processing_time": time.Since(startTime).String(),
	})

	return job, nil
}

// resumeScores generates quality scores for a resume. Parse failures
// substitute the documented defaults; transport errors are reported so
// the caller can record them, leaving scores unset.
func (e *Extractor) resumeScores(ctx context.Context, resume *models.NormalizedResume) (*models.ResumeAnalysisScores, error) {
	prompt, err := buildResumeScoresPrompt(resume)
	if err != nil {
		return nil, fmt.Errorf("resume scores prompt: %w", err)
	}

	var scores models.ResumeAnalysisScores
	if err := e.provider.CompleteStructured(ctx, prompt, &scores); err != nil {
		if errors.Is(err, llm.ErrMalformedResponse) {
			e.logger.Warn("Resume scores unparseable, using defaults", map[string]interface{}{
				"resume_id": resume.ResumeID,
			})
			return DefaultResumeScores(), nil
		}
		return nil, fmt.Errorf("resume score generation: %w", err)
	}
	if err := e.validate.Struct(&scores); err != nil {
		return DefaultResumeScores(), nil
	}

	return &scores, nil
}

func (e *Extractor) resumeFeedback(ctx context.Context, resume *models.NormalizedResume, scores *models.ResumeAnalysisScores) (*models.ResumeFeedback, error) {
	prompt, err := buildResumeFeedbackPrompt(resume, scores)
	if err != nil {
		return nil, fmt.Errorf("resume feedback prompt: %w", err)
	}

	var feedback models.ResumeFeedback
	if err := e.provider.CompleteStructured(ctx, prompt, &feedback); err != nil {
		if errors.Is(err, llm.ErrMalformedResponse) {
			e.logger.Warn("Resume feedback unparseable, using defaults", map[string]interface{}{
				"resume_id": resume.ResumeID,
			})
			return DefaultResumeFeedback(), nil
		}
		return nil, fmt.Errorf("resume feedback generation: %w", err)
	}

	return &feedback, nil
}

func (e *Extractor) jobScores(ctx context.Context, job *models.NormalizedJob) (*models.JobAnalysisScores, error) {
	prompt, err := buildJobScoresPrompt(job)
	if err != nil {
		return nil, fmt.Errorf("job scores prompt: %w", err)
	}

	var scores models.JobAnalysisScores
	if err := e.provider.CompleteStructured(ctx, prompt, &scores); err != nil {
		if errors.Is(err, llm.ErrMalformedResponse) {
			e.logger.Warn("Job scores unparseable, using defaults", map[string]interface{}{
				"job_id": job.JobID,
			})
			return DefaultJobScores(), nil
		}
		return nil, fmt.Errorf("job score generation: %w", err)
	}
	if err := e.validate.Struct(&scores); err != nil {
		return DefaultJobScores(), nil
	}

	return &scores, nil
}

func (e *Extractor) metadata(startTime time.Time, errs []string) models.AnalysisMetadata {
	return models.AnalysisMetadata{
		AnalysisVersion:  scoring.AnalysisVersion,
		ProcessingTimeMs: time.Since(startTime).Milliseconds(),
		ModelUsed:        e.model,
		ConfidenceScore:  defaultConfidence,
		Errors:           errs,
	}
}
