package matcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resumatch/internal/analyzer"
	"resumatch/internal/config"
	"resumatch/internal/extractor"
	"resumatch/internal/llm"
	"resumatch/internal/logging"
	"resumatch/internal/scoring"
	"resumatch/internal/storage"
	"resumatch/internal/suggestions"
	"resumatch/pkg/models"
	"resumatch/pkg/utils"
)

// Service runs the match and improvement pipeline: extraction, analysis,
// scoring, suggestion generation and persistence
type Service struct {
	store     storage.Store
	provider  llm.Provider
	extractor *extractor.Extractor
	analyzer  *analyzer.Analyzer
	suggester *suggestions.Generator
	cache     *utils.RecordCache
	submitter MatchSubmitter
	logger    logging.Logger
}

// NewService creates a new matcher service
func NewService(cfg *config.Config, store storage.Store, provider llm.Provider, cache *utils.RecordCache) *Service {
	return &Service{
		store:     store,
		provider:  provider,
		extractor: extractor.NewExtractor(cfg, provider),
		analyzer:  analyzer.NewAnalyzer(provider),
		suggester: suggestions.NewGenerator(provider),
		cache:     cache,
		logger:    logging.GetGlobalLogger(),
	}
}

// ProcessResume extracts and stores a resume from raw document text
func (s *Service) ProcessResume(ctx context.Context, text string) (*models.NormalizedResume, error) {
	resume, err := s.extractor.ExtractResume(ctx, text)
	if err != nil {
		return nil, err
	}

	if err := s.store.SaveResume(ctx, resume); err != nil {
		return nil, utils.NewPersistenceError(fmt.Sprintf("failed to store resume: %v", err))
	}
	s.cache.SetResume(ctx, resume)

	return resume, nil
}

// ProcessJobs extracts and stores a batch of job descriptions under a
// resume. The batch is processed in order and fails on the first error.
func (s *Service) ProcessJobs(ctx context.Context, resumeID string, inputs []models.JobDescriptionInput) ([]*models.NormalizedJob, error) {
	if _, err := s.GetResumeRecord(ctx, resumeID); err != nil {
		return nil, err
	}

	jobs := make([]*models.NormalizedJob, 0, len(inputs))
	for i, input := range inputs {
		s.logger.Info("Processing job description", map[string]interface{}{
			"resume_id": resumeID,
			"index":     i + 1,
			"total":     len(inputs),
		})

		job, err := s.extractor.ExtractJob(ctx, resumeID, input)
		if err != nil {
			return nil, err
		}

		if err := s.store.SaveJob(ctx, job); err != nil {
			return nil, utils.NewPersistenceError(fmt.Sprintf("failed to store job: %v", err))
		}
		s.cache.SetJob(ctx, job)

		jobs = append(jobs, job)
	}

	return jobs, nil
}

// GetResumeRecord loads a resume, consulting the record cache first
func (s *Service) GetResumeRecord(ctx context.Context, resumeID string) (*models.NormalizedResume, error) {
	if resume := s.cache.GetResume(ctx, resumeID); resume != nil {
		return resume, nil
	}

	resume, err := s.store.GetResume(ctx, resumeID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, utils.NewNotFoundError(fmt.Sprintf("resume %s not found", resumeID))
		}
		return nil, utils.NewPersistenceError(fmt.Sprintf("failed to load resume: %v", err))
	}

	s.cache.SetResume(ctx, resume)
	return resume, nil
}

// GetJobRecord loads a job, consulting the record cache first
func (s *Service) GetJobRecord(ctx context.Context, jobID string) (*models.NormalizedJob, error) {
	if job := s.cache.GetJob(ctx, jobID); job != nil {
		return job, nil
	}

	job, err := s.store.GetJob(ctx, jobID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, utils.NewNotFoundError(fmt.Sprintf("job %s not found", jobID))
		}
		return nil, utils.NewPersistenceError(fmt.Sprintf("failed to load job: %v", err))
	}

	s.cache.SetJob(ctx, job)
	return job, nil
}

// GenerateImprovements runs the full pipeline for one resume/job pair:
// fetch both records, analyze compatibility, aggregate scores, generate
// suggestions and append one match row. Exactly one record is created per
// successful call.
func (s *Service) GenerateImprovements(ctx context.Context, resumeID, jobID string) (*models.ImprovementResult, error) {
	startTime := time.Now()

	resume, err := s.GetResumeRecord(ctx, resumeID)
	if err != nil {
		return nil, &StageError{Stage: StageFetching, Err: err}
	}
	job, err := s.GetJobRecord(ctx, jobID)
	if err != nil {
		return nil, &StageError{Stage: StageFetching, Err: err}
	}

	analysis, usedFallback, err := s.analyzer.Analyze(ctx, resume, job)
	if err != nil {
		return nil, &StageError{
			Stage: StageAnalyzing,
			Err:   utils.NewAIProcessingError(fmt.Sprintf("match analysis failed: %v", err)),
		}
	}

	// A fully unparseable analysis carries the documented constant scores
	// instead of a weighted aggregate of its default sub-scores.
	var scores models.MatchScores
	if usedFallback {
		scores = scoring.FallbackScores()
	} else {
		scores = scoring.Aggregate(analysis)
	}

	suggested, err := s.suggester.Generate(ctx, analysis)
	if err != nil {
		return nil, &StageError{
			Stage: StageSuggesting,
			Err:   utils.NewAIProcessingError(fmt.Sprintf("suggestion generation failed: %v", err)),
		}
	}

	record := &models.MatchRecord{
		ResumeID:        resumeID,
		JobID:           jobID,
		Scores:          scores,
		Analysis:        *analysis,
		Suggestions:     suggested,
		MissingSkills:   emptyIfNil(analysis.SkillsAnalysis.MissingSkills),
		MatchingSkills:  emptyIfNil(analysis.SkillsAnalysis.MatchingSkills),
		AnalysisVersion: scoring.AnalysisVersion,
	}

	if err := s.store.SaveMatch(ctx, record); err != nil {
		return nil, &StageError{
			Stage: StagePersisting,
			Err:   utils.NewPersistenceError(fmt.Sprintf("failed to store match: %v", err)),
		}
	}

	s.logger.Info("Improvement generation completed", map[string]interface{}{
		"resume_id":       resumeID,
		"job_id":          jobID,
		"overall_score":   scores.Overall,
		"suggestions":     len(suggested),
		"used_fallback":   usedFallback,
		"processing_time": time.Since(startTime).String(),
	})

	return &models.ImprovementResult{
		ResumeID:        resumeID,
		JobID:           jobID,
		Scores:          record.Scores,
		Analysis:        record.Analysis,
		Suggestions:     record.Suggestions,
		MissingSkills:   record.MissingSkills,
		MatchingSkills:  record.MatchingSkills,
		AnalysisVersion: record.AnalysisVersion,
		CreatedAt:       record.CreatedAt,
	}, nil
}

// MatchHistory returns the full append-only match history of a resume in
// insertion order
func (s *Service) MatchHistory(ctx context.Context, resumeID string) ([]*models.MatchRecord, error) {
	if _, err := s.GetResumeRecord(ctx, resumeID); err != nil {
		return nil, err
	}

	history, err := s.store.MatchHistory(ctx, resumeID)
	if err != nil {
		return nil, utils.NewPersistenceError(fmt.Sprintf("failed to load match history: %v", err))
	}
	return history, nil
}

func emptyIfNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
