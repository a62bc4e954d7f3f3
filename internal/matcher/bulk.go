package matcher

import (
	"context"
	"sort"
	"sync"

	"resumatch/pkg/models"
)

// MatchSubmitter schedules one match analysis, typically on the worker
// pool. The service falls back to running inline when none is set.
type MatchSubmitter interface {
	SubmitMatch(ctx context.Context, resumeID, jobID string) (*models.ImprovementResult, error)
}

// SetSubmitter wires the worker pool in after construction. The pool needs
// the service as its runner, so the two are connected in this order.
func (s *Service) SetSubmitter(submitter MatchSubmitter) {
	s.submitter = submitter
}

func (s *Service) runMatch(ctx context.Context, resumeID, jobID string) (*models.ImprovementResult, error) {
	if s.submitter != nil {
		return s.submitter.SubmitMatch(ctx, resumeID, jobID)
	}
	return s.GenerateImprovements(ctx, resumeID, jobID)
}

// BulkAnalyze matches one resume against many jobs. Per-job failures are
// captured in the per-item result instead of aborting the batch; the
// ranking covers successful analyses only, best first.
func (s *Service) BulkAnalyze(ctx context.Context, resumeID string, jobIDs []string) (*models.BulkAnalysisResponse, error) {
	if _, err := s.GetResumeRecord(ctx, resumeID); err != nil {
		return nil, err
	}

	results := make([]models.BulkAnalysisResult, len(jobIDs))

	var wg sync.WaitGroup
	for i, jobID := range jobIDs {
		wg.Add(1)
		go func(idx int, jobID string) {
			defer wg.Done()

			result, err := s.runMatch(ctx, resumeID, jobID)
			if err != nil {
				s.logger.Warn("Bulk analysis failed for job", map[string]interface{}{
					"resume_id": resumeID,
					"job_id":    jobID,
					"error":     err.Error(),
				})
				results[idx] = models.BulkAnalysisResult{
					JobID:  jobID,
					Status: models.BulkStatusFailed,
					Error:  err.Error(),
				}
				return
			}
			results[idx] = models.BulkAnalysisResult{
				JobID:  jobID,
				Status: models.BulkStatusSuccess,
				Result: result,
			}
		}(i, jobID)
	}
	wg.Wait()

	var successes []models.BulkAnalysisResult
	for _, result := range results {
		if result.Status == models.BulkStatusSuccess {
			successes = append(successes, result)
		}
	}
	sort.SliceStable(successes, func(i, j int) bool {
		return successes[i].Result.Scores.Overall > successes[j].Result.Scores.Overall
	})

	summary := models.BulkAnalysisSummary{
		TotalJobsAnalyzed:  len(jobIDs),
		SuccessfulAnalyses: len(successes),
		FailedAnalyses:     len(jobIDs) - len(successes),
	}
	if len(successes) > 0 {
		summary.BestMatchJobID = successes[0].JobID
		summary.BestMatchScore = successes[0].Result.Scores.Overall
	}

	ranking := make([]models.BulkRankingEntry, 0, len(successes))
	for _, result := range successes {
		ranking = append(ranking, models.BulkRankingEntry{
			JobID:           result.JobID,
			OverallScore:    result.Result.Scores.Overall,
			SkillsScore:     result.Result.Scores.Skills,
			ExperienceScore: result.Result.Scores.Experience,
		})
	}

	return &models.BulkAnalysisResponse{
		ResumeID: resumeID,
		Summary:  summary,
		Results:  results,
		Ranking:  ranking,
	}, nil
}

// Compare matches many resumes against one job and ranks them. Useful for
// picking which resume variant works best for a posting.
func (s *Service) Compare(ctx context.Context, resumeIDs []string, jobID string) (*models.ComparisonResponse, error) {
	if _, err := s.GetJobRecord(ctx, jobID); err != nil {
		return nil, err
	}

	results := make([]models.ComparisonResult, len(resumeIDs))

	var wg sync.WaitGroup
	for i, resumeID := range resumeIDs {
		wg.Add(1)
		go func(idx int, resumeID string) {
			defer wg.Done()

			result, err := s.runMatch(ctx, resumeID, jobID)
			if err != nil {
				s.logger.Warn("Comparison failed for resume", map[string]interface{}{
					"resume_id": resumeID,
					"job_id":    jobID,
					"error":     err.Error(),
				})
				results[idx] = models.ComparisonResult{
					ResumeID: resumeID,
					Status:   models.BulkStatusFailed,
					Error:    err.Error(),
				}
				return
			}
			results[idx] = models.ComparisonResult{
				ResumeID: resumeID,
				Status:   models.BulkStatusSuccess,
				Result:   result,
			}
		}(i, resumeID)
	}
	wg.Wait()

	var successes []models.ComparisonResult
	for _, result := range results {
		if result.Status == models.BulkStatusSuccess {
			successes = append(successes, result)
		}
	}
	sort.SliceStable(successes, func(i, j int) bool {
		return successes[i].Result.Scores.Overall > successes[j].Result.Scores.Overall
	})

	var scoreRange models.ScoreRange
	if len(successes) > 0 {
		scoreRange.Highest = successes[0].Result.Scores.Overall
		scoreRange.Lowest = successes[len(successes)-1].Result.Scores.Overall
		scoreRange.Difference = scoreRange.Highest - scoreRange.Lowest
	}

	ranking := make([]models.ComparisonRankingEntry, 0, len(successes))
	for idx, result := range successes {
		ranking = append(ranking, models.ComparisonRankingEntry{
			ResumeID:     result.ResumeID,
			Rank:         idx + 1,
			OverallScore: result.Result.Scores.Overall,
			KeyStrengths: topStrengths(result.Result.MatchingSkills, 3),
		})
	}

	return &models.ComparisonResponse{
		JobID:                 jobID,
		TotalResumesCompared:  len(resumeIDs),
		SuccessfulComparisons: len(successes),
		ScoreRange:            scoreRange,
		Results:               results,
		Ranking:               ranking,
	}, nil
}

func topStrengths(skills []string, n int) []string {
	if len(skills) <= n {
		return skills
	}
	return skills[:n]
}
