package matcher

import (
	"context"

	"resumatch/internal/storage"
	"resumatch/pkg/models"
)

const (
	recentMatchLimit         = 5
	commonGapLimit           = 5
	skillRecommendationLimit = 10
)

// GetDashboard assembles the reporting view for one resume: its record,
// history analytics and an aggregated improvement summary
func (s *Service) GetDashboard(ctx context.Context, resumeID string) (*models.DashboardResponse, error) {
	resume, err := s.GetResumeRecord(ctx, resumeID)
	if err != nil {
		return nil, err
	}

	history, err := s.MatchHistory(ctx, resumeID)
	if err != nil {
		return nil, err
	}

	analytics := models.DashboardAnalytics{
		TotalMatches:      len(history),
		AverageMatchScore: storage.AverageOverall(history),
	}
	if best := storage.BestMatch(history); best != nil {
		analytics.BestMatchScore = best.Scores.Overall
		analytics.BestMatchJobID = best.JobID
	}
	if resume.AnalysisScores != nil {
		analytics.ATSCompatibilityScore = resume.AnalysisScores.ATSCompatibility
	}

	totalSuggestions := 0
	for _, record := range history {
		totalSuggestions += len(record.Suggestions)
	}

	return &models.DashboardResponse{
		ResumeID:      resumeID,
		Resume:        resume,
		Analytics:     analytics,
		RecentMatches: storage.RecentMatches(history, recentMatchLimit),
		ImprovementSummary: models.ImprovementSummary{
			TotalSuggestions:     totalSuggestions,
			CommonGaps:           storage.TopGaps(history, commonGapLimit),
			SkillRecommendations: storage.TopMissingSkills(history, skillRecommendationLimit),
		},
	}, nil
}
