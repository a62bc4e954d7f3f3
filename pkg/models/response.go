package models

import "time"

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Uptime    time.Duration     `json:"uptime"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// ExtractResumeResponse is returned after a resume has been extracted,
// analyzed and stored.
type ExtractResumeResponse struct {
	ResumeID         string                `json:"resume_id"`
	Resume           *NormalizedResume     `json:"resume"`
	AnalysisScores   *ResumeAnalysisScores `json:"analysis_scores,omitempty"`
	Feedback         *ResumeFeedback       `json:"feedback,omitempty"`
	ProcessingTimeMs int64                 `json:"processing_time_ms"`
	RequestID        string                `json:"request_id"`
}

// ProcessedJobResult is one entry in a batch job extraction response.
type ProcessedJobResult struct {
	JobID          string             `json:"job_id"`
	Job            *NormalizedJob     `json:"job"`
	AnalysisScores *JobAnalysisScores `json:"analysis_scores,omitempty"`
}

// ExtractJobsResponse is returned after a batch of job descriptions has
// been extracted and stored.
type ExtractJobsResponse struct {
	ResumeID         string               `json:"resume_id"`
	ProcessedJobs    []ProcessedJobResult `json:"processed_jobs"`
	TotalProcessed   int                  `json:"total_processed"`
	ProcessingTimeMs int64                `json:"processing_time_ms"`
	RequestID        string               `json:"request_id"`
}

// ImprovementResult is the outcome of one improvement-generation run.
type ImprovementResult struct {
	ResumeID        string                  `json:"resume_id"`
	JobID           string                  `json:"job_id"`
	Scores          MatchScores             `json:"scores"`
	Analysis        MatchAnalysis           `json:"match_analysis"`
	Suggestions     []ImprovementSuggestion `json:"improvement_suggestions"`
	MissingSkills   []string                `json:"missing_skills"`
	MatchingSkills  []string                `json:"matching_skills"`
	AnalysisVersion string                  `json:"analysis_version"`
	CreatedAt       time.Time               `json:"created_at"`
}

// MatchHistoryResponse is the full append-only match history of a resume.
type MatchHistoryResponse struct {
	ResumeID  string         `json:"resume_id"`
	Matches   []*MatchRecord `json:"matches"`
	Total     int            `json:"total"`
	RequestID string         `json:"request_id"`
}

// DashboardAnalytics summarizes a resume's match history.
type DashboardAnalytics struct {
	TotalMatches          int     `json:"total_matches_performed"`
	AverageMatchScore     float64 `json:"average_match_score"`
	BestMatchScore        float64 `json:"best_match_score"`
	BestMatchJobID        string  `json:"best_match_job_id,omitempty"`
	ATSCompatibilityScore int     `json:"ats_compatibility_score"`
}

// ImprovementSummary aggregates suggestions across a resume's history.
type ImprovementSummary struct {
	TotalSuggestions     int      `json:"total_suggestions"`
	CommonGaps           []string `json:"common_gaps"`
	SkillRecommendations []string `json:"skill_recommendations"`
}

// DashboardResponse is the reporting read path for one resume.
type DashboardResponse struct {
	ResumeID           string             `json:"resume_id"`
	Resume             *NormalizedResume  `json:"resume"`
	Analytics          DashboardAnalytics `json:"analytics"`
	RecentMatches      []*MatchRecord     `json:"recent_matches"`
	ImprovementSummary ImprovementSummary `json:"improvement_summary"`
	RequestID          string             `json:"request_id"`
}

// BulkItemStatus values for per-item results in bulk/comparison flows.
const (
	BulkStatusSuccess = "success"
	BulkStatusFailed  = "failed"
)

// BulkAnalysisResult is one per-job entry in a bulk analysis. A failed
// entry carries the error message instead of aborting the batch.
type BulkAnalysisResult struct {
	JobID  string             `json:"job_id"`
	Status string             `json:"status"`
	Result *ImprovementResult `json:"match_result,omitempty"`
	Error  string             `json:"error,omitempty"`
}

// BulkRankingEntry is one row of the success-only ranking list.
type BulkRankingEntry struct {
	JobID           string  `json:"job_id"`
	OverallScore    float64 `json:"overall_score"`
	SkillsScore     float64 `json:"skills_score"`
	ExperienceScore float64 `json:"experience_score"`
}

// BulkAnalysisSummary totals a bulk analysis run.
type BulkAnalysisSummary struct {
	TotalJobsAnalyzed  int     `json:"total_jobs_analyzed"`
	SuccessfulAnalyses int     `json:"successful_analyses"`
	FailedAnalyses     int     `json:"failed_analyses"`
	BestMatchJobID     string  `json:"best_match_job_id,omitempty"`
	BestMatchScore     float64 `json:"best_match_score"`
}

// BulkAnalysisResponse is the result of matching one resume against many jobs.
type BulkAnalysisResponse struct {
	ResumeID  string               `json:"resume_id"`
	Summary   BulkAnalysisSummary  `json:"summary"`
	Results   []BulkAnalysisResult `json:"results"`
	Ranking   []BulkRankingEntry   `json:"ranking"`
	RequestID string               `json:"request_id"`
}

// ComparisonResult is one per-resume entry in a comparison run.
type ComparisonResult struct {
	ResumeID string             `json:"resume_id"`
	Status   string             `json:"status"`
	Result   *ImprovementResult `json:"match_result,omitempty"`
	Error    string             `json:"error,omitempty"`
}

// ComparisonRankingEntry ranks one resume against the shared job.
type ComparisonRankingEntry struct {
	ResumeID     string   `json:"resume_id"`
	Rank         int      `json:"rank"`
	OverallScore float64  `json:"overall_score"`
	KeyStrengths []string `json:"key_strengths"`
}

// ScoreRange summarizes the score spread of a comparison run.
type ScoreRange struct {
	Highest    float64 `json:"highest"`
	Lowest     float64 `json:"lowest"`
	Difference float64 `json:"difference"`
}

// ComparisonResponse is the result of matching many resumes against one job.
type ComparisonResponse struct {
	JobID                 string                   `json:"job_id"`
	TotalResumesCompared  int                      `json:"total_resumes_compared"`
	SuccessfulComparisons int                      `json:"successful_comparisons"`
	ScoreRange            ScoreRange               `json:"score_range"`
	Results               []ComparisonResult       `json:"results"`
	Ranking               []ComparisonRankingEntry `json:"ranking"`
	RequestID             string                   `json:"request_id"`
}
