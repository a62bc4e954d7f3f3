package models

import "time"

// JobAnalysisScores holds the AI quality scores generated for a job posting.
// All scores are on a 0-100 scale.
type JobAnalysisScores struct {
	RequirementsClarity int `json:"requirements_clarity_score" validate:"gte=0,lte=100"`
	KeywordComplexity   int `json:"keyword_complexity_score" validate:"gte=0,lte=100"`
	MatchPotential      int `json:"match_potential_score" validate:"gte=0,lte=100"`
	OverallJobQuality   int `json:"overall_job_quality" validate:"gte=0,lte=100"`
}

// NormalizedJob is the structured record produced by job extraction.
// Jobs are registered under the resume they were uploaded with, but are
// addressable by job id alone.
type NormalizedJob struct {
	JobID               string              `json:"job_id"`
	ResumeID            string              `json:"resume_id"`
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
	AnalysisScores      *JobAnalysisScores  `json:"analysis_scores,omitempty"`
	Metadata            AnalysisMetadata    `json:"metadata"`
	ProcessedAt         time.Time           `json:"processed_at"`
}
