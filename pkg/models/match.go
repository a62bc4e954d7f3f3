package models

import "time"

// SkillsAnalysis is the skills section of a match analysis. Score fields
// are pointers so an absent value can be told apart from an explicit zero;
// the score aggregator substitutes documented defaults for absent values.
type SkillsAnalysis struct {
	MatchingSkills []string `json:"matching_skills"`
	MissingSkills  []string `json:"missing_skills"`
	SkillGaps      []string `json:"skill_gaps,omitempty"`
	SkillScore     *int     `json:"skill_score,omitempty" validate:"omitempty,gte=0,lte=100"`
}

// ExperienceAnalysis is the experience section of a match analysis.
type ExperienceAnalysis struct {
	RelevantExperience []string `json:"relevant_experience"`
	ExperienceGaps     []string `json:"experience_gaps,omitempty"`
	LevelMatch         *int     `json:"level_match,omitempty" validate:"omitempty,gte=0,lte=100"`
	ExperienceScore    *int     `json:"experience_score,omitempty" validate:"omitempty,gte=0,lte=100"`
}

// EducationAnalysis is the education section of a match analysis.
type EducationAnalysis struct {
	EducationMatch     *int     `json:"education_match,omitempty" validate:"omitempty,gte=0,lte=100"`
	EducationGaps      []string `json:"education_gaps,omitempty"`
	CertificationNeeds []string `json:"certification_needs,omitempty"`
}

// KeywordAnalysis is the keyword section of a match analysis.
type KeywordAnalysis struct {
	MatchingKeywords []string `json:"matching_keywords"`
	MissingKeywords  []string `json:"missing_keywords"`
	KeywordDensity   *int     `json:"keyword_density,omitempty" validate:"omitempty,gte=0,lte=100"`
	KeywordScore     *int     `json:"keyword_score,omitempty" validate:"omitempty,gte=0,lte=100"`
}

// GapAnalysis is the overall gap section of a match analysis.
type GapAnalysis struct {
	MajorGaps  []string `json:"major_gaps"`
	MinorGaps  []string `json:"minor_gaps,omitempty"`
	Strengths  []string `json:"strengths"`
	OverallFit *int     `json:"overall_fit,omitempty" validate:"omitempty,gte=0,lte=100"`
}

// MatchAnalysis is the five-section compatibility assessment between one
// resume and one job. It is transient: the pipeline passes it by value and
// serializes it only at the storage boundary.
type MatchAnalysis struct {
	SkillsAnalysis     SkillsAnalysis     `json:"skills_analysis"`
	ExperienceAnalysis ExperienceAnalysis `json:"experience_analysis"`
	EducationAnalysis  EducationAnalysis  `json:"education_analysis"`
	KeywordAnalysis    KeywordAnalysis    `json:"keyword_analysis"`
	GapAnalysis        GapAnalysis        `json:"gap_analysis"`
}

// ImprovementSuggestion is one actionable recommendation derived from a
// match analysis.
type ImprovementSuggestion struct {
	Category    string   `json:"category" validate:"required,oneof=skills experience keywords education structure"`
	Priority    string   `json:"priority" validate:"required,oneof=high medium low"`
	Suggestion  string   `json:"suggestion" validate:"required"`
	ImpactScore *int     `json:"impact_score,omitempty" validate:"omitempty,gte=0,lte=100"`
	Examples    []string `json:"examples"`
}

// MatchScores holds the five numeric match scores, each in [0.0, 1.0] and
// rounded to 3 decimal places. Overall is always the fixed weighted
// combination of the four sub-scores and is never set independently.
type MatchScores struct {
	Overall    float64 `json:"overall_match_score" validate:"gte=0,lte=1"`
	Skills     float64 `json:"skills_match_score" validate:"gte=0,lte=1"`
	Experience float64 `json:"experience_match_score" validate:"gte=0,lte=1"`
	Education  float64 `json:"education_match_score" validate:"gte=0,lte=1"`
	Keywords   float64 `json:"keywords_match_score" validate:"gte=0,lte=1"`
}

// MatchRecord is one persisted match result. Records are append-only:
// repeated analyses of the same resume/job pair each add a new row.
type MatchRecord struct {
	ID              int64                   `json:"id"`
	ResumeID        string                  `json:"resume_id"`
	JobID           string                  `json:"job_id"`
	Scores          MatchScores             `json:"scores"`
	Analysis        MatchAnalysis           `json:"match_analysis"`
	Suggestions     []ImprovementSuggestion `json:"improvement_suggestions"`
	MissingSkills   []string                `json:"missing_skills"`
	MatchingSkills  []string                `json:"matching_skills"`
	AnalysisVersion string                  `json:"analysis_version"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
}
