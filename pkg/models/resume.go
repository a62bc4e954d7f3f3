package models

import "time"

// PersonalData holds the candidate contact block extracted from a resume.
type PersonalData struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Website  string `json:"website"`
	LinkedIn string `json:"linkedin"`
}

// ExperienceEntry represents one work experience item on a resume.
type ExperienceEntry struct {
	JobTitle    string   `json:"job_title"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Current     bool     `json:"current"`
	Description string   `json:"description"`
	Highlights  []string `json:"highlights"`
}

// ProjectEntry represents a personal or professional project.
type ProjectEntry struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	URL          string   `json:"url"`
}

// SkillEntry represents a single skill with optional grouping metadata.
type SkillEntry struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Proficiency string `json:"proficiency"`
}

// EducationEntry represents one education item on a resume.
type EducationEntry struct {
	Institution  string `json:"institution"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"field_of_study"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Grade        string `json:"grade"`
}

// ResumeAnalysisScores holds the AI quality scores generated for a resume.
// All scores are on a 0-100 scale.
type ResumeAnalysisScores struct {
	ATSCompatibility int `json:"ats_compatibility" validate:"gte=0,lte=100"`
	KeywordDensity   int `json:"keyword_density" validate:"gte=0,lte=100"`
	StructureQuality int `json:"structure_quality" validate:"gte=0,lte=100"`
	ContentRelevance int `json:"content_relevance" validate:"gte=0,lte=100"`
	OverallScore     int `json:"overall_score" validate:"gte=0,lte=100"`
}

// ResumeFeedback holds the AI-generated qualitative feedback for a resume.
type ResumeFeedback struct {
	Strengths          []string `json:"strengths"`
	Weaknesses         []string `json:"weaknesses"`
	Suggestions        []string `json:"suggestions"`
	MissingElements    []string `json:"missing_elements"`
	ATSRecommendations []string `json:"ats_recommendations"`
}

// AnalysisMetadata records how a processed record was produced.
type AnalysisMetadata struct {
	AnalysisVersion  string   `json:"analysis_version"`
	ProcessingTimeMs int64    `json:"processing_time_ms"`
	ModelUsed        string   `json:"model_used"`
	ConfidenceScore  float64  `json:"confidence_score"`
	Errors           []string `json:"errors"`
}

// NormalizedResume is the structured record produced by resume extraction.
// A resume is immutable once stored; re-processing the same document
// produces a new record under a new id.
type NormalizedResume struct {
	ResumeID          string                `json:"resume_id"`
	PersonalData      PersonalData          `json:"personal_data"`
	Experiences       []ExperienceEntry     `json:"experiences"`
	Projects          []ProjectEntry        `json:"projects"`
	Skills            []SkillEntry          `json:"skills"`
	Education         []EducationEntry      `json:"education"`
	ExtractedKeywords []string              `json:"extracted_keywords"`
	RawText           string                `json:"raw_text,omitempty"`
	AnalysisScores    *ResumeAnalysisScores `json:"analysis_scores,omitempty"`
	Feedback          *ResumeFeedback       `json:"feedback,omitempty"`
	Metadata          AnalysisMetadata      `json:"metadata"`
	ProcessedAt       time.Time             `json:"processed_at"`
}
