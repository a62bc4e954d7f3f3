package models

// ExtractResumeRequest is the payload for registering a resume. Text is the
// already-converted document content; HTML input is tolerated and cleaned
// before prompting.
type ExtractResumeRequest struct {
	Text string `json:"text" validate:"required,min=50"`
}

// JobDescriptionInput is one job description to register under a resume.
// Only Description is required; the optional metadata fields are folded
// into the extraction prompt when present.
type JobDescriptionInput struct {
	Company        string `json:"company,omitempty"`
	JobTitle       string `json:"job_title,omitempty"`
	Description    string `json:"description" validate:"required,min=30"`
	Location       string `json:"location,omitempty"`
	EmploymentType string `json:"employment_type,omitempty"`
}

// ExtractJobsRequest registers one or more job descriptions under a resume.
type ExtractJobsRequest struct {
	ResumeID string                `json:"resume_id" validate:"required"`
	Jobs     []JobDescriptionInput `json:"jobs" validate:"required,min=1,dive"`
}

// ImprovementRequest asks for a match analysis of one resume/job pair.
type ImprovementRequest struct {
	ResumeID string `json:"resume_id" validate:"required"`
	JobID    string `json:"job_id" validate:"required"`
}
