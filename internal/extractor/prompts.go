package extractor

import (
	"encoding/json"
	"fmt"
	"strings"

	"resumatch/pkg/models"
)

func buildResumeExtractionPrompt(text string) string {
	return fmt.Sprintf(`You are a resume parser. Extract structured information from the resume text below and return it as a JSON object.

Return a valid JSON object with exactly these fields:

{
  "personal_data": {
    "full_name": "string",
    "email": "string",
    "phone": "string",
    "location": "string",
    "website": "string",
    "linkedin": "string"
  },
  "experiences": [
    {
      "job_title": "string",
      "company": "string",
      "location": "string",
      "start_date": "string",
      "end_date": "string",
      "current": boolean,
      "description": "string",
      "highlights": ["string"]
    }
  ],
  "projects": [
    {
      "name": "string",
      "description": "string",
      "technologies": ["string"],
      "url": "string"
    }
  ],
  "skills": [
    {
      "name": "string",
      "category": "string",
      "proficiency": "string"
    }
  ],
  "education": [
    {
      "institution": "string",
      "degree": "string",
      "field_of_study": "string",
      "start_date": "string",
      "end_date": "string",
      "grade": "string"
    }
  ],
  "extracted_keywords": ["string"]
}

IMPORTANT RULES:
1. Return ONLY valid JSON, no additional text or explanation
2. Use empty string "" for missing strings and empty array [] for missing lists
3. Extract 10-30 keywords covering skills, tools, and domain terms
4. Preserve date strings as they appear in the resume

RESUME TEXT:
%s`, text)
}

func buildJobExtractionPrompt(content string) string {
	return fmt.Sprintf(`You are a job posting parser. Extract structured information from the job posting below and return it as a JSON object.

Return a valid JSON object with exactly these fields:

{
  "title": "string - The job title",
  "company_profile": {"name": "string", "industry": "string", "description": "string"},
  "location": "string",
  "date_posted": "string",
  "employment_type": "string - full-time, part-time, contract, etc.",
  "summary": "string - Brief summary of the role (2-3 sentences max)",
  "key_responsibilities": ["array of strings"],
  "qualifications": {
    "required": ["array of strings"],
    "preferred": ["array of strings"]
  },
  "compensation_and_benefits": {"salary": "string", "benefits": "string"},
  "application_info": {"how_to_apply": "string", "deadline": "string"},
  "extracted_keywords": ["array of strings - 10-30 skills and domain terms"]
}

IMPORTANT RULES:
1. Return ONLY valid JSON, no additional text or explanation
2. Use empty string "" for missing strings, empty array [] for missing lists, and empty object {} for missing maps
3. Keep required and preferred qualifications separate

JOB POSTING:
%s`, content)
}

// buildJobContent folds the optional metadata fields into a single prompt
// payload. Field order is fixed so identical input yields an identical
// prompt.
func buildJobContent(input models.JobDescriptionInput, description string) string {
	var parts []string

	if input.Company != "" {
		parts = append(parts, fmt.Sprintf("Company: %s", input.Company))
	}
	if input.JobTitle != "" {
		parts = append(parts, fmt.Sprintf("Job Title: %s", input.JobTitle))
	}
	if description != "" {
		parts = append(parts, fmt.Sprintf("Job Description:\n%s", description))
	}
	if input.Location != "" {
		parts = append(parts, fmt.Sprintf("Location: %s", input.Location))
	}
	if input.EmploymentType != "" {
		parts = append(parts, fmt.Sprintf("Employment Type: %s", input.EmploymentType))
	}

	return strings.Join(parts, "\n\n")
}

func buildResumeScoresPrompt(resume *models.NormalizedResume) (string, error) {
	resumeData, err := json.MarshalIndent(map[string]interface{}{
		"personal_data":      resume.PersonalData,
		"experiences":        resume.Experiences,
		"projects":           resume.Projects,
		"skills":             resume.Skills,
		"education":          resume.Education,
		"extracted_keywords": resume.ExtractedKeywords,
	}, "", "  ")
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(`Analyze the following resume data and provide scoring in the following categories (0-100):

1. ATS Compatibility: How well will this resume pass through ATS systems?
2. Keyword Density: How rich is the resume in relevant keywords?
3. Structure Quality: How well-structured and organized is the resume?
4. Content Relevance: How relevant and impactful is the content?
5. Overall Score: Overall assessment of the resume quality.

Resume Data: %s

Provide your analysis as a JSON object with these exact keys:
{
  "ats_compatibility": <score>,
  "keyword_density": <score>,
  "structure_quality": <score>,
  "content_relevance": <score>,
  "overall_score": <score>
}

Return ONLY the JSON object, no additional text or explanation.`, resumeData), nil
}

func buildResumeFeedbackPrompt(resume *models.NormalizedResume, scores *models.ResumeAnalysisScores) (string, error) {
	resumeData, err := json.MarshalIndent(map[string]interface{}{
		"personal_data":      resume.PersonalData,
		"experiences":        resume.Experiences,
		"skills":             resume.Skills,
		"education":          resume.Education,
		"extracted_keywords": resume.ExtractedKeywords,
	}, "", "  ")
	if err != nil {
		return "", err
	}

	scoresText := "Not available"
	if scores != nil {
		scoresData, err := json.Marshal(scores)
		if err != nil {
			return "", err
		}
		scoresText = string(scoresData)
	}

	return fmt.Sprintf(`Based on the resume analysis and scores, provide detailed feedback in the following categories:

1. Strengths: What are the resume's strong points?
2. Weaknesses: What areas need improvement?
3. Suggestions: Specific actionable improvements
4. Missing Elements: What important elements are missing?
5. ATS Recommendations: Specific recommendations for ATS optimization

Resume Data: %s
Analysis Scores: %s

Provide your feedback as a JSON object with these exact keys:
{
  "strengths": ["strength1", "strength2"],
  "weaknesses": ["weakness1", "weakness2"],
  "suggestions": ["suggestion1", "suggestion2"],
  "missing_elements": ["element1", "element2"],
  "ats_recommendations": ["recommendation1", "recommendation2"]
}

Return ONLY the JSON object, no additional text or explanation.`, resumeData, scoresText), nil
}

func buildJobScoresPrompt(job *models.NormalizedJob) (string, error) {
	jobData, err := json.MarshalIndent(map[string]interface{}{
		"title":                job.Title,
		"summary":              job.Summary,
		"key_responsibilities": job.KeyResponsibilities,
		"qualifications":       job.Qualifications,
		"extracted_keywords":   job.ExtractedKeywords,
	}, "", "  ")
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(`Analyze the following job posting and provide scoring in the following categories (0-100):

1. Requirements Clarity: How clearly are the job requirements defined?
2. Keyword Complexity: How complex/demanding are the required keywords and skills?
3. Match Potential: How likely is this job to find good candidate matches?

Job Data: %s

Provide your analysis as a JSON object with these exact keys:
{
  "requirements_clarity_score": <score>,
  "keyword_complexity_score": <score>,
  "match_potential_score": <score>,
  "overall_job_quality": <score>
}

Return ONLY the JSON object, no additional text or explanation.`, jobData), nil
}
