package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"resumatch/internal/llm"
	"resumatch/internal/logging"
	"resumatch/internal/scoring"
	"resumatch/pkg/models"
)

// Analyzer produces a structured compatibility analysis for a résumé
// and a job posting
type Analyzer struct {
	provider llm.Provider
	validate *validator.Validate
	logger   logging.Logger
}

// NewAnalyzer creates a new match analyzer
func NewAnalyzer(provider llm.Provider) *Analyzer {
	return &Analyzer{
		provider: provider,
		validate: validator.New(),
		logger:   logging.GetGlobalLogger(),
	}
}

// DefaultAnalysis returns the fixed analysis substituted when the model's
// response cannot be parsed or fails validation. The scores mirror the
// documented sub-score defaults.
func DefaultAnalysis() *models.MatchAnalysis {
	skillScore := scoring.DefaultSkillScore
	experienceScore := scoring.DefaultExperienceScore
	educationMatch := scoring.DefaultEducationMatch
	keywordScore := scoring.DefaultKeywordScore
	overallFit := 70

	return &models.MatchAnalysis{
		SkillsAnalysis: models.SkillsAnalysis{
			MatchingSkills: []string{},
			MissingSkills:  []string{},
			SkillScore:     &skillScore,
		},
		ExperienceAnalysis: models.ExperienceAnalysis{
			RelevantExperience: []string{},
			ExperienceScore:    &experienceScore,
		},
		EducationAnalysis: models.EducationAnalysis{
			EducationMatch: &educationMatch,
		},
		KeywordAnalysis: models.KeywordAnalysis{
			MatchingKeywords: []string{},
			MissingKeywords:  []string{},
			KeywordScore:     &keywordScore,
		},
		GapAnalysis: models.GapAnalysis{
			MajorGaps:  []string{},
			Strengths:  []string{},
			OverallFit: &overallFit,
		},
	}
}

// Analyze asks the model to compare the résumé against the job posting.
// The returned bool reports whether the documented default analysis was
// substituted because the model's response was unusable. Transport and
// model errors propagate; parse failures never do.
func (a *Analyzer) Analyze(ctx context.Context, resume *models.NormalizedResume, job *models.NormalizedJob) (*models.MatchAnalysis, bool, error) {
	prompt, err := buildAnalysisPrompt(resume, job)
	if err != nil {
		return nil, false, fmt.Errorf("failed to build analysis prompt: %w", err)
	}

	var analysis models.MatchAnalysis
	if err := a.provider.CompleteStructured(ctx, prompt, &analysis); err != nil {
		if errors.Is(err, llm.ErrMalformedResponse) {
			a.logger.Warn("Match analysis response unparseable, using default analysis", map[string]interface{}{
				"resume_id": resume.ResumeID,
				"job_id":    job.JobID,
				"error":     err.Error(),
			})
			return DefaultAnalysis(), true, nil
		}
		return nil, false, err
	}

	if err := a.validate.Struct(&analysis); err != nil {
		a.logger.Warn("Match analysis failed validation, using default analysis", map[string]interface{}{
			"resume_id": resume.ResumeID,
			"job_id":    job.JobID,
			"error":     err.Error(),
		})
		return DefaultAnalysis(), true, nil
	}

	return &analysis, false, nil
}

func buildAnalysisPrompt(resume *models.NormalizedResume, job *models.NormalizedJob) (string, error) {
	resumeData, err := json.MarshalIndent(map[string]interface{}{
		"personal_data": resume.PersonalData,
		"experiences":   resume.Experiences,
		"skills":        resume.Skills,
		"education":     resume.Education,
		"keywords":      resume.ExtractedKeywords,
	}, "", "  ")
	if err != nil {
		return "", err
	}

	jobData, err := json.MarshalIndent(map[string]interface{}{
		"job_title":            job.Title,
		"job_summary":          job.Summary,
		"key_responsibilities": job.KeyResponsibilities,
		"qualifications":       job.Qualifications,
		"keywords":             job.ExtractedKeywords,
	}, "", "  ")
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(`Perform a comprehensive analysis of how well this resume matches the job requirements.

Analyze the following areas and provide detailed insights:
1. Skills Analysis: Which skills match, which are missing, skill gaps
2. Experience Analysis: Relevant experience, experience gaps, level match
3. Education Analysis: Education requirements vs resume education
4. Keyword Analysis: Keyword overlap, missing keywords, keyword density
5. Gap Analysis: Overall gaps between resume and job requirements

Resume Data: %s
Job Data: %s

Provide your analysis as a JSON object with these exact keys:
{
  "skills_analysis": {
    "matching_skills": ["skill1", "skill2"],
    "missing_skills": ["skill3", "skill4"],
    "skill_gaps": ["gap1", "gap2"],
    "skill_score": <0-100>
  },
  "experience_analysis": {
    "relevant_experience": ["exp1", "exp2"],
    "experience_gaps": ["gap1", "gap2"],
    "level_match": <0-100>,
    "experience_score": <0-100>
  },
  "education_analysis": {
    "education_match": <0-100>,
    "education_gaps": ["gap1", "gap2"],
    "certification_needs": ["cert1", "cert2"]
  },
  "keyword_analysis": {
    "matching_keywords": ["keyword1", "keyword2"],
    "missing_keywords": ["keyword3", "keyword4"],
    "keyword_density": <0-100>,
    "keyword_score": <0-100>
  },
  "gap_analysis": {
    "major_gaps": ["gap1", "gap2"],
    "minor_gaps": ["gap3", "gap4"],
    "strengths": ["strength1", "strength2"],
    "overall_fit": <0-100>
  }
}

Return ONLY the JSON object, no additional text or explanation.`, resumeData, jobData), nil
}
