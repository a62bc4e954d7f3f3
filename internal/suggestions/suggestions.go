package suggestions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"resumatch/internal/llm"
	"resumatch/internal/logging"
	"resumatch/pkg/models"
)

// Generator produces ranked improvement suggestions from a match analysis
type Generator struct {
	provider llm.Provider
	validate *validator.Validate
	logger   logging.Logger
}

// NewGenerator creates a new suggestion generator
func NewGenerator(provider llm.Provider) *Generator {
	return &Generator{
		provider: provider,
		validate: validator.New(),
		logger:   logging.GetGlobalLogger(),
	}
}

// DefaultSuggestions returns the fixed suggestions substituted when the
// model's response cannot be parsed or fails validation
func DefaultSuggestions() []models.ImprovementSuggestion {
	return []models.ImprovementSuggestion{
		{
			Category:    "skills",
			Priority:    "high",
			Suggestion:  "Add more specific technical skills that match job requirements",
			ImpactScore: intPtr(85),
			Examples:    []string{"Include specific programming languages", "Add relevant tools and frameworks"},
		},
		{
			Category:    "keywords",
			Priority:    "high",
			Suggestion:  "Incorporate job-specific keywords throughout your resume",
			ImpactScore: intPtr(80),
			Examples:    []string{"Use exact terms from job description", "Include industry-specific terminology"},
		},
		{
			Category:    "experience",
			Priority:    "medium",
			Suggestion:  "Quantify achievements with specific numbers and results",
			ImpactScore: intPtr(75),
			Examples:    []string{"Add percentage improvements", "Include dollar amounts or time savings"},
		},
	}
}

// Generate asks the model for specific improvement suggestions based on
// the analysis. Parse and validation failures substitute the documented
// default suggestions; transport errors propagate.
func (g *Generator) Generate(ctx context.Context, analysis *models.MatchAnalysis) ([]models.ImprovementSuggestion, error) {
	prompt, err := buildSuggestionPrompt(analysis)
	if err != nil {
		return nil, fmt.Errorf("failed to build suggestion prompt: %w", err)
	}

	var suggestions []models.ImprovementSuggestion
	if err := g.provider.CompleteStructured(ctx, prompt, &suggestions); err != nil {
		if errors.Is(err, llm.ErrMalformedResponse) {
			g.logger.Warn("Improvement suggestions unparseable, using defaults", map[string]interface{}{
				"error": err.Error(),
			})
			return DefaultSuggestions(), nil
		}
		return nil, err
	}

	for i := range suggestions {
		if err := g.validate.Struct(&suggestions[i]); err != nil {
			g.logger.Warn("Improvement suggestion failed validation, using defaults", map[string]interface{}{
				"index": i,
				"error": err.Error(),
			})
			return DefaultSuggestions(), nil
		}
	}

	if len(suggestions) == 0 {
		return DefaultSuggestions(), nil
	}

	return suggestions, nil
}

func buildSuggestionPrompt(analysis *models.MatchAnalysis) (string, error) {
	analysisData, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(`Based on the resume-job match analysis, generate specific, actionable improvement suggestions.

Focus on:
1. Skills that should be added or emphasized
2. Experience descriptions that should be improved
3. Keywords that should be incorporated
4. Education/certifications that should be highlighted
5. Overall resume structure improvements

Match Analysis: %s

Provide 5-10 specific improvement suggestions as a JSON array:
[
  {
    "category": "skills|experience|keywords|education|structure",
    "priority": "high|medium|low",
    "suggestion": "Detailed suggestion text",
    "impact_score": <0-100>,
    "examples": ["example1", "example2"]
  }
]

Return ONLY the JSON array, no additional text or explanation.`, analysisData), nil
}

func intPtr(v int) *int {
	return &v
}
