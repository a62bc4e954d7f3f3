package scoring

import (
	"math"

	"resumatch/pkg/models"
)

// AnalysisVersion identifies the scoring behavior. The weights below are
// fixed under this version; changing them requires a version bump.
const AnalysisVersion = "1.0"

// Fixed weights for the overall score combination.
const (
	SkillsWeight     = 0.40
	ExperienceWeight = 0.30
	KeywordsWeight   = 0.20
	EducationWeight  = 0.10
)

// Defaults substituted for sub-scores the analysis left unset.
const (
	DefaultSkillScore      = 70
	DefaultExperienceScore = 75
	DefaultEducationMatch  = 80
	DefaultKeywordScore    = 65
)

// FallbackScores returns the documented constant scores used when the
// model's analysis could not be parsed at all. These are fixed policy
// values, not a weighted combination.
func FallbackScores() models.MatchScores {
	return models.MatchScores{
		Overall:    0.70,
		Skills:     0.70,
		Experience: 0.75,
		Education:  0.80,
		Keywords:   0.65,
	}
}

// Aggregate maps a match analysis to the five deterministic scores.
// Sub-scores arrive as integers in [0,100] and come out as floats in
// [0,1] rounded to 3 decimal places.
func Aggregate(analysis *models.MatchAnalysis) models.MatchScores {
	skills := scoreOrDefault(analysis.SkillsAnalysis.SkillScore, DefaultSkillScore)
	experience := scoreOrDefault(analysis.ExperienceAnalysis.ExperienceScore, DefaultExperienceScore)
	education := scoreOrDefault(analysis.EducationAnalysis.EducationMatch, DefaultEducationMatch)
	keywords := scoreOrDefault(analysis.KeywordAnalysis.KeywordScore, DefaultKeywordScore)

	overall := skills*SkillsWeight +
		experience*ExperienceWeight +
		keywords*KeywordsWeight +
		education*EducationWeight

	return models.MatchScores{
		Overall:    Round3(overall),
		Skills:     Round3(skills),
		Experience: Round3(experience),
		Education:  Round3(education),
		Keywords:   Round3(keywords),
	}
}

func scoreOrDefault(score *int, fallback int) float64 {
	v := fallback
	if score != nil {
		v = *score
	}
	return float64(v) / 100.0
}

// Round3 rounds to 3 decimal places
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
