package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumatch/pkg/models"
)

func intPtr(v int) *int {
	return &v
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name     string
		analysis *models.MatchAnalysis
		want     models.MatchScores
	}{
		{
			name: "all scores present",
			analysis: &models.MatchAnalysis{
				SkillsAnalysis:     models.SkillsAnalysis{SkillScore: intPtr(80)},
				ExperienceAnalysis: models.ExperienceAnalysis{ExperienceScore: intPtr(60)},
				EducationAnalysis:  models.EducationAnalysis{EducationMatch: intPtr(100)},
				KeywordAnalysis:    models.KeywordAnalysis{KeywordScore: intPtr(50)},
			},
			want: models.MatchScores{
				Overall:    0.70,
				Skills:     0.80,
				Experience: 0.60,
				Education:  1.00,
				Keywords:   0.50,
			},
		},
		{
			name:     "all scores absent use defaults",
			analysis: &models.MatchAnalysis{},
			want: models.MatchScores{
				Overall:    0.715,
				Skills:     0.70,
				Experience: 0.75,
				Education:  0.80,
				Keywords:   0.65,
			},
		},
		{
			name: "explicit zero is not treated as absent",
			analysis: &models.MatchAnalysis{
				SkillsAnalysis:     models.SkillsAnalysis{SkillScore: intPtr(0)},
				ExperienceAnalysis: models.ExperienceAnalysis{ExperienceScore: intPtr(0)},
				EducationAnalysis:  models.EducationAnalysis{EducationMatch: intPtr(0)},
				KeywordAnalysis:    models.KeywordAnalysis{KeywordScore: intPtr(0)},
			},
			want: models.MatchScores{},
		},
		{
			name: "uneven scores round to 3 decimals",
			analysis: &models.MatchAnalysis{
				SkillsAnalysis:     models.SkillsAnalysis{SkillScore: intPtr(33)},
				ExperienceAnalysis: models.ExperienceAnalysis{ExperienceScore: intPtr(67)},
				EducationAnalysis:  models.EducationAnalysis{EducationMatch: intPtr(91)},
				KeywordAnalysis:    models.KeywordAnalysis{KeywordScore: intPtr(49)},
			},
			want: models.MatchScores{
				Overall:    0.522,
				Skills:     0.33,
				Experience: 0.67,
				Education:  0.91,
				Keywords:   0.49,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Aggregate(tt.analysis)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAggregateDeterministic(t *testing.T) {
	analysis := &models.MatchAnalysis{
		SkillsAnalysis:     models.SkillsAnalysis{SkillScore: intPtr(73)},
		ExperienceAnalysis: models.ExperienceAnalysis{ExperienceScore: intPtr(41)},
		EducationAnalysis:  models.EducationAnalysis{EducationMatch: intPtr(88)},
		KeywordAnalysis:    models.KeywordAnalysis{KeywordScore: intPtr(55)},
	}

	first := Aggregate(analysis)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Aggregate(analysis))
	}
}

func TestWeightsSumToOne(t *testing.T) {
	sum := SkillsWeight + ExperienceWeight + KeywordsWeight + EducationWeight
	require.InDelta(t, 1.0, sum, 1e-9)
}

func TestFallbackScores(t *testing.T) {
	scores := FallbackScores()

	assert.Equal(t, 0.70, scores.Overall)
	assert.Equal(t, 0.70, scores.Skills)
	assert.Equal(t, 0.75, scores.Experience)
	assert.Equal(t, 0.80, scores.Education)
	assert.Equal(t, 0.65, scores.Keywords)
}

func TestRound3(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0.7154, 0.715},
		{0.7156, 0.716},
		{0.1, 0.1},
		{0, 0},
		{0.9999, 1.0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Round3(tt.in))
	}
}
