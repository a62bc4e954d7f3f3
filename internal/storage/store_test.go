package storage

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumatch/pkg/models"
)

func matchWithScore(jobID string, overall float64) *models.MatchRecord {
	return &models.MatchRecord{
		ResumeID: "resume-1",
		JobID:    jobID,
		Scores:   models.MatchScores{Overall: overall},
	}
}

func TestRecentMatches(t *testing.T) {
	var history []*models.MatchRecord
	for i := 1; i <= 7; i++ {
		history = append(history, matchWithScore(fmt.Sprintf("job-%d", i), 0.5))
	}

	recent := RecentMatches(history, 5)
	require.Len(t, recent, 5)
	assert.Equal(t, "job-7", recent[0].JobID)
	assert.Equal(t, "job-3", recent[4].JobID)

	assert.Len(t, RecentMatches(history, 10), 7)
	assert.Nil(t, RecentMatches(nil, 5))
	assert.Nil(t, RecentMatches(history, 0))
}

func TestBestMatch(t *testing.T) {
	assert.Nil(t, BestMatch(nil))

	history := []*models.MatchRecord{
		matchWithScore("job-1", 0.6),
		matchWithScore("job-2", 0.8),
		matchWithScore("job-3", 0.7),
	}
	best := BestMatch(history)
	require.NotNil(t, best)
	assert.Equal(t, "job-2", best.JobID)
}

func TestBestMatchTieKeepsFirst(t *testing.T) {
	history := []*models.MatchRecord{
		matchWithScore("job-1", 0.8),
		matchWithScore("job-2", 0.8),
	}
	assert.Equal(t, "job-1", BestMatch(history).JobID)
}

func TestAverageOverall(t *testing.T) {
	assert.Equal(t, 0.0, AverageOverall(nil))

	history := []*models.MatchRecord{
		matchWithScore("job-1", 0.2),
		matchWithScore("job-2", 0.4),
		matchWithScore("job-3", 0.6),
	}
	assert.Equal(t, 0.4, AverageOverall(history))

	history = []*models.MatchRecord{
		matchWithScore("job-1", 0.5),
		matchWithScore("job-2", 0.6),
		matchWithScore("job-3", 0.6),
	}
	assert.Equal(t, 0.567, AverageOverall(history))
}

func TestTopGaps(t *testing.T) {
	history := []*models.MatchRecord{
		{Analysis: models.MatchAnalysis{GapAnalysis: models.GapAnalysis{
			MajorGaps: []string{"kubernetes", "golang"},
		}}},
		{Analysis: models.MatchAnalysis{GapAnalysis: models.GapAnalysis{
			MajorGaps: []string{"golang", "terraform"},
		}}},
		{Analysis: models.MatchAnalysis{GapAnalysis: models.GapAnalysis{
			MajorGaps: []string{"golang", "kubernetes"},
		}}},
	}

	assert.Equal(t, []string{"golang", "kubernetes", "terraform"}, TopGaps(history, 5))
	assert.Equal(t, []string{"golang"}, TopGaps(history, 1))
	assert.Nil(t, TopGaps(nil, 5))
}

func TestTopMissingSkills(t *testing.T) {
	history := []*models.MatchRecord{
		{MissingSkills: []string{"python", "sql"}},
		{MissingSkills: []string{"sql"}},
		{MissingSkills: []string{"python", "sql", "docker"}},
	}

	assert.Equal(t, []string{"sql", "python", "docker"}, TopMissingSkills(history, 10))
}

func TestTopByFrequencyTiesKeepFirstSeenOrder(t *testing.T) {
	items := []string{"b", "a", "c", "a", "b", "c"}
	assert.Equal(t, []string{"b", "a", "c"}, topByFrequency(items, 3))
}

func TestTopByFrequencySkipsEmptyStrings(t *testing.T) {
	items := []string{"", "a", "", "a", "b"}
	assert.Equal(t, []string{"a", "b"}, topByFrequency(items, 5))
}
