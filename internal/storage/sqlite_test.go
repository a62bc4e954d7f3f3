package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumatch/internal/config"
	"resumatch/pkg/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	cfg := &config.Config{}
	cfg.Database.Path = filepath.Join(t.TempDir(), "test.db")
	cfg.Database.BusyTimeout = 5 * time.Second

	store, err := NewSQLiteStore(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func testResume(id string) *models.NormalizedResume {
	return &models.NormalizedResume{
		ResumeID: id,
		PersonalData: models.PersonalData{
			FullName: "Ada Example",
			Email:    "ada@example.com",
		},
		Skills: []models.SkillEntry{
			{Name: "Go", Category: "programming"},
			{Name: "SQL", Category: "data"},
		},
		ExtractedKeywords: []string{"go", "sql", "backend"},
		ProcessedAt:       time.Now().UTC(),
	}
}

func testJob(id, resumeID string) *models.NormalizedJob {
	return &models.NormalizedJob{
		JobID:               id,
		ResumeID:            resumeID,
		Title:               "Backend Engineer",
		Summary:             "Build and operate backend services",
		KeyResponsibilities: []string{"Design APIs", "Operate services"},
		Qualifications: map[string][]string{
			"required": {"Go", "SQL"},
		},
		ExtractedKeywords: []string{"go", "api"},
		ProcessedAt:       time.Now().UTC(),
	}
}

func testMatch(resumeID, jobID string, overall float64) *models.MatchRecord {
	return &models.MatchRecord{
		ResumeID: resumeID,
		JobID:    jobID,
		Scores: models.MatchScores{
			Overall:    overall,
			Skills:     0.8,
			Experience: 0.6,
			Education:  1.0,
			Keywords:   0.5,
		},
		Analysis: models.MatchAnalysis{
			SkillsAnalysis: models.SkillsAnalysis{
				MatchingSkills: []string{"Go"},
				MissingSkills:  []string{"Kubernetes"},
			},
			GapAnalysis: models.GapAnalysis{
				MajorGaps: []string{"Kubernetes"},
				Strengths: []string{"Go"},
			},
		},
		Suggestions:     []models.ImprovementSuggestion{{Category: "skills", Priority: "high", Suggestion: "Add Kubernetes", Examples: []string{}}},
		MissingSkills:   []string{"Kubernetes"},
		MatchingSkills:  []string{"Go"},
		AnalysisVersion: "1.0",
	}
}

func TestResumeRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	resume := testResume("resume-1")
	require.NoError(t, store.SaveResume(ctx, resume))

	loaded, err := store.GetResume(ctx, "resume-1")
	require.NoError(t, err)
	assert.Equal(t, resume.ResumeID, loaded.ResumeID)
	assert.Equal(t, resume.PersonalData, loaded.PersonalData)
	assert.Equal(t, resume.Skills, loaded.Skills)
	assert.Equal(t, resume.ExtractedKeywords, loaded.ExtractedKeywords)
}

func TestGetResumeNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetResume(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestJobRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveResume(ctx, testResume("resume-1")))
	job := testJob("job-1", "resume-1")
	require.NoError(t, store.SaveJob(ctx, job))

	loaded, err := store.GetJob(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, job.JobID, loaded.JobID)
	assert.Equal(t, job.ResumeID, loaded.ResumeID)
	assert.Equal(t, job.Title, loaded.Title)
	assert.Equal(t, job.Qualifications, loaded.Qualifications)

	_, err = store.GetJob(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetJobsForResumeKeepsRegistrationOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveResume(ctx, testResume("resume-1")))
	for _, id := range []string{"job-1", "job-2", "job-3"} {
		require.NoError(t, store.SaveJob(ctx, testJob(id, "resume-1")))
	}

	jobs, err := store.GetJobsForResume(ctx, "resume-1")
	require.NoError(t, err)
	require.Len(t, jobs, 3)
	assert.Equal(t, "job-1", jobs[0].JobID)
	assert.Equal(t, "job-2", jobs[1].JobID)
	assert.Equal(t, "job-3", jobs[2].JobID)

	jobs, err = store.GetJobsForResume(ctx, "other")
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestSaveMatchFillsIDAndTimestamps(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveResume(ctx, testResume("resume-1")))
	require.NoError(t, store.SaveJob(ctx, testJob("job-1", "resume-1")))

	record := testMatch("resume-1", "job-1", 0.70)
	require.NoError(t, store.SaveMatch(ctx, record))

	assert.Greater(t, record.ID, int64(0))
	assert.False(t, record.CreatedAt.IsZero())
	assert.Equal(t, record.CreatedAt, record.UpdatedAt)
}

func TestMatchHistoryIsAppendOnly(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveResume(ctx, testResume("resume-1")))
	require.NoError(t, store.SaveJob(ctx, testJob("job-1", "resume-1")))

	// Re-analyzing the same pair adds a row each time
	require.NoError(t, store.SaveMatch(ctx, testMatch("resume-1", "job-1", 0.60)))
	require.NoError(t, store.SaveMatch(ctx, testMatch("resume-1", "job-1", 0.70)))
	require.NoError(t, store.SaveMatch(ctx, testMatch("resume-1", "job-1", 0.80)))

	history, err := store.MatchHistory(ctx, "resume-1")
	require.NoError(t, err)
	require.Len(t, history, 3)

	assert.Equal(t, 0.60, history[0].Scores.Overall)
	assert.Equal(t, 0.70, history[1].Scores.Overall)
	assert.Equal(t, 0.80, history[2].Scores.Overall)
	assert.Less(t, history[0].ID, history[1].ID)
	assert.Less(t, history[1].ID, history[2].ID)
}

func TestMatchRecordRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveResume(ctx, testResume("resume-1")))
	require.NoError(t, store.SaveJob(ctx, testJob("job-1", "resume-1")))

	record := testMatch("resume-1", "job-1", 0.715)
	require.NoError(t, store.SaveMatch(ctx, record))

	history, err := store.MatchHistory(ctx, "resume-1")
	require.NoError(t, err)
	require.Len(t, history, 1)

	loaded := history[0]
	assert.Equal(t, record.ID, loaded.ID)
	assert.Equal(t, record.Scores, loaded.Scores)
	assert.Equal(t, record.Analysis, loaded.Analysis)
	assert.Equal(t, record.Suggestions, loaded.Suggestions)
	assert.Equal(t, record.MissingSkills, loaded.MissingSkills)
	assert.Equal(t, record.MatchingSkills, loaded.MatchingSkills)
	assert.Equal(t, record.AnalysisVersion, loaded.AnalysisVersion)
	assert.True(t, record.CreatedAt.Equal(loaded.CreatedAt))
}

func TestMatchHistoryEmptyForUnknownResume(t *testing.T) {
	store := newTestStore(t)

	history, err := store.MatchHistory(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, history)
}
