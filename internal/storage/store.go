package storage

import (
	"context"
	"errors"

	"resumatch/internal/scoring"
	"resumatch/pkg/models"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("record not found")

// Store persists normalized resumes, jobs and match results. Match rows
// are append-only: repeated analyses of the same pair each add a row.
type Store interface {
	SaveResume(ctx context.Context, resume *models.NormalizedResume) error
	GetResume(ctx context.Context, resumeID string) (*models.NormalizedResume, error)

	SaveJob(ctx context.Context, job *models.NormalizedJob) error
	GetJob(ctx context.Context, jobID string) (*models.NormalizedJob, error)
	GetJobsForResume(ctx context.Context, resumeID string) ([]*models.NormalizedJob, error)

	SaveMatch(ctx context.Context, record *models.MatchRecord) error
	MatchHistory(ctx context.Context, resumeID string) ([]*models.MatchRecord, error)

	Close() error
}

// RecentMatches returns the last n records of an insertion-ordered
// history, newest first
func RecentMatches(history []*models.MatchRecord, n int) []*models.MatchRecord {
	if n <= 0 || len(history) == 0 {
		return nil
	}

	recent := make([]*models.MatchRecord, 0, n)
	for i := len(history) - 1; i >= 0 && len(recent) < n; i-- {
		recent = append(recent, history[i])
	}
	return recent
}

// BestMatch returns the record with the highest overall score. Ties
// resolve to the first record encountered.
func BestMatch(history []*models.MatchRecord) *models.MatchRecord {
	var best *models.MatchRecord
	for _, record := range history {
		if best == nil || record.Scores.Overall > best.Scores.Overall {
			best = record
		}
	}
	return best
}

// AverageOverall returns the simple mean of the overall scores, rounded
// to 3 decimal places. Empty history yields 0.
func AverageOverall(history []*models.MatchRecord) float64 {
	if len(history) == 0 {
		return 0
	}

	var sum float64
	for _, record := range history {
		sum += record.Scores.Overall
	}
	return scoring.Round3(sum / float64(len(history)))
}

// TopGaps returns the n most frequent major gaps across the history,
// most frequent first. Frequency ties resolve to first-seen order.
func TopGaps(history []*models.MatchRecord, n int) []string {
	var items []string
	for _, record := range history {
		items = append(items, record.Analysis.GapAnalysis.MajorGaps...)
	}
	return topByFrequency(items, n)
}

// TopMissingSkills returns the n most frequently missing skills across
// the history, most frequent first
func TopMissingSkills(history []*models.MatchRecord, n int) []string {
	var items []string
	for _, record := range history {
		items = append(items, record.MissingSkills...)
	}
	return topByFrequency(items, n)
}

func topByFrequency(items []string, n int) []string {
	if n <= 0 || len(items) == 0 {
		return nil
	}

	counts := make(map[string]int)
	var order []string
	for _, item := range items {
		if item == "" {
			continue
		}
		if counts[item] == 0 {
			order = append(order, item)
		}
		counts[item]++
	}

	// Stable selection sort over first-seen order keeps ties deterministic
	for i := 0; i < len(order); i++ {
		maxIdx := i
		for j := i + 1; j < len(order); j++ {
			if counts[order[j]] > counts[order[maxIdx]] {
				maxIdx = j
			}
		}
		if maxIdx != i {
			picked := order[maxIdx]
			copy(order[i+1:maxIdx+1], order[i:maxIdx])
			order[i] = picked
		}
	}

	if len(order) > n {
		order = order[:n]
	}
	return order
}
