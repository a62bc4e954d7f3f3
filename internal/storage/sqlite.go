package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"resumatch/internal/config"
	"resumatch/pkg/models"
)

// SQLiteStore is the SQLite-backed implementation of Store
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at the configured path
// and applies the schema
func NewSQLiteStore(cfg *config.Config) (*SQLiteStore, error) {
	path := cfg.Database.Path
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(%d)&_pragma=foreign_keys(1)", path, cfg.Database.BusyTimeout.Milliseconds())
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite: single writer

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS processed_resumes (
		resume_id    TEXT PRIMARY KEY,
		record       TEXT NOT NULL,
		processed_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS processed_jobs (
		job_id       TEXT PRIMARY KEY,
		resume_id    TEXT NOT NULL,
		record       TEXT NOT NULL,
		processed_at TEXT NOT NULL,
		FOREIGN KEY (resume_id) REFERENCES processed_resumes(resume_id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS resume_job_matches (
		id                      INTEGER PRIMARY KEY AUTOINCREMENT,
		resume_id               TEXT NOT NULL,
		job_id                  TEXT NOT NULL,
		overall_match_score     REAL NOT NULL,
		skills_match_score      REAL NOT NULL,
		experience_match_score  REAL NOT NULL,
		education_match_score   REAL NOT NULL,
		keywords_match_score    REAL NOT NULL,
		match_analysis          TEXT NOT NULL,
		improvement_suggestions TEXT NOT NULL,
		missing_skills          TEXT NOT NULL,
		matching_skills         TEXT NOT NULL,
		analysis_version        TEXT NOT NULL,
		created_at              TEXT NOT NULL,
		updated_at              TEXT NOT NULL,
		FOREIGN KEY (resume_id) REFERENCES processed_resumes(resume_id) ON DELETE CASCADE,
		FOREIGN KEY (job_id) REFERENCES processed_jobs(job_id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_jobs_resume ON processed_jobs(resume_id);
	CREATE INDEX IF NOT EXISTS idx_matches_resume ON resume_job_matches(resume_id);
	`)
	return err
}

// SaveResume stores a normalized resume record
func (s *SQLiteStore) SaveResume(ctx context.Context, resume *models.NormalizedResume) error {
	record, err := json.Marshal(resume)
	if err != nil {
		return fmt.Errorf("failed to encode resume: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO processed_resumes (resume_id, record, processed_at) VALUES (?, ?, ?)`,
		resume.ResumeID, string(record), resume.ProcessedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to save resume: %w", err)
	}
	return nil
}

// GetResume loads a normalized resume by id
func (s *SQLiteStore) GetResume(ctx context.Context, resumeID string) (*models.NormalizedResume, error) {
	var record string
	err := s.db.QueryRowContext(ctx,
		`SELECT record FROM processed_resumes WHERE resume_id = ?`, resumeID,
	).Scan(&record)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load resume: %w", err)
	}

	var resume models.NormalizedResume
	if err := json.Unmarshal([]byte(record), &resume); err != nil {
		return nil, fmt.Errorf("failed to decode resume: %w", err)
	}
	return &resume, nil
}

// SaveJob stores a normalized job record
func (s *SQLiteStore) SaveJob(ctx context.Context, job *models.NormalizedJob) error {
	record, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to encode job: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO processed_jobs (job_id, resume_id, record, processed_at) VALUES (?, ?, ?, ?)`,
		job.JobID, job.ResumeID, string(record), job.ProcessedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to save job: %w", err)
	}
	return nil
}

// GetJob loads a normalized job by id
func (s *SQLiteStore) GetJob(ctx context.Context, jobID string) (*models.NormalizedJob, error) {
	var record string
	err := s.db.QueryRowContext(ctx,
		`SELECT record FROM processed_jobs WHERE job_id = ?`, jobID,
	).Scan(&record)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load job: %w", err)
	}

	var job models.NormalizedJob
	if err := json.Unmarshal([]byte(record), &job); err != nil {
		return nil, fmt.Errorf("failed to decode job: %w", err)
	}
	return &job, nil
}

// GetJobsForResume loads all jobs registered under a resume in
// registration order
func (s *SQLiteStore) GetJobsForResume(ctx context.Context, resumeID string) ([]*models.NormalizedJob, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT record FROM processed_jobs WHERE resume_id = ? ORDER BY rowid ASC`, resumeID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*models.NormalizedJob
	for rows.Next() {
		var record string
		if err := rows.Scan(&record); err != nil {
			return nil, fmt.Errorf("failed to scan job row: %w", err)
		}
		var job models.NormalizedJob
		if err := json.Unmarshal([]byte(record), &job); err != nil {
			return nil, fmt.Errorf("failed to decode job: %w", err)
		}
		jobs = append(jobs, &job)
	}
	return jobs, rows.Err()
}

// SaveMatch appends one match row. The stored scores are the aggregator's
// output as-is; nothing is recomputed here. The record's ID and
// timestamps are filled in on return.
func (s *SQLiteStore) SaveMatch(ctx context.Context, record *models.MatchRecord) error {
	analysis, err := json.Marshal(record.Analysis)
	if err != nil {
		return fmt.Errorf("failed to encode match analysis: %w", err)
	}
	suggestions, err := json.Marshal(record.Suggestions)
	if err != nil {
		return fmt.Errorf("failed to encode suggestions: %w", err)
	}
	missing, err := json.Marshal(record.MissingSkills)
	if err != nil {
		return fmt.Errorf("failed to encode missing skills: %w", err)
	}
	matching, err := json.Marshal(record.MatchingSkills)
	if err != nil {
		return fmt.Errorf("failed to encode matching skills: %w", err)
	}

	now := time.Now().UTC()
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO resume_job_matches (
			resume_id, job_id,
			overall_match_score, skills_match_score, experience_match_score,
			education_match_score, keywords_match_score,
			match_analysis, improvement_suggestions, missing_skills, matching_skills,
			analysis_version, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ResumeID, record.JobID,
		record.Scores.Overall, record.Scores.Skills, record.Scores.Experience,
		record.Scores.Education, record.Scores.Keywords,
		string(analysis), string(suggestions), string(missing), string(matching),
		record.AnalysisVersion,
		now.Format(time.RFC3339Nano), now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to save match: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read match id: %w", err)
	}
	record.ID = id
	record.CreatedAt = now
	record.UpdatedAt = now
	return nil
}

// MatchHistory loads all match rows for a resume in insertion order
func (s *SQLiteStore) MatchHistory(ctx context.Context, resumeID string) ([]*models.MatchRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, resume_id, job_id,
			overall_match_score, skills_match_score, experience_match_score,
			education_match_score, keywords_match_score,
			match_analysis, improvement_suggestions, missing_skills, matching_skills,
			analysis_version, created_at, updated_at
		 FROM resume_job_matches WHERE resume_id = ? ORDER BY id ASC`, resumeID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load match history: %w", err)
	}
	defer rows.Close()

	var history []*models.MatchRecord
	for rows.Next() {
		record, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		history = append(history, record)
	}
	return history, rows.Err()
}

func scanMatch(rows *sql.Rows) (*models.MatchRecord, error) {
	var (
		record                models.MatchRecord
		analysis, suggestions string
		missing, matching     string
		createdAt, updatedAt  string
	)

	err := rows.Scan(
		&record.ID, &record.ResumeID, &record.JobID,
		&record.Scores.Overall, &record.Scores.Skills, &record.Scores.Experience,
		&record.Scores.Education, &record.Scores.Keywords,
		&analysis, &suggestions, &missing, &matching,
		&record.AnalysisVersion, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan match row: %w", err)
	}

	if err := json.Unmarshal([]byte(analysis), &record.Analysis); err != nil {
		return nil, fmt.Errorf("failed to decode match analysis: %w", err)
	}
	if err := json.Unmarshal([]byte(suggestions), &record.Suggestions); err != nil {
		return nil, fmt.Errorf("failed to decode suggestions: %w", err)
	}
	if err := json.Unmarshal([]byte(missing), &record.MissingSkills); err != nil {
		return nil, fmt.Errorf("failed to decode missing skills: %w", err)
	}
	if err := json.Unmarshal([]byte(matching), &record.MatchingSkills); err != nil {
		return nil, fmt.Errorf("failed to decode matching skills: %w", err)
	}

	if record.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if record.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	return &record, nil
}

// Close closes the underlying database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
