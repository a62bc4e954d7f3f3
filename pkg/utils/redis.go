package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"resumatch/internal/config"
	"resumatch/internal/logging"
	"resumatch/pkg/models"
)

// RecordCache is a read-through cache for processed resume and job records.
// The sqlite store stays the source of truth; cache misses and any redis
// failure fall through to it silently.
type RecordCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logging.Logger
}

// NewRecordCache creates a record cache from configuration. Returns nil if
// caching is disabled; all methods are nil-safe.
func NewRecordCache(cfg *config.Config) *RecordCache {
	if !cfg.Redis.Enabled {
		return nil
	}

	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		opts = &redis.Options{Addr: "localhost:6379"}
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	opts.DB = cfg.Redis.DB
	opts.DialTimeout = cfg.Redis.Timeout
	opts.ReadTimeout = cfg.Redis.Timeout
	opts.WriteTimeout = cfg.Redis.Timeout

	return &RecordCache{
		client: redis.NewClient(opts),
		ttl:    cfg.Redis.RecordTTL,
		logger: logging.GetGlobalLogger(),
	}
}

// Ping tests the redis connection.
func (c *RecordCache) Ping(ctx context.Context) error {
	if c == nil {
		return fmt.Errorf("record cache disabled")
	}
	return c.client.Ping(ctx).Err()
}

// Close closes the redis connection.
func (c *RecordCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}

// GetResume returns a cached resume record, or nil on miss or error.
func (c *RecordCache) GetResume(ctx context.Context, resumeID string) *models.NormalizedResume {
	if c == nil {
		return nil
	}
	var resume models.NormalizedResume
	if !c.get(ctx, resumeKey(resumeID), &resume) {
		return nil
	}
	return &resume
}

// SetResume caches a resume record with the configured TTL.
func (c *RecordCache) SetResume(ctx context.Context, resume *models.NormalizedResume) {
	if c == nil || resume == nil {
		return
	}
	c.set(ctx, resumeKey(resume.ResumeID), resume)
}

// GetJob returns a cached job record, or nil on miss or error.
func (c *RecordCache) GetJob(ctx context.Context, jobID string) *models.NormalizedJob {
	if c == nil {
		return nil
	}
	var job models.NormalizedJob
	if !c.get(ctx, jobKey(jobID), &job) {
		return nil
	}
	return &job
}

// SetJob caches a job record with the configured TTL.
func (c *RecordCache) SetJob(ctx context.Context, job *models.NormalizedJob) {
	if c == nil || job == nil {
		return
	}
	c.set(ctx, jobKey(job.JobID), job)
}

func (c *RecordCache) get(ctx context.Context, key string, out interface{}) bool {
	data, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Debug("Record cache read failed", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
		return false
	}
	if err := json.Unmarshal([]byte(data), out); err != nil {
		return false
	}
	return true
}

func (c *RecordCache) set(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Debug("Record cache write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

func resumeKey(id string) string {
	return fmt.Sprintf("record:resume:%s", id)
}

func jobKey(id string) string {
	return fmt.Sprintf("record:job:%s", id)
}
