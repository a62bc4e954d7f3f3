package workers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"resumatch/internal/config"
	"resumatch/internal/logging"
	"resumatch/pkg/models"
)

// PoolManager manages the worker pool lifecycle
type PoolManager struct {
	config      *config.Config
	pool        *WorkerPool
	runner      MatchRunner
	logger      logging.Logger
	mu          sync.RWMutex
	initialized bool
}

// PoolManagerStats represents statistics for the pool manager
type PoolManagerStats struct {
	Initialized     bool          `json:"initialized"`
	WorkerCount     int           `json:"worker_count"`
	QueueCapacity   int           `json:"queue_capacity"`
	TasksQueued     int64         `json:"tasks_queued"`
	TasksProcessed  int64         `json:"tasks_processed"`
	TasksSuccessful int64         `json:"tasks_successful"`
	TasksFailed     int64         `json:"tasks_failed"`
	AverageTaskTime time.Duration `json:"average_task_time"`
	ThrottleWaits   int64         `json:"throttle_waits"`
}

// NewPoolManager creates a new worker pool manager
func NewPoolManager(cfg *config.Config, runner MatchRunner) *PoolManager {
	return &PoolManager{
		config: cfg,
		runner: runner,
		logger: logging.GetGlobalLogger().WithField("component", "pool_manager"),
	}
}

// Initialize creates and starts the worker pool
func (pm *PoolManager) Initialize() error {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if pm.initialized {
		return fmt.Errorf("worker pool already initialized")
	}

	pm.pool = NewWorkerPool(pm.config, pm.runner)
	if err := pm.pool.Start(); err != nil {
		return fmt.Errorf("failed to start worker pool: %w", err)
	}

	pm.initialized = true
	return nil
}

// Shutdown gracefully shuts down the worker pool
func (pm *PoolManager) Shutdown() error {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if !pm.initialized || pm.pool == nil {
		return nil
	}

	if err := pm.pool.Stop(); err != nil {
		pm.logger.Error("Error stopping worker pool", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}

	pm.initialized = false
	return nil
}

// SubmitMatch submits one resume/job pair to the worker pool
func (pm *PoolManager) SubmitMatch(ctx context.Context, resumeID, jobID string) (*models.ImprovementResult, error) {
	pm.mu.RLock()
	pool := pm.pool
	initialized := pm.initialized
	pm.mu.RUnlock()

	if !initialized || pool == nil {
		return nil, fmt.Errorf("worker pool not initialized")
	}

	result, err := pool.SubmitMatch(ctx, resumeID, jobID)
	if err != nil {
		return nil, err
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return result.Result, nil
}

// GetStats returns worker pool statistics
func (pm *PoolManager) GetStats() (*PoolManagerStats, error) {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	if !pm.initialized || pm.pool == nil {
		return nil, fmt.Errorf("worker pool not initialized")
	}

	poolStats := pm.pool.GetStats()
	_, waits := pm.pool.rateLimiter.Stats()

	return &PoolManagerStats{
		Initialized:     pm.initialized,
		WorkerCount:     len(pm.pool.workers),
		QueueCapacity:   pm.config.Workers.QueueSize,
		TasksQueued:     poolStats.TasksQueued,
		TasksProcessed:  poolStats.TasksProcessed,
		TasksSuccessful: poolStats.TasksSuccessful,
		TasksFailed:     poolStats.TasksFailed,
		AverageTaskTime: poolStats.AverageProcessingTime,
		ThrottleWaits:   waits,
	}, nil
}

// IsHealthy returns true if the worker pool is healthy
func (pm *PoolManager) IsHealthy() bool {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return pm.initialized && pm.pool != nil && pm.pool.IsRunning()
}
