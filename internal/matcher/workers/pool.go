package workers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"resumatch/internal/config"
	"resumatch/internal/logging"
	"resumatch/pkg/models"
	"resumatch/pkg/utils"
)

// MatchRunner executes one resume/job match analysis. The matcher service
// implements this; the pool only schedules and rate-limits the work.
type MatchRunner interface {
	GenerateImprovements(ctx context.Context, resumeID, jobID string) (*models.ImprovementResult, error)
}

// TaskResult represents the result of one match task
type TaskResult struct {
	Result   *models.ImprovementResult
	Error    error
	TaskID   string
	Duration time.Duration
}

// MatchTask represents one resume/job pair to be analyzed by a worker
type MatchTask struct {
	ID         string
	ResumeID   string
	JobID      string
	ResultChan chan TaskResult
	Context    context.Context
	CreatedAt  time.Time
}

// Worker represents a single worker goroutine
type Worker struct {
	ID       int
	TaskChan chan MatchTask
	QuitChan chan bool
	Pool     *WorkerPool
	logger   logging.Logger
}

// WorkerPool runs match analyses on a bounded set of workers so bulk and
// comparison requests cannot saturate the completion provider
type WorkerPool struct {
	config      *config.Config
	workers     []*Worker
	taskQueue   chan MatchTask
	dispatcher  *Dispatcher
	rateLimiter *RateLimiter
	runner      MatchRunner
	logger      logging.Logger
	mu          sync.RWMutex
	running     bool
	stats       *PoolStats
}

// PoolStats tracks worker pool statistics
type PoolStats struct {
	mu                    sync.RWMutex
	TasksQueued           int64
	TasksProcessed        int64
	TasksSuccessful       int64
	TasksFailed           int64
	TotalProcessingTime   time.Duration
	AverageProcessingTime time.Duration
}

// NewWorkerPool creates a new worker pool instance
func NewWorkerPool(cfg *config.Config, runner MatchRunner) *WorkerPool {
	logger := logging.GetGlobalLogger()

	pool := &WorkerPool{
		config:      cfg,
		taskQueue:   make(chan MatchTask, cfg.Workers.QueueSize),
		rateLimiter: NewRateLimiter(cfg),
		runner:      runner,
		logger:      logger,
		stats:       &PoolStats{},
	}

	pool.workers = make([]*Worker, cfg.Workers.PoolSize)
	for i := 0; i < cfg.Workers.PoolSize; i++ {
		pool.workers[i] = &Worker{
			ID:       i + 1,
			TaskChan: make(chan MatchTask),
			QuitChan: make(chan bool),
			Pool:     pool,
			logger:   logger.WithField("worker_id", i+1),
		}
	}

	pool.dispatcher = NewDispatcher(pool.taskQueue, pool.workers)

	logger.Info("Worker pool initialized", map[string]interface{}{
		"pool_size": cfg.Workers.PoolSize,
	})
	return pool
}

// Start starts the worker pool
func (wp *WorkerPool) Start() error {
	wp.mu.Lock()
	defer wp.mu.Unlock()

	if wp.running {
		return fmt.Errorf("worker pool is already running")
	}

	wp.dispatcher.Start()
	for _, worker := range wp.workers {
		go worker.Start()
	}

	wp.running = true
	wp.logger.Info("Worker pool started", map[string]interface{}{
		"workers": len(wp.workers),
	})
	return nil
}

// Stop stops the worker pool gracefully
func (wp *WorkerPool) Stop() error {
	wp.mu.Lock()
	defer wp.mu.Unlock()

	if !wp.running {
		return nil
	}

	wp.dispatcher.Stop()
	for _, worker := range wp.workers {
		worker.Stop()
	}
	close(wp.taskQueue)

	wp.running = false
	wp.logger.Info("Worker pool stopped")
	return nil
}

// SubmitMatch queues one resume/job pair and blocks until its analysis
// completes, the configured timeout passes, or ctx is done
func (wp *WorkerPool) SubmitMatch(ctx context.Context, resumeID, jobID string) (*TaskResult, error) {
	if !wp.IsRunning() {
		return nil, fmt.Errorf("worker pool is not running")
	}

	if err := wp.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait aborted: %w", err)
	}

	task := MatchTask{
		ID:         utils.GenerateRequestID(),
		ResumeID:   resumeID,
		JobID:      jobID,
		ResultChan: make(chan TaskResult, 1),
		Context:    ctx,
		CreatedAt:  time.Now(),
	}

	wp.stats.mu.Lock()
	wp.stats.TasksQueued++
	wp.stats.mu.Unlock()

	select {
	case wp.taskQueue <- task:
		wp.logger.Debug("Match task queued", map[string]interface{}{
			"task_id":   task.ID,
			"resume_id": resumeID,
			"job_id":    jobID,
		})
	case <-time.After(5 * time.Second):
		return nil, fmt.Errorf("task queue is full, request timed out")
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case result := <-task.ResultChan:
		return &result, nil
	case <-time.After(wp.config.Workers.Timeout):
		return nil, fmt.Errorf("match processing timed out after %v", wp.config.Workers.Timeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// IsRunning returns true if the worker pool is running
func (wp *WorkerPool) IsRunning() bool {
	wp.mu.RLock()
	defer wp.mu.RUnlock()
	return wp.running
}

// GetStats returns current pool statistics
func (wp *WorkerPool) GetStats() PoolStats {
	wp.stats.mu.RLock()
	defer wp.stats.mu.RUnlock()

	stats := PoolStats{
		TasksQueued:         wp.stats.TasksQueued,
		TasksProcessed:      wp.stats.TasksProcessed,
		TasksSuccessful:     wp.stats.TasksSuccessful,
		TasksFailed:         wp.stats.TasksFailed,
		TotalProcessingTime: wp.stats.TotalProcessingTime,
	}
	if stats.TasksProcessed > 0 {
		stats.AverageProcessingTime = stats.TotalProcessingTime / time.Duration(stats.TasksProcessed)
	}
	return stats
}

// Start starts the worker goroutine
func (w *Worker) Start() {
	for {
		select {
		case task := <-w.TaskChan:
			w.processTask(task)
		case <-w.QuitChan:
			w.logger.Debug("Worker stopping")
			return
		}
	}
}

// Stop stops the worker
func (w *Worker) Stop() {
	w.QuitChan <- true
}

func (w *Worker) processTask(task MatchTask) {
	startTime := time.Now()

	w.Pool.stats.mu.Lock()
	w.Pool.stats.TasksProcessed++
	w.Pool.stats.mu.Unlock()

	result := TaskResult{TaskID: task.ID}
	result.Result, result.Error = w.Pool.runner.GenerateImprovements(task.Context, task.ResumeID, task.JobID)
	result.Duration = time.Since(startTime)

	w.Pool.stats.mu.Lock()
	w.Pool.stats.TotalProcessingTime += result.Duration
	if result.Error != nil {
		w.Pool.stats.TasksFailed++
	} else {
		w.Pool.stats.TasksSuccessful++
	}
	w.Pool.stats.mu.Unlock()

	// Non-blocking send; the client may have given up waiting
	select {
	case task.ResultChan <- result:
	case <-time.After(100 * time.Millisecond):
		w.logger.Debug("Result channel timeout, client may have disconnected", map[string]interface{}{
			"task_id": task.ID,
		})
	}
}
