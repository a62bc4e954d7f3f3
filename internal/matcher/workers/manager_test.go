package workers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumatch/internal/config"
	"resumatch/pkg/models"
)

// fakeRunner records invocations and returns a canned result per pair.
type fakeRunner struct {
	mu    sync.Mutex
	calls int
	err   error
	delay time.Duration
}

func (r *fakeRunner) GenerateImprovements(ctx context.Context, resumeID, jobID string) (*models.ImprovementResult, error) {
	r.mu.Lock()
	r.calls++
	r.mu.Unlock()

	if r.delay > 0 {
		select {
		case <-time.After(r.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if r.err != nil {
		return nil, r.err
	}
	return &models.ImprovementResult{
		ResumeID: resumeID,
		JobID:    jobID,
		Scores:   models.MatchScores{Overall: 0.70},
	}, nil
}

func (r *fakeRunner) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func workerConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Workers.PoolSize = 2
	cfg.Workers.QueueSize = 8
	cfg.Workers.RateLimit = 600 // effectively unthrottled in tests
	cfg.Workers.Timeout = 5 * time.Second
	return cfg
}

func TestPoolManagerLifecycle(t *testing.T) {
	pm := NewPoolManager(workerConfig(), &fakeRunner{})

	assert.False(t, pm.IsHealthy())
	require.NoError(t, pm.Initialize())
	assert.True(t, pm.IsHealthy())

	// Second initialize is rejected
	assert.Error(t, pm.Initialize())

	require.NoError(t, pm.Shutdown())
	assert.False(t, pm.IsHealthy())
}

func TestSubmitMatchRunsOnPool(t *testing.T) {
	runner := &fakeRunner{}
	pm := NewPoolManager(workerConfig(), runner)
	require.NoError(t, pm.Initialize())
	defer pm.Shutdown()

	result, err := pm.SubmitMatch(context.Background(), "resume-1", "job-1")
	require.NoError(t, err)

	assert.Equal(t, "resume-1", result.ResumeID)
	assert.Equal(t, "job-1", result.JobID)
	assert.Equal(t, 0.70, result.Scores.Overall)
	assert.Equal(t, 1, runner.callCount())
}

func TestSubmitMatchPropagatesRunnerError(t *testing.T) {
	runnerErr := errors.New("analysis failed")
	pm := NewPoolManager(workerConfig(), &fakeRunner{err: runnerErr})
	require.NoError(t, pm.Initialize())
	defer pm.Shutdown()

	_, err := pm.SubmitMatch(context.Background(), "resume-1", "job-1")
	assert.ErrorIs(t, err, runnerErr)
}

func TestSubmitMatchConcurrent(t *testing.T) {
	runner := &fakeRunner{delay: 10 * time.Millisecond}
	pm := NewPoolManager(workerConfig(), runner)
	require.NoError(t, pm.Initialize())
	defer pm.Shutdown()

	const submissions = 6

	var wg sync.WaitGroup
	errs := make([]error, submissions)
	for i := 0; i < submissions; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_, errs[idx] = pm.SubmitMatch(context.Background(), "resume-1", "job-1")
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, submissions, runner.callCount())

	stats, err := pm.GetStats()
	require.NoError(t, err)
	assert.Equal(t, int64(submissions), stats.TasksProcessed)
}

func TestGetStatsBeforeInitialize(t *testing.T) {
	pm := NewPoolManager(workerConfig(), &fakeRunner{})

	_, err := pm.GetStats()
	assert.Error(t, err)
}

func TestRateLimiterWait(t *testing.T) {
	cfg := workerConfig()
	cfg.Workers.RateLimit = 6000
	rl := NewRateLimiter(cfg)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		require.NoError(t, rl.Wait(ctx))
	}

	requests, _ := rl.Stats()
	assert.Equal(t, int64(3), requests)
}

func TestRateLimiterWaitCancelled(t *testing.T) {
	cfg := workerConfig()
	cfg.Workers.RateLimit = 1 // one run per minute
	rl := NewRateLimiter(cfg)

	ctx := context.Background()
	// Drain the initial burst allowance
	for rl.Allow() {
	}

	cancelled, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	assert.Error(t, rl.Wait(cancelled))
}
