package workers

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"resumatch/internal/config"
	"resumatch/internal/logging"
)

// RateLimiter throttles how fast match tasks may start. All tasks share
// one limiter because they all hit the same completion provider.
type RateLimiter struct {
	limiter  *rate.Limiter
	logger   logging.Logger
	mu       sync.RWMutex
	requests int64
	waits    int64
}

// NewRateLimiter creates a rate limiter from the configured
// requests-per-minute budget
func NewRateLimiter(cfg *config.Config) *RateLimiter {
	rps := rate.Limit(float64(cfg.Workers.RateLimit) / 60.0)
	burst := cfg.Workers.PoolSize
	if burst < 1 {
		burst = 1
	}

	return &RateLimiter{
		limiter: rate.NewLimiter(rps, burst),
		logger:  logging.GetGlobalLogger().WithField("component", "rate_limiter"),
	}
}

// Wait blocks until the limiter grants a slot or ctx is done
func (rl *RateLimiter) Wait(ctx context.Context) error {
	rl.mu.Lock()
	rl.requests++
	if rl.limiter.Tokens() < 1 {
		rl.waits++
	}
	rl.mu.Unlock()

	start := time.Now()
	if err := rl.limiter.Wait(ctx); err != nil {
		return err
	}

	if waited := time.Since(start); waited > time.Second {
		rl.logger.Debug("Match task throttled", map[string]interface{}{
			"waited": waited.String(),
		})
	}
	return nil
}

// Allow reports whether a slot is available without blocking
func (rl *RateLimiter) Allow() bool {
	return rl.limiter.Allow()
}

// Stats returns total requests seen and how many had to wait
func (rl *RateLimiter) Stats() (requests, waits int64) {
	rl.mu.RLock()
	defer rl.mu.RUnlock()
	return rl.requests, rl.waits
}
