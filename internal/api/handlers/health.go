package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"resumatch/internal/llm"
	"resumatch/internal/logging"
	"resumatch/internal/matcher/workers"
	"resumatch/pkg/models"
	"resumatch/pkg/utils"
)

var startTime = time.Now()

const serviceVersion = "1.0.0"

// HealthHandler handles health check requests
func HealthHandler(c echo.Context) error {
	response := models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   serviceVersion,
		Uptime:    time.Since(startTime),
		Checks: map[string]string{
			"api": "ok",
		},
	}
	return c.JSON(http.StatusOK, response)
}

// ReadinessHandler reports whether the service can take traffic: the LLM
// provider and worker pool must both be up
func ReadinessHandler(llmManager *llm.Manager, poolManager *workers.PoolManager) echo.HandlerFunc {
	return func(c echo.Context) error {
		checks := map[string]string{"api": "ok"}
		status := "ready"
		httpStatus := http.StatusOK

		if err := llmManager.IsHealthy(c.Request().Context()); err != nil {
			checks["llm"] = "unavailable"
			status = "not_ready"
			httpStatus = http.StatusServiceUnavailable
		} else {
			checks["llm"] = "ok"
		}

		if poolManager.IsHealthy() {
			checks["workers"] = "ok"
		} else {
			checks["workers"] = "unavailable"
			status = "not_ready"
			httpStatus = http.StatusServiceUnavailable
		}

		return c.JSON(httpStatus, models.HealthResponse{
			Status:    status,
			Timestamp: time.Now(),
			Version:   serviceVersion,
			Uptime:    time.Since(startTime),
			Checks:    checks,
		})
	}
}

// LivenessHandler handles liveness probe requests
func LivenessHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   serviceVersion,
		Uptime:    time.Since(startTime),
	})
}

// StatusHandler provides detailed service status including the record
// cache connection
func StatusHandler(llmManager *llm.Manager, poolManager *workers.PoolManager, cache *utils.RecordCache) echo.HandlerFunc {
	return func(c echo.Context) error {
		reqID := requestID(c)
		logger := logging.LogWithRequestID(reqID)
		logger.Debug("Status check requested")

		checks := map[string]string{"api": "operational"}

		if err := llmManager.IsHealthy(c.Request().Context()); err != nil {
			checks["llm"] = "degraded"
		} else {
			checks["llm"] = "operational"
		}

		if poolManager.IsHealthy() {
			checks["workers"] = "operational"
		} else {
			checks["workers"] = "degraded"
		}

		if err := cache.Ping(c.Request().Context()); err != nil {
			checks["record_cache"] = "disabled"
		} else {
			checks["record_cache"] = "operational"
		}

		return c.JSON(http.StatusOK, models.HealthResponse{
			Status:    "operational",
			Timestamp: time.Now(),
			Version:   serviceVersion,
			Uptime:    time.Since(startTime),
			Checks:    checks,
		})
	}
}
