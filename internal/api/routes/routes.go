package routes

import (
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"resumatch/internal/api/handlers"
	"resumatch/internal/api/middleware"
	"resumatch/internal/config"
	"resumatch/internal/llm"
	"resumatch/internal/matcher"
	"resumatch/internal/matcher/workers"
	"resumatch/pkg/utils"
)

// SetupRoutes configures all API routes
func SetupRoutes(e *echo.Echo, cfg *config.Config, svc *matcher.Service, poolManager *workers.PoolManager, llmManager *llm.Manager, cache *utils.RecordCache) {
	// Global middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(middleware.CORSConfig())
	e.Use(middleware.RequestValidation())
	// AI-backed endpoints get a longer budget than plain reads
	e.Use(middleware.SelectiveTimeoutConfig(cfg.Server.ReadTimeout, 2*time.Minute))

	// Health check routes
	health := e.Group("/health")
	{
		health.GET("", handlers.HealthHandler)
		health.GET("/ready", handlers.ReadinessHandler(llmManager, poolManager))
		health.GET("/live", handlers.LivenessHandler)
		health.GET("/workers", handlers.WorkerHealthHandler(poolManager))
	}

	// Status route
	e.GET("/status", handlers.StatusHandler(llmManager, poolManager, cache))

	// API v1 routes
	v1 := e.Group("/api/v1")
	{
		v1.POST("/resumes", handlers.CreateResumeHandler(svc))
		v1.GET("/resumes/:id", handlers.GetResumeHandler(svc))

		v1.POST("/jobs", handlers.CreateJobsHandler(svc))
		v1.GET("/jobs/:id", handlers.GetJobHandler(svc))

		v1.POST("/improvements", handlers.ImprovementsHandler(svc))
		v1.GET("/matches/:resume_id", handlers.MatchHistoryHandler(svc))

		v1.GET("/dashboard/:resume_id", handlers.DashboardHandler(svc))
		v1.GET("/bulk-analysis/:resume_id", handlers.BulkAnalysisHandler(svc))
		v1.GET("/comparison", handlers.ComparisonHandler(svc))

		// Worker monitoring routes
		workerRoutes := v1.Group("/workers")
		{
			workerRoutes.GET("/stats", handlers.WorkerStatsHandler(poolManager))
		}
	}

	// Root route
	e.GET("/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"service": "ResuMatch Engine",
			"version": "1.0.0",
			"status":  "running",
		})
	})
}
