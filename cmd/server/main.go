package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"resumatch/internal/api/routes"
	"resumatch/internal/config"
	"resumatch/internal/llm"
	"resumatch/internal/logging"
	"resumatch/internal/matcher"
	"resumatch/internal/matcher/workers"
	"resumatch/internal/storage"
	"resumatch/pkg/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logging
	if err := logging.InitializeLogging(cfg); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.CloseLogging()

	logger := logging.GetGlobalLogger()
	logger.Info("Starting ResuMatch Engine")

	// Initialize LLM manager
	llmManager := llm.NewManager(cfg)
	if err := llmManager.Start(); err != nil {
		logger.Fatal("Failed to start LLM manager", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Open the match store
	store, err := storage.NewSQLiteStore(cfg)
	if err != nil {
		logger.Fatal("Failed to open match store", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer store.Close()

	// Record cache is optional; nil when redis is disabled
	cache := utils.NewRecordCache(cfg)
	defer cache.Close()
	if cache != nil {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Redis.Timeout)
		if err := cache.Ping(ctx); err != nil {
			logger.Warn("Record cache unreachable, continuing without it", map[string]interface{}{
				"error": err.Error(),
			})
		}
		cancel()
	}

	// Matcher service and worker pool. The pool runs matches through the
	// service, the service schedules bulk work through the pool.
	svc := matcher.NewService(cfg, store, llmManager, cache)
	poolManager := workers.NewPoolManager(cfg, svc)
	if err := poolManager.Initialize(); err != nil {
		logger.Fatal("Failed to start worker pool", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer poolManager.Shutdown()
	svc.SetSubmitter(poolManager)

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true

	routes.SetupRoutes(e, cfg, svc, poolManager, llmManager, cache)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := poolManager.Shutdown(); err != nil {
			logger.Error("Error stopping worker pool", map[string]interface{}{
				"error": err.Error(),
			})
		}

		if err := llmManager.Stop(); err != nil {
			logger.Error("Error stopping LLM manager", map[string]interface{}{
				"error": err.Error(),
			})
		}

		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error shutting down server", map[string]interface{}{
				"error": err.Error(),
			})
		}

		logger.Info("Server shutdown complete")
	}()

	// Start server
	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", map[string]interface{}{
		"address": address,
	})

	if err := e.Start(address); err != nil {
		logger.Fatal("Server failed to start", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
