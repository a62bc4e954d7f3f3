package logging

import (
	"fmt"
	"sync"

	"resumatch/internal/config"
	"resumatch/internal/logging/types"
)

// Manager owns the process-wide logger and its adapters
type Manager struct {
	logger  *MultiLogger
	factory *AdapterFactory
	mu      sync.RWMutex
}

var (
	globalManager *Manager
	globalOnce    sync.Once
)

// NewManager creates a new logging manager
func NewManager() *Manager {
	return &Manager{
		logger:  NewMultiLogger(),
		factory: NewAdapterFactory(),
	}
}

// Initialize sets up the logger from configuration
func (m *Manager) Initialize(cfg *config.Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger.SetLevel(ParseLogLevel(cfg.Logging.Level))

	if len(cfg.Logging.Adapters) == 0 {
		// No explicit adapters configured, fall back to stdout
		adapter, err := m.factory.CreateAdapter(types.AdapterConfig{
			Name:    "stdout",
			Type:    "stdout",
			Enabled: true,
			Options: map[string]interface{}{"format": cfg.Logging.Format},
		})
		if err != nil {
			return fmt.Errorf("failed to create default stdout adapter: %w", err)
		}
		return m.logger.AddAdapter(adapter)
	}

	var added int
	for _, ac := range cfg.Logging.Adapters {
		if !ac.Enabled {
			continue
		}

		adapter, err := m.factory.CreateAdapter(types.AdapterConfig{
			Name:    ac.Name,
			Type:    ac.Type,
			Enabled: ac.Enabled,
			Options: ac.Options,
		})
		if err != nil {
			return fmt.Errorf("failed to create adapter %s: %w", ac.Name, err)
		}

		if err := m.logger.AddAdapter(adapter); err != nil {
			return fmt.Errorf("failed to register adapter %s: %w", ac.Name, err)
		}
		added++
	}

	if added == 0 {
		adapter, err := m.factory.CreateAdapter(types.AdapterConfig{
			Name:    "stdout",
			Type:    "stdout",
			Enabled: true,
			Options: map[string]interface{}{"format": cfg.Logging.Format},
		})
		if err != nil {
			return fmt.Errorf("failed to create fallback stdout adapter: %w", err)
		}
		return m.logger.AddAdapter(adapter)
	}

	return nil
}

// GetLogger returns the managed logger
func (m *Manager) GetLogger() Logger {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.logger
}

// Close shuts down all adapters
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.logger.Close()
}

// InitializeLogging initializes the global logging manager
func InitializeLogging(cfg *config.Config) error {
	var initErr error
	globalOnce.Do(func() {
		globalManager = NewManager()
		initErr = globalManager.Initialize(cfg)
	})
	return initErr
}

// GetGlobalLogger returns the global logger, creating a stdout-backed
// logger if logging was never initialized
func GetGlobalLogger() Logger {
	if globalManager == nil {
		manager := NewManager()
		adapter, _ := manager.factory.CreateAdapter(types.AdapterConfig{
			Name:    "stdout",
			Type:    "stdout",
			Enabled: true,
			Options: map[string]interface{}{"format": "json"},
		})
		if adapter != nil {
			manager.logger.AddAdapter(adapter)
		}
		globalManager = manager
	}
	return globalManager.GetLogger()
}

// CloseLogging closes the global logging manager
func CloseLogging() error {
	if globalManager == nil {
		return nil
	}
	return globalManager.Close()
}

// LogWithRequestID returns a logger annotated with the request ID
func LogWithRequestID(requestID string) Logger {
	return GetGlobalLogger().WithField("request_id", requestID)
}
