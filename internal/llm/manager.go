package llm

import (
	"context"
	"fmt"
	"sync"

	"resumatch/internal/config"
	"resumatch/internal/logging"
)

// Manager manages LLM providers and their lifecycle
type Manager struct {
	config   *config.Config
	factory  *Factory
	provider Provider
	logger   logging.Logger
	mu       sync.RWMutex
	healthy  bool
}

// NewManager creates a new LLM manager instance
func NewManager(cfg *config.Config) *Manager {
	return &Manager{
		config:  cfg,
		factory: NewFactory(cfg),
		logger:  logging.GetGlobalLogger(),
	}
}

// Start initializes the LLM manager and creates the provider
func (m *Manager) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger.Info("Starting LLM manager", map[string]interface{}{
		"provider": m.config.LLM.Provider,
	})

	provider, err := m.factory.CreateProvider()
	if err != nil {
		return fmt.Errorf("failed to create LLM provider: %w", err)
	}

	m.provider = provider

	// Test provider health
	ctx, cancel := context.WithTimeout(context.Background(), m.config.LLM.Timeout)
	defer cancel()

	if err := m.provider.IsHealthy(ctx); err != nil {
		m.logger.Warn("LLM provider health check failed - AI features will be disabled", map[string]interface{}{
			"error": err.Error(),
		})
		m.healthy = false
		// Don't return error - allow server to start without LLM
	} else {
		m.healthy = true
		m.logger.Info("LLM manager started successfully", map[string]interface{}{
			"provider": m.provider.Name(),
		})
	}

	return nil
}

// Stop shuts down the LLM manager
func (m *Manager) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger.Info("Stopping LLM manager")
	m.provider = nil
	m.healthy = false
	return nil
}

func (m *Manager) activeProvider() (Provider, error) {
	m.mu.RLock()
	provider := m.provider
	healthy := m.healthy
	m.mu.RUnlock()

	if provider == nil {
		return nil, fmt.Errorf("LLM manager not started or provider not available")
	}
	if !healthy {
		return nil, fmt.Errorf("LLM provider is not available - check API key configuration (set LLM_API_KEY environment variable)")
	}
	return provider, nil
}

// CompleteText sends a prompt to the configured provider
func (m *Manager) CompleteText(ctx context.Context, prompt string) (string, error) {
	provider, err := m.activeProvider()
	if err != nil {
		return "", err
	}
	return provider.CompleteText(ctx, prompt)
}

// CompleteStructured sends a prompt to the configured provider and decodes
// the JSON completion into out
func (m *Manager) CompleteStructured(ctx context.Context, prompt string, out any) error {
	provider, err := m.activeProvider()
	if err != nil {
		return err
	}
	return provider.CompleteStructured(ctx, prompt, out)
}

// IsHealthy checks if the LLM manager and provider are healthy
func (m *Manager) IsHealthy(ctx context.Context) error {
	m.mu.RLock()
	healthy := m.healthy && m.provider != nil
	m.mu.RUnlock()

	if !healthy {
		return fmt.Errorf("LLM provider not available")
	}
	return nil
}

// Name returns the name of the current LLM provider
func (m *Manager) Name() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.provider != nil {
		return m.provider.Name()
	}
	return "none"
}

// CheckHealth performs a live health check on the LLM provider and
// updates the cached health state
func (m *Manager) CheckHealth(ctx context.Context) error {
	m.mu.RLock()
	provider := m.provider
	m.mu.RUnlock()

	if provider == nil {
		return fmt.Errorf("LLM provider not available")
	}

	err := provider.IsHealthy(ctx)

	m.mu.Lock()
	m.healthy = (err == nil)
	m.mu.Unlock()

	return err
}
