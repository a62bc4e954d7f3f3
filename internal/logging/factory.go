package logging

import (
	"fmt"
	"time"

	"resumatch/internal/logging/adapters"
	"resumatch/internal/logging/types"
)

// AdapterFactory creates log adapters from configuration
type AdapterFactory struct{}

// NewAdapterFactory creates a new adapter factory
func NewAdapterFactory() *AdapterFactory {
	return &AdapterFactory{}
}

// CreateAdapter creates a log adapter based on its configuration
func (f *AdapterFactory) CreateAdapter(config types.AdapterConfig) (types.LogAdapter, error) {
	if !config.Enabled {
		return nil, fmt.Errorf("adapter %s is disabled", config.Name)
	}

	switch config.Type {
	case "stdout":
		return f.createStdoutAdapter(config)
	case "file":
		return f.createFileAdapter(config)
	case "betterstack":
		return f.createBetterStackAdapter(config)
	default:
		return nil, fmt.Errorf("unknown adapter type: %s", config.Type)
	}
}

func (f *AdapterFactory) createStdoutAdapter(config types.AdapterConfig) (types.LogAdapter, error) {
	stdoutConfig := adapters.StdoutConfig{
		Format: getStringOption(config.Options, "format", "json"),
	}
	return adapters.NewStdoutAdapter(config.Name, stdoutConfig), nil
}

func (f *AdapterFactory) createFileAdapter(config types.AdapterConfig) (types.LogAdapter, error) {
	fileConfig := adapters.FileConfig{
		Path:       getStringOption(config.Options, "path", ""),
		MaxSizeMB:  getIntOption(config.Options, "max_size_mb", 100),
		MaxBackups: getIntOption(config.Options, "max_backups", 3),
	}
	return adapters.NewFileAdapter(config.Name, fileConfig)
}

func (f *AdapterFactory) createBetterStackAdapter(config types.AdapterConfig) (types.LogAdapter, error) {
	bsConfig := adapters.BetterStackConfig{
		SourceToken:   getStringOption(config.Options, "source_token", ""),
		Endpoint:      getStringOption(config.Options, "endpoint", ""),
		BatchSize:     getIntOption(config.Options, "batch_size", 50),
		FlushInterval: getDurationOption(config.Options, "flush_interval", 5*time.Second),
		Timeout:       getDurationOption(config.Options, "timeout", 10*time.Second),
	}
	return adapters.NewBetterStackAdapter(config.Name, bsConfig)
}

func getStringOption(options map[string]interface{}, key, defaultValue string) string {
	if v, ok := options[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return defaultValue
}

func getIntOption(options map[string]interface{}, key string, defaultValue int) int {
	if v, ok := options[key]; ok {
		switch n := v.(type) {
		case int:
			return n
		case int64:
			return int(n)
		case float64:
			return int(n)
		}
	}
	return defaultValue
}

func getDurationOption(options map[string]interface{}, key string, defaultValue time.Duration) time.Duration {
	if v, ok := options[key]; ok {
		switch d := v.(type) {
		case string:
			if parsed, err := time.ParseDuration(d); err == nil {
				return parsed
			}
		case int:
			return time.Duration(d) * time.Second
		case float64:
			return time.Duration(d) * time.Second
		}
	}
	return defaultValue
}
