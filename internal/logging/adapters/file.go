package adapters

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"resumatch/internal/logging/types"
)

// FileAdapter implements the LogAdapter interface for file output
type FileAdapter struct {
	name    string
	config  FileConfig
	file    *os.File
	size    int64
	mu      sync.Mutex
	closed  bool
}

// FileConfig represents configuration for the file adapter
type FileConfig struct {
	Path       string `yaml:"path"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// NewFileAdapter creates a new file adapter
func NewFileAdapter(name string, config FileConfig) (*FileAdapter, error) {
	if config.Path == "" {
		return nil, fmt.Errorf("file adapter requires a path")
	}
	if config.MaxSizeMB <= 0 {
		config.MaxSizeMB = 100
	}
	if config.MaxBackups <= 0 {
		config.MaxBackups = 3
	}

	if err := os.MkdirAll(filepath.Dir(config.Path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	a := &FileAdapter{
		name:   name,
		config: config,
	}
	if err := a.open(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *FileAdapter) open() error {
	file, err := os.OpenFile(a.config.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return fmt.Errorf("failed to stat log file: %w", err)
	}
	a.file = file
	a.size = info.Size()
	return nil
}

// Write writes a log entry to the file, rotating when the size limit is reached
func (a *FileAdapter) Write(entry *types.LogEntry) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return fmt.Errorf("file adapter is closed")
	}

	logData := map[string]interface{}{
		"level":   entry.Level.String(),
		"message": entry.Message,
		"time":    entry.Timestamp.Format(time.RFC3339),
	}
	for k, v := range entry.Fields {
		logData[k] = v
	}

	data, err := json.Marshal(logData)
	if err != nil {
		return fmt.Errorf("failed to format log entry: %w", err)
	}
	data = append(data, '\n')

	if a.size+int64(len(data)) > int64(a.config.MaxSizeMB)*1024*1024 {
		if err := a.rotate(); err != nil {
			return err
		}
	}

	n, err := a.file.Write(data)
	a.size += int64(n)
	return err
}

func (a *FileAdapter) rotate() error {
	if err := a.file.Close(); err != nil {
		return fmt.Errorf("failed to close log file for rotation: %w", err)
	}

	// Shift existing backups: file.log.2 -> file.log.3, etc.
	for i := a.config.MaxBackups - 1; i >= 1; i-- {
		src := fmt.Sprintf("%s.%d", a.config.Path, i)
		dst := fmt.Sprintf("%s.%d", a.config.Path, i+1)
		if _, err := os.Stat(src); err == nil {
			os.Rename(src, dst)
		}
	}
	if err := os.Rename(a.config.Path, a.config.Path+".1"); err != nil {
		return fmt.Errorf("failed to rotate log file: %w", err)
	}

	return a.open()
}

// Close closes the underlying file
func (a *FileAdapter) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return nil
	}
	a.closed = true
	return a.file.Close()
}

// Health returns the health status of the adapter
func (a *FileAdapter) Health() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return fmt.Errorf("file adapter is closed")
	}
	return nil
}

// Name returns the name of the adapter
func (a *FileAdapter) Name() string {
	return a.name
}
