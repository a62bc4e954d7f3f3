package adapters

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"resumatch/internal/logging/types"
)

// BetterStackAdapter ships log entries to Better Stack over HTTP in batches
type BetterStackAdapter struct {
	name   string
	config BetterStackConfig
	client *http.Client

	mu     sync.Mutex
	buffer []map[string]interface{}
	closed bool
	done   chan struct{}
	wg     sync.WaitGroup
}

// BetterStackConfig represents configuration for the Better Stack adapter
type BetterStackConfig struct {
	SourceToken   string        `yaml:"source_token"`
	Endpoint      string        `yaml:"endpoint"`
	BatchSize     int           `yaml:"batch_size"`
	FlushInterval time.Duration `yaml:"flush_interval"`
	Timeout       time.Duration `yaml:"timeout"`
}

// NewBetterStackAdapter creates a new Better Stack adapter
func NewBetterStackAdapter(name string, config BetterStackConfig) (*BetterStackAdapter, error) {
	if config.SourceToken == "" {
		return nil, fmt.Errorf("betterstack adapter requires a source token")
	}
	if config.Endpoint == "" {
		config.Endpoint = "https://in.logs.betterstack.com"
	}
	if config.BatchSize <= 0 {
		config.BatchSize = 50
	}
	if config.FlushInterval <= 0 {
		config.FlushInterval = 5 * time.Second
	}
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Second
	}

	a := &BetterStackAdapter{
		name:   name,
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		done:   make(chan struct{}),
	}

	a.wg.Add(1)
	go a.flushLoop()

	return a, nil
}

// Write buffers a log entry for batched delivery
func (a *BetterStackAdapter) Write(entry *types.LogEntry) error {
	payload := map[string]interface{}{
		"dt":      entry.Timestamp.Format(time.RFC3339Nano),
		"level":   entry.Level.String(),
		"message": entry.Message,
	}
	for k, v := range entry.Fields {
		payload[k] = v
	}

	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return fmt.Errorf("betterstack adapter is closed")
	}
	a.buffer = append(a.buffer, payload)
	shouldFlush := len(a.buffer) >= a.config.BatchSize
	a.mu.Unlock()

	if shouldFlush {
		return a.flush()
	}
	return nil
}

func (a *BetterStackAdapter) flushLoop() {
	defer a.wg.Done()

	ticker := time.NewTicker(a.config.FlushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.flush()
		case <-a.done:
			a.flush()
			return
		}
	}
}

func (a *BetterStackAdapter) flush() error {
	a.mu.Lock()
	if len(a.buffer) == 0 {
		a.mu.Unlock()
		return nil
	}
	batch := a.buffer
	a.buffer = nil
	a.mu.Unlock()

	data, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("failed to encode log batch: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, a.config.Endpoint, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create log request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+a.config.SourceToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to ship logs: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("betterstack returned status %d", resp.StatusCode)
	}
	return nil
}

// Close flushes pending entries and stops the background shipper
func (a *BetterStackAdapter) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	a.mu.Unlock()

	close(a.done)
	a.wg.Wait()
	return nil
}

// Health returns the health status of the adapter
func (a *BetterStackAdapter) Health() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return fmt.Errorf("betterstack adapter is closed")
	}
	return nil
}

// Name returns the name of the adapter
func (a *BetterStackAdapter) Name() string {
	return a.name
}
