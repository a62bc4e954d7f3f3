package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"resumatch/internal/config"
	"resumatch/internal/logging"
)

// ErrMalformedResponse indicates the model answered but the completion
// could not be decoded into the requested structure.
var ErrMalformedResponse = errors.New("malformed model response")

// ClaudeProvider implements the completion provider interface using
// Anthropic's Claude
type ClaudeProvider struct {
	client anthropic.Client
	config *config.Config
	logger logging.Logger
}

// NewClaudeProvider creates a new Claude provider instance
func NewClaudeProvider(cfg *config.Config) *ClaudeProvider {
	client := anthropic.NewClient(
		option.WithAPIKey(cfg.LLM.APIKey),
	)

	return &ClaudeProvider{
		client: client,
		config: cfg,
		logger: logging.GetGlobalLogger(),
	}
}

// CompleteText sends a prompt to Claude and returns the raw text completion
func (cp *ClaudeProvider) CompleteText(ctx context.Context, prompt string) (string, error) {
	startTime := time.Now()

	response, err := cp.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(cp.config.LLM.Model),
		MaxTokens:   int64(cp.config.LLM.MaxTokens),
		Temperature: anthropic.Float(float64(cp.config.LLM.Temperature)),
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: prompt},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to call Claude API: %w", err)
	}

	text, err := responseText(response)
	if err != nil {
		return "", err
	}

	cp.logger.Debug("Claude completion finished", map[string]interface{}{
		"provider":        "claude",
		"prompt_length":   len(prompt),
		"response_length": len(text),
		"processing_time": time.Since(startTime).String(),
	})

	return text, nil
}

// CompleteStructured sends a prompt to Claude and decodes the JSON
// completion into out
func (cp *ClaudeProvider) CompleteStructured(ctx context.Context, prompt string, out any) error {
	text, err := cp.CompleteText(ctx, prompt)
	if err != nil {
		return err
	}

	cleaned := StripCodeFences(text)
	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return nil
}

// IsHealthy checks if the Claude provider is healthy and available
func (cp *ClaudeProvider) IsHealthy(ctx context.Context) error {
	if cp.config.LLM.APIKey == "" {
		return fmt.Errorf("Claude API key not configured - set LLM_API_KEY environment variable")
	}

	_, err := cp.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(cp.config.LLM.Model),
		MaxTokens: 10,
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: "Hello"},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	})
	if err != nil {
		return fmt.Errorf("Claude API health check failed: %w", err)
	}

	return nil
}

// Name returns the name of the provider
func (cp *ClaudeProvider) Name() string {
	return "claude"
}

func responseText(response *anthropic.Message) (string, error) {
	if len(response.Content) == 0 {
		return "", fmt.Errorf("empty response from Claude")
	}

	var text string
	for _, content := range response.Content {
		textContent := content.AsText()
		text = textContent.Text
		break
	}

	if text == "" {
		return "", fmt.Errorf("no text content in Claude response")
	}

	return text, nil
}

// StripCodeFences removes markdown code fences the model sometimes wraps
// JSON completions in
func StripCodeFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
	}
	return strings.TrimSpace(text)
}
