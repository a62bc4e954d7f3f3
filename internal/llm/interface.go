package llm

import (
	"context"

	"resumatch/internal/llm/providers"
)

// ErrMalformedResponse indicates the provider answered but the response
// could not be parsed into the requested structure. Callers that carry
// documented fallbacks check for this error instead of failing the request.
var ErrMalformedResponse = providers.ErrMalformedResponse

// Provider defines the interface for LLM completion providers
type Provider interface {
	// CompleteText sends a prompt and returns the raw text completion
	CompleteText(ctx context.Context, prompt string) (string, error)

	// CompleteStructured sends a prompt and decodes the JSON completion
	// into out. Parse failures wrap ErrMalformedResponse.
	CompleteStructured(ctx context.Context, prompt string, out any) error

	// IsHealthy checks if the provider is healthy and available
	IsHealthy(ctx context.Context) error

	// Name returns the name of the provider
	Name() string
}
