package provider

import (
	"context"
	"errors"

	"github.com/mhrezaei/newsbrief/config"
	openai_provider "github.com/mhrezaei/newsbrief/provider/openai"
)

// ErrMalformedCompletion is returned when a completion cannot be parsed
// into the requested shape. Callers decide whether to fall back or fail.
var ErrMalformedCompletion = openai_provider.ErrMalformedCompletion

// Provider is the text-completion capability used for parameter generation,
// selection and summarization.
type Provider interface {
	// Complete returns the raw completion text for a prompt.
	Complete(ctx context.Context, system, prompt string) (string, error)
	// CompleteJSON asks for a completion conforming to the JSON shape of out
	// and unmarshals into it. A response that does not parse returns an error
	// wrapping ErrMalformedCompletion.
	CompleteJSON(ctx context.Context, system, prompt string, out any) error
}

// NewProvider creates an LLM client based on the provided configuration
func NewProvider(cfg config.LLMConfig) (Provider, error) {
	switch cfg.Provider {
	case "openai", "":
		if cfg.APIKey == "" {
			return nil, errors.New("llm.api_key not set")
		}
		return openai_provider.NewClient(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.Temperature, cfg.MaxTokens, cfg.Timeout), nil
	default:
		return nil, errors.New("unsupported LLM provider: " + cfg.Provider)
	}
}
