// Package provider adapts heterogeneous AI text-generation backends behind a
// single capability interface. Each variant issues exactly one non-streaming
// request per prompt: no retries, no timeout beyond the transport default.
package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrProviderUnavailable is returned on transport failure or a non-success
	// response from the backend. Callers recover by falling back.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrMissingAPIKey is returned when a cloud provider is selected without a
	// credential. The caller must route to fallback rather than attempt an
	// unauthenticated call.
	ErrMissingAPIKey = errors.New("provider requires an api key")

	// ErrUnknownProvider is returned for an unrecognized provider kind.
	ErrUnknownProvider = errors.New("unknown provider kind")
)

// Kind identifies a backend variant.
type Kind string

const (
	KindOllama    Kind = "ollama"
	KindOpenAI    Kind = "openai"
	KindAnthropic Kind = "anthropic"
	KindBedrock   Kind = "bedrock"
)

// IsValid checks if the kind is a recognized backend.
func (k Kind) IsValid() bool {
	switch k {
	case KindOllama, KindOpenAI, KindAnthropic, KindBedrock:
		return true
	default:
		return false
	}
}

// Config selects and parameterizes a backend. Request-level values override
// process-wide defaults field by field.
type Config struct {
	Kind    Kind   `json:"kind"`
	APIKey  string `json:"api_key,omitempty"`
	Model   string `json:"model,omitempty"`
	BaseURL string `json:"base_url,omitempty"`
	Region  string `json:"region,omitempty"`
}

// WithOverrides returns a copy of c with non-empty fields of o applied.
func (c Config) WithOverrides(o Config) Config {
	merged := c
	if o.Kind != "" {
		merged.Kind = o.Kind
	}
	if o.APIKey != "" {
		merged.APIKey = o.APIKey
	}
	if o.Model != "" {
		merged.Model = o.Model
	}
	if o.BaseURL != "" {
		merged.BaseURL = o.BaseURL
	}
	if o.Region != "" {
		merged.Region = o.Region
	}
	return merged
}

// Generator is the uniform contract over all backends: one prompt in, raw
// generated text out.
type Generator interface {
	// Name returns the backend identifier (e.g. "ollama", "openai").
	Name() string

	// SendPrompt issues a single completion request and returns the raw text.
	SendPrompt(ctx context.Context, prompt string) (string, error)
}

// New constructs the Generator variant selected by cfg.Kind. Cloud chat
// backends fail fast with ErrMissingAPIKey when no credential is configured.
func New(cfg Config) (Generator, error) {
	switch cfg.Kind {
	case KindOllama:
		return NewOllama(cfg.BaseURL, cfg.Model), nil
	case KindOpenAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%w: openai", ErrMissingAPIKey)
		}
		return NewOpenAI(cfg.BaseURL, cfg.APIKey, cfg.Model), nil
	case KindAnthropic:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%w: anthropic", ErrMissingAPIKey)
		}
		return NewAnthropic(cfg.BaseURL, cfg.APIKey, cfg.Model), nil
	case KindBedrock:
		return NewBedrock(cfg.Region, cfg.Model)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Kind)
	}
}

// defaultHTTPClient is shared by the HTTP-based variants. The zero timeout
// keeps the transport default; a hung call blocks only its own request.
var defaultHTTPClient = &http.Client{}
