// Package genai provides a unified interface for hosted text-generation
// providers. The Gemini provider is the reference implementation: it accepts
// an optional inline audio payload alongside the prompt. Claude and OpenAI
// cover text-only generation behind the same interface.
package genai

import (
	"context"
	"errors"
	"fmt"
)

// Provider name constants.
const (
	ProviderGemini = "gemini"
	ProviderClaude = "claude"
	ProviderOpenAI = "openai"
)

// ErrNoText is returned when the provider answered but the response carried
// no extractable text.
var ErrNoText = errors.New("genai: response contained no text")

// Params are the sampling parameters passed through to the provider.
// Zero values fall back to the provider defaults.
type Params struct {
	Temperature     float64
	TopP            float64
	TopK            int
	MaxOutputTokens int
}

// DefaultParams returns the sampling defaults used across the app.
func DefaultParams() Params {
	return Params{
		Temperature:     0.7,
		TopP:            0.95,
		TopK:            40,
		MaxOutputTokens: 1024,
	}
}

// Request holds one generation call. Audio, when present, is attached inline
// with its MIME type; providers that cannot accept audio return an error,
// which callers treat like any other generation failure.
type Request struct {
	Prompt    string
	Audio     []byte
	AudioMIME string
	Params    Params
}

// ModelInfo describes a configured provider.
type ModelInfo struct {
	Name          string
	Provider      string
	SupportsAudio bool
}

// Generator is the common interface all providers implement. Generate blocks
// until the provider answers or the client timeout elapses; a timeout is an
// ordinary error.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
	Info() ModelInfo
}

// New constructs the Generator for the named provider. model may be empty to
// use the provider default; apiKey empty means the provider reads its usual
// environment variable.
func New(provider, model, apiKey string) (Generator, error) {
	switch provider {
	case ProviderGemini:
		return NewGemini(apiKey, model), nil
	case ProviderClaude:
		return NewClaude(apiKey, model), nil
	case ProviderOpenAI:
		return NewOpenAI(apiKey, model), nil
	default:
		return nil, fmt.Errorf("genai: unknown provider %q; valid providers: gemini, claude, openai", provider)
	}
}
