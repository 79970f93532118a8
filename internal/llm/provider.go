package llm

import (
	"context"
	"fmt"
	"strings"
)

// Provider names accepted by NewGenerator.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// ProviderConfig selects and configures one generation provider.
type ProviderConfig struct {
	Provider string
	Gemini   GeminiConfig
	OpenAI   OpenAIConfig
}

// NewGenerator builds the Generator for cfg.Provider. An empty provider
// selects Gemini.
func NewGenerator(ctx context.Context, cfg ProviderConfig) (Generator, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", ProviderGemini:
		g, err := NewGeminiClient(ctx, cfg.Gemini)
		if err != nil {
			return nil, err
		}
		return g, nil
	case ProviderOpenAI:
		o, err := NewOpenAIClient(cfg.OpenAI)
		if err != nil {
			return nil, err
		}
		return o, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}
