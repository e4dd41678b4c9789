package ai

import (
	"context"
	"fmt"
	"strings"
)

// Backend translates a single piece of text into the target language.
// The source language is always detected by the backend.
type Backend interface {
	Translate(ctx context.Context, text, target string) (string, error)
	Name() string
}

// Options selects and configures a backend.
type Options struct {
	Provider string // google|gemini|openai|off

	GeminiAPIKey string
	GeminiModel  string

	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	GoogleTries int
}

// New builds the backend named by opts.Provider.
func New(ctx context.Context, opts Options) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Provider)) {
	case "", "google":
		return NewGoogle(opts.GoogleTries), nil
	case "gemini":
		return NewGemini(ctx, opts.GeminiAPIKey, opts.GeminiModel)
	case "openai":
		return NewOpenAI(ctx, opts.OpenAIAPIKey, opts.OpenAIBaseURL, opts.OpenAIModel)
	case "off", "noop":
		return Noop{}, nil
	default:
		return nil, fmt.Errorf("unknown translation backend %q", opts.Provider)
	}
}

// Noop returns the input unchanged. Useful offline and in tests.
type Noop struct{}

func (Noop) Translate(ctx context.Context, text, target string) (string, error) { return text, nil }
func (Noop) Name() string { return "off" }

// prompt is shared by the LLM backends.
func prompt(text, targetName string) string {
	return "Translate the following text into " + targetName + ". Detect the source language yourself. " +
		"Return ONLY the translation, keep line breaks, no quotes, no explanations.\n\n" + text
}
