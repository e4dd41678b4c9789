// Package translate wraps a translation backend with the per-unit policy:
// blank input never reaches the backend, and a backend failure keeps the
// original text while reporting the failure to the caller.
package translate

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/thywilljoshua/doc-translate/internal/ai"
)

// Status classifies a translation result.
type Status int

const (
	StatusTranslated Status = iota
	StatusEmpty
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusTranslated:
		return "translated"
	case StatusEmpty:
		return "empty"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the outcome for one text unit. On StatusFailed, Text holds the
// original input so assembly can continue.
type Result struct {
	Text   string
	Status Status
	Err    error
}

// Translator applies the per-unit policy over a Backend.
type Translator struct {
	backend     ai.Backend
	concurrency int
	logger      *slog.Logger
}

// Config for a Translator.
type Config struct {
	// Concurrency bounds parallel backend calls in TranslateAll (default 4).
	Concurrency int
	Logger      *slog.Logger
}

func New(backend ai.Backend, cfg Config) *Translator {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Translator{backend: backend, concurrency: cfg.Concurrency, logger: cfg.Logger}
}

// Translate translates one unit into target.
func (t *Translator) Translate(ctx context.Context, text, target string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{Status: StatusEmpty}
	}
	out, err := t.backend.Translate(ctx, text, target)
	if err != nil {
		t.logger.Warn("translation failed, keeping original", "backend", t.backend.Name(), "lang", target, "error", err)
		return Result{Text: text, Status: StatusFailed, Err: err}
	}
	return Result{Text: out, Status: StatusTranslated}
}

// TranslateAll translates every unit, at most Concurrency at a time.
// Results are index-aligned with texts.
func (t *Translator) TranslateAll(ctx context.Context, texts []string, target string) []Result {
	results := make([]Result, len(texts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(t.concurrency)
	for i, text := range texts {
		g.Go(func() error {
			results[i] = t.Translate(gctx, text, target)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// Failed counts StatusFailed results.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Status == StatusFailed {
			n++
		}
	}
	return n
}
