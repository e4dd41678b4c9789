package ai

import (
	"context"
	"time"

	"github.com/bregydoc/gtranslate"
)

// Google uses the public Google Translate endpoint with automatic source detection.
type Google struct {
	tries int
	delay time.Duration
}

func NewGoogle(tries int) *Google {
	if tries <= 0 {
		tries = 1
	}
	return &Google{tries: tries, delay: 500 * time.Millisecond}
}

func (g *Google) Name() string { return "google" }

// Translate runs the blocking gtranslate call on its own goroutine so ctx
// cancellation is honoured; the call itself has no context support.
func (g *Google) Translate(ctx context.Context, text, target string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	type result struct {
		out string
		err error
	}
	ch := make(chan result, 1)
	go func() {
		out, err := gtranslate.TranslateWithParams(text, gtranslate.TranslationParams{
			From:  "auto",
			To:    target,
			Tries: g.tries,
			Delay: g.delay,
		})
		ch <- result{out, err}
	}()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		return r.out, r.err
	}
}
