// Package lorem implements a mock generation provider that streams lorem
// ipsum text. It needs no API key and no network, which makes it the default
// backend for development and tests.
package lorem

import (
	"context"
	"io"
	"strings"
	"time"

	loremgen "github.com/bozaro/golorem"

	scribex "github.com/fhswno/scribex-js-sub001"
)

// Config holds the configuration for the lorem provider.
type Config struct {
	// Delay is the pause between streamed words. Zero streams as fast as
	// the consumer pulls.
	Delay time.Duration
}

// Provider is a mock generation backend producing lorem ipsum text.
type Provider struct {
	generator *loremgen.Lorem
	delay     time.Duration
}

// New creates a new lorem ipsum provider.
func New(cfg Config) *Provider {
	return &Provider{
		generator: loremgen.New(),
		delay:     cfg.Delay,
	}
}

// Name returns the provider identifier.
func (p *Provider) Name() scribex.ProviderID {
	return scribex.ProviderLorem
}

// Generate streams lorem ipsum text word by word. The amount of text scales
// with the request's maxTokens (roughly one word per token, default 80).
// Cancelling the context seals the stream with the context's error.
func (p *Provider) Generate(ctx context.Context, req *scribex.GenerateRequest) (*scribex.TextStream, error) {
	targetWords := req.Config.GetMaxTokens(80)
	text := p.generateTextWords(targetWords)

	pr, pw := io.Pipe()

	go func() {
		words := strings.Fields(text)
		for i, word := range words {
			if p.delay > 0 {
				select {
				case <-ctx.Done():
					pw.CloseWithError(ctx.Err())
					return
				case <-time.After(p.delay):
				}
			} else if ctx.Err() != nil {
				pw.CloseWithError(ctx.Err())
				return
			}

			if i > 0 {
				word = " " + word
			}
			if _, err := io.WriteString(pw, word); err != nil {
				// Consumer abandoned the stream.
				return
			}
		}
		pw.Close()
	}()

	return scribex.NewTextStream(pr), nil
}

// generateTextWords generates lorem ipsum text with approximately
// targetWords words.
func (p *Provider) generateTextWords(targetWords int) string {
	var sb strings.Builder
	wordCount := 0

	for wordCount < targetWords {
		sentence := p.generator.Sentence(5, 15)
		sb.WriteString(sentence)
		sb.WriteString(" ")

		wordCount += len(strings.Fields(sentence))
	}

	return strings.TrimSpace(sb.String())
}
