// Package anthropic implements the generation provider backed by Anthropic's
// Claude API, using the official SDK. Only text output is surfaced; the
// response reaches the caller as the same plain text-fragment stream every
// other backend produces.
package anthropic

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	scribex "github.com/fhswno/scribex-js-sub001"
)

// defaultModel is used when no model is configured.
const defaultModel = "claude-haiku-4-5"

// Config holds the configuration for the Anthropic provider.
type Config struct {
	// APIKey authenticates against the Anthropic API. Required.
	APIKey string

	// Model selects the Claude model; empty uses defaultModel.
	Model string
}

// Provider implements the scribex.Provider interface for Claude models.
type Provider struct {
	client *anthropic.Client
	model  string
}

// New creates a new Anthropic provider with the given configuration.
func New(cfg Config) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, scribex.ErrInvalidAPIKey
	}

	client := anthropic.NewClient(option.WithAPIKey(cfg.APIKey))

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	return &Provider{
		client: &client,
		model:  model,
	}, nil
}

// Name returns the provider identifier.
func (p *Provider) Name() scribex.ProviderID {
	return scribex.ProviderAnthropic
}

// Generate streams a Claude completion as text fragments. The SDK's event
// stream is reduced to its text deltas; thinking and tool events are not
// part of this system's output contract.
func (p *Provider) Generate(ctx context.Context, req *scribex.GenerateRequest) (*scribex.TextStream, error) {
	params := buildMessageParams(req, p.model)

	stream := p.client.Messages.NewStreaming(ctx, params)

	pr, pw := io.Pipe()

	go func() {
		defer stream.Close()

		for stream.Next() {
			event := stream.Current()
			switch e := event.AsAny().(type) {
			case anthropic.ContentBlockDeltaEvent:
				if e.Delta.Type != "text_delta" || e.Delta.Text == "" {
					continue
				}
				if _, err := io.WriteString(pw, e.Delta.Text); err != nil {
					// Consumer abandoned the stream.
					return
				}
			}
		}

		if err := stream.Err(); err != nil {
			pw.CloseWithError(&scribex.ProviderError{
				Provider: p.Name(),
				Message:  fmt.Sprintf("anthropic streaming error: %v", err),
			})
			return
		}
		pw.Close()
	}()

	return scribex.NewTextStream(pr), nil
}

// buildMessageParams constructs Anthropic API parameters from a generation
// request. Context blocks precede the prompt inside a single user message.
func buildMessageParams(req *scribex.GenerateRequest, model string) anthropic.MessageNewParams {
	var blocks []anthropic.ContentBlockParamUnion
	if text := joinContext(req.Context); text != "" {
		blocks = append(blocks, anthropic.NewTextBlock(text))
	}
	blocks = append(blocks, anthropic.NewTextBlock(req.Prompt))

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		Messages:  []anthropic.MessageParam{anthropic.NewUserMessage(blocks...)},
		MaxTokens: int64(req.Config.GetMaxTokens(1024)),
	}

	if req.Config != nil && req.Config.Temperature != nil {
		params.Temperature = anthropic.Float(*req.Config.Temperature)
	}
	if system := req.Config.GetSystemPrompt(""); system != "" {
		params.System = []anthropic.TextBlockParam{
			{
				Type: "text",
				Text: system,
			},
		}
	}

	return params
}

// joinContext flattens the preceding content blocks into one text passage.
func joinContext(blocks []scribex.ContextBlock) string {
	if len(blocks) == 0 {
		return ""
	}
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if b.Text != "" {
			parts = append(parts, b.Text)
		}
	}
	return strings.Join(parts, "\n\n")
}
