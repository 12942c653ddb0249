// Package backend implements the generic HTTP generation backend.
//
// A backend is any endpoint that accepts the JSON generation request
// documented on wireRequest and answers a success with a streamed plain-text
// body, or a failure with a non-success status and an optional {"error": ...}
// JSON body. Multiple backends can be configured side by side under different
// names; the gateway treats them as interchangeable.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	scribex "github.com/fhswno/scribex-js-sub001"
)

// maxErrorBody bounds how much of a failure response is read when looking
// for a structured error payload.
const maxErrorBody = 64 * 1024

// Config holds the configuration for one HTTP backend.
type Config struct {
	// Name is the identifier the provider is registered and selected under.
	Name string

	// Endpoint is the full URL generation requests are POSTed to.
	Endpoint string

	// APIKey, when set, is sent as a bearer token.
	APIKey string

	// HTTPClient overrides the default client. Leave nil unless tests or
	// special transports need it; the default client carries no overall
	// timeout because responses stream for as long as the backend generates.
	HTTPClient *http.Client
}

// Provider implements the scribex.Provider interface against a configured
// HTTP endpoint.
type Provider struct {
	name     scribex.ProviderID
	endpoint string
	apiKey   string
	client   *http.Client
}

// New creates a provider for the given backend configuration.
func New(cfg Config) (*Provider, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("backend: name is required")
	}
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("backend %q: endpoint is required", cfg.Name)
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{}
	}

	return &Provider{
		name:     scribex.ProviderID(cfg.Name),
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		client:   client,
	}, nil
}

// Name returns the configured provider identifier.
func (p *Provider) Name() scribex.ProviderID {
	return p.name
}

// wireRequest is the JSON document sent to the backend. Config fields are
// forwarded only when present.
type wireRequest struct {
	Prompt       string                 `json:"prompt"`
	Context      []scribex.ContextBlock `json:"context,omitempty"`
	Temperature  *float64               `json:"temperature,omitempty"`
	MaxTokens    *int                   `json:"maxTokens,omitempty"`
	SystemPrompt *string                `json:"systemPrompt,omitempty"`
}

// Generate issues a single call to the backend and returns the response body
// as a text-fragment stream. One call in, one stream out: no retry, no
// provider fallback, no caching. The request context is bound to the outbound
// call, so cancelling it aborts the backend connection.
func (p *Provider) Generate(ctx context.Context, req *scribex.GenerateRequest) (*scribex.TextStream, error) {
	wire := wireRequest{
		Prompt:  req.Prompt,
		Context: req.Context,
	}
	if req.Config != nil {
		wire.Temperature = req.Config.Temperature
		wire.MaxTokens = req.Config.MaxTokens
		wire.SystemPrompt = req.Config.SystemPrompt
	}

	body, err := json.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("backend %s: marshal request: %w", p.name, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("backend %s: create request: %w", p.name, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, &scribex.ProviderError{
			Provider: p.name,
			Message:  err.Error(),
			Err:      scribex.ErrProviderUnavailable,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, p.errorFromResponse(resp)
	}

	// Hand the body straight to the stream adapter; the full response is
	// never buffered.
	return scribex.NewTextStream(resp.Body), nil
}

// errorFromResponse turns a non-success response into a single terminal
// error. The backend's structured {"error": ...} payload is preferred; when
// it cannot be parsed the message is synthesized from the status code.
func (p *Provider) errorFromResponse(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var payload struct {
		Error string `json:"error"`
	}
	msg := ""
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		msg = payload.Error
	} else {
		msg = fmt.Sprintf("generation failed: HTTP %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	perr := &scribex.ProviderError{
		Provider:   p.name,
		StatusCode: resp.StatusCode,
		Message:    msg,
	}
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		perr.Err = scribex.ErrInvalidAPIKey
	case resp.StatusCode == http.StatusTooManyRequests:
		perr.Err = scribex.ErrRateLimited
	case resp.StatusCode >= 500:
		perr.Err = scribex.ErrProviderUnavailable
	}
	return perr
}
