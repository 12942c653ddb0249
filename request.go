package scribex

// GenerateRequest contains the parameters for one generation call.
// The request is owned by the caller for the duration of the call and is
// never mutated by a provider.
type GenerateRequest struct {
	// Prompt is the user's instruction for the generation.
	Prompt string

	// Context is the ordered sequence of preceding content blocks the
	// generation should take into account. Blocks are semantic (a heading,
	// a paragraph, a code block), not raw editor markup.
	Context []ContextBlock

	// Config contains optional generation parameters. A nil Config uses the
	// backend's defaults for everything.
	Config *GenerateConfig
}

// ContextBlock is one semantic block of preceding document content.
type ContextBlock struct {
	// Type identifies the block kind (e.g., "paragraph", "heading", "code")
	Type string `json:"type"`

	// Text is the block's plain-text content
	Text string `json:"text"`
}

// GenerateConfig is a sparse overlay on the backend's defaults.
// All fields are optional pointers to distinguish "not set" from "set to zero
// value"; only present fields are forwarded to the backend. No invariant
// couples Temperature and MaxTokens to each other.
type GenerateConfig struct {
	// Temperature controls randomness (0.0-1.0)
	Temperature *float64 `json:"temperature,omitempty"`

	// MaxTokens sets the maximum number of tokens to generate
	MaxTokens *int `json:"maxTokens,omitempty"`

	// SystemPrompt overrides the backend's default system prompt
	SystemPrompt *string `json:"systemPrompt,omitempty"`
}

// GetTemperature returns the temperature, or defaultValue if not set.
// Safe to call on a nil config.
func (c *GenerateConfig) GetTemperature(defaultValue float64) float64 {
	if c == nil || c.Temperature == nil {
		return defaultValue
	}
	return *c.Temperature
}

// GetMaxTokens returns the max tokens, or defaultValue if not set.
// Safe to call on a nil config.
func (c *GenerateConfig) GetMaxTokens(defaultValue int) int {
	if c == nil || c.MaxTokens == nil {
		return defaultValue
	}
	return *c.MaxTokens
}

// GetSystemPrompt returns the system prompt, or defaultValue if not set.
// Safe to call on a nil config.
func (c *GenerateConfig) GetSystemPrompt(defaultValue string) string {
	if c == nil || c.SystemPrompt == nil {
		return defaultValue
	}
	return *c.SystemPrompt
}
