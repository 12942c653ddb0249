package anthropic

import (
	"errors"
	"testing"

	scribex "github.com/fhswno/scribex-js-sub001"
)

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := New(Config{})
	if !errors.Is(err, scribex.ErrInvalidAPIKey) {
		t.Errorf("New with empty key = %v, want ErrInvalidAPIKey", err)
	}
}

func TestNew_DefaultModel(t *testing.T) {
	p, err := New(Config{APIKey: "sk-test"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if p.model != defaultModel {
		t.Errorf("model = %q, want %q", p.model, defaultModel)
	}
	if p.Name() != scribex.ProviderAnthropic {
		t.Errorf("Name() = %q", p.Name())
	}
}

func TestBuildMessageParams(t *testing.T) {
	temp := 0.2
	tokens := 512
	system := "you are a writing assistant"

	req := &scribex.GenerateRequest{
		Prompt: "continue the paragraph",
		Context: []scribex.ContextBlock{
			{Type: "heading", Text: "Chapter One"},
			{Type: "paragraph", Text: "It was a dark and stormy night."},
		},
		Config: &scribex.GenerateConfig{
			Temperature:  &temp,
			MaxTokens:    &tokens,
			SystemPrompt: &system,
		},
	}

	params := buildMessageParams(req, "claude-test")

	if params.Model != "claude-test" {
		t.Errorf("Model = %q", params.Model)
	}
	if params.MaxTokens != 512 {
		t.Errorf("MaxTokens = %d, want 512", params.MaxTokens)
	}
	if len(params.Messages) != 1 {
		t.Fatalf("got %d messages, want 1", len(params.Messages))
	}
	// One context block plus the prompt.
	if got := len(params.Messages[0].Content); got != 2 {
		t.Errorf("got %d content blocks, want 2", got)
	}
	if len(params.System) != 1 || params.System[0].Text != system {
		t.Errorf("System = %+v", params.System)
	}
}

func TestBuildMessageParams_Defaults(t *testing.T) {
	req := &scribex.GenerateRequest{Prompt: "hello"}
	params := buildMessageParams(req, defaultModel)

	if params.MaxTokens != 1024 {
		t.Errorf("MaxTokens = %d, want default 1024", params.MaxTokens)
	}
	if len(params.System) != 0 {
		t.Errorf("System = %+v, want empty", params.System)
	}
	if got := len(params.Messages[0].Content); got != 1 {
		t.Errorf("got %d content blocks, want 1 (prompt only)", got)
	}
}

func TestJoinContext(t *testing.T) {
	tests := []struct {
		name   string
		blocks []scribex.ContextBlock
		want   string
	}{
		{"nil", nil, ""},
		{"skips empty text", []scribex.ContextBlock{{Type: "paragraph"}}, ""},
		{
			"joins with blank lines",
			[]scribex.ContextBlock{{Text: "one"}, {Text: "two"}},
			"one\n\ntwo",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := joinContext(tt.blocks); got != tt.want {
				t.Errorf("joinContext = %q, want %q", got, tt.want)
			}
		})
	}
}
