package engine

import (
	"context"
	"errors"
	"testing"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", "hello", "hello"},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"markdown fence", "```markdown\n## Summary\n```", "## Summary"},
		{"bare fence", "```\ntext\n```", "text"},
		{"whitespace", "  padded  ", "padded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripFences(tt.raw); got != tt.want {
				t.Errorf("stripFences() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCallLLMNotConfigured(t *testing.T) {
	Init(Config{})
	if LLMEnabled() {
		t.Fatal("LLMEnabled() = true with empty config")
	}
	_, err := CallLLM(context.Background(), "prompt")
	if !errors.Is(err, ErrLLMNotConfigured) {
		t.Errorf("CallLLM() error = %v, want ErrLLMNotConfigured", err)
	}
}

func TestCurrentDateFormat(t *testing.T) {
	d := CurrentDate()
	if len(d) != len("2006-01-02") || d[4] != '-' || d[7] != '-' {
		t.Errorf("CurrentDate() = %q, want YYYY-MM-DD", d)
	}
}
