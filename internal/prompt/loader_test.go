package prompt

import (
	"strings"
	"testing"
)

func TestNewPromptLoader(t *testing.T) {
	loader := NewPromptLoader()
	if loader == nil {
		t.Fatal("NewPromptLoader() returned nil")
	}
}

func TestGetSystemPrompt(t *testing.T) {
	loader := NewPromptLoader()
	content, err := loader.GetSystemPrompt()

	if err != nil {
		t.Fatalf("GetSystemPrompt() returned error: %v", err)
	}

	if content == "" {
		t.Fatal("GetSystemPrompt() returned empty string")
	}

	if !strings.Contains(content, "Bandleader") {
		t.Error("GetSystemPrompt() does not describe the bandleader role")
	}
}

func TestGetSessionTemplate(t *testing.T) {
	loader := NewPromptLoader()
	content, err := loader.GetSessionTemplate()

	if err != nil {
		t.Fatalf("GetSessionTemplate() returned error: %v", err)
	}

	if !strings.Contains(content, "{{.Seed}}") {
		t.Error("GetSessionTemplate() is missing the seed placeholder")
	}

	// Should not have leading/trailing whitespace (TrimSpace is applied)
	if content != strings.TrimSpace(content) {
		t.Error("GetSessionTemplate() content has leading/trailing whitespace")
	}
}
