package prompt

import (
	"strings"

	"github.com/Conceptual-Machines/soul-vamp/pkg/embedded"
)

type Loader struct{}

func NewPromptLoader() *Loader {
	return &Loader{}
}

// GetSystemPrompt loads the bandleader system prompt
func (l *Loader) GetSystemPrompt() (string, error) {
	return strings.TrimSpace(string(embedded.BandleaderSystemTxt)), nil
}

// GetSessionTemplate loads the raw session prompt template
func (l *Loader) GetSessionTemplate() (string, error) {
	return strings.TrimSpace(string(embedded.SessionPromptTxt)), nil
}
