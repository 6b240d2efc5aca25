package prompt

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/Conceptual-Machines/soul-vamp/internal/models"
)

// Builder builds prompts for the session bandleader
type Builder struct {
	loader  *Loader
	session *template.Template
}

// NewPromptBuilder creates a new prompt builder
func NewPromptBuilder() *Builder {
	return &Builder{loader: NewPromptLoader()}
}

type sessionData struct {
	Seed models.Seed
}

// BuildSystemPrompt returns the instructions sent alongside every session request
func (b *Builder) BuildSystemPrompt() (string, error) {
	return b.loader.GetSystemPrompt()
}

// BuildSessionPrompt renders the session request with the seed inlined
func (b *Builder) BuildSessionPrompt(seed models.Seed) (string, error) {
	if b.session == nil {
		raw, err := b.loader.GetSessionTemplate()
		if err != nil {
			return "", err
		}
		tmpl, err := template.New("session").Parse(raw)
		if err != nil {
			return "", fmt.Errorf("failed to parse session prompt: %w", err)
		}
		b.session = tmpl
	}

	var sb strings.Builder
	if err := b.session.Execute(&sb, sessionData{Seed: seed}); err != nil {
		return "", fmt.Errorf("failed to render session prompt: %w", err)
	}
	return sb.String(), nil
}
