package llm

import (
	"context"
)

// Input roles
const (
	RoleUser      = "user"
	RoleDeveloper = "developer"
)

// Provider defines the interface for generative text services
type Provider interface {
	// Complete sends one request and returns the model's free text
	Complete(ctx context.Context, request *CompletionRequest) (*CompletionResponse, error)

	// Name returns the provider name (e.g., "openai", "gemini")
	Name() string
}

// CompletionRequest contains all parameters needed for one completion
type CompletionRequest struct {
	Model         string
	SystemPrompt  string
	InputArray    []map[string]any // {"role": ..., "content": ...} messages
	ReasoningMode string
	// JSONOutput asks the service for a JSON body where supported. Callers
	// must still tolerate prose around the object.
	JSONOutput bool
}

// UserMessage builds a single-message input array
func UserMessage(content string) []map[string]any {
	return []map[string]any{{"role": RoleUser, "content": content}}
}

// Usage is the token accounting of one completion
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// AsMap converts usage to the field map used by logging and tracing
func (u Usage) AsMap() map[string]interface{} {
	return map[string]interface{}{
		"input_tokens":  u.InputTokens,
		"output_tokens": u.OutputTokens,
		"total_tokens":  u.TotalTokens,
	}
}

// CompletionResponse contains the result from the service
type CompletionResponse struct {
	Text     string `json:"text"`
	Model    string `json:"model"`
	Provider string `json:"provider"`
	Usage    Usage  `json:"usage"`
}

// roleOf validates one input item
func roleOf(item map[string]any) (role, content string, ok bool) {
	role, hasRole := item["role"].(string)
	content, hasContent := item["content"].(string)
	return role, content, hasRole && hasContent
}
