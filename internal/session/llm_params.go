package session

import "strings"

// Reasoning effort constants
const (
	reasoningEffortMinimal = "minimal"
	reasoningEffortLow     = "low"
)

// LLMParameters contains the completion knobs for the session leader call
type LLMParameters struct {
	Model         string
	ReasoningMode string // minimal, low, medium, high; ignored by models without reasoning
	JSONOutput    bool   // ask for a JSON body where the provider supports it
}

// GetLLMParameters returns the parameters for the session leader request.
// The chart is five short fields, so reasoning is kept as small as the model
// allows to keep time-to-first-token low.
func GetLLMParameters(model string) LLMParameters {
	params := LLMParameters{
		Model:         model,
		ReasoningMode: reasoningEffortMinimal,
		JSONOutput:    true,
	}
	// gpt-5.1 dropped minimal effort
	if strings.HasPrefix(model, "gpt-5.1") {
		params.ReasoningMode = reasoningEffortLow
	}
	return params
}
