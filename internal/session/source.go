package session

import (
	"context"
	"fmt"
	"log"
	"time"

	apperrors "github.com/Conceptual-Machines/soul-vamp/internal/errors"
	"github.com/Conceptual-Machines/soul-vamp/internal/llm"
	"github.com/Conceptual-Machines/soul-vamp/internal/logger"
	"github.com/Conceptual-Machines/soul-vamp/internal/metrics"
	"github.com/Conceptual-Machines/soul-vamp/internal/models"
	"github.com/Conceptual-Machines/soul-vamp/internal/observability"
	"github.com/Conceptual-Machines/soul-vamp/internal/prompt"
)

const defaultTimeout = 60 * time.Second

// Source asks the session leader for the harmonic plan of one piece
type Source struct {
	Provider llm.Provider
	Model    string
	Timeout  time.Duration

	Prompts *prompt.Builder
	Trace   *observability.Trace // optional; nil records nothing
	Metrics *metrics.Client
	Sentry  *metrics.SentryMetrics
	Fields  logger.Fields
}

// NewSource creates a session source for a provider and model
func NewSource(provider llm.Provider, model string, timeout time.Duration) *Source {
	return &Source{
		Provider: provider,
		Model:    model,
		Timeout:  timeout,
		Prompts:  prompt.NewPromptBuilder(),
	}
}

// Fetch sends one completion request for the seed and decodes the reply.
// Any failure (transport, no object, unparseable object) wraps
// ErrNoParams; the request is never retried.
func (s *Source) Fetch(ctx context.Context, seed models.Seed) (*models.SessionParams, error) {
	if s.Provider == nil {
		return nil, fmt.Errorf("%w: no provider configured", apperrors.ErrNoParams)
	}

	builder := s.Prompts
	if builder == nil {
		builder = prompt.NewPromptBuilder()
	}
	systemPrompt, err := builder.BuildSystemPrompt()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrNoParams, err)
	}
	userPrompt, err := builder.BuildSessionPrompt(seed)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrNoParams, err)
	}

	llmParams := GetLLMParameters(s.Model)
	request := &llm.CompletionRequest{
		Model:         llmParams.Model,
		SystemPrompt:  systemPrompt,
		InputArray:    llm.UserMessage(userPrompt),
		ReasoningMode: llmParams.ReasoningMode,
		JSONOutput:    llmParams.JSONOutput,
	}

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	generation := s.Trace.Completion("session-leader", uint32(seed))
	defer generation.Finish()

	fields := s.Fields.With(logger.Fields{"provider": s.Provider.Name()})
	log.Printf("🎷 Contacting %s for session sheet music...", llmParams.Model)

	startTime := time.Now()
	resp, err := s.Provider.Complete(callCtx, request)
	duration := time.Since(startTime)
	if err != nil {
		generation.Fail(request.InputArray, err)
		s.Metrics.RecordParamsFetch(s.Provider.Name(), llmParams.Model, duration, false)
		logger.Error("Session leader request failed", err, fields)
		return nil, fmt.Errorf("%w: %w", apperrors.ErrNoParams, err)
	}

	generation.LogCompletion(llmParams.Model, request.InputArray, resp, duration)
	cost := observability.CalculateCost(llmParams.Model, resp.Usage.InputTokens, resp.Usage.OutputTokens)
	logger.LogCompletionRequest(ctx, llmParams.Model, duration, resp.Usage.AsMap(), fields.With(logger.Fields{
		"cost": observability.FormatCost(cost),
	}))
	s.Metrics.RecordTokenUsage(llmParams.Model, resp.Usage.TotalTokens, resp.Usage.InputTokens, resp.Usage.OutputTokens)
	if s.Sentry != nil {
		s.Sentry.RecordTokenUsage(ctx, llmParams.Model, resp.Usage.TotalTokens, resp.Usage.InputTokens, resp.Usage.OutputTokens)
	}

	raw, err := ExtractJSON(resp.Text)
	if err == nil {
		var params *models.SessionParams
		params, err = Decode(raw)
		if err == nil {
			s.Metrics.RecordParamsFetch(s.Provider.Name(), llmParams.Model, duration, true)
			logger.Info("Session parameters received", fields.With(logger.Fields{
				"bpm":       params.BPM,
				"root_freq": params.RootFreq,
			}))
			return params, nil
		}
	}

	generation.Fail(request.InputArray, err)
	s.Metrics.RecordParamsFetch(s.Provider.Name(), llmParams.Model, duration, false)
	logger.Warn("Session leader reply had no usable object", fields.With(logger.Fields{
		"response_preview": preview(resp.Text),
	}))
	return nil, fmt.Errorf("%w: %w", apperrors.ErrNoParams, err)
}

const previewLen = 200

func preview(text string) string {
	if len(text) <= previewLen {
		return text
	}
	return text[:previewLen] + "..."
}
