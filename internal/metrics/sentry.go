package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
)

// SentryMetrics handles custom metrics for Sentry
type SentryMetrics struct {
	enabled bool
}

// NewSentryMetrics creates a new Sentry metrics client. Stage spans are
// always opened; token and render summaries are recorded only when enabled.
func NewSentryMetrics(enabled bool) *SentryMetrics {
	return &SentryMetrics{enabled: enabled}
}

// IsEnabled returns whether summaries are recorded
func (m *SentryMetrics) IsEnabled() bool {
	return m != nil && m.enabled
}

// StartStage opens a child span for one pipeline stage
func (m *SentryMetrics) StartStage(ctx context.Context, stage string) *sentry.Span {
	span := sentry.StartSpan(ctx, "compose."+stage)
	span.Description = fmt.Sprintf("Compose stage: %s", stage)
	span.SetTag("stage", stage)
	return span
}

// FinishStage closes a stage span with its outcome
func (m *SentryMetrics) FinishStage(span *sentry.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.Status = sentry.SpanStatusInternalError
		span.SetData("error", err.Error())
	} else {
		span.Status = sentry.SpanStatusOK
	}
	span.Finish()
}

// RecordTokenUsage records session leader token usage on the run transaction
func (m *SentryMetrics) RecordTokenUsage(ctx context.Context, model string, totalTokens, inputTokens, outputTokens int) {
	if !m.IsEnabled() {
		return
	}

	if transaction := sentry.TransactionFromContext(ctx); transaction != nil {
		transaction.SetTag("llm.model", model)
		transaction.SetData("llm.total_tokens", totalTokens)
		transaction.SetData("llm.input_tokens", inputTokens)
		transaction.SetData("llm.output_tokens", outputTokens)
	}

	span := sentry.StartSpan(ctx, "llm.token_usage")
	defer span.Finish()

	span.SetTag("model", model)
	span.SetData("total_tokens", totalTokens)
	span.SetData("input_tokens", inputTokens)
	span.SetData("output_tokens", outputTokens)

	span.Status = sentry.SpanStatusOK
	span.Description = fmt.Sprintf("Token Usage: %s", model)
}

// RecordRender records the shape of a rendered piece
func (m *SentryMetrics) RecordRender(ctx context.Context, duration time.Duration, bars, notes, rests int) {
	if !m.IsEnabled() {
		return
	}

	span := sentry.StartSpan(ctx, "render.summary")
	defer span.Finish()

	span.SetData("duration_ms", duration.Milliseconds())
	span.SetData("bars", bars)
	span.SetData("notes", notes)
	span.SetData("rests", rests)

	span.Status = sentry.SpanStatusOK
	span.Description = fmt.Sprintf("Rendered %d bars", bars)
}
