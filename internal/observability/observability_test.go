package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Conceptual-Machines/soul-vamp/internal/config"
	"github.com/Conceptual-Machines/soul-vamp/internal/llm"
	"github.com/stretchr/testify/assert"
)

func TestCalculateCost(t *testing.T) {
	tests := []struct {
		name   string
		model  string
		input  int
		output int
		want   float64
	}{
		{"gemini flash", "gemini-2.5-flash", 1000, 1000, gemini25FlashInputPrice + gemini25FlashOutputPrice},
		{"gpt-5-mini", "gpt-5-mini", 2000, 500, 2*gpt5MiniInputPrice + 0.5*gpt5MiniOutputPrice},
		{"versioned model uses prefix", "gpt-4o-mini-2024-07-18", 1000, 0, gpt4oMiniInputPrice},
		{"unknown model uses default", "mystery", 1000, 1000, gemini25FlashInputPrice + gemini25FlashOutputPrice},
		{"zero tokens", "gpt-5", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CalculateCost(tt.model, tt.input, tt.output), 1e-12)
		})
	}
}

func TestFormatCost(t *testing.T) {
	assert.Equal(t, "$0.001250", FormatCost(0.00125))
	assert.Equal(t, "$0.000000", FormatCost(0))
}

func TestTracerDisabled(t *testing.T) {
	ctx := context.Background()
	tracer := NewTracer(ctx, &config.Config{LangfuseEnabled: false})
	assert.False(t, tracer.IsEnabled())

	// Disabled traces and generations are inert
	trace := tracer.StartRun(ctx, "run-1", 42)
	gen := trace.Completion("session-leader", 42)
	gen.LogCompletion("gemini-2.5-flash", llm.UserMessage("prompt"), &llm.CompletionResponse{Text: "{}"}, time.Second)
	gen.Fail(llm.UserMessage("prompt"), errors.New("timeout"))
	gen.Finish()
	trace.Finish()
}

func TestTracerRequiresSecretKey(t *testing.T) {
	tracer := NewTracer(context.Background(), &config.Config{LangfuseEnabled: true})
	assert.False(t, tracer.IsEnabled())
}

func TestNilTracerStartsInertRun(t *testing.T) {
	var tracer *Tracer
	trace := tracer.StartRun(context.Background(), "run-2", 7)
	assert.Equal(t, map[string]interface{}{"run_id": "run-2", "seed": uint32(7)}, trace.Metadata())
}

func TestTraceSetMetadataMerges(t *testing.T) {
	var tracer *Tracer
	trace := tracer.StartRun(context.Background(), "run-3", 1)

	trace.SetMetadata(map[string]interface{}{"bars": 40, "peak": 0.95})
	trace.SetMetadata(map[string]interface{}{"bars": 2})

	md := trace.Metadata()
	assert.Equal(t, 2, md["bars"])
	assert.Equal(t, 0.95, md["peak"])
	assert.Equal(t, "run-3", md["run_id"])

	// The returned map is a copy
	md["bars"] = 99
	assert.Equal(t, 2, trace.Metadata()["bars"])

	var nilTrace *Trace
	nilTrace.SetMetadata(map[string]interface{}{"x": 1})
	assert.Empty(t, nilTrace.Metadata())
}
