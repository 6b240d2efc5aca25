package observability

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/Conceptual-Machines/soul-vamp/internal/config"
	"github.com/Conceptual-Machines/soul-vamp/internal/llm"
	langfuse "github.com/henomis/langfuse-go"
	"github.com/henomis/langfuse-go/model"
)

const levelError = "ERROR"

// Tracer records compose runs in Langfuse. A nil or disabled Tracer hands
// out inert traces, so callers never branch on configuration.
type Tracer struct {
	client *langfuse.Langfuse
	ctx    context.Context
}

// NewTracer creates the Langfuse tracer. The SDK reads its credentials from
// LANGFUSE_HOST, LANGFUSE_PUBLIC_KEY and LANGFUSE_SECRET_KEY, so configured
// values are exported before creating it.
func NewTracer(ctx context.Context, cfg *config.Config) *Tracer {
	if !cfg.LangfuseEnabled || cfg.LangfuseSecretKey == "" {
		log.Println("⚠️  Langfuse not configured (LANGFUSE_ENABLED=false or LANGFUSE_SECRET_KEY not set)")
		return &Tracer{ctx: ctx}
	}

	for key, value := range map[string]string{
		"LANGFUSE_HOST":       cfg.LangfuseHost,
		"LANGFUSE_PUBLIC_KEY": cfg.LangfusePublicKey,
		"LANGFUSE_SECRET_KEY": cfg.LangfuseSecretKey,
	} {
		if value != "" && os.Getenv(key) == "" {
			_ = os.Setenv(key, value)
		}
	}

	log.Printf("✅ Langfuse initialized (host: %s, public key set: %v)", cfg.LangfuseHost, cfg.LangfusePublicKey != "")
	return &Tracer{client: langfuse.New(ctx), ctx: ctx}
}

// IsEnabled returns whether runs are sent to Langfuse
func (t *Tracer) IsEnabled() bool {
	return t != nil && t.client != nil
}

// StartRun opens the trace covering one compose run
func (t *Tracer) StartRun(ctx context.Context, runID string, seed uint32) *Trace {
	metadata := map[string]interface{}{"run_id": runID, "seed": seed}
	if !t.IsEnabled() {
		return &Trace{metadata: metadata}
	}

	trace, err := t.client.Trace(&model.Trace{
		Name:     "compose.run",
		Metadata: metadata,
	})
	if err != nil {
		log.Printf("⚠️  Failed to create Langfuse trace: %v", err)
		return &Trace{metadata: metadata}
	}

	log.Printf("🔍 Langfuse: Created trace %s (run: %s)", trace.ID, runID)
	return &Trace{trace: trace, client: t.client, ctx: ctx, metadata: metadata}
}

// Trace is the Langfuse record of one run
type Trace struct {
	trace    *model.Trace
	client   *langfuse.Langfuse
	ctx      context.Context
	metadata map[string]interface{}
}

func (t *Trace) enabled() bool {
	return t != nil && t.trace != nil && t.client != nil
}

// Metadata returns a copy of the metadata recorded so far
func (t *Trace) Metadata() map[string]interface{} {
	out := make(map[string]interface{})
	if t == nil {
		return out
	}
	for k, v := range t.metadata {
		out[k] = v
	}
	return out
}

// SetMetadata merges fields into the trace metadata and re-sends the trace;
// Langfuse upserts traces by id.
func (t *Trace) SetMetadata(fields map[string]interface{}) {
	if t == nil {
		return
	}
	if t.metadata == nil {
		t.metadata = make(map[string]interface{})
	}
	for k, v := range fields {
		t.metadata[k] = v
	}
	if !t.enabled() {
		return
	}

	t.trace.Metadata = t.Metadata()
	if _, err := t.client.Trace(t.trace); err != nil {
		log.Printf("⚠️  Failed to update Langfuse trace %s: %v", t.trace.ID, err)
	}
}

// Completion opens a generation for one session leader request
func (t *Trace) Completion(name string, seed uint32) *Generation {
	if !t.enabled() {
		return &Generation{}
	}

	now := time.Now()
	gen, err := t.client.Generation(&model.Generation{
		TraceID:   t.trace.ID,
		Name:      name,
		StartTime: &now,
		Metadata:  map[string]interface{}{"seed": seed},
	}, nil)
	if err != nil {
		log.Printf("⚠️  Failed to create Langfuse generation: %v", err)
		return &Generation{}
	}
	return &Generation{generation: gen, client: t.client}
}

// Finish flushes everything queued for the trace
func (t *Trace) Finish() {
	if !t.enabled() {
		return
	}
	t.client.Flush(t.ctx)
	log.Printf("🔍 Langfuse: Flushed trace %s", t.trace.ID)
}

// Generation is the Langfuse record of one completion
type Generation struct {
	generation *model.Generation
	client     *langfuse.Langfuse
}

// LogCompletion records the request, reply, token usage and estimated cost
func (g *Generation) LogCompletion(modelName string, input []map[string]any, resp *llm.CompletionResponse, duration time.Duration) {
	if g.generation == nil || resp == nil {
		return
	}

	cost := CalculateCost(modelName, resp.Usage.InputTokens, resp.Usage.OutputTokens)
	g.generation.Model = modelName
	g.generation.Input = input
	g.generation.Output = resp.Text
	g.generation.Usage = model.Usage{
		Input:     resp.Usage.InputTokens,
		Output:    resp.Usage.OutputTokens,
		Total:     resp.Usage.TotalTokens,
		Unit:      model.ModelUsageUnitTokens,
		TotalCost: cost,
	}
	g.generation.Metadata = map[string]interface{}{
		"provider":    resp.Provider,
		"cost_usd":    cost,
		"duration_ms": duration.Milliseconds(),
	}
}

// Fail marks the completion as failed
func (g *Generation) Fail(input []map[string]any, err error) {
	if g.generation == nil {
		return
	}
	g.generation.Input = input
	g.generation.Level = model.ObservationLevel(levelError)
	g.generation.Metadata = map[string]interface{}{"error": err.Error()}
}

// Finish ends the generation
func (g *Generation) Finish() {
	if g.generation == nil || g.client == nil {
		return
	}
	now := time.Now()
	g.generation.EndTime = &now
	if _, err := g.client.GenerationEnd(g.generation); err != nil {
		log.Printf("⚠️  Failed to end Langfuse generation: %v", err)
	}
}
