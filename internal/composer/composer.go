// Package composer runs one composition end to end: seed, session
// parameters, arrangement and mixdown.
package composer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"time"

	"github.com/Conceptual-Machines/soul-vamp/internal/arranger"
	"github.com/Conceptual-Machines/soul-vamp/internal/config"
	apperrors "github.com/Conceptual-Machines/soul-vamp/internal/errors"
	"github.com/Conceptual-Machines/soul-vamp/internal/llm"
	"github.com/Conceptual-Machines/soul-vamp/internal/logger"
	"github.com/Conceptual-Machines/soul-vamp/internal/metrics"
	"github.com/Conceptual-Machines/soul-vamp/internal/mixdown"
	"github.com/Conceptual-Machines/soul-vamp/internal/models"
	"github.com/Conceptual-Machines/soul-vamp/internal/observability"
	"github.com/Conceptual-Machines/soul-vamp/internal/seed"
	"github.com/Conceptual-Machines/soul-vamp/internal/session"
	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
)

// ProviderResolver picks the session leader for a run
type ProviderResolver interface {
	GetProvider(ctx context.Context, model, providerName string) (llm.Provider, error)
}

// Composer holds the collaborators shared by every run
type Composer struct {
	Config    *config.Config
	Providers ProviderResolver

	// Optional; built from Config when nil
	Seeds    *seed.Engine
	Arranger *arranger.Arranger

	Metrics *metrics.Client
	Sentry  *metrics.SentryMetrics
	Tracer  *observability.Tracer

	// Console receives the status lines; nil discards them
	Console io.Writer
}

// New creates a composer for cfg
func New(cfg *config.Config, providers ProviderResolver) *Composer {
	return &Composer{
		Config:    cfg,
		Providers: providers,
		Sentry:    metrics.NewSentryMetrics(cfg != nil && cfg.SentryDSN != ""),
	}
}

// Run composes one piece and writes it to disk. Only configuration, seed and
// session parameter failures abort before any audio exists; once rendering
// starts the run always produces a file unless the write itself fails.
func (c *Composer) Run(ctx context.Context, req models.ComposeRequest) (*models.ComposeResult, error) {
	runID := uuid.NewString()
	cfg := c.runConfig(req)

	transaction := sentry.StartTransaction(ctx, "compose.run")
	defer transaction.Finish()
	transaction.SetTag("run_id", runID)
	transaction.SetTag("provider", cfg.Provider)
	ctx = transaction.Context()

	fields := logger.Fields{"run_id": runID, "provider": cfg.Provider, "model": cfg.ModelName()}

	// Config
	if c.Providers == nil {
		return nil, c.fail(transaction, nil, apperrors.StageConfig, errors.New("no provider resolver"), fields)
	}
	provider, err := c.Providers.GetProvider(ctx, cfg.ModelName(), cfg.Provider)
	if err != nil {
		return nil, c.fail(transaction, nil, apperrors.StageConfig, err, fields)
	}

	// Seed
	span := c.sentry().StartStage(ctx, apperrors.StageSeed)
	runSeed, rng, err := c.deriveSeed(span.Context(), req, cfg)
	c.sentry().FinishStage(span, err)
	if err != nil {
		return nil, c.fail(transaction, nil, apperrors.StageSeed, err, fields)
	}
	fields = logger.WithRun(runID, uint32(runSeed)).With(logger.Fields{"provider": cfg.Provider, "model": cfg.ModelName()})
	transaction.SetData("seed", uint32(runSeed))
	c.printf("--- QUANTUM SOUL SEED: %d ---\n", uint32(runSeed))

	trace := c.Tracer.StartRun(ctx, runID, uint32(runSeed))
	defer trace.Finish()
	trace.SetMetadata(map[string]interface{}{"provider": cfg.Provider, "model": cfg.ModelName()})

	// Params
	c.printf("Contacting %s for Session Sheet Music...\n", cfg.ModelName())
	span = c.sentry().StartStage(ctx, apperrors.StageParams)
	source := session.NewSource(provider, cfg.ModelName(), cfg.ParamsTimeout)
	source.Trace = trace
	source.Metrics = c.Metrics
	source.Sentry = c.Sentry
	source.Fields = fields
	params, err := source.Fetch(span.Context(), runSeed)
	c.sentry().FinishStage(span, err)
	if err != nil {
		return nil, c.fail(transaction, trace, apperrors.StageParams, err, fields)
	}
	c.printf("%s\n", params.Summary())

	// Render
	span = c.sentry().StartStage(ctx, apperrors.StageRender)
	arr := c.arranger(fields)
	c.printf("Improvising over %d bars...\n", len(arr.Structure))
	renderStart := time.Now()
	piece := arr.Render(*params, rng)
	renderDuration := time.Since(renderStart)
	c.sentry().FinishStage(span, nil)
	c.sentry().RecordRender(ctx, renderDuration, piece.Stats.Bars, piece.Stats.Notes, piece.Stats.Rests)
	c.Metrics.RecordRender(renderDuration, piece.Stats.Bars, true)
	renderFields := logger.Fields{
		"bpm":         params.BPM,
		"bars":        piece.Stats.Bars,
		"notes":       piece.Stats.Notes,
		"rests":       piece.Stats.Rests,
		"ghost_kicks": piece.Stats.GhostKicks,
		"duration_ms": renderDuration.Milliseconds(),
	}
	trace.SetMetadata(renderFields)
	logger.Info("Piece rendered", fields.With(renderFields))

	// Mixdown
	span = c.sentry().StartStage(ctx, apperrors.StageMixdown)
	final := mixdown.Finalize(piece.Master, piece.Samples)
	path, err := mixdown.WriteFile(cfg.OutputDir, runSeed, final)
	c.sentry().FinishStage(span, err)
	if err != nil {
		return nil, c.fail(transaction, trace, apperrors.StageMixdown, err, fields)
	}
	stats := mixdown.Measure(final)
	c.printf("DONE. Soul captured in: %s\n", path)
	mixFields := logger.Fields{
		"path":     path,
		"samples":  stats.Samples,
		"peak":     stats.Peak,
		"rms":      stats.RMS,
		"duration": stats.Duration.String(),
	}
	trace.SetMetadata(mixFields)
	logger.Info("Mixdown written", fields.With(mixFields))

	transaction.Status = sentry.SpanStatusOK
	return &models.ComposeResult{
		RunID:      runID,
		Seed:       runSeed,
		Params:     *params,
		OutputPath: path,
		Bars:       piece.Stats.Bars,
		Samples:    stats.Samples,
		Peak:       stats.Peak,
		RMS:        stats.RMS,
	}, nil
}

// runConfig applies the request overrides to a copy of the configuration
func (c *Composer) runConfig(req models.ComposeRequest) config.Config {
	var cfg config.Config
	if c.Config != nil {
		cfg = *c.Config
	}
	if req.Provider != "" {
		cfg.Provider = req.Provider
		if req.Model == "" && c.Config != nil && cfg.Provider != c.Config.Provider {
			cfg.Model = "" // the configured model belongs to the other provider
		}
	}
	if req.Model != "" {
		cfg.Model = req.Model
	}
	if req.OutputDir != "" {
		cfg.OutputDir = req.OutputDir
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	if req.SkipEntropy {
		cfg.EntropyEnabled = false
	}
	return cfg
}

// deriveSeed returns the fixed seed of a re-render or derives a fresh one
func (c *Composer) deriveSeed(ctx context.Context, req models.ComposeRequest, cfg config.Config) (models.Seed, *rand.Rand, error) {
	if req.Seed != nil {
		log.Printf("🔁 Re-rendering fixed seed %d", uint32(*req.Seed))
		return *req.Seed, seed.NewRand(*req.Seed), nil
	}

	engine := c.Seeds
	if engine == nil {
		var external seed.EntropySource
		if cfg.EntropyEnabled && cfg.EntropyURL != "" {
			external = seed.NewHTTPEntropySource(cfg.EntropyURL, cfg.EntropyTimeout)
		}
		engine = seed.NewEngine(external)
	} else if !cfg.EntropyEnabled {
		copied := *engine
		copied.External = nil
		engine = &copied
	}
	return engine.Derive(ctx)
}

// arranger returns a per-run copy of the arranger with bar logging attached
func (c *Composer) arranger(fields logger.Fields) *arranger.Arranger {
	base := c.Arranger
	if base == nil {
		base = arranger.New()
	}
	arr := *base
	arr.OnBar = func(ev arranger.BarEvent) {
		logger.Debug("Bar rendered", fields.With(logger.Fields{
			"bar":        ev.Index,
			"section":    string(ev.Section),
			"notes":      len(ev.Phrase),
			"ghost_kick": ev.GhostKick,
		}))
		if base.OnBar != nil {
			base.OnBar(ev)
		}
	}
	return &arr
}

func (c *Composer) fail(transaction *sentry.Span, trace *observability.Trace, stage string, err error, fields logger.Fields) error {
	transaction.Status = sentry.SpanStatusInternalError
	stageErr := apperrors.NewStageError(stage, err)
	trace.SetMetadata(map[string]interface{}{"failed_stage": stage, "error": err.Error()})
	logger.Error("Compose run failed", stageErr, fields.With(logger.Fields{"stage": stage}))
	return stageErr
}

func (c *Composer) sentry() *metrics.SentryMetrics {
	if c.Sentry == nil {
		return metrics.NewSentryMetrics(false)
	}
	return c.Sentry
}

func (c *Composer) printf(format string, args ...interface{}) {
	if c.Console != nil {
		fmt.Fprintf(c.Console, format, args...)
	}
}
