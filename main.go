package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Conceptual-Machines/soul-vamp/internal/composer"
	"github.com/Conceptual-Machines/soul-vamp/internal/config"
	"github.com/Conceptual-Machines/soul-vamp/internal/llm"
	"github.com/Conceptual-Machines/soul-vamp/internal/metrics"
	"github.com/Conceptual-Machines/soul-vamp/internal/models"
	"github.com/Conceptual-Machines/soul-vamp/internal/observability"
	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const sentryFlushTimeout = 2 * time.Second

// releaseVersion is set via ldflags during build
var releaseVersion = "dev"

// GetVersion returns the current release version
func GetVersion() string {
	return releaseVersion
}

var (
	flagSeed      uint32
	flagOutputDir string
	flagProvider  string
	flagModel     string
	flagNoEntropy bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "soul-vamp",
	Short: "Compose a seeded soul/R&B vamp and write it as a WAV file",
	Long: `soul-vamp derives a seed, asks a generative model for a two-chord
vamp, improvises a sax lead over drums and keys, and writes the
result as Soul_Improv_<seed>.wav.

Pipeline: seed → session chart → arrangement → mixdown`,
	Version: GetVersion(),
}

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Compose one piece",
	Long: `Compose one piece from a fresh seed, or re-render a known seed.

Examples:
  soul-vamp compose
  soul-vamp compose --seed 3141592653 --output-dir ./takes
  soul-vamp compose --provider openai --model gpt-5-mini --no-entropy`,
	RunE:         runCompose,
	SilenceUsage: true,
}

func init() {
	composeCmd.Flags().Uint32Var(&flagSeed, "seed", 0, "Re-render a known seed (skips entropy gathering)")
	composeCmd.Flags().StringVarP(&flagOutputDir, "output-dir", "o", "", "Directory for the WAV file (default $OUTPUT_DIR or .)")
	composeCmd.Flags().StringVar(&flagProvider, "provider", "", "Session leader provider: gemini or openai (default $LLM_PROVIDER)")
	composeCmd.Flags().StringVar(&flagModel, "model", "", "Session leader model (default $LLM_MODEL or the provider default)")
	composeCmd.Flags().BoolVar(&flagNoEntropy, "no-entropy", false, "Don't contact the external entropy source")

	rootCmd.AddCommand(composeCmd)
}

func runCompose(cmd *cobra.Command, _ []string) error {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	if flagProvider != "" {
		cfg.Provider = strings.ToLower(flagProvider)
		if flagModel == "" {
			cfg.Model = ""
		}
	}
	if flagModel != "" {
		cfg.Model = flagModel
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "ERROR:", err)
		return err
	}

	if flush := initSentry(cfg); flush != nil {
		defer flush()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cw, err := metrics.NewClient(ctx, cfg)
	if err != nil {
		log.Printf("⚠️  CloudWatch metrics unavailable: %v", err)
	}
	defer cw.Wait()

	c := composer.New(cfg, llm.NewProviderFactory(cfg.OpenAIAPIKey, cfg.GeminiAPIKey))
	c.Metrics = cw
	c.Tracer = observability.NewTracer(ctx, cfg)
	c.Console = cmd.OutOrStdout()

	req := models.ComposeRequest{
		OutputDir:   flagOutputDir,
		SkipEntropy: flagNoEntropy,
	}
	if cmd.Flags().Changed("seed") {
		s := models.Seed(flagSeed)
		req.Seed = &s
	}

	if _, err := c.Run(ctx, req); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "ERROR:", err)
		return err
	}
	return nil
}

// initSentry initializes Sentry when a DSN is configured and returns the
// flush to run on exit
func initSentry(cfg *config.Config) func() {
	if cfg.SentryDSN == "" {
		log.Println("⚠️  Sentry not configured (SENTRY_DSN not set)")
		return nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.Environment,
		Release:          "soul-vamp@" + releaseVersion,
		EnableTracing:    true,
		TracesSampleRate: 1.0,
		Debug:            !cfg.IsProduction(),
		BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
			// Filter out sensitive data
			event.Extra = filterSensitiveExtra(event.Extra)
			return event
		},
	}); err != nil {
		log.Printf("Failed to initialize Sentry: %v", err)
		return nil
	}

	log.Printf("✅ Sentry initialized (environment: %s, release: %s)", cfg.Environment, releaseVersion)
	return func() { sentry.Flush(sentryFlushTimeout) }
}

// filterSensitiveExtra redacts credentials that may end up in event extras
func filterSensitiveExtra(extra map[string]interface{}) map[string]interface{} {
	if extra == nil {
		return nil
	}
	sensitiveKeys := map[string]bool{
		"gemini_api_key":      true,
		"openai_api_key":      true,
		"langfuse_secret_key": true,
		"authorization":       true,
	}

	filtered := make(map[string]interface{}, len(extra))
	for k, v := range extra {
		if sensitiveKeys[k] {
			filtered[k] = "[REDACTED]"
		} else {
			filtered[k] = v
		}
	}
	return filtered
}
