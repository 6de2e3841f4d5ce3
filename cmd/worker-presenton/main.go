// Command worker-presenton runs the Temporal worker for presentation
// workflows. Supports stub mode (deterministic canned completions) and
// production mode (real LLM provider).
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	"github.com/presenton/presenton-go/internal/compose"
	"github.com/presenton/presenton-go/internal/config"
	"github.com/presenton/presenton-go/internal/connectors/llm"
	"github.com/presenton/presenton-go/internal/exporter"
	"github.com/presenton/presenton-go/internal/observability"
	"github.com/presenton/presenton-go/internal/outline"
	"github.com/presenton/presenton-go/internal/ratelimit"
	"github.com/presenton/presenton-go/internal/render"
	"github.com/presenton/presenton-go/internal/store"
	"github.com/presenton/presenton-go/internal/temporal/activities"
	"github.com/presenton/presenton-go/internal/temporal/codecs"
	"github.com/presenton/presenton-go/internal/temporal/queues"
	"github.com/presenton/presenton-go/internal/temporal/workflows"
	"github.com/presenton/presenton-go/internal/templates"
	"github.com/presenton/presenton-go/internal/testutil"
)

// Per-tenant generation budget: generous enough for iteration, tight enough
// that a runaway client cannot monopolize the LLM quota.
const (
	budgetPerWindow = 50
	budgetWindow    = time.Hour
)

func main() {
	queuesFlag := flag.String("queues", "", "comma-separated task queues to serve (generate,export); default generate")
	flag.Parse()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		slog.Error("config error", "error", err)
		os.Exit(1)
	}
	logger := observability.Component(observability.InitLogger(cfg.LogLevel), "worker")

	if cfg.OTelEnabled {
		shutdown, err := observability.InitTracer(context.Background(), "worker-presenton")
		if err != nil {
			logger.Error("otel init failed", "error", err)
		} else {
			defer shutdown(context.Background())
		}
	}

	queueNames, err := queues.ParseQueues(*queuesFlag)
	if err != nil {
		logger.Error("invalid queues", "error", err)
		os.Exit(1)
	}

	var gen llm.Generator
	switch cfg.Mode {
	case config.ModeProduction:
		limiter := ratelimit.NewServiceLimiter(ratelimit.DefaultServiceRates())
		provider, err := llm.New(llm.Options{
			BaseURL: cfg.LLMBaseURL,
			Model:   cfg.LLMModel,
			APIKey:  cfg.LLMAPIKey,
		}, limiter)
		if err != nil {
			logger.Error("llm client", "error", err)
			os.Exit(1)
		}
		gen = provider
	default: // stub mode
		gen = &testutil.StubLLM{}
	}

	catalog, err := templates.NewCatalog(cfg.TemplatesDir)
	if err != nil {
		logger.Error("template catalog", "error", err)
		os.Exit(1)
	}
	if cfg.Reload && catalog.Dir() != "" {
		watcher, err := templates.NewWatcher(catalog, logger)
		if err != nil {
			logger.Error("template watcher", "error", err)
			os.Exit(1)
		}
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			if err := watcher.Run(ctx); err != nil && ctx.Err() == nil {
				logger.Error("template watcher stopped", "error", err)
			}
		}()
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		logger.Error("deck store", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	var metrics *observability.Metrics
	if cfg.OTelEnabled {
		metrics, err = observability.NewMetrics()
		if err != nil {
			logger.Error("metrics init failed", "error", err)
		}
	}

	acts := &activities.Activities{
		Planner:  outline.NewPlanner(gen),
		Composer: compose.NewComposer(gen),
		Renderer: render.NewRenderer(catalog, cfg.DataDir),
		Exporter: exporter.NewExporter(),
		Saver:    st,
		Budget:   ratelimit.NewActivityBudget(budgetPerWindow, budgetWindow),
		Metrics:  metrics,
	}

	c, err := client.Dial(client.Options{
		Logger:        observability.NewTemporalSlogAdapter(logger),
		DataConverter: codecs.DataConverter(),
	})
	if err != nil {
		logger.Error("unable to create Temporal client", "error", err)
		os.Exit(1)
	}
	defer c.Close()

	configs := queues.DefaultConfigs()
	var workers []worker.Worker
	for _, name := range queueNames {
		w := worker.New(c, name, configs[name].Options)
		w.RegisterWorkflow(workflows.PresentationWorkflow)
		w.RegisterActivity(acts)
		if err := w.Start(); err != nil {
			logger.Error("worker failed to start", "queue", name, "error", err)
			os.Exit(1)
		}
		workers = append(workers, w)
		logger.Info("worker started", "queue", name, "mode", string(cfg.Mode))
	}

	<-worker.InterruptCh()
	for _, w := range workers {
		w.Stop()
	}
}
