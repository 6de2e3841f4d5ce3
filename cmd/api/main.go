// Command api runs the HTTP API server for the presentation generative UI.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.temporal.io/sdk/client"

	"github.com/presenton/presenton-go/internal/api"
	"github.com/presenton/presenton-go/internal/config"
	"github.com/presenton/presenton-go/internal/observability"
	"github.com/presenton/presenton-go/internal/orchestrator"
	"github.com/presenton/presenton-go/internal/store"
	"github.com/presenton/presenton-go/internal/temporal/codecs"
	"github.com/presenton/presenton-go/internal/templates"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		slog.Error("config error", "error", err)
		os.Exit(1)
	}

	logger := observability.Component(observability.InitLogger(cfg.LogLevel), "api")

	if cfg.OTelEnabled {
		shutdown, err := observability.InitTracer(context.Background(), "presenton-api")
		if err != nil {
			logger.Error("otel init failed", "error", err)
		} else {
			defer shutdown(context.Background())
		}
	}

	catalog, err := templates.NewCatalog(cfg.TemplatesDir)
	if err != nil {
		logger.Error("template catalog", "error", err)
		os.Exit(1)
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		logger.Error("deck store", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	c, err := client.Dial(client.Options{
		Logger:        observability.NewTemporalSlogAdapter(logger),
		DataConverter: codecs.DataConverter(),
	})
	if err != nil {
		logger.Error("unable to create Temporal client", "error", err)
		os.Exit(1)
	}
	defer c.Close()

	oidcCfg := api.OIDCConfig{
		IssuerURL: cfg.OIDCIssuer,
		Audience:  cfg.OIDCAudience,
		Enabled:   cfg.OIDCEnabled(),
	}
	srv, err := api.New(api.Deps{
		Orchestrator:   orchestrator.New(c),
		Templates:      catalog,
		Decks:          st,
		ReviewRequired: cfg.ReviewRequired,
	}, cfg.CORSOrigins, oidcCfg)
	if err != nil {
		logger.Error("api server", "error", err)
		os.Exit(1)
	}

	var handler http.Handler = srv
	if cfg.OTelEnabled {
		handler = otelhttp.NewHandler(handler, "presenton-api")
	}

	addr := ":" + cfg.APIPort
	logger.Info("starting API server", "addr", addr, "oidc_enabled", oidcCfg.Enabled)
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
