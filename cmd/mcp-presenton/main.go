// Command mcp-presenton runs the MCP tool server for presentation generation.
// By default it serves streamable HTTP on --port; --stdio switches to stdio
// transport for direct AI-assistant integration.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.temporal.io/sdk/client"

	"github.com/presenton/presenton-go/internal/config"
	"github.com/presenton/presenton-go/internal/mcpserver"
	"github.com/presenton/presenton-go/internal/observability"
	"github.com/presenton/presenton-go/internal/orchestrator"
	"github.com/presenton/presenton-go/internal/store"
	"github.com/presenton/presenton-go/internal/temporal/codecs"
	"github.com/presenton/presenton-go/internal/templates"
)

const version = "v1.0.0"

type options struct {
	port  int
	stdio bool
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("mcp-presenton", flag.ContinueOnError)
	fs.IntVar(&opts.port, "port", config.DefaultMCPPort, "HTTP port for the streamable MCP transport")
	fs.BoolVar(&opts.stdio, "stdio", false, "serve over stdio instead of HTTP")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.port < 1 || opts.port > 65535 {
		return options{}, fmt.Errorf("invalid port %d", opts.port)
	}
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := run(opts); err != nil {
		slog.Error("mcp server failed", "error", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return err
	}
	logger := observability.Component(observability.InitLogger(cfg.LogLevel), "mcp")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.OTelEnabled {
		shutdown, err := observability.InitTracer(ctx, "mcp-presenton")
		if err != nil {
			logger.Error("otel init failed", "error", err)
		} else {
			defer shutdown(context.Background())
		}
	}

	catalog, err := templates.NewCatalog(templatesDir(cfg))
	if err != nil {
		return err
	}
	if cfg.Reload && catalog.Dir() != "" {
		watcher, err := templates.NewWatcher(catalog, logger)
		if err != nil {
			return fmt.Errorf("template watcher: %w", err)
		}
		go func() {
			if err := watcher.Run(ctx); err != nil && ctx.Err() == nil {
				logger.Error("template watcher stopped", "error", err)
			}
		}()
		logger.Info("template hot reload enabled", "dir", catalog.Dir())
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	c, err := client.Dial(client.Options{
		Logger:        observability.NewTemporalSlogAdapter(logger),
		DataConverter: codecs.DataConverter(),
	})
	if err != nil {
		return fmt.Errorf("temporal client: %w", err)
	}
	defer c.Close()

	server := mcpserver.New(logger, version, mcpserver.Deps{
		Orchestrator:   orchestrator.New(c),
		Templates:      catalog,
		Decks:          st,
		ReviewRequired: cfg.ReviewRequired,
	})

	if opts.stdio {
		logger.Info("serving mcp over stdio")
		return server.Run(ctx, &mcp.StdioTransport{})
	}

	addr := fmt.Sprintf("0.0.0.0:%d", opts.port)
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)

	httpServer := &http.Server{Addr: addr, Handler: handler}
	go func() {
		<-ctx.Done()
		_ = httpServer.Shutdown(context.Background())
	}()

	logger.Info("serving mcp over http", "addr", addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// templatesDir resolves the manifest directory: a missing directory means
// built-ins only rather than a startup failure.
func templatesDir(cfg config.Config) string {
	if cfg.TemplatesDir == "" {
		return ""
	}
	if _, err := os.Stat(cfg.TemplatesDir); err != nil {
		slog.Warn("templates dir not found, using built-ins", "dir", cfg.TemplatesDir)
		return ""
	}
	return cfg.TemplatesDir
}
