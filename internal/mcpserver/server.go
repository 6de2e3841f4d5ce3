// Package mcpserver exposes presentation workflow operations via MCP tools.
package mcpserver

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/presenton/presenton-go/internal/orchestrator"
	"github.com/presenton/presenton-go/internal/store"
	"github.com/presenton/presenton-go/internal/templates"
)

// ServerName is the MCP implementation name advertised to clients.
const ServerName = "PresentonMCP"

// TemplateCatalog lists the available deck templates.
// Satisfied by *templates.Catalog.
type TemplateCatalog interface {
	List() []templates.Template
}

// DeckLister reads persisted deck records. Satisfied by *store.Store.
type DeckLister interface {
	List(ctx context.Context, tenantID string, limit int) ([]store.DeckRecord, error)
}

// Deps bundles everything the MCP server needs.
type Deps struct {
	Orchestrator orchestrator.Orchestrator
	Templates    TemplateCatalog
	Decks        DeckLister

	// ReviewRequired forces a human outline review on every generation
	// started through this server.
	ReviewRequired bool
}

// New builds the MCP server: it creates the server identity, wires the
// orchestrator-backed tools, and registers them exactly once. Construction
// steps are logged at debug level so a stalled startup is diagnosable.
func New(logger *slog.Logger, version string, deps Deps) *mcp.Server {
	logger.Debug("creating mcp server", "name", ServerName, "version", version)
	server := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: version,
	}, nil)

	logger.Debug("registering mcp tools")
	RegisterTools(server, deps)
	logger.Debug("mcp server ready")

	return server
}
