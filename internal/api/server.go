// Package api exposes the presentation service over HTTP: REST endpoints for
// starting and inspecting generations, the generative UI schema, and the
// AG-UI event stream.
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/presenton/presenton-go/internal/agui"
	"github.com/presenton/presenton-go/internal/orchestrator"
	"github.com/presenton/presenton-go/internal/store"
	"github.com/presenton/presenton-go/internal/templates"
)

// TemplateCatalog lists the presentation templates available for rendering.
type TemplateCatalog interface {
	List() []templates.Template
}

// DeckLister reads persisted deck records.
type DeckLister interface {
	List(ctx context.Context, tenantID string, limit int) ([]store.DeckRecord, error)
}

// Deps holds the collaborators the server needs. Templates and Decks are
// optional; their routes return empty results when absent.
type Deps struct {
	Orchestrator orchestrator.Orchestrator
	Templates    TemplateCatalog
	Decks        DeckLister

	// ReviewRequired forces a human outline review on every generation
	// started through this server.
	ReviewRequired bool
}

// Server is the HTTP API server for the presentation service.
type Server struct {
	orch           orchestrator.Orchestrator
	templates      TemplateCatalog
	decks          DeckLister
	reviewRequired bool
	mux            *http.ServeMux
	handler        http.Handler
}

// New creates a Server with the given dependencies, CORS origins, and
// optional OIDC authentication.
func New(deps Deps, corsOrigins []string, oidcCfg OIDCConfig) (*Server, error) {
	if deps.Orchestrator == nil {
		return nil, fmt.Errorf("api: orchestrator is required")
	}
	s := &Server{
		orch:           deps.Orchestrator,
		templates:      deps.Templates,
		decks:          deps.Decks,
		reviewRequired: deps.ReviewRequired,
		mux:            http.NewServeMux(),
	}
	s.routes()

	handler := http.Handler(s.mux)
	if oidcCfg.Enabled {
		provider, err := oidc.NewProvider(context.Background(), oidcCfg.IssuerURL)
		if err != nil {
			return nil, fmt.Errorf("api: discovering oidc issuer: %w", err)
		}
		handler = oidcAuth(provider, oidcCfg.Audience)(handler)
	}
	s.handler = requestID(logging(cors(corsOrigins, handler)))
	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /api/v1/health", s.handleHealth)
	s.mux.HandleFunc("POST /api/v1/presentations", s.handleStartGeneration)
	s.mux.HandleFunc("GET /api/v1/presentations", s.handleListPresentations)
	s.mux.HandleFunc("GET /api/v1/presentations/{id}", s.handleGetPresentation)
	s.mux.HandleFunc("GET /api/v1/presentations/{id}/ui", s.handleGetPresentationUI)
	s.mux.HandleFunc("POST /api/v1/presentations/{id}/approve", s.handleApprove)
	s.mux.HandleFunc("POST /api/v1/presentations/{id}/deny", s.handleDeny)
	s.mux.HandleFunc("POST /api/v1/presentations/{id}/cancel", s.handleCancel)
	s.mux.HandleFunc("GET /api/v1/presentations/{id}/stream", agui.StreamHandler(s.orch, agui.DefaultConfig()))
	s.mux.HandleFunc("GET /api/v1/templates", s.handleListTemplates)
	s.mux.HandleFunc("GET /api/v1/decks", s.handleListDecks)
}
