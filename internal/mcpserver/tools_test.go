package mcpserver_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"

	"github.com/presenton/presenton-go/internal/domain"
	"github.com/presenton/presenton-go/internal/mcpserver"
	"github.com/presenton/presenton-go/internal/orchestrator"
	"github.com/presenton/presenton-go/internal/store"
	"github.com/presenton/presenton-go/internal/temporal/activities"
	"github.com/presenton/presenton-go/internal/temporal/workflows"
	"github.com/presenton/presenton-go/internal/templates"
)

type stubOrchestrator struct {
	summaries []orchestrator.WorkflowSummary
	state     *workflows.WorkflowResult
	desc      *orchestrator.WorkflowDescription
	review    string
	err       error
}

func (s *stubOrchestrator) StartGeneration(_ context.Context, _ domain.TenantContext, req domain.GenerationRequest) (orchestrator.StartResult, error) {
	return orchestrator.StartResult{WorkflowID: "presentation-" + req.RequestID}, s.err
}

func (s *stubOrchestrator) ListPresentations(_ context.Context, _ orchestrator.ListOptions) ([]orchestrator.WorkflowSummary, error) {
	return s.summaries, s.err
}

func (s *stubOrchestrator) GetState(_ context.Context, _ string) (*workflows.WorkflowResult, error) {
	return s.state, s.err
}

func (s *stubOrchestrator) Describe(_ context.Context, _ string) (*orchestrator.WorkflowDescription, error) {
	return s.desc, s.err
}

func (s *stubOrchestrator) SubmitOutlineReview(_ context.Context, _ string, _ activities.ReviewResponse) (string, error) {
	return s.review, s.err
}

func (s *stubOrchestrator) CancelGeneration(_ context.Context, _ string) error {
	return s.err
}

type stubDecks struct {
	records []store.DeckRecord
	err     error
}

func (s *stubDecks) List(_ context.Context, _ string, _ int) ([]store.DeckRecord, error) {
	return s.records, s.err
}

func testDeps(t *testing.T) mcpserver.Deps {
	t.Helper()
	catalog, err := templates.NewCatalog("")
	if err != nil {
		t.Fatal(err)
	}
	return mcpserver.Deps{
		Orchestrator: &stubOrchestrator{
			state: &workflows.WorkflowResult{
				State: domain.NewDeckState(domain.NewTenantContext("t1")),
			},
		},
		Templates: catalog,
		Decks:     &stubDecks{},
	}
}

func TestRegisterTools(t *testing.T) {
	server := mcp.NewServer(&mcp.Implementation{Name: "test", Version: "v1"}, nil)
	mcpserver.RegisterTools(server, testDeps(t))

	// Verify it compiles and registers without panic.
	assert.NotNil(t, server)
}

func TestNew(t *testing.T) {
	server := mcpserver.New(slog.Default(), "v1.0.0", testDeps(t))
	assert.NotNil(t, server)
}
