package orchestrator

import (
	"context"

	"github.com/presenton/presenton-go/internal/domain"
	"github.com/presenton/presenton-go/internal/temporal/activities"
	"github.com/presenton/presenton-go/internal/temporal/workflows"
)

// Orchestrator provides lifecycle control over presentation workflows.
// Used by the HTTP API, AG-UI streamer, MCP server, and CLI.
type Orchestrator interface {
	StartGeneration(ctx context.Context, tenant domain.TenantContext, req domain.GenerationRequest) (StartResult, error)
	ListPresentations(ctx context.Context, opts ListOptions) ([]WorkflowSummary, error)
	GetState(ctx context.Context, workflowID string) (*workflows.WorkflowResult, error)
	Describe(ctx context.Context, workflowID string) (*WorkflowDescription, error)
	SubmitOutlineReview(ctx context.Context, workflowID string, resp activities.ReviewResponse) (string, error)
	CancelGeneration(ctx context.Context, workflowID string) error
}
