package orchestrator

import (
	"context"
	"fmt"

	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/api/workflowservice/v1"
	"go.temporal.io/sdk/client"

	"github.com/presenton/presenton-go/internal/domain"
	"github.com/presenton/presenton-go/internal/temporal/activities"
	"github.com/presenton/presenton-go/internal/temporal/versioning"
	"github.com/presenton/presenton-go/internal/temporal/workflows"
)

// WorkflowOrchestrator implements Orchestrator using a Temporal client.
type WorkflowOrchestrator struct {
	client client.Client
}

// Compile-time check.
var _ Orchestrator = (*WorkflowOrchestrator)(nil)

// New creates a WorkflowOrchestrator.
func New(c client.Client) *WorkflowOrchestrator {
	return &WorkflowOrchestrator{client: c}
}

// StartGeneration validates the request and starts a presentation workflow
// on the generate queue. The workflow ID is derived from the request ID so
// duplicate submissions collide instead of double-generating.
func (o *WorkflowOrchestrator) StartGeneration(ctx context.Context, tenant domain.TenantContext, req domain.GenerationRequest) (StartResult, error) {
	if err := domain.ValidateTenantContext(tenant); err != nil {
		return StartResult{}, fmt.Errorf("start generation: %w", err)
	}
	if err := domain.ValidateGenerationRequest(req); err != nil {
		return StartResult{}, fmt.Errorf("start generation: %w", err)
	}

	run, err := o.client.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:        "presentation-" + req.RequestID,
		TaskQueue: versioning.QueueGenerate,
	}, workflows.PresentationWorkflow, workflows.WorkflowInput{
		Tenant:  tenant,
		Request: &req,
	})
	if err != nil {
		return StartResult{}, fmt.Errorf("start generation: %w", err)
	}
	return StartResult{WorkflowID: run.GetID(), RunID: run.GetRunID()}, nil
}

// ListPresentations lists workflow executions using Temporal's visibility API.
func (o *WorkflowOrchestrator) ListPresentations(ctx context.Context, opts ListOptions) ([]WorkflowSummary, error) {
	query := ""
	if opts.TaskQueue != "" {
		query = fmt.Sprintf("TaskQueue = %q", opts.TaskQueue)
	}
	if opts.StatusFilter != "" {
		if query != "" {
			query += " AND "
		}
		query += fmt.Sprintf("ExecutionStatus = %q", opts.StatusFilter)
	}

	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	resp, err := o.client.ListWorkflow(ctx, &workflowservice.ListWorkflowExecutionsRequest{
		Query:    query,
		PageSize: int32(pageSize),
	})
	if err != nil {
		return nil, fmt.Errorf("list presentations: %w", err)
	}

	var summaries []WorkflowSummary
	for _, exec := range resp.Executions {
		s := WorkflowSummary{
			WorkflowID: exec.Execution.WorkflowId,
			RunID:      exec.Execution.RunId,
			Status:     exec.Status.String(),
			StartTime:  exec.StartTime.AsTime(),
			TaskQueue:  exec.TaskQueue,
		}
		if exec.CloseTime != nil {
			s.CloseTime = exec.CloseTime.AsTime()
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

// GetState returns the current workflow result.
// For completed workflows, extracts the result directly.
// For running workflows, uses the state Query handler.
func (o *WorkflowOrchestrator) GetState(ctx context.Context, workflowID string) (*workflows.WorkflowResult, error) {
	desc, err := o.client.DescribeWorkflowExecution(ctx, workflowID, "")
	if err != nil {
		return nil, fmt.Errorf("describe workflow: %w", err)
	}

	status := desc.WorkflowExecutionInfo.Status
	if status == enumspb.WORKFLOW_EXECUTION_STATUS_COMPLETED {
		run := o.client.GetWorkflow(ctx, workflowID, "")
		var result workflows.WorkflowResult
		if err := run.Get(ctx, &result); err != nil {
			return nil, fmt.Errorf("get workflow result: %w", err)
		}
		return &result, nil
	}

	if status == enumspb.WORKFLOW_EXECUTION_STATUS_RUNNING {
		resp, err := o.client.QueryWorkflow(ctx, workflowID, "", workflows.QueryNameState)
		if err != nil {
			return nil, fmt.Errorf("query workflow state: %w", err)
		}
		var state domain.DeckState
		if err := resp.Get(&state); err != nil {
			return nil, fmt.Errorf("decode query result: %w", err)
		}
		return &workflows.WorkflowResult{State: state}, nil
	}

	return nil, fmt.Errorf("workflow %s has status %s, cannot read state", workflowID, status)
}

// Describe returns detailed information about a workflow execution.
func (o *WorkflowOrchestrator) Describe(ctx context.Context, workflowID string) (*WorkflowDescription, error) {
	desc, err := o.client.DescribeWorkflowExecution(ctx, workflowID, "")
	if err != nil {
		return nil, fmt.Errorf("describe workflow: %w", err)
	}

	info := desc.WorkflowExecutionInfo
	wd := &WorkflowDescription{
		WorkflowSummary: WorkflowSummary{
			WorkflowID: info.Execution.WorkflowId,
			RunID:      info.Execution.RunId,
			Status:     info.Status.String(),
			StartTime:  info.StartTime.AsTime(),
			TaskQueue:  info.TaskQueue,
		},
	}
	if info.CloseTime != nil {
		wd.CloseTime = info.CloseTime.AsTime()
	}
	return wd, nil
}

// SubmitOutlineReview sends an approval/denial Update to a running workflow.
func (o *WorkflowOrchestrator) SubmitOutlineReview(ctx context.Context, workflowID string, resp activities.ReviewResponse) (string, error) {
	handle, err := o.client.UpdateWorkflow(ctx, client.UpdateWorkflowOptions{
		WorkflowID:   workflowID,
		UpdateName:   workflows.UpdateNameOutlineReview,
		Args:         []any{resp},
		WaitForStage: client.WorkflowUpdateStageCompleted,
	})
	if err != nil {
		return "", fmt.Errorf("submit outline review: %w", err)
	}

	var result string
	if err := handle.Get(ctx, &result); err != nil {
		return "", fmt.Errorf("get review result: %w", err)
	}
	return result, nil
}

// CancelGeneration requests cancellation of a running workflow.
func (o *WorkflowOrchestrator) CancelGeneration(ctx context.Context, workflowID string) error {
	if err := o.client.CancelWorkflow(ctx, workflowID, ""); err != nil {
		return fmt.Errorf("cancel generation: %w", err)
	}
	return nil
}
