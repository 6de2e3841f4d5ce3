// Package workflows defines the Temporal workflow functions.
package workflows

import (
	"fmt"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/presenton/presenton-go/internal/domain"
	"github.com/presenton/presenton-go/internal/policy"
	"github.com/presenton/presenton-go/internal/temporal/activities"
)

// UpdateNameOutlineReview is the Temporal Update handler name for outline review.
const UpdateNameOutlineReview = "outline_review"

// QueryNameState is the query handler name returning the current deck state.
const QueryNameState = "deck_state"

// ReviewTimeout is how long the workflow waits for a human outline review.
const ReviewTimeout = 24 * time.Hour

// TerminationReason describes why the workflow ended.
type TerminationReason string

const (
	ReasonCompleted      TerminationReason = "completed"
	ReasonInvalidRequest TerminationReason = "invalid_request"
	ReasonPolicyDenied   TerminationReason = "policy_denied"
	ReasonHumanDenied    TerminationReason = "human_denied"
	ReasonReviewTimedOut TerminationReason = "review_timed_out"
	ReasonPlanError      TerminationReason = "plan_error"
	ReasonComposeError   TerminationReason = "compose_error"
	ReasonRenderError    TerminationReason = "render_error"
	ReasonExportError    TerminationReason = "export_error"
	ReasonVerifyError    TerminationReason = "verify_error"
)

// WorkflowInput is the input to the presentation lifecycle workflow.
type WorkflowInput struct {
	Tenant  domain.TenantContext      `json:"tenant"`
	Request *domain.GenerationRequest `json:"request"`
}

// WorkflowResult is the output of the presentation lifecycle workflow.
// The workflow returns this on all paths; only infra failures produce
// workflow-level errors.
type WorkflowResult struct {
	State  domain.DeckState  `json:"state"`
	Reason TerminationReason `json:"reason"`
}

// PresentationWorkflow is the main Temporal workflow driving deck generation:
//
//	plan -> review_gate -> compose -> render -> export -> verify -> END
//
// Each step may short-circuit to END via early returns.
// Policy runs in-workflow (pure function, no I/O, determinism-safe).
func PresentationWorkflow(ctx workflow.Context, input WorkflowInput) (WorkflowResult, error) {
	logger := workflow.GetLogger(ctx)

	state := domain.DeckState{
		WorkflowID:   workflow.GetInfo(ctx).WorkflowExecution.ID,
		StartedAt:    workflow.Now(ctx).UTC().Format(time.RFC3339),
		Tenant:       input.Tenant,
		Review:       domain.ReviewPending,
		CurrentPhase: "plan",
	}
	if err := workflow.SetQueryHandler(ctx, QueryNameState, func() (domain.DeckState, error) {
		return state, nil
	}); err != nil {
		return WorkflowResult{}, fmt.Errorf("register state query: %w", err)
	}

	// Activity options: generous timeout, no retry by default (safety first).
	actOpts := workflow.ActivityOptions{
		StartToCloseTimeout: 5 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	}
	actCtx := workflow.WithActivityOptions(ctx, actOpts)

	// ------------------------------------------------------------------
	// Plan: validate request and generate the outline
	// ------------------------------------------------------------------
	if input.Request == nil {
		logger.Info("no generation request provided, exiting")
		state.ShouldTerminate = true
		return WorkflowResult{State: state, Reason: ReasonInvalidRequest}, nil
	}
	if err := domain.ValidateGenerationRequest(*input.Request); err != nil {
		errMsg := fmt.Sprintf("invalid request: %v", err)
		state.Error = &errMsg
		state.ShouldTerminate = true
		return WorkflowResult{State: state, Reason: ReasonInvalidRequest}, nil
	}
	state.Request = input.Request

	var planOut activities.PlanOutlineOutput
	err := workflow.ExecuteActivity(actCtx, "PlanOutline", activities.PlanOutlineInput{
		Tenant:  input.Tenant,
		Request: *input.Request,
	}).Get(ctx, &planOut)
	if err != nil {
		errMsg := fmt.Sprintf("outline planning failed: %v", err)
		state.Error = &errMsg
		state.ShouldTerminate = true
		persistState(actCtx, state)
		return WorkflowResult{State: state, Reason: ReasonPlanError}, nil
	}
	state.Outline = &planOut.Outline
	logger.Info("outline planned", "title", planOut.Outline.Title, "sections", len(planOut.Outline.Sections))

	// ------------------------------------------------------------------
	// Review gate: policy decision + optional human review
	// ------------------------------------------------------------------
	state.CurrentPhase = "review_gate"
	engine := policy.NewEngine()
	decision := engine.Decide(state.Outline, input.Tenant)
	state.ReviewDetails = decision.Details
	persistState(actCtx, state)

	switch decision.Review {
	case domain.ReviewAutoApproved:
		logger.Info("outline auto-approved by policy")
		state.Review = domain.ReviewAutoApproved

	case domain.ReviewDenied:
		logger.Info("outline denied by policy", "details", decision.Details)
		state.Review = domain.ReviewDenied
		state.ShouldTerminate = true
		persistState(actCtx, state)
		return WorkflowResult{State: state, Reason: ReasonPolicyDenied}, nil

	case domain.ReviewPending:
		logger.Info("outline pending human review", "details", decision.Details)
		state.Review = domain.ReviewPending
		review, err := waitForReview(ctx)
		if err != nil {
			return WorkflowResult{}, fmt.Errorf("review gate: %w", err)
		}

		switch review {
		case domain.ReviewApproved:
			state.Review = domain.ReviewApproved
		case domain.ReviewDenied:
			state.Review = domain.ReviewDenied
			state.ShouldTerminate = true
			persistState(actCtx, state)
			return WorkflowResult{State: state, Reason: ReasonHumanDenied}, nil
		case domain.ReviewTimedOut:
			state.Review = domain.ReviewTimedOut
			state.ShouldTerminate = true
			persistState(actCtx, state)
			return WorkflowResult{State: state, Reason: ReasonReviewTimedOut}, nil
		}
	}

	// ------------------------------------------------------------------
	// Compose: expand the approved outline into slides
	// ------------------------------------------------------------------
	state.CurrentPhase = "compose"
	var composeOut activities.ComposeSlidesOutput
	err = workflow.ExecuteActivity(actCtx, "ComposeSlides", activities.ComposeSlidesInput{
		Tenant:  input.Tenant,
		Request: *input.Request,
		Outline: *state.Outline,
	}).Get(ctx, &composeOut)
	if err != nil {
		errMsg := fmt.Sprintf("slide composition failed: %v", err)
		state.Error = &errMsg
		state.ShouldTerminate = true
		persistState(actCtx, state)
		return WorkflowResult{State: state, Reason: ReasonComposeError}, nil
	}
	state.Slides = composeOut.Slides
	logger.Info("slides composed", "count", len(composeOut.Slides))

	// ------------------------------------------------------------------
	// Render: produce the HTML artifact
	// ------------------------------------------------------------------
	state.CurrentPhase = "render"
	var renderOut activities.RenderDeckOutput
	err = workflow.ExecuteActivity(actCtx, "RenderDeck", activities.RenderDeckInput{
		Tenant:  input.Tenant,
		Request: *input.Request,
		Slides:  state.Slides,
		Title:   state.Outline.Title,
	}).Get(ctx, &renderOut)
	if err != nil {
		errMsg := fmt.Sprintf("render failed: %v", err)
		state.Error = &errMsg
		state.ShouldTerminate = true
		persistState(actCtx, state)
		return WorkflowResult{State: state, Reason: ReasonRenderError}, nil
	}
	state.Deck = &renderOut.Deck
	logger.Info("deck rendered", "deck_id", renderOut.Deck.DeckID, "path", renderOut.Deck.RenderedPath)

	// ------------------------------------------------------------------
	// Export: convert to the delivery format (no retries for safety)
	// ------------------------------------------------------------------
	state.CurrentPhase = "export"
	var exportOut activities.ExportDeckOutput
	err = workflow.ExecuteActivity(actCtx, "ExportDeck", activities.ExportDeckInput{
		Tenant: input.Tenant,
		Review: state.Review,
		Deck:   *state.Deck,
		Format: input.Request.ExportFormat,
	}).Get(ctx, &exportOut)
	if err != nil {
		errMsg := fmt.Sprintf("export failed: %v", err)
		state.Error = &errMsg
		state.ShouldTerminate = true
		persistState(actCtx, state)
		return WorkflowResult{State: state, Reason: ReasonExportError}, nil
	}
	state.Export = &exportOut.Result
	logger.Info("deck exported", "format", exportOut.Result.Format, "artifact", exportOut.Result.ArtifactPath)

	// ------------------------------------------------------------------
	// Verify: check the artifact
	// ------------------------------------------------------------------
	state.CurrentPhase = "verify"
	var verifyOut activities.VerifyDeckOutput
	err = workflow.ExecuteActivity(actCtx, "VerifyDeck", activities.VerifyDeckInput{
		Tenant: input.Tenant,
		Deck:   *state.Deck,
		Export: *state.Export,
	}).Get(ctx, &verifyOut)
	if err != nil {
		errMsg := fmt.Sprintf("verification failed: %v", err)
		state.Error = &errMsg
		state.ShouldTerminate = true
		persistState(actCtx, state)
		return WorkflowResult{State: state, Reason: ReasonVerifyError}, nil
	}
	state.Verification = &verifyOut.Result
	state.CurrentPhase = "completed"
	state.ShouldTerminate = true
	persistState(actCtx, state)
	logger.Info("workflow completed", "recommendation", verifyOut.Result.Recommendation)

	return WorkflowResult{State: state, Reason: ReasonCompleted}, nil
}

// persistState writes the state snapshot through the persist activity.
// Persistence failures are logged, not fatal: the workflow history remains
// the source of truth.
func persistState(actCtx workflow.Context, state domain.DeckState) {
	err := workflow.ExecuteActivity(actCtx, "PersistDeck", activities.PersistDeckInput{
		State: state,
	}).Get(actCtx, nil)
	if err != nil {
		workflow.GetLogger(actCtx).Error("persist deck state failed", "error", err)
	}
}

// waitForReview registers a Temporal Update handler and waits for either
// human approval/denial or a 24-hour timeout, whichever comes first.
func waitForReview(ctx workflow.Context) (domain.ReviewStatus, error) {
	logger := workflow.GetLogger(ctx)

	var result domain.ReviewStatus
	responded := false

	err := workflow.SetUpdateHandlerWithOptions(
		ctx,
		UpdateNameOutlineReview,
		func(ctx workflow.Context, resp activities.ReviewResponse) (string, error) {
			if responded {
				return "", fmt.Errorf("review already received")
			}
			responded = true
			if resp.Approved {
				result = domain.ReviewApproved
				logger.Info("outline approved", "by", resp.By)
			} else {
				result = domain.ReviewDenied
				logger.Info("outline denied", "by", resp.By, "reason", resp.Reason)
			}
			return string(result), nil
		},
		workflow.UpdateHandlerOptions{
			Validator: func(resp activities.ReviewResponse) error {
				if resp.By == "" {
					return fmt.Errorf("review 'by' field is required")
				}
				if responded {
					return fmt.Errorf("review already received")
				}
				return nil
			},
		},
	)
	if err != nil {
		return "", fmt.Errorf("register review handler: %w", err)
	}

	// Block until the Update handler fires or the review window lapses.
	ok, err := workflow.AwaitWithTimeout(ctx, ReviewTimeout, func() bool {
		return responded
	})
	if err != nil {
		return "", fmt.Errorf("wait for review: %w", err)
	}
	if !ok {
		logger.Info("outline review timed out after 24h")
		return domain.ReviewTimedOut, nil
	}

	return result, nil
}
