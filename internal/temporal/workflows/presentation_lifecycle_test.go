package workflows_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.temporal.io/sdk/testsuite"

	"github.com/presenton/presenton-go/internal/domain"
	"github.com/presenton/presenton-go/internal/temporal/activities"
	"github.com/presenton/presenton-go/internal/temporal/workflows"
)

type PresentationLifecycleSuite struct {
	suite.Suite
	testsuite.WorkflowTestSuite
	env *testsuite.TestWorkflowEnvironment
}

func (s *PresentationLifecycleSuite) SetupTest() {
	s.env = s.NewTestWorkflowEnvironment()
	// Register activity struct so string-based OnActivity mocks work.
	s.env.RegisterActivity(&activities.Activities{})
	// State persistence happens at phase boundaries on every path.
	s.env.OnActivity("PersistDeck", testAnyCtx, testAnyInput).Return(nil).Maybe()
}

func (s *PresentationLifecycleSuite) AfterTest(_, _ string) {
	s.env.AssertExpectations(s.T())
}

func (s *PresentationLifecycleSuite) baseInput() workflows.WorkflowInput {
	req := domain.NewGenerationRequest("Platform Cost Review")
	req.NumSlides = 3
	return workflows.WorkflowInput{
		Tenant:  domain.NewTenantContext("tenant-1"),
		Request: &req,
	}
}

func outlineSections(n int) []domain.OutlineSection {
	out := make([]domain.OutlineSection, n)
	for i := range out {
		out[i] = domain.OutlineSection{Index: i, Title: fmt.Sprintf("Section %d", i+1), Layout: domain.LayoutBullets}
	}
	return out
}

func (s *PresentationLifecycleSuite) mockPlan(sections int) {
	s.env.OnActivity("PlanOutline", testAnyCtx, testAnyInput).Return(activities.PlanOutlineOutput{
		Outline: domain.Outline{
			Title:    "Platform Cost Review",
			Sections: outlineSections(sections),
		},
	}, nil)
}

func (s *PresentationLifecycleSuite) mockComposeThroughVerify() {
	s.env.OnActivity("ComposeSlides", testAnyCtx, testAnyInput).Return(activities.ComposeSlidesOutput{
		Slides: []domain.Slide{
			{Index: 0, Title: "Opening", Layout: domain.LayoutTitle},
			{Index: 1, Title: "Findings", Layout: domain.LayoutBullets, Bullets: []string{"a", "b"}},
			{Index: 2, Title: "Close", Layout: domain.LayoutClosing},
		},
	}, nil)

	deck := domain.NewDeck("Platform Cost Review", "classic", nil)
	deck.RenderedPath = "/data/" + deck.DeckID + "/deck.html"
	s.env.OnActivity("RenderDeck", testAnyCtx, testAnyInput).Return(activities.RenderDeckOutput{Deck: deck}, nil)

	s.env.OnActivity("ExportDeck", testAnyCtx, testAnyInput).Return(activities.ExportDeckOutput{
		Result: domain.ExportResult{
			Format:       domain.ExportPPTX,
			ArtifactPath: "/data/" + deck.DeckID + "/deck.pptx",
			Success:      true,
			SizeBytes:    2048,
		},
	}, nil)

	s.env.OnActivity("VerifyDeck", testAnyCtx, testAnyInput).Return(activities.VerifyDeckOutput{
		Result: domain.VerificationResult{
			ArtifactOK:        true,
			SlideCountMatches: true,
			Recommendation:    domain.RecommendClose,
		},
	}, nil)
}

// 1. HappyPath_AutoApproved: small outline auto-approved, all activities run
func (s *PresentationLifecycleSuite) TestHappyPath_AutoApproved() {
	s.mockPlan(3)
	s.mockComposeThroughVerify()

	s.env.ExecuteWorkflow(workflows.PresentationWorkflow, s.baseInput())
	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())

	var result workflows.WorkflowResult
	s.NoError(s.env.GetWorkflowResult(&result))
	s.Equal(workflows.ReasonCompleted, result.Reason)
	s.Equal(domain.ReviewAutoApproved, result.State.Review)
	s.Equal("completed", result.State.CurrentPhase)
	s.NotNil(result.State.Verification)
}

// 2. NilRequest: nothing to generate, no activities called
func (s *PresentationLifecycleSuite) TestNilRequest() {
	s.env.ExecuteWorkflow(workflows.PresentationWorkflow, workflows.WorkflowInput{
		Tenant: domain.NewTenantContext("tenant-1"),
	})
	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())

	var result workflows.WorkflowResult
	s.NoError(s.env.GetWorkflowResult(&result))
	s.Equal(workflows.ReasonInvalidRequest, result.Reason)
}

// 3. InvalidRequest: validation failure recorded on state
func (s *PresentationLifecycleSuite) TestInvalidRequest() {
	input := s.baseInput()
	input.Request.Topic = ""

	s.env.ExecuteWorkflow(workflows.PresentationWorkflow, input)
	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())

	var result workflows.WorkflowResult
	s.NoError(s.env.GetWorkflowResult(&result))
	s.Equal(workflows.ReasonInvalidRequest, result.Reason)
	s.NotNil(result.State.Error)
}

// 4. PolicyDenied: oversize outline denied without human involvement
func (s *PresentationLifecycleSuite) TestPolicyDenied() {
	s.mockPlan(domain.MaxSlides + 1)

	s.env.ExecuteWorkflow(workflows.PresentationWorkflow, s.baseInput())
	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())

	var result workflows.WorkflowResult
	s.NoError(s.env.GetWorkflowResult(&result))
	s.Equal(workflows.ReasonPolicyDenied, result.Reason)
	s.Equal(domain.ReviewDenied, result.State.Review)
}

// 5. Review_Approved: tenant requires review, human approves
func (s *PresentationLifecycleSuite) TestReview_Approved() {
	input := s.baseInput()
	input.Tenant.ReviewRequired = true

	s.mockPlan(3)
	s.mockComposeThroughVerify()

	// Simulate human approval after a short delay
	s.env.RegisterDelayedCallback(func() {
		s.env.UpdateWorkflowNoRejection(workflows.UpdateNameOutlineReview, "test-update-id", s.T(),
			activities.ReviewResponse{
				Approved: true,
				By:       "content-lead",
			})
	}, 1*time.Second)

	s.env.ExecuteWorkflow(workflows.PresentationWorkflow, input)
	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())

	var result workflows.WorkflowResult
	s.NoError(s.env.GetWorkflowResult(&result))
	s.Equal(workflows.ReasonCompleted, result.Reason)
	s.Equal(domain.ReviewApproved, result.State.Review)
}

// 6. Review_Denied: human denies
func (s *PresentationLifecycleSuite) TestReview_Denied() {
	input := s.baseInput()
	input.Tenant.ReviewRequired = true

	s.mockPlan(3)

	s.env.RegisterDelayedCallback(func() {
		s.env.UpdateWorkflowNoRejection(workflows.UpdateNameOutlineReview, "test-deny-id", s.T(),
			activities.ReviewResponse{
				Approved: false,
				By:       "content-lead",
				Reason:   "wrong audience",
			})
	}, 1*time.Second)

	s.env.ExecuteWorkflow(workflows.PresentationWorkflow, input)
	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())

	var result workflows.WorkflowResult
	s.NoError(s.env.GetWorkflowResult(&result))
	s.Equal(workflows.ReasonHumanDenied, result.Reason)
	s.Equal(domain.ReviewDenied, result.State.Review)
}

// 7. Review_Timeout: no response in 24h
func (s *PresentationLifecycleSuite) TestReview_Timeout() {
	input := s.baseInput()
	input.Tenant.ReviewRequired = true

	s.mockPlan(3)

	// No callback registered -- timer fires after 24h of workflow time
	s.env.ExecuteWorkflow(workflows.PresentationWorkflow, input)
	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())

	var result workflows.WorkflowResult
	s.NoError(s.env.GetWorkflowResult(&result))
	s.Equal(workflows.ReasonReviewTimedOut, result.Reason)
	s.Equal(domain.ReviewTimedOut, result.State.Review)
}

// 8. PlanActivityError: activity fails
func (s *PresentationLifecycleSuite) TestPlanActivityError() {
	s.env.OnActivity("PlanOutline", testAnyCtx, testAnyInput).Return(
		activities.PlanOutlineOutput{}, fmt.Errorf("model unavailable"))

	s.env.ExecuteWorkflow(workflows.PresentationWorkflow, s.baseInput())
	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())

	var result workflows.WorkflowResult
	s.NoError(s.env.GetWorkflowResult(&result))
	s.Equal(workflows.ReasonPlanError, result.Reason)
	s.NotNil(result.State.Error)
}

// 9. ExportActivityError: safety gate failure surfaces as export error
func (s *PresentationLifecycleSuite) TestExportActivityError() {
	s.mockPlan(3)

	s.env.OnActivity("ComposeSlides", testAnyCtx, testAnyInput).Return(activities.ComposeSlidesOutput{
		Slides: []domain.Slide{{Index: 0, Title: "Only", Layout: domain.LayoutTitle}},
	}, nil)

	deck := domain.NewDeck("Platform Cost Review", "classic", nil)
	s.env.OnActivity("RenderDeck", testAnyCtx, testAnyInput).Return(activities.RenderDeckOutput{Deck: deck}, nil)

	s.env.OnActivity("ExportDeck", testAnyCtx, testAnyInput).Return(
		activities.ExportDeckOutput{}, fmt.Errorf("export safety gate failure"))

	s.env.ExecuteWorkflow(workflows.PresentationWorkflow, s.baseInput())
	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())

	var result workflows.WorkflowResult
	s.NoError(s.env.GetWorkflowResult(&result))
	s.Equal(workflows.ReasonExportError, result.Reason)
	s.NotNil(result.State.Error)
}

// 10. StateQuery: query handler reflects final state
func (s *PresentationLifecycleSuite) TestStateQuery() {
	s.mockPlan(3)
	s.mockComposeThroughVerify()

	s.env.ExecuteWorkflow(workflows.PresentationWorkflow, s.baseInput())
	s.True(s.env.IsWorkflowCompleted())

	value, err := s.env.QueryWorkflow(workflows.QueryNameState)
	s.NoError(err)

	var state domain.DeckState
	s.NoError(value.Get(&state))
	s.Equal("completed", state.CurrentPhase)
	s.Equal(domain.ReviewAutoApproved, state.Review)
}

func TestPresentationLifecycleSuite(t *testing.T) {
	suite.Run(t, new(PresentationLifecycleSuite))
}
