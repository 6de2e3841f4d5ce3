package activities

import (
	"context"
	"fmt"

	"github.com/presenton/presenton-go/internal/compose"
	"github.com/presenton/presenton-go/internal/domain"
	"github.com/presenton/presenton-go/internal/exporter"
	"github.com/presenton/presenton-go/internal/observability"
	"github.com/presenton/presenton-go/internal/outline"
	"github.com/presenton/presenton-go/internal/ratelimit"
	"github.com/presenton/presenton-go/internal/render"
	"github.com/presenton/presenton-go/internal/store"
	"github.com/presenton/presenton-go/internal/verifier"
)

// DeckSaver persists deck state. Implemented by store.Store; defined here so
// tests can substitute an in-memory recorder.
type DeckSaver interface {
	Save(ctx context.Context, state domain.DeckState) error
}

// Activities holds the dependencies for all Temporal activities.
// Each method is registered as a Temporal activity.
type Activities struct {
	Planner  *outline.Planner
	Composer *compose.Composer
	Renderer *render.Renderer
	Exporter *exporter.Exporter
	Saver    DeckSaver

	Budget  *ratelimit.ActivityBudget // nil = no budget enforcement
	Metrics *observability.Metrics    // nil = no metric recording
}

var _ DeckSaver = (*store.Store)(nil)

// checkBudget enforces per-tenant activity budgets when configured.
func (a *Activities) checkBudget(tenantID, activityName string) error {
	if a.Budget == nil {
		return nil
	}
	if err := a.Budget.Check(tenantID, activityName); err != nil {
		return err
	}
	a.Budget.Record(tenantID, activityName)
	return nil
}

func (a *Activities) recordActivity(ctx context.Context, name string) {
	if a.Metrics != nil {
		a.Metrics.RecordActivity(ctx, name)
	}
}

// PlanOutline generates the deck outline for a request.
func (a *Activities) PlanOutline(ctx context.Context, in PlanOutlineInput) (PlanOutlineOutput, error) {
	if err := a.checkBudget(in.Tenant.TenantID, "PlanOutline"); err != nil {
		return PlanOutlineOutput{}, err
	}
	a.recordActivity(ctx, "PlanOutline")

	out, err := a.Planner.Plan(ctx, in.Request)
	if err != nil {
		return PlanOutlineOutput{}, fmt.Errorf("plan activity: %w", err)
	}
	return PlanOutlineOutput{Outline: *out}, nil
}

// ComposeSlides expands an approved outline into full slides.
func (a *Activities) ComposeSlides(ctx context.Context, in ComposeSlidesInput) (ComposeSlidesOutput, error) {
	if err := a.checkBudget(in.Tenant.TenantID, "ComposeSlides"); err != nil {
		return ComposeSlidesOutput{}, err
	}
	a.recordActivity(ctx, "ComposeSlides")

	slides, err := a.Composer.Compose(ctx, in.Request, &in.Outline)
	if err != nil {
		return ComposeSlidesOutput{}, fmt.Errorf("compose activity: %w", err)
	}
	if a.Metrics != nil {
		a.Metrics.RecordSlides(ctx, len(slides))
	}
	return ComposeSlidesOutput{Slides: slides}, nil
}

// RenderDeck renders composed slides into the HTML artifact.
func (a *Activities) RenderDeck(ctx context.Context, in RenderDeckInput) (RenderDeckOutput, error) {
	if err := a.checkBudget(in.Tenant.TenantID, "RenderDeck"); err != nil {
		return RenderDeckOutput{}, err
	}
	a.recordActivity(ctx, "RenderDeck")

	deck := domain.NewDeck(in.Title, in.Request.TemplateID, in.Slides)
	deck, err := a.Renderer.Render(deck)
	if err != nil {
		return RenderDeckOutput{}, fmt.Errorf("render activity: %w", err)
	}
	return RenderDeckOutput{Deck: deck}, nil
}

// ExportDeck converts the rendered deck into its delivery format. The export
// safety gate runs inside the exporter against the review status.
func (a *Activities) ExportDeck(ctx context.Context, in ExportDeckInput) (ExportDeckOutput, error) {
	if err := a.checkBudget(in.Tenant.TenantID, "ExportDeck"); err != nil {
		return ExportDeckOutput{}, err
	}
	a.recordActivity(ctx, "ExportDeck")

	result, err := a.Exporter.Export(in.Review, &in.Deck, in.Format)
	if err != nil {
		return ExportDeckOutput{}, fmt.Errorf("export activity: %w", err)
	}
	if a.Metrics != nil {
		a.Metrics.RecordExportSize(ctx, result.SizeBytes)
		a.Metrics.RecordDeckGenerated(ctx, in.Deck.TemplateID, string(result.Format))
	}
	return ExportDeckOutput{Result: result}, nil
}

// VerifyDeck performs post-export verification of the artifact.
func (a *Activities) VerifyDeck(ctx context.Context, in VerifyDeckInput) (VerifyDeckOutput, error) {
	if err := a.checkBudget(in.Tenant.TenantID, "VerifyDeck"); err != nil {
		return VerifyDeckOutput{}, err
	}
	a.recordActivity(ctx, "VerifyDeck")

	result, err := verifier.Verify(&in.Deck, in.Export)
	if err != nil {
		return VerifyDeckOutput{}, fmt.Errorf("verify activity: %w", err)
	}
	return VerifyDeckOutput{Result: result}, nil
}

// PersistDeck writes the current deck state to the store. Called at phase
// boundaries so the durable record tracks workflow progress.
func (a *Activities) PersistDeck(ctx context.Context, in PersistDeckInput) error {
	if a.Saver == nil {
		return nil
	}
	a.recordActivity(ctx, "PersistDeck")

	if err := a.Saver.Save(ctx, in.State); err != nil {
		return fmt.Errorf("persist activity: %w", err)
	}
	return nil
}
