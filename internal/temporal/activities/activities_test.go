package activities

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presenton/presenton-go/internal/compose"
	"github.com/presenton/presenton-go/internal/domain"
	"github.com/presenton/presenton-go/internal/exporter"
	"github.com/presenton/presenton-go/internal/outline"
	"github.com/presenton/presenton-go/internal/ratelimit"
	"github.com/presenton/presenton-go/internal/render"
	"github.com/presenton/presenton-go/internal/templates"
)

// scriptedGenerator returns the outline response for outline prompts and a
// slide response for everything else.
type scriptedGenerator struct {
	mu sync.Mutex
}

func (g *scriptedGenerator) Complete(_ context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if strings.Contains(prompt, "presentation outline") {
		return `{"title":"Test Deck","sections":[
			{"title":"Open","summary":"","layout":"title"},
			{"title":"Middle","summary":"","layout":"bullets"},
			{"title":"Close","summary":"","layout":"closing"}]}`, nil
	}
	return `{"title":"Slide","bullets":["one","two"],"speaker_notes":"n"}`, nil
}

type memorySaver struct {
	mu     sync.Mutex
	states []domain.DeckState
}

func (m *memorySaver) Save(_ context.Context, state domain.DeckState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states = append(m.states, state)
	return nil
}

func newTestActivities(t *testing.T) (*Activities, *memorySaver) {
	t.Helper()
	catalog, err := templates.NewCatalog("")
	require.NoError(t, err)
	gen := &scriptedGenerator{}
	saver := &memorySaver{}
	return &Activities{
		Planner:  outline.NewPlanner(gen),
		Composer: compose.NewComposer(gen),
		Renderer: render.NewRenderer(catalog, t.TempDir()),
		Exporter: exporter.NewExporter(),
		Saver:    saver,
	}, saver
}

func testRequest() domain.GenerationRequest {
	req := domain.NewGenerationRequest("Test Deck")
	req.NumSlides = 3
	return req
}

func TestPipelineActivities(t *testing.T) {
	a, saver := newTestActivities(t)
	ctx := context.Background()
	tenant := domain.NewTenantContext("t1")
	req := testRequest()

	planned, err := a.PlanOutline(ctx, PlanOutlineInput{Tenant: tenant, Request: req})
	require.NoError(t, err)
	require.Len(t, planned.Outline.Sections, 3)

	composed, err := a.ComposeSlides(ctx, ComposeSlidesInput{Tenant: tenant, Request: req, Outline: planned.Outline})
	require.NoError(t, err)
	require.Len(t, composed.Slides, 3)

	rendered, err := a.RenderDeck(ctx, RenderDeckInput{
		Tenant: tenant, Request: req, Slides: composed.Slides, Title: planned.Outline.Title,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, rendered.Deck.RenderedPath)

	exported, err := a.ExportDeck(ctx, ExportDeckInput{
		Tenant: tenant, Review: domain.ReviewAutoApproved, Deck: rendered.Deck, Format: domain.ExportPDF,
	})
	require.NoError(t, err)
	assert.True(t, exported.Result.Success)

	verified, err := a.VerifyDeck(ctx, VerifyDeckInput{Tenant: tenant, Deck: rendered.Deck, Export: exported.Result})
	require.NoError(t, err)
	assert.Equal(t, domain.RecommendClose, verified.Result.Recommendation)

	state := domain.NewDeckState(tenant)
	require.NoError(t, a.PersistDeck(ctx, PersistDeckInput{State: state}))
	assert.Len(t, saver.states, 1)
}

func TestExportDeck_BlockedWithoutApproval(t *testing.T) {
	a, _ := newTestActivities(t)
	ctx := context.Background()
	tenant := domain.NewTenantContext("t1")
	req := testRequest()

	planned, err := a.PlanOutline(ctx, PlanOutlineInput{Tenant: tenant, Request: req})
	require.NoError(t, err)
	composed, err := a.ComposeSlides(ctx, ComposeSlidesInput{Tenant: tenant, Request: req, Outline: planned.Outline})
	require.NoError(t, err)
	rendered, err := a.RenderDeck(ctx, RenderDeckInput{Tenant: tenant, Request: req, Slides: composed.Slides, Title: "T"})
	require.NoError(t, err)

	_, err = a.ExportDeck(ctx, ExportDeckInput{
		Tenant: tenant, Review: domain.ReviewPending, Deck: rendered.Deck, Format: domain.ExportPDF,
	})
	assert.ErrorContains(t, err, "review status is pending")
}

func TestBudgetEnforced(t *testing.T) {
	a, _ := newTestActivities(t)
	a.Budget = ratelimit.NewActivityBudget(1, time.Hour)
	ctx := context.Background()
	tenant := domain.NewTenantContext("t1")
	req := testRequest()

	_, err := a.PlanOutline(ctx, PlanOutlineInput{Tenant: tenant, Request: req})
	require.NoError(t, err)

	_, err = a.PlanOutline(ctx, PlanOutlineInput{Tenant: tenant, Request: req})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "budget")
}

func TestPersistDeck_NilSaverIsNoop(t *testing.T) {
	a, _ := newTestActivities(t)
	a.Saver = nil

	err := a.PersistDeck(context.Background(), PersistDeckInput{State: domain.NewDeckState(domain.NewTenantContext("t1"))})
	assert.NoError(t, err)
}
