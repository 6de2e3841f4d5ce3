package compose

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presenton/presenton-go/internal/domain"
)

// fakeGenerator answers slide prompts keyed by the section topic line.
type fakeGenerator struct {
	mu        sync.Mutex
	responses map[string]string
	err       error
	calls     int
}

func (f *fakeGenerator) Complete(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	for topic, resp := range f.responses {
		if strings.Contains(prompt, "Slide topic: "+topic) {
			return resp, nil
		}
	}
	return "", fmt.Errorf("no canned response for prompt")
}

func slideJSON(title string, bullets ...string) string {
	quoted := make([]string, len(bullets))
	for i, b := range bullets {
		quoted[i] = fmt.Sprintf("%q", b)
	}
	return fmt.Sprintf(`{"title": %q, "bullets": [%s], "speaker_notes": "notes for %s"}`,
		title, strings.Join(quoted, ","), title)
}

func testOutline() *domain.Outline {
	return &domain.Outline{
		Title: "Deck",
		Sections: []domain.OutlineSection{
			{Index: 0, Title: "Intro", Layout: domain.LayoutTitle},
			{Index: 1, Title: "Details", Layout: domain.LayoutBullets},
			{Index: 2, Title: "Wrap", Layout: domain.LayoutClosing},
		},
	}
}

func TestCompose_OrderPreserved(t *testing.T) {
	gen := &fakeGenerator{responses: map[string]string{
		"Intro":   slideJSON("Welcome"),
		"Details": slideJSON("The Details", "first", "second"),
		"Wrap":    slideJSON("Thanks"),
	}}

	slides, err := NewComposer(gen).Compose(context.Background(), domain.NewGenerationRequest("Deck"), testOutline())
	require.NoError(t, err)
	require.Len(t, slides, 3)

	assert.Equal(t, "Welcome", slides[0].Title)
	assert.Equal(t, domain.LayoutTitle, slides[0].Layout)
	assert.Equal(t, []string{"first", "second"}, slides[1].Bullets)
	assert.Equal(t, "notes for Thanks", slides[2].SpeakerNotes)
	assert.Equal(t, 3, gen.calls)
}

func TestCompose_EmptyTitleFallsBackToSection(t *testing.T) {
	gen := &fakeGenerator{responses: map[string]string{
		"Intro": `{"title": "", "bullets": [], "speaker_notes": ""}`,
	}}
	outline := &domain.Outline{
		Title:    "Deck",
		Sections: []domain.OutlineSection{{Index: 0, Title: "Intro", Layout: domain.LayoutTitle}},
	}

	slides, err := NewComposer(gen).Compose(context.Background(), domain.NewGenerationRequest("Deck"), outline)
	require.NoError(t, err)
	assert.Equal(t, "Intro", slides[0].Title)
}

func TestCompose_BulletsLayoutRequiresBullets(t *testing.T) {
	gen := &fakeGenerator{responses: map[string]string{
		"Details": `{"title": "Empty", "bullets": []}`,
	}}
	outline := &domain.Outline{
		Title:    "Deck",
		Sections: []domain.OutlineSection{{Index: 0, Title: "Details", Layout: domain.LayoutBullets}},
	}

	_, err := NewComposer(gen).Compose(context.Background(), domain.NewGenerationRequest("Deck"), outline)
	assert.ErrorContains(t, err, "no bullets")
}

func TestCompose_SectionFailureFailsDeck(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("model unavailable")}

	_, err := NewComposer(gen).Compose(context.Background(), domain.NewGenerationRequest("Deck"), testOutline())
	require.Error(t, err)
	assert.ErrorContains(t, err, "compose: section")
}

func TestCompose_NilOutline(t *testing.T) {
	_, err := NewComposer(&fakeGenerator{}).Compose(context.Background(), domain.NewGenerationRequest("Deck"), nil)
	assert.ErrorContains(t, err, "no sections")
}
