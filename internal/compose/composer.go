// Package compose expands an approved outline into full slides. Sections are
// composed concurrently; the result preserves outline order regardless of
// completion order.
package compose

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/presenton/presenton-go/internal/connectors/llm"
	"github.com/presenton/presenton-go/internal/domain"
)

// defaultParallelism bounds concurrent model calls per deck. The service
// limiter still gates the global call rate.
const defaultParallelism = 4

// Composer composes slides from outline sections.
type Composer struct {
	gen         llm.Generator
	parallelism int
}

// NewComposer returns a composer backed by the given generator.
func NewComposer(gen llm.Generator) *Composer {
	return &Composer{gen: gen, parallelism: defaultParallelism}
}

// wire shape the model is asked to emit per slide.
type slideResponse struct {
	Title        string   `json:"title"`
	Bullets      []string `json:"bullets"`
	SpeakerNotes string   `json:"speaker_notes"`
}

// Compose turns every outline section into a slide. Any section failure
// cancels the remaining work and fails the whole deck.
func (c *Composer) Compose(ctx context.Context, req domain.GenerationRequest, outline *domain.Outline) ([]domain.Slide, error) {
	if outline == nil || len(outline.Sections) == 0 {
		return nil, fmt.Errorf("compose: outline has no sections")
	}

	slides := make([]domain.Slide, len(outline.Sections))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.parallelism)
	for _, section := range outline.Sections {
		g.Go(func() error {
			slide, err := c.composeSection(gctx, req, outline.Title, section)
			if err != nil {
				return fmt.Errorf("compose: section %d (%s): %w", section.Index, section.Title, err)
			}
			slides[section.Index] = slide
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return slides, nil
}

func (c *Composer) composeSection(ctx context.Context, req domain.GenerationRequest, deckTitle string, section domain.OutlineSection) (domain.Slide, error) {
	raw, err := c.gen.Complete(ctx, buildSlidePrompt(req, deckTitle, section))
	if err != nil {
		return domain.Slide{}, err
	}

	var resp slideResponse
	if err := json.Unmarshal([]byte(stripFences(raw)), &resp); err != nil {
		return domain.Slide{}, fmt.Errorf("parse model response: %w", err)
	}

	slide := domain.Slide{
		Index:        section.Index,
		Title:        strings.TrimSpace(resp.Title),
		Layout:       section.Layout,
		Bullets:      trimAll(resp.Bullets),
		SpeakerNotes: strings.TrimSpace(resp.SpeakerNotes),
	}
	if slide.Title == "" {
		slide.Title = section.Title
	}
	if len(slide.Bullets) == 0 && section.Layout == domain.LayoutBullets {
		return domain.Slide{}, fmt.Errorf("bullets layout produced no bullets")
	}
	return slide, nil
}

func buildSlidePrompt(req domain.GenerationRequest, deckTitle string, section domain.OutlineSection) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write slide %d of the presentation %q.\n", section.Index+1, deckTitle)
	fmt.Fprintf(&b, "Slide topic: %s\n", section.Title)
	if section.Summary != "" {
		fmt.Fprintf(&b, "Covers: %s\n", section.Summary)
	}
	fmt.Fprintf(&b, "Layout: %s. Language: %s. Tone: %s.\n", section.Layout, req.Language, req.Tone)
	b.WriteString("Respond with only a JSON object of the form ")
	b.WriteString(`{"title": string, "bullets": [string], "speaker_notes": string}.`)
	return b.String()
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// stripFences removes a surrounding markdown code fence if present.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
