// Package outline turns a generation request into a reviewed-before-compose
// deck outline. The language model proposes titles and summaries; everything
// structural (section count, layouts, ordering) is normalized here so the
// review gate always sees a well-formed outline.
package outline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/presenton/presenton-go/internal/connectors/llm"
	"github.com/presenton/presenton-go/internal/domain"
)

// Planner plans outlines with a language model.
type Planner struct {
	gen llm.Generator
}

// NewPlanner returns a planner backed by the given generator.
func NewPlanner(gen llm.Generator) *Planner {
	return &Planner{gen: gen}
}

// wire shape the model is asked to emit.
type outlineResponse struct {
	Title    string `json:"title"`
	Sections []struct {
		Title   string `json:"title"`
		Summary string `json:"summary"`
		Layout  string `json:"layout"`
	} `json:"sections"`
	Notes string `json:"notes"`
}

// Plan generates and normalizes an outline for the request. The returned
// outline always has exactly req.NumSlides sections with valid layouts.
func (p *Planner) Plan(ctx context.Context, req domain.GenerationRequest) (*domain.Outline, error) {
	raw, err := p.gen.Complete(ctx, buildPrompt(req))
	if err != nil {
		return nil, fmt.Errorf("outline: plan: %w", err)
	}

	var resp outlineResponse
	if err := json.Unmarshal([]byte(stripFences(raw)), &resp); err != nil {
		return nil, fmt.Errorf("outline: parse model response: %w", err)
	}
	if len(resp.Sections) == 0 {
		return nil, fmt.Errorf("outline: model returned no sections")
	}

	out := &domain.Outline{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Title:       strings.TrimSpace(resp.Title),
		Notes:       strings.TrimSpace(resp.Notes),
	}
	if out.Title == "" {
		out.Title = req.Topic
	}

	// The model may over- or under-deliver; the request's slide count wins.
	for i := 0; i < req.NumSlides; i++ {
		section := domain.OutlineSection{
			Index:  i,
			Layout: defaultLayout(i, req.NumSlides),
		}
		if i < len(resp.Sections) {
			section.Title = strings.TrimSpace(resp.Sections[i].Title)
			section.Summary = strings.TrimSpace(resp.Sections[i].Summary)
			if l := domain.SlideLayout(resp.Sections[i].Layout); l.Valid() {
				section.Layout = l
			}
		}
		if section.Title == "" {
			section.Title = fmt.Sprintf("%s — part %d", req.Topic, i+1)
		}
		out.Sections = append(out.Sections, section)
	}

	if err := domain.ValidateOutline(*out); err != nil {
		return nil, fmt.Errorf("outline: %w", err)
	}
	return out, nil
}

// defaultLayout picks the layout used when the model omits one or proposes
// an unknown layout.
func defaultLayout(index, total int) domain.SlideLayout {
	switch {
	case index == 0:
		return domain.LayoutTitle
	case index == total-1:
		return domain.LayoutClosing
	default:
		return domain.LayoutBullets
	}
}

func buildPrompt(req domain.GenerationRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Plan a %d-slide presentation outline about: %s\n", req.NumSlides, req.Topic)
	fmt.Fprintf(&b, "Language: %s. Tone: %s.\n", req.Language, req.Tone)
	if req.Instructions != "" {
		fmt.Fprintf(&b, "Additional instructions: %s\n", req.Instructions)
	}
	b.WriteString("Respond with only a JSON object of the form ")
	b.WriteString(`{"title": string, "sections": [{"title": string, "summary": string, "layout": string}], "notes": string}.`)
	b.WriteString("\nAllowed layouts: title, bullets, two_column, quote, image, closing.")
	return b.String()
}

// stripFences removes a surrounding markdown code fence if present. Models
// frequently wrap JSON in ```json blocks despite instructions.
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
