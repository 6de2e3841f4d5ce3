// Package render produces the HTML artifact for a composed deck. The HTML is
// both a directly viewable presentation and the input the exporter converts
// to the requested delivery format.
package render

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/presenton/presenton-go/internal/domain"
	"github.com/presenton/presenton-go/internal/templates"
)

// Renderer renders decks into a data directory using catalog templates.
type Renderer struct {
	catalog *templates.Catalog
	dataDir string
}

// NewRenderer returns a renderer writing under dataDir.
func NewRenderer(catalog *templates.Catalog, dataDir string) *Renderer {
	return &Renderer{catalog: catalog, dataDir: dataDir}
}

type renderContext struct {
	Deck     *domain.Deck
	Template templates.Template
	Now      time.Time
}

// PrimaryFont is the template's first font, with a fallback for manifests
// that declare none. Manifests are operator-provided, so the value is
// trusted CSS.
func (c renderContext) PrimaryFont() template.CSS {
	if len(c.Template.Fonts) > 0 {
		return template.CSS(c.Template.Fonts[0])
	}
	return "Helvetica"
}

// Render writes the deck to <dataDir>/<deck-id>/deck.html and returns the
// deck with RenderedPath and RenderedAt set.
func (r *Renderer) Render(deck domain.Deck) (domain.Deck, error) {
	if len(deck.Slides) == 0 {
		return deck, fmt.Errorf("render: deck %s has no slides", deck.DeckID)
	}
	tpl, ok := r.catalog.Get(deck.TemplateID)
	if !ok {
		return deck, fmt.Errorf("render: unknown template %q", deck.TemplateID)
	}

	dir := filepath.Join(r.dataDir, deck.DeckID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return deck, fmt.Errorf("render: create deck dir: %w", err)
	}
	path := filepath.Join(dir, "deck.html")

	f, err := os.Create(path)
	if err != nil {
		return deck, fmt.Errorf("render: create %s: %w", path, err)
	}
	defer f.Close()

	now := time.Now().UTC()
	err = deckTemplate.Execute(f, renderContext{Deck: &deck, Template: tpl, Now: now})
	if err != nil {
		return deck, fmt.Errorf("render: execute template: %w", err)
	}

	deck.RenderedPath = path
	deck.RenderedAt = now.Format(time.RFC3339)
	return deck, nil
}

var deckTemplate = template.Must(template.New("deck").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Deck.Title}}</title>
<style>
body { font-family: {{.PrimaryFont}}, sans-serif; margin: 0; }
section.slide { min-height: 100vh; padding: 4rem; box-sizing: border-box; page-break-after: always; }
section.slide h2 { font-size: 2.4rem; }
aside.notes { display: none; }
</style>
</head>
<body data-template="{{.Template.ID}}" data-rendered="{{.Now.Format "2006-01-02T15:04:05Z07:00"}}">
{{range .Deck.Slides}}<section class="slide layout-{{.Layout}}" id="slide-{{.Index}}">
<h2>{{.Title}}</h2>
{{if .Bullets}}<ul>
{{range .Bullets}}<li>{{.}}</li>
{{end}}</ul>{{end}}
{{if .SpeakerNotes}}<aside class="notes">{{.SpeakerNotes}}</aside>{{end}}
</section>
{{end}}</body>
</html>
`))
