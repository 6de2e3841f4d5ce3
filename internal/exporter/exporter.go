// Package exporter converts a rendered deck into its delivery format. It
// takes pre/post snapshots of the artifact directory and calls the policy
// safety gate before writing anything.
package exporter

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/presenton/presenton-go/internal/domain"
	"github.com/presenton/presenton-go/internal/policy"
)

// Exporter performs deterministic deck export.
type Exporter struct {
	converters map[domain.ExportFormat]Converter
}

// Converter turns the rendered HTML artifact into one target format.
// Implementations write the output file and return its path.
type Converter interface {
	Convert(renderedPath, outDir string) (string, error)
}

// NewExporter creates an Exporter with the built-in converters.
func NewExporter() *Exporter {
	return &Exporter{converters: map[domain.ExportFormat]Converter{
		domain.ExportHTML: htmlConverter{},
		domain.ExportPDF:  printConverter{ext: "pdf"},
		domain.ExportPPTX: printConverter{ext: "pptx"},
	}}
}

// Snapshot captures artifact directory state around an export: file names
// and sizes, keyed by name.
func (e *Exporter) Snapshot(deck *domain.Deck) (map[string]any, error) {
	if deck == nil || deck.RenderedPath == "" {
		return map[string]any{}, nil
	}
	entries, err := os.ReadDir(filepath.Dir(deck.RenderedPath))
	if err != nil {
		return nil, fmt.Errorf("exporter: snapshot %s: %w", deck.DeckID, err)
	}
	files := map[string]any{}
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files[entry.Name()] = info.Size()
	}
	return map[string]any{"files": files}, nil
}

// Export converts the rendered deck into the requested format, enforcing the
// policy safety gate up front. The artifact lands next to the rendered HTML.
func (e *Exporter) Export(review domain.ReviewStatus, deck *domain.Deck, format domain.ExportFormat) (domain.ExportResult, error) {
	if err := policy.EnforceExportSafety(review, deck); err != nil {
		return domain.ExportResult{}, err
	}
	if deck.RenderedPath == "" {
		return domain.ExportResult{}, fmt.Errorf("exporter: deck %s has not been rendered", deck.DeckID)
	}
	conv, ok := e.converters[format]
	if !ok {
		return domain.ExportResult{}, fmt.Errorf("exporter: unsupported format %q", format)
	}

	pre, err := e.Snapshot(deck)
	if err != nil {
		return domain.ExportResult{}, fmt.Errorf("exporter: pre-snapshot: %w", err)
	}

	outDir := filepath.Dir(deck.RenderedPath)
	artifact, err := conv.Convert(deck.RenderedPath, outDir)
	if err != nil {
		return domain.ExportResult{}, fmt.Errorf("exporter: convert %s to %s: %w", deck.DeckID, format, err)
	}

	post, err := e.Snapshot(deck)
	if err != nil {
		return domain.ExportResult{}, fmt.Errorf("exporter: post-snapshot: %w", err)
	}

	info, err := os.Stat(artifact)
	if err != nil {
		return domain.ExportResult{}, fmt.Errorf("exporter: stat artifact: %w", err)
	}

	return domain.ExportResult{
		Format:             format,
		ArtifactPath:       artifact,
		ExportedAt:         time.Now().UTC().Format(time.RFC3339),
		SizeBytes:          info.Size(),
		Success:            true,
		Details:            fmt.Sprintf("exported %d slides to %s", len(deck.Slides), format),
		PreExportSnapshot:  pre,
		PostExportSnapshot: post,
	}, nil
}
