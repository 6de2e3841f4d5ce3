package exporter

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/presenton/presenton-go/internal/domain"
)

func renderedDeck(t *testing.T) *domain.Deck {
	t.Helper()
	deck := domain.NewDeck("Roadmap", "classic", []domain.Slide{
		{Index: 0, Title: "Roadmap", Layout: domain.LayoutTitle},
		{Index: 1, Title: "Milestones", Layout: domain.LayoutBullets, Bullets: []string{"alpha", "beta"}},
	})
	dir := t.TempDir()
	path := filepath.Join(dir, "deck.html")
	require.NoError(t, os.WriteFile(path, []byte("<html>rendered deck</html>"), 0o644))
	deck.RenderedPath = path
	deck.RenderedAt = time.Now().UTC().Format(time.RFC3339)
	return &deck
}

func TestExport_PDF(t *testing.T) {
	deck := renderedDeck(t)

	result, err := NewExporter().Export(domain.ReviewApproved, deck, domain.ExportPDF)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, domain.ExportPDF, result.Format)
	assert.Equal(t, filepath.Join(filepath.Dir(deck.RenderedPath), "deck.pdf"), result.ArtifactPath)
	assert.Positive(t, result.SizeBytes)

	raw, err := os.ReadFile(result.ArtifactPath)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "%presenton-pdf 1.0")
	assert.Contains(t, string(raw), "rendered deck")
}

func TestExport_HTMLCopiesArtifact(t *testing.T) {
	deck := renderedDeck(t)

	result, err := NewExporter().Export(domain.ReviewAutoApproved, deck, domain.ExportHTML)
	require.NoError(t, err)

	raw, err := os.ReadFile(result.ArtifactPath)
	require.NoError(t, err)
	assert.Equal(t, "<html>rendered deck</html>", string(raw))
}

func TestExport_Snapshots(t *testing.T) {
	deck := renderedDeck(t)

	result, err := NewExporter().Export(domain.ReviewApproved, deck, domain.ExportPPTX)
	require.NoError(t, err)

	preFiles := result.PreExportSnapshot["files"].(map[string]any)
	postFiles := result.PostExportSnapshot["files"].(map[string]any)

	assert.Len(t, preFiles, 1)
	assert.Len(t, postFiles, 2)
	assert.Contains(t, postFiles, "deck.pptx")
}

func TestExport_SafetyGateBlocksUnapproved(t *testing.T) {
	deck := renderedDeck(t)

	_, err := NewExporter().Export(domain.ReviewPending, deck, domain.ExportPDF)
	assert.ErrorContains(t, err, "review status is pending")

	_, err = NewExporter().Export(domain.ReviewDenied, deck, domain.ExportPDF)
	assert.Error(t, err)
}

func TestExport_RequiresRenderedDeck(t *testing.T) {
	deck := domain.NewDeck("Unrendered", "classic", []domain.Slide{
		{Index: 0, Title: "a", Layout: domain.LayoutTitle},
	})

	_, err := NewExporter().Export(domain.ReviewApproved, &deck, domain.ExportPDF)
	assert.ErrorContains(t, err, "has not been rendered")
}

func TestExport_UnsupportedFormat(t *testing.T) {
	deck := renderedDeck(t)

	_, err := NewExporter().Export(domain.ReviewApproved, deck, domain.ExportFormat("keynote"))
	assert.ErrorContains(t, err, "unsupported format")
}
