package uischema

import "github.com/presenton/presenton-go/internal/domain"

// requestSummary builds the always-present request overview component.
func requestSummary(state domain.DeckState) Component {
	req := state.Request
	return Component{
		Type:       ComponentRequestSummary,
		Title:      "Generation Request",
		Priority:   0,
		Visibility: VisibilityVisible,
		Data: map[string]any{
			"topic":         req.Topic,
			"num_slides":    req.NumSlides,
			"language":      req.Language,
			"tone":          string(req.Tone),
			"template_id":   req.TemplateID,
			"export_format": string(req.ExportFormat),
			"tenant_id":     state.Tenant.TenantID,
		},
	}
}

// outlineView builds the planned-outline component.
func outlineView(outline *domain.Outline) Component {
	sections := make([]map[string]any, len(outline.Sections))
	for i, s := range outline.Sections {
		sections[i] = map[string]any{
			"index":   s.Index,
			"title":   s.Title,
			"summary": s.Summary,
			"layout":  string(s.Layout),
		}
	}
	return Component{
		Type:       ComponentOutlineView,
		Title:      outline.Title,
		Priority:   10,
		Visibility: VisibilityVisible,
		Data: map[string]any{
			"sections": sections,
			"notes":    outline.Notes,
		},
	}
}

// reviewQueue builds the pending-review component.
func reviewQueue(state domain.DeckState) Component {
	return Component{
		Type:       ComponentReviewQueue,
		Title:      "Review Required",
		Priority:   20,
		Visibility: VisibilityVisible,
		Data: map[string]any{
			"review_status":  string(state.Review),
			"review_details": state.ReviewDetails,
		},
	}
}

// slideGrid builds the composed-slides overview.
func slideGrid(slides []domain.Slide) Component {
	items := make([]map[string]any, len(slides))
	for i, s := range slides {
		items[i] = map[string]any{
			"index":   s.Index,
			"title":   s.Title,
			"layout":  string(s.Layout),
			"bullets": s.Bullets,
		}
	}
	return Component{
		Type:       ComponentSlideGrid,
		Title:      "Slides",
		Priority:   30,
		Visibility: VisibilityVisible,
		Data: map[string]any{
			"slides": items,
		},
	}
}

// deckPreview builds the rendered-deck preview component.
func deckPreview(deck *domain.Deck) Component {
	return Component{
		Type:       ComponentDeckPreview,
		Title:      deck.Title,
		Priority:   40,
		Visibility: VisibilityVisible,
		Data: map[string]any{
			"deck_id":       deck.DeckID,
			"template_id":   deck.TemplateID,
			"rendered_path": deck.RenderedPath,
			"slide_count":   len(deck.Slides),
		},
	}
}

// exportCard builds the export summary component.
func exportCard(export *domain.ExportResult) Component {
	return Component{
		Type:       ComponentExportCard,
		Title:      "Export",
		Priority:   50,
		Visibility: VisibilityVisible,
		Data: map[string]any{
			"format":        string(export.Format),
			"artifact_path": export.ArtifactPath,
			"size_bytes":    export.SizeBytes,
			"success":       export.Success,
			"details":       export.Details,
		},
	}
}

// verifyCard builds the post-verification component.
func verifyCard(v *domain.VerificationResult) Component {
	return Component{
		Type:       ComponentVerifyCard,
		Title:      "Verification",
		Priority:   60,
		Visibility: VisibilityVisible,
		Data: map[string]any{
			"artifact_ok":         v.ArtifactOK,
			"slide_count_matches": v.SlideCountMatches,
			"artifact_size_bytes": v.ArtifactSizeBytes,
			"details":             v.Details,
			"recommendation":      string(v.Recommendation),
		},
	}
}

// errorBanner surfaces a workflow error.
func errorBanner(msg string) Component {
	return Component{
		Type:       ComponentErrorBanner,
		Title:      "Generation Failed",
		Priority:   5,
		Visibility: VisibilityVisible,
		Data: map[string]any{
			"error": msg,
		},
	}
}
