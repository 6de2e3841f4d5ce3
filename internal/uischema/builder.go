package uischema

import "github.com/presenton/presenton-go/internal/domain"

const schemaVersion = "v1"

// Build constructs a UISchema from the current workflow state.
// The schema drives what the frontend renders -- no raw JSX from the backend.
func Build(state domain.DeckState) UISchema {
	schema := UISchema{
		Version:    schemaVersion,
		WorkflowID: state.WorkflowID,
		Phase:      state.CurrentPhase,
	}

	// Always show the request summary if a request is present.
	if state.Request != nil {
		schema.Components = append(schema.Components, requestSummary(state))
	}

	// After planning: the outline.
	if state.Outline != nil {
		schema.Components = append(schema.Components, outlineView(state.Outline))
	}

	// At review_gate with pending review: queue + approve/deny actions.
	if state.Review == domain.ReviewPending && state.Outline != nil {
		schema.Components = append(schema.Components, reviewQueue(state))
		schema.Actions = append(schema.Actions,
			Action{
				Type:  ActionApprove,
				Label: "Approve Outline",
			},
			Action{
				Type:  ActionDeny,
				Label: "Deny Outline",
			},
		)
		// Large decks need an explicit acknowledgement.
		if domain.ComplexityFor(state.Outline.SlideCount()) == domain.ComplexityHeavy {
			schema.Actions[0].Confirm = &ConfirmConfig{
				Required:        true,
				AcknowledgeText: "I understand this is a large deck and composition will take a while",
			}
		}
	}

	// After composition: the slides.
	if len(state.Slides) > 0 {
		schema.Components = append(schema.Components, slideGrid(state.Slides))
	}

	// After rendering: the preview.
	if state.Deck != nil && state.Deck.RenderedPath != "" {
		schema.Components = append(schema.Components, deckPreview(state.Deck))
	}

	// After export: download.
	if state.Export != nil {
		schema.Components = append(schema.Components, exportCard(state.Export))
		if state.Export.Success {
			schema.Actions = append(schema.Actions, Action{
				Type:  ActionDownload,
				Label: "Download Deck",
			})
		}
	}

	// After verification: result + conditional regenerate.
	if state.Verification != nil {
		schema.Components = append(schema.Components, verifyCard(state.Verification))
		if state.Verification.Recommendation == domain.RecommendRegenerate {
			schema.Actions = append(schema.Actions, Action{
				Type:  ActionRegenerate,
				Label: "Regenerate Deck",
				Confirm: &ConfirmConfig{
					Required:        true,
					AcknowledgeText: "I want to regenerate this deck from scratch",
				},
			})
		}
	}

	// Errors surface above everything.
	if state.Error != nil {
		schema.Components = append(schema.Components, errorBanner(*state.Error))
	}

	// A live workflow can always be cancelled.
	if !state.ShouldTerminate {
		schema.Actions = append(schema.Actions, Action{
			Type:  ActionCancel,
			Label: "Cancel Generation",
			Confirm: &ConfirmConfig{
				Required: true,
			},
		})
	}

	return schema
}
