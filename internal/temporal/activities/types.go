// Package activities defines the Temporal activity I/O structs and the
// Activities implementation that bridges Temporal's serialization boundary
// to the pure-logic packages in internal/.
package activities

import "github.com/presenton/presenton-go/internal/domain"

// PlanOutlineInput is the activity input for outline planning.
type PlanOutlineInput struct {
	Tenant  domain.TenantContext     `json:"tenant,omitempty"`
	Request domain.GenerationRequest `json:"request"`
}

// PlanOutlineOutput is the activity output from outline planning.
type PlanOutlineOutput struct {
	Outline domain.Outline `json:"outline"`
}

// ComposeSlidesInput is the activity input for slide composition.
type ComposeSlidesInput struct {
	Tenant  domain.TenantContext     `json:"tenant,omitempty"`
	Request domain.GenerationRequest `json:"request"`
	Outline domain.Outline           `json:"outline"`
}

// ComposeSlidesOutput is the activity output from slide composition.
type ComposeSlidesOutput struct {
	Slides []domain.Slide `json:"slides"`
}

// RenderDeckInput is the activity input for deck rendering.
type RenderDeckInput struct {
	Tenant  domain.TenantContext     `json:"tenant,omitempty"`
	Request domain.GenerationRequest `json:"request"`
	Slides  []domain.Slide           `json:"slides"`
	Title   string                   `json:"title"`
}

// RenderDeckOutput is the activity output from deck rendering.
type RenderDeckOutput struct {
	Deck domain.Deck `json:"deck"`
}

// ExportDeckInput is the activity input for deck export. The review status
// travels with the input so the export safety gate runs inside the activity.
type ExportDeckInput struct {
	Tenant domain.TenantContext `json:"tenant,omitempty"`
	Review domain.ReviewStatus  `json:"review"`
	Deck   domain.Deck          `json:"deck"`
	Format domain.ExportFormat  `json:"format"`
}

// ExportDeckOutput is the activity output from deck export.
type ExportDeckOutput struct {
	Result domain.ExportResult `json:"result"`
}

// VerifyDeckInput is the activity input for post-export verification.
type VerifyDeckInput struct {
	Tenant domain.TenantContext `json:"tenant,omitempty"`
	Deck   domain.Deck          `json:"deck"`
	Export domain.ExportResult  `json:"export"`
}

// VerifyDeckOutput is the activity output from verification.
type VerifyDeckOutput struct {
	Result domain.VerificationResult `json:"result"`
}

// PersistDeckInput is the activity input for persisting deck state.
type PersistDeckInput struct {
	State domain.DeckState `json:"state"`
}

// ReviewResponse is sent via the Temporal Update handler for outline review.
type ReviewResponse struct {
	Approved bool   `json:"approved"`
	By       string `json:"by"`
	Reason   string `json:"reason,omitempty"`
}
