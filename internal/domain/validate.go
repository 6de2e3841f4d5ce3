package domain

import "fmt"

// ValidateGenerationRequest checks required fields and bounds on a request.
func ValidateGenerationRequest(r GenerationRequest) error {
	if r.RequestID == "" {
		return fmt.Errorf("request_id is required")
	}
	if r.Topic == "" {
		return fmt.Errorf("topic is required")
	}
	if r.NumSlides < 1 || r.NumSlides > MaxSlides {
		return fmt.Errorf("num_slides must be between 1 and %d, got %d", MaxSlides, r.NumSlides)
	}
	if r.Language == "" {
		return fmt.Errorf("language is required")
	}
	if !r.Tone.Valid() {
		return fmt.Errorf("invalid tone: %q", r.Tone)
	}
	if !r.ExportFormat.Valid() {
		return fmt.Errorf("invalid export_format: %q", r.ExportFormat)
	}
	if r.TemplateID == "" {
		return fmt.Errorf("template_id is required")
	}
	return nil
}

// ValidateTenantContext checks required fields on a TenantContext.
func ValidateTenantContext(t TenantContext) error {
	if t.TenantID == "" {
		return fmt.Errorf("tenant_id is required")
	}
	return nil
}

// ValidateOutline checks structural invariants on an Outline.
func ValidateOutline(o Outline) error {
	if o.Title == "" {
		return fmt.Errorf("outline title is required")
	}
	if len(o.Sections) == 0 {
		return fmt.Errorf("outline has no sections")
	}
	for i, s := range o.Sections {
		if s.Title == "" {
			return fmt.Errorf("section %d: title is required", i)
		}
		if !s.Layout.Valid() {
			return fmt.Errorf("section %d: invalid layout %q", i, s.Layout)
		}
	}
	return nil
}

// ValidateVerificationResult checks a VerificationResult.
func ValidateVerificationResult(v VerificationResult) error {
	if !v.Recommendation.Valid() {
		return fmt.Errorf("invalid recommendation: %q", v.Recommendation)
	}
	return nil
}

// ValidateDeckState checks required fields on a DeckState.
func ValidateDeckState(s DeckState) error {
	if s.WorkflowID == "" {
		return fmt.Errorf("workflow_id is required")
	}
	if err := ValidateTenantContext(s.Tenant); err != nil {
		return fmt.Errorf("tenant: %w", err)
	}
	if !s.Review.Valid() {
		return fmt.Errorf("invalid review status: %q", s.Review)
	}
	return nil
}
