// Package policy implements the deterministic review gate that decides
// whether a generated outline is auto-approved, requires human review, or is
// denied outright. It also provides an export safety gate that prevents
// exporting decks whose outline was never approved.
package policy

import (
	"fmt"

	"github.com/presenton/presenton-go/internal/domain"
)

// ReviewDecision captures the review outcome and a human-readable explanation.
type ReviewDecision struct {
	Review  domain.ReviewStatus
	Details string
}

// Engine evaluates a generated outline against complexity-score thresholds
// and returns a review decision. LLMs are never in this path.
type Engine struct {
	AutoApproveMaxComplexity domain.DeckComplexity
	DenyMinComplexity        domain.DeckComplexity
}

// NewEngine returns an engine with default thresholds: auto-approve up to
// standard complexity, deny at oversize.
func NewEngine() *Engine {
	return &Engine{
		AutoApproveMaxComplexity: domain.ComplexityStandard,
		DenyMinComplexity:        domain.ComplexityOversize,
	}
}

// Decide evaluates the outline and returns a ReviewDecision.
//
// Rules:
//  1. Nil or empty outline → denied.
//  2. Complexity >= deny threshold → denied.
//  3. Tenant requires review → pending.
//  4. Complexity <= auto-approve threshold → auto-approved.
//  5. Otherwise → pending.
func (e *Engine) Decide(outline *domain.Outline, tenant domain.TenantContext) ReviewDecision {
	if outline == nil || outline.SlideCount() == 0 {
		return ReviewDecision{
			Review:  domain.ReviewDenied,
			Details: "outline has no sections",
		}
	}

	complexity := domain.ComplexityFor(outline.SlideCount())
	score := domain.ComplexityScore[complexity]

	if score >= domain.ComplexityScore[e.DenyMinComplexity] {
		return ReviewDecision{
			Review:  domain.ReviewDenied,
			Details: fmt.Sprintf("outline is %s (%d slides); exceeds the hard cap", complexity, outline.SlideCount()),
		}
	}

	if tenant.ReviewRequired {
		return ReviewDecision{
			Review:  domain.ReviewPending,
			Details: fmt.Sprintf("tenant requires outline review; complexity=%s", complexity),
		}
	}

	if score <= domain.ComplexityScore[e.AutoApproveMaxComplexity] {
		return ReviewDecision{
			Review:  domain.ReviewAutoApproved,
			Details: fmt.Sprintf("auto-approved; complexity=%s", complexity),
		}
	}

	return ReviewDecision{
		Review:  domain.ReviewPending,
		Details: fmt.Sprintf("requires human review; complexity=%s", complexity),
	}
}

// EnforceExportSafety is a hard gate invoked before any deck export.
// It returns a non-nil error if:
//   - The review status is not approved or auto_approved.
//   - The deck is nil or has no slides.
//   - The slide count exceeds the hard cap.
func EnforceExportSafety(review domain.ReviewStatus, deck *domain.Deck) error {
	if review != domain.ReviewApproved && review != domain.ReviewAutoApproved {
		return fmt.Errorf("cannot export: review status is %s", review)
	}
	if deck == nil || len(deck.Slides) == 0 {
		return fmt.Errorf("cannot export: deck has no slides")
	}
	if len(deck.Slides) > domain.MaxSlides {
		return fmt.Errorf("refuse to export %d slides (cap %d)", len(deck.Slides), domain.MaxSlides)
	}
	return nil
}
