package domain

import "fmt"

// Tone controls the writing voice used when generating slide content.
type Tone string

const (
	ToneProfessional Tone = "professional"
	ToneCasual       Tone = "casual"
	ToneEducational  Tone = "educational"
	TonePersuasive   Tone = "persuasive"
	ToneFunny        Tone = "funny"
)

func (t Tone) Valid() bool {
	switch t {
	case ToneProfessional, ToneCasual, ToneEducational, TonePersuasive, ToneFunny:
		return true
	}
	return false
}

// ExportFormat is the artifact format produced by the exporter.
type ExportFormat string

const (
	ExportPPTX ExportFormat = "pptx"
	ExportPDF  ExportFormat = "pdf"
	ExportHTML ExportFormat = "html"
)

func (f ExportFormat) Valid() bool {
	switch f {
	case ExportPPTX, ExportPDF, ExportHTML:
		return true
	}
	return false
}

// SlideLayout identifies the template layout a slide renders with.
type SlideLayout string

const (
	LayoutTitle     SlideLayout = "title"
	LayoutBullets   SlideLayout = "bullets"
	LayoutTwoColumn SlideLayout = "two_column"
	LayoutQuote     SlideLayout = "quote"
	LayoutImage     SlideLayout = "image"
	LayoutClosing   SlideLayout = "closing"
)

func (l SlideLayout) Valid() bool {
	switch l {
	case LayoutTitle, LayoutBullets, LayoutTwoColumn, LayoutQuote, LayoutImage, LayoutClosing:
		return true
	}
	return false
}

// ReviewStatus tracks the outline review gate state.
type ReviewStatus string

const (
	ReviewPending      ReviewStatus = "pending"
	ReviewApproved     ReviewStatus = "approved"
	ReviewDenied       ReviewStatus = "denied"
	ReviewAutoApproved ReviewStatus = "auto_approved"
	ReviewTimedOut     ReviewStatus = "timed_out"
)

func (r ReviewStatus) Valid() bool {
	switch r {
	case ReviewPending, ReviewApproved, ReviewDenied, ReviewAutoApproved, ReviewTimedOut:
		return true
	}
	return false
}

// DeckComplexity classifies how heavy a requested deck is. The policy engine
// uses it to decide whether an outline needs human review.
type DeckComplexity string

const (
	ComplexityLight    DeckComplexity = "light"
	ComplexityStandard DeckComplexity = "standard"
	ComplexityHeavy    DeckComplexity = "heavy"
	ComplexityOversize DeckComplexity = "oversize"
)

func (c DeckComplexity) Valid() bool {
	switch c {
	case ComplexityLight, ComplexityStandard, ComplexityHeavy, ComplexityOversize:
		return true
	}
	return false
}

// ComplexityScore maps DeckComplexity to explicit numeric scores.
// Never rely on enum ordering — use this map.
var ComplexityScore = map[DeckComplexity]int{
	ComplexityLight:    10,
	ComplexityStandard: 20,
	ComplexityHeavy:    30,
	ComplexityOversize: 40,
}

// ComplexityScoreFor returns the numeric score, or an error for unknown levels.
func ComplexityScoreFor(c DeckComplexity) (int, error) {
	score, ok := ComplexityScore[c]
	if !ok {
		return 0, fmt.Errorf("unknown complexity: %q", c)
	}
	return score, nil
}

// ComplexityFor classifies a slide count. Counts above the hard cap are
// oversize and get denied by policy.
func ComplexityFor(slideCount int) DeckComplexity {
	switch {
	case slideCount <= 0:
		return ComplexityOversize
	case slideCount <= 6:
		return ComplexityLight
	case slideCount <= 15:
		return ComplexityStandard
	case slideCount <= MaxSlides:
		return ComplexityHeavy
	default:
		return ComplexityOversize
	}
}

// VerificationRecommendation is the outcome from the deck verifier.
type VerificationRecommendation string

const (
	RecommendClose      VerificationRecommendation = "close"
	RecommendRegenerate VerificationRecommendation = "regenerate"
	RecommendMonitor    VerificationRecommendation = "monitor"
)

func (v VerificationRecommendation) Valid() bool {
	switch v {
	case RecommendClose, RecommendRegenerate, RecommendMonitor:
		return true
	}
	return false
}
