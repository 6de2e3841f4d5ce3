package domain

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// MaxSlides is the hard cap on requested slide count.
const MaxSlides = 40

func shortID() string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func newUUID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	b[6] = (b[6] & 0x0f) | 0x40 // version 4
	b[8] = (b[8] & 0x3f) | 0x80 // variant 10
	return fmt.Sprintf("%08x-%04x-%04x-%04x-%012x",
		b[0:4], b[4:6], b[6:8], b[8:10], b[10:16])
}

func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// TenantContext identifies the tenant a generation runs for.
type TenantContext struct {
	TenantID       string `json:"tenant_id" validate:"required"`
	ReviewRequired bool   `json:"review_required"`
	Reviewer       string `json:"reviewer,omitempty"`
}

// NewTenantContext creates a TenantContext with sensible defaults.
func NewTenantContext(tenantID string) TenantContext {
	return TenantContext{TenantID: tenantID}
}

// GenerationRequest describes a deck the caller wants generated.
type GenerationRequest struct {
	RequestID string `json:"request_id"`
	CreatedAt string `json:"created_at"`

	Tenant TenantContext `json:"tenant"`

	Topic        string       `json:"topic" validate:"required"`
	Instructions string       `json:"instructions,omitempty"`
	NumSlides    int          `json:"num_slides"`
	Language     string       `json:"language"`
	Tone         Tone         `json:"tone"`
	TemplateID   string       `json:"template_id"`
	ExportFormat ExportFormat `json:"export_format"`
}

// NewGenerationRequest creates a GenerationRequest with generated defaults.
func NewGenerationRequest(topic string) GenerationRequest {
	return GenerationRequest{
		RequestID:    shortID(),
		CreatedAt:    nowUTC(),
		Topic:        topic,
		NumSlides:    8,
		Language:     "en",
		Tone:         ToneProfessional,
		TemplateID:   "classic",
		ExportFormat: ExportPPTX,
	}
}

// OutlineSection is one planned slide in an outline.
type OutlineSection struct {
	Index   int         `json:"index"`
	Title   string      `json:"title"`
	Summary string      `json:"summary,omitempty"`
	Layout  SlideLayout `json:"layout"`
}

// Outline is the planned deck structure produced before any content is written.
type Outline struct {
	GeneratedAt string           `json:"generated_at"`
	Title       string           `json:"title"`
	Sections    []OutlineSection `json:"sections"`
	Notes       string           `json:"notes,omitempty"`
}

// SlideCount returns the number of planned slides.
func (o Outline) SlideCount() int { return len(o.Sections) }

// Slide is a fully composed slide.
type Slide struct {
	Index        int         `json:"index"`
	Title        string      `json:"title"`
	Layout       SlideLayout `json:"layout"`
	Bullets      []string    `json:"bullets"`
	SpeakerNotes string      `json:"speaker_notes,omitempty"`
}

// Deck is a rendered presentation.
type Deck struct {
	DeckID       string  `json:"deck_id"`
	Title        string  `json:"title"`
	TemplateID   string  `json:"template_id"`
	Slides       []Slide `json:"slides"`
	RenderedPath string  `json:"rendered_path"`
	RenderedAt   string  `json:"rendered_at"`
}

// NewDeck creates a Deck with a generated ID.
func NewDeck(title, templateID string, slides []Slide) Deck {
	return Deck{
		DeckID:     shortID(),
		Title:      title,
		TemplateID: templateID,
		Slides:     slides,
	}
}

// ExportResult records the outcome of exporting a rendered deck.
type ExportResult struct {
	Format       ExportFormat `json:"format"`
	ArtifactPath string       `json:"artifact_path"`
	ExportedAt   string       `json:"exported_at"`
	SizeBytes    int64        `json:"size_bytes"`
	Success      bool         `json:"success"`
	Details      string       `json:"details"`

	PreExportSnapshot  map[string]any `json:"pre_export_snapshot"`
	PostExportSnapshot map[string]any `json:"post_export_snapshot"`
}

// VerificationResult records the outcome of post-export verification.
type VerificationResult struct {
	VerifiedAt        string                     `json:"verified_at"`
	ArtifactOK        bool                       `json:"artifact_ok"`
	SlideCountMatches bool                       `json:"slide_count_matches"`
	ArtifactSizeBytes int64                      `json:"artifact_size_bytes"`
	Details           string                     `json:"details"`
	Recommendation    VerificationRecommendation `json:"recommendation"`
}

// DeckState is the top-level workflow state. It accumulates the outputs of
// each generation phase and is what state queries return.
type DeckState struct {
	WorkflowID string `json:"workflow_id"`
	StartedAt  string `json:"started_at"`

	Tenant  TenantContext      `json:"tenant"`
	Request *GenerationRequest `json:"request"`
	Outline *Outline           `json:"outline"`

	Review        ReviewStatus `json:"review"`
	ReviewDetails string       `json:"review_details"`

	Slides       []Slide             `json:"slides"`
	Deck         *Deck               `json:"deck"`
	Export       *ExportResult       `json:"export"`
	Verification *VerificationResult `json:"verification"`

	CurrentPhase    string  `json:"current_phase"`
	ShouldTerminate bool    `json:"should_terminate"`
	Error           *string `json:"error"`
}

// NewDeckState creates a DeckState with generated defaults.
func NewDeckState(tenant TenantContext) DeckState {
	return DeckState{
		WorkflowID:   newUUID(),
		StartedAt:    nowUTC(),
		Tenant:       tenant,
		Review:       ReviewPending,
		CurrentPhase: "plan",
	}
}
