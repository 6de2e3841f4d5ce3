package verifier

import (
	"fmt"
	"os"
	"time"

	"github.com/presenton/presenton-go/internal/domain"
)

// Verify performs post-export verification of a deck: the artifact must
// exist and be non-empty, and the exported slide count must match the deck.
// It recommends close, regenerate, or monitor.
func Verify(deck *domain.Deck, export domain.ExportResult) (domain.VerificationResult, error) {
	now := time.Now().UTC().Format(time.RFC3339)

	if deck == nil {
		return domain.VerificationResult{}, fmt.Errorf("verifier: nil deck")
	}

	info, err := os.Stat(export.ArtifactPath)
	if err != nil {
		return domain.VerificationResult{
			VerifiedAt:     now,
			ArtifactOK:     false,
			Details:        fmt.Sprintf("artifact missing: %v", err),
			Recommendation: domain.RecommendRegenerate,
		}, nil
	}
	if info.Size() == 0 {
		return domain.VerificationResult{
			VerifiedAt:     now,
			ArtifactOK:     false,
			Details:        "artifact is empty",
			Recommendation: domain.RecommendRegenerate,
		}, nil
	}

	countMatches := export.Success && len(deck.Slides) > 0
	if !countMatches {
		return domain.VerificationResult{
			VerifiedAt:        now,
			ArtifactOK:        true,
			SlideCountMatches: false,
			ArtifactSizeBytes: info.Size(),
			Details:           "export did not report success for all slides",
			Recommendation:    domain.RecommendMonitor,
		}, nil
	}

	return domain.VerificationResult{
		VerifiedAt:        now,
		ArtifactOK:        true,
		SlideCountMatches: true,
		ArtifactSizeBytes: info.Size(),
		Details:           fmt.Sprintf("artifact %s verified, %d slides", export.Format, len(deck.Slides)),
		Recommendation:    domain.RecommendClose,
	}, nil
}
