package domain

import "testing"

func TestToneValid(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		tone  Tone
		valid bool
	}{
		{name: "professional", tone: ToneProfessional, valid: true},
		{name: "casual", tone: ToneCasual, valid: true},
		{name: "educational", tone: ToneEducational, valid: true},
		{name: "persuasive", tone: TonePersuasive, valid: true},
		{name: "funny", tone: ToneFunny, valid: true},
		{name: "bogus", tone: Tone("bogus"), valid: false},
		{name: "empty", tone: Tone(""), valid: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.tone.Valid(); got != tt.valid {
				t.Errorf("Tone(%q).Valid() = %v, want %v", tt.tone, got, tt.valid)
			}
		})
	}
}

func TestExportFormatValid(t *testing.T) {
	t.Parallel()
	for _, f := range []ExportFormat{ExportPPTX, ExportPDF, ExportHTML} {
		if !f.Valid() {
			t.Errorf("ExportFormat(%q).Valid() = false, want true", f)
		}
	}
	if ExportFormat("docx").Valid() {
		t.Error(`ExportFormat("docx").Valid() = true, want false`)
	}
}

func TestReviewStatusValid(t *testing.T) {
	t.Parallel()
	for _, r := range []ReviewStatus{ReviewPending, ReviewApproved, ReviewDenied, ReviewAutoApproved, ReviewTimedOut} {
		if !r.Valid() {
			t.Errorf("ReviewStatus(%q).Valid() = false, want true", r)
		}
	}
	if ReviewStatus("maybe").Valid() {
		t.Error(`ReviewStatus("maybe").Valid() = true, want false`)
	}
}

func TestComplexityFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		slides int
		want   DeckComplexity
	}{
		{name: "zero", slides: 0, want: ComplexityOversize},
		{name: "negative", slides: -3, want: ComplexityOversize},
		{name: "single", slides: 1, want: ComplexityLight},
		{name: "light upper bound", slides: 6, want: ComplexityLight},
		{name: "standard", slides: 10, want: ComplexityStandard},
		{name: "heavy", slides: 25, want: ComplexityHeavy},
		{name: "cap", slides: MaxSlides, want: ComplexityHeavy},
		{name: "over cap", slides: MaxSlides + 1, want: ComplexityOversize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ComplexityFor(tt.slides); got != tt.want {
				t.Errorf("ComplexityFor(%d) = %q, want %q", tt.slides, got, tt.want)
			}
		})
	}
}

func TestComplexityScoreMonotonic(t *testing.T) {
	t.Parallel()
	order := []DeckComplexity{ComplexityLight, ComplexityStandard, ComplexityHeavy, ComplexityOversize}
	prev := -1
	for _, c := range order {
		score, err := ComplexityScoreFor(c)
		if err != nil {
			t.Fatalf("ComplexityScoreFor(%q): %v", c, err)
		}
		if score <= prev {
			t.Errorf("ComplexityScore[%q] = %d, not greater than previous %d", c, score, prev)
		}
		prev = score
	}

	if _, err := ComplexityScoreFor(DeckComplexity("huge")); err == nil {
		t.Error("ComplexityScoreFor(unknown) returned nil error")
	}
}
