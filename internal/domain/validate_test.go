package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() GenerationRequest {
	r := NewGenerationRequest("intro to Go")
	r.Tenant = NewTenantContext("tenant-1")
	return r
}

func TestValidateGenerationRequest(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		mutate  func(*GenerationRequest)
		wantErr string
	}{
		{name: "valid", mutate: func(*GenerationRequest) {}},
		{name: "missing topic", mutate: func(r *GenerationRequest) { r.Topic = "" }, wantErr: "topic is required"},
		{name: "zero slides", mutate: func(r *GenerationRequest) { r.NumSlides = 0 }, wantErr: "num_slides"},
		{name: "too many slides", mutate: func(r *GenerationRequest) { r.NumSlides = MaxSlides + 1 }, wantErr: "num_slides"},
		{name: "bad tone", mutate: func(r *GenerationRequest) { r.Tone = "sarcastic" }, wantErr: "invalid tone"},
		{name: "bad format", mutate: func(r *GenerationRequest) { r.ExportFormat = "docx" }, wantErr: "invalid export_format"},
		{name: "missing template", mutate: func(r *GenerationRequest) { r.TemplateID = "" }, wantErr: "template_id is required"},
		{name: "missing language", mutate: func(r *GenerationRequest) { r.Language = "" }, wantErr: "language is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := validRequest()
			tt.mutate(&r)
			err := ValidateGenerationRequest(r)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidateOutline(t *testing.T) {
	t.Parallel()
	good := Outline{
		Title: "Deck",
		Sections: []OutlineSection{
			{Index: 0, Title: "Intro", Layout: LayoutTitle},
			{Index: 1, Title: "Close", Layout: LayoutClosing},
		},
	}
	assert.NoError(t, ValidateOutline(good))

	assert.ErrorContains(t, ValidateOutline(Outline{Sections: good.Sections}), "title is required")
	assert.ErrorContains(t, ValidateOutline(Outline{Title: "Deck"}), "no sections")

	bad := good
	bad.Sections = []OutlineSection{{Index: 0, Title: "Intro", Layout: "circle"}}
	assert.ErrorContains(t, ValidateOutline(bad), "invalid layout")
}

func TestValidateDeckState(t *testing.T) {
	t.Parallel()
	state := NewDeckState(NewTenantContext("t1"))
	assert.NoError(t, ValidateDeckState(state))

	state.WorkflowID = ""
	assert.ErrorContains(t, ValidateDeckState(state), "workflow_id")

	state = NewDeckState(TenantContext{})
	assert.ErrorContains(t, ValidateDeckState(state), "tenant")

	state = NewDeckState(NewTenantContext("t1"))
	state.Review = "unknown"
	assert.ErrorContains(t, ValidateDeckState(state), "review status")
}
