// Package uischema defines the typed UI contract emitted by the backend.
// The frontend renders dynamic components based on this schema -- it never
// decides what to show on its own.
package uischema

// UISchema is the top-level schema the backend emits for a workflow state.
type UISchema struct {
	Version    string      `json:"ui_schema_version"`
	WorkflowID string      `json:"workflow_id"`
	Phase      string      `json:"phase"`
	Components []Component `json:"components"`
	Actions    []Action    `json:"actions"`
}

// ComponentType identifies what React component to render.
type ComponentType string

const (
	ComponentRequestSummary ComponentType = "request_summary"
	ComponentOutlineView    ComponentType = "outline_view"
	ComponentReviewQueue    ComponentType = "review_queue"
	ComponentSlideGrid      ComponentType = "slide_grid"
	ComponentDeckPreview    ComponentType = "deck_preview"
	ComponentExportCard     ComponentType = "export_card"
	ComponentVerifyCard     ComponentType = "verify_card"
	ComponentErrorBanner    ComponentType = "error_banner"
)

// Visibility controls component rendering.
type Visibility string

const (
	VisibilityVisible   Visibility = "visible"
	VisibilityHidden    Visibility = "hidden"
	VisibilityCollapsed Visibility = "collapsed"
)

// Component is a single renderable UI element.
type Component struct {
	Type       ComponentType  `json:"type"`
	Title      string         `json:"title"`
	Priority   int            `json:"priority"`
	Visibility Visibility     `json:"visibility"`
	Data       map[string]any `json:"data,omitempty"`
}

// ActionUIType classifies the user-facing action.
type ActionUIType string

const (
	ActionApprove    ActionUIType = "approve"
	ActionDeny       ActionUIType = "deny"
	ActionCancel     ActionUIType = "cancel"
	ActionRegenerate ActionUIType = "regenerate"
	ActionDownload   ActionUIType = "download"
)

// ConfirmConfig describes confirmation requirements for destructive actions.
type ConfirmConfig struct {
	Required        bool   `json:"required"`
	AcknowledgeText string `json:"acknowledge_text,omitempty"`
}

// Action is a user-triggerable operation from the UI.
type Action struct {
	Type    ActionUIType   `json:"type"`
	Label   string         `json:"label"`
	Confirm *ConfirmConfig `json:"confirm,omitempty"`
}
