package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/presenton/presenton-go/internal/domain"
	"github.com/presenton/presenton-go/internal/orchestrator"
	"github.com/presenton/presenton-go/internal/temporal/activities"
	"github.com/presenton/presenton-go/internal/temporal/versioning"
	"github.com/presenton/presenton-go/internal/uischema"
)

// RegisterTools registers all presentation MCP tools on the given server.
func RegisterTools(server *mcp.Server, deps Deps) {
	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "generate_presentation",
			Description: "Start generating a presentation deck from a topic; returns the workflow id to track it",
		},
		generatePresentationHandler(deps),
	)

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "list_presentations",
			Description: "List recent presentation workflows with status and timing",
		},
		listPresentationsHandler(deps.Orchestrator),
	)

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "get_presentation_state",
			Description: "Get full state for a presentation workflow: outline, review, slides, export, verification",
		},
		getPresentationStateHandler(deps.Orchestrator),
	)

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "get_presentation_ui",
			Description: "Get UI schema (components + actions) for rendering a presentation workflow",
		},
		getPresentationUIHandler(deps.Orchestrator),
	)

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "approve_outline",
			Description: "Approve a pending outline so slide composition can proceed",
		},
		approveOutlineHandler(deps.Orchestrator),
	)

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "deny_outline",
			Description: "Deny a pending outline and end the workflow",
		},
		denyOutlineHandler(deps.Orchestrator),
	)

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "cancel_presentation",
			Description: "Cancel a running presentation workflow",
		},
		cancelPresentationHandler(deps.Orchestrator),
	)

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "list_templates",
			Description: "List available deck templates with their layouts",
		},
		listTemplatesHandler(deps.Templates),
	)

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "list_decks",
			Description: "List persisted decks with phase and review status",
		},
		listDecksHandler(deps.Decks),
	)
}

type generateInput struct {
	TenantID     string `json:"tenant_id"`
	Topic        string `json:"topic"`
	Instructions string `json:"instructions,omitempty"`
	NumSlides    int    `json:"num_slides,omitempty"`
	Language     string `json:"language,omitempty"`
	Tone         string `json:"tone,omitempty"`
	TemplateID   string `json:"template_id,omitempty"`
	ExportFormat string `json:"export_format,omitempty"`
}

func generatePresentationHandler(deps Deps) mcp.ToolHandlerFor[generateInput, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input generateInput) (*mcp.CallToolResult, any, error) {
		if input.TenantID == "" || input.Topic == "" {
			return errorResult("tenant_id and topic are required"), nil, nil
		}

		req := domain.NewGenerationRequest(input.Topic)
		req.Instructions = input.Instructions
		if input.NumSlides > 0 {
			req.NumSlides = input.NumSlides
		}
		if input.Language != "" {
			req.Language = input.Language
		}
		if input.Tone != "" {
			req.Tone = domain.Tone(input.Tone)
		}
		if input.TemplateID != "" {
			req.TemplateID = input.TemplateID
		}
		if input.ExportFormat != "" {
			req.ExportFormat = domain.ExportFormat(input.ExportFormat)
		}

		tenant := domain.NewTenantContext(input.TenantID)
		tenant.ReviewRequired = deps.ReviewRequired

		start, err := deps.Orchestrator.StartGeneration(ctx, tenant, req)
		if err != nil {
			return nil, nil, fmt.Errorf("generate_presentation: %w", err)
		}

		return textResult(start)
	}
}

type listPresentationsInput struct {
	Status string `json:"status,omitempty"`
}

func listPresentationsHandler(o orchestrator.Orchestrator) mcp.ToolHandlerFor[listPresentationsInput, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input listPresentationsInput) (*mcp.CallToolResult, any, error) {
		opts := orchestrator.ListOptions{TaskQueue: versioning.QueueGenerate}
		if input.Status != "" {
			opts.StatusFilter = input.Status
		}

		summaries, err := o.ListPresentations(ctx, opts)
		if err != nil {
			return nil, nil, fmt.Errorf("list_presentations: %w", err)
		}

		return textResult(summaries)
	}
}

type workflowIDInput struct {
	WorkflowID string `json:"workflow_id"`
}

func getPresentationStateHandler(o orchestrator.Orchestrator) mcp.ToolHandlerFor[workflowIDInput, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input workflowIDInput) (*mcp.CallToolResult, any, error) {
		if input.WorkflowID == "" {
			return errorResult("workflow_id is required"), nil, nil
		}

		result, err := o.GetState(ctx, input.WorkflowID)
		if err != nil {
			return nil, nil, fmt.Errorf("get_presentation_state: %w", err)
		}

		return textResult(result)
	}
}

func getPresentationUIHandler(o orchestrator.Orchestrator) mcp.ToolHandlerFor[workflowIDInput, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input workflowIDInput) (*mcp.CallToolResult, any, error) {
		if input.WorkflowID == "" {
			return errorResult("workflow_id is required"), nil, nil
		}

		result, err := o.GetState(ctx, input.WorkflowID)
		if err != nil {
			return nil, nil, fmt.Errorf("get_presentation_ui: %w", err)
		}

		schema := uischema.Build(result.State)
		return textResult(schema)
	}
}

type reviewInput struct {
	WorkflowID string `json:"workflow_id"`
	By         string `json:"by"`
	Reason     string `json:"reason,omitempty"`
}

func approveOutlineHandler(o orchestrator.Orchestrator) mcp.ToolHandlerFor[reviewInput, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input reviewInput) (*mcp.CallToolResult, any, error) {
		if input.WorkflowID == "" || input.By == "" {
			return errorResult("workflow_id and by are required"), nil, nil
		}

		resp := activities.ReviewResponse{Approved: true, By: input.By, Reason: input.Reason}
		result, err := o.SubmitOutlineReview(ctx, input.WorkflowID, resp)
		if err != nil {
			return nil, nil, fmt.Errorf("approve_outline: %w", err)
		}

		return textResult(map[string]string{"result": result})
	}
}

func denyOutlineHandler(o orchestrator.Orchestrator) mcp.ToolHandlerFor[reviewInput, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input reviewInput) (*mcp.CallToolResult, any, error) {
		if input.WorkflowID == "" || input.By == "" {
			return errorResult("workflow_id and by are required"), nil, nil
		}

		resp := activities.ReviewResponse{Approved: false, By: input.By, Reason: input.Reason}
		result, err := o.SubmitOutlineReview(ctx, input.WorkflowID, resp)
		if err != nil {
			return nil, nil, fmt.Errorf("deny_outline: %w", err)
		}

		return textResult(map[string]string{"result": result})
	}
}

func cancelPresentationHandler(o orchestrator.Orchestrator) mcp.ToolHandlerFor[workflowIDInput, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input workflowIDInput) (*mcp.CallToolResult, any, error) {
		if input.WorkflowID == "" {
			return errorResult("workflow_id is required"), nil, nil
		}

		if err := o.CancelGeneration(ctx, input.WorkflowID); err != nil {
			return nil, nil, fmt.Errorf("cancel_presentation: %w", err)
		}

		return textResult(map[string]string{"result": "cancellation requested"})
	}
}

type emptyInput struct{}

func listTemplatesHandler(catalog TemplateCatalog) mcp.ToolHandlerFor[emptyInput, any] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ emptyInput) (*mcp.CallToolResult, any, error) {
		return textResult(catalog.List())
	}
}

type listDecksInput struct {
	TenantID string `json:"tenant_id,omitempty"`
	Limit    int    `json:"limit,omitempty"`
}

func listDecksHandler(decks DeckLister) mcp.ToolHandlerFor[listDecksInput, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input listDecksInput) (*mcp.CallToolResult, any, error) {
		records, err := decks.List(ctx, input.TenantID, input.Limit)
		if err != nil {
			return nil, nil, fmt.Errorf("list_decks: %w", err)
		}
		return textResult(records)
	}
}

func textResult(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("marshal result: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(data)},
		},
	}, nil, nil
}

func errorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: msg},
		},
		IsError: true,
	}
}
