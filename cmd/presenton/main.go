// Command presenton is a CLI tool for triggering and managing presentation
// generation workflows.
//
// Usage:
//
//	presenton generate --tenant T --topic "..." [--slides N] [--template ID] [--format pdf|pptx|html]
//	presenton status   --workflow-id WID
//	presenton approve  --workflow-id WID --by USER
//	presenton deny     --workflow-id WID --by USER --reason R
//	presenton cancel   --workflow-id WID
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"go.temporal.io/sdk/client"

	"github.com/presenton/presenton-go/internal/domain"
	"github.com/presenton/presenton-go/internal/temporal/activities"
	"github.com/presenton/presenton-go/internal/temporal/codecs"
	"github.com/presenton/presenton-go/internal/temporal/versioning"
	"github.com/presenton/presenton-go/internal/temporal/workflows"
)

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	switch os.Args[1] {
	case "generate":
		cmdGenerate(os.Args[2:])
	case "status":
		cmdStatus(os.Args[2:])
	case "approve":
		cmdApprove(os.Args[2:])
	case "deny":
		cmdDeny(os.Args[2:])
	case "cancel":
		cmdCancel(os.Args[2:])
	default:
		usage()
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: presenton <generate|status|approve|deny|cancel> [flags]")
	os.Exit(1)
}

func dial() client.Client {
	c, err := client.Dial(client.Options{
		DataConverter: codecs.DataConverter(),
	})
	if err != nil {
		log.Fatalf("unable to create Temporal client: %v", err)
	}
	return c
}

func cmdGenerate(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	tenant := fs.String("tenant", "", "tenant ID (required)")
	topic := fs.String("topic", "", "presentation topic (required)")
	slides := fs.Int("slides", 0, "number of slides (default 8)")
	template := fs.String("template", "", "template ID (default classic)")
	format := fs.String("format", "", "export format: pdf, pptx or html (default pptx)")
	review := fs.Bool("review", false, "require human outline review")
	_ = fs.Parse(args)

	if *tenant == "" || *topic == "" {
		fs.Usage()
		os.Exit(1)
	}

	req := domain.NewGenerationRequest(*topic)
	if *slides > 0 {
		req.NumSlides = *slides
	}
	if *template != "" {
		req.TemplateID = *template
	}
	if *format != "" {
		req.ExportFormat = domain.ExportFormat(*format)
	}

	tc := domain.NewTenantContext(*tenant)
	tc.ReviewRequired = *review

	input := workflows.WorkflowInput{
		Tenant:  tc,
		Request: &req,
	}

	wfID := fmt.Sprintf("presentation-%s", req.RequestID)
	c := dial()
	defer c.Close()

	run, err := c.ExecuteWorkflow(context.Background(), client.StartWorkflowOptions{
		ID:        wfID,
		TaskQueue: versioning.QueueGenerate,
	}, workflows.PresentationWorkflow, input)
	if err != nil {
		log.Fatalf("failed to start workflow: %v", err)
	}
	fmt.Printf("started workflow %s (run=%s)\n", run.GetID(), run.GetRunID())
}

func cmdStatus(args []string) {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	wfID := fs.String("workflow-id", "", "workflow ID (required)")
	_ = fs.Parse(args)

	if *wfID == "" {
		fs.Usage()
		os.Exit(1)
	}

	c := dial()
	defer c.Close()

	desc, err := c.DescribeWorkflowExecution(context.Background(), *wfID, "")
	if err != nil {
		log.Fatalf("failed to describe workflow: %v", err)
	}

	data, err := json.MarshalIndent(map[string]any{
		"workflow_id": *wfID,
		"status":      desc.WorkflowExecutionInfo.Status.String(),
		"start_time":  desc.WorkflowExecutionInfo.StartTime,
		"close_time":  desc.WorkflowExecutionInfo.CloseTime,
	}, "", "  ")
	if err != nil {
		log.Fatalf("failed to marshal status: %v", err)
	}
	fmt.Println(string(data))
}

func cmdApprove(args []string) {
	fs := flag.NewFlagSet("approve", flag.ExitOnError)
	wfID := fs.String("workflow-id", "", "workflow ID (required)")
	by := fs.String("by", "", "approver identity (required)")
	_ = fs.Parse(args)

	if *wfID == "" || *by == "" {
		fs.Usage()
		os.Exit(1)
	}

	sendUpdate(*wfID, activities.ReviewResponse{Approved: true, By: *by})
}

func cmdDeny(args []string) {
	fs := flag.NewFlagSet("deny", flag.ExitOnError)
	wfID := fs.String("workflow-id", "", "workflow ID (required)")
	by := fs.String("by", "", "denier identity (required)")
	reason := fs.String("reason", "", "denial reason")
	_ = fs.Parse(args)

	if *wfID == "" || *by == "" {
		fs.Usage()
		os.Exit(1)
	}

	sendUpdate(*wfID, activities.ReviewResponse{Approved: false, By: *by, Reason: *reason})
}

func cmdCancel(args []string) {
	fs := flag.NewFlagSet("cancel", flag.ExitOnError)
	wfID := fs.String("workflow-id", "", "workflow ID (required)")
	_ = fs.Parse(args)

	if *wfID == "" {
		fs.Usage()
		os.Exit(1)
	}

	c := dial()
	defer c.Close()

	if err := c.CancelWorkflow(context.Background(), *wfID, ""); err != nil {
		log.Fatalf("failed to cancel workflow: %v", err)
	}
	fmt.Printf("cancellation requested for %s\n", *wfID)
}

func sendUpdate(wfID string, resp activities.ReviewResponse) {
	c := dial()
	defer c.Close()

	handle, err := c.UpdateWorkflow(context.Background(), client.UpdateWorkflowOptions{
		WorkflowID:   wfID,
		UpdateName:   workflows.UpdateNameOutlineReview,
		Args:         []any{resp},
		WaitForStage: client.WorkflowUpdateStageCompleted,
	})
	if err != nil {
		log.Fatalf("failed to send update: %v", err)
	}

	var result string
	if err := handle.Get(context.Background(), &result); err != nil {
		log.Fatalf("update failed: %v", err)
	}
	fmt.Printf("update result: %s\n", result)
}
