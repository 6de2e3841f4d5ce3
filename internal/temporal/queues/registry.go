// Package queues defines per-queue worker configuration for task-queue partitioning.
package queues

import (
	"fmt"
	"strings"

	"go.temporal.io/sdk/worker"

	"github.com/presenton/presenton-go/internal/temporal/versioning"
)

// QueueConfig holds worker options for a single task queue.
type QueueConfig struct {
	Name    string
	Options worker.Options
}

// DefaultConfigs returns the standard per-queue worker options.
//
//   - QueueGenerate: model-bound planning and composition, generous concurrency
//   - QueueExport: artifact writes, tight concurrency
func DefaultConfigs() map[string]QueueConfig {
	return map[string]QueueConfig{
		versioning.QueueGenerate: {
			Name: versioning.QueueGenerate,
			Options: worker.Options{
				MaxConcurrentActivityExecutionSize:     10,
				MaxConcurrentWorkflowTaskExecutionSize: 10,
			},
		},
		versioning.QueueExport: {
			Name: versioning.QueueExport,
			Options: worker.Options{
				MaxConcurrentActivityExecutionSize:     3,
				MaxConcurrentWorkflowTaskExecutionSize: 1,
			},
		},
	}
}

// ParseQueues parses a comma-separated queue list (e.g. "generate,export")
// into a set of queue names. Accepts both short names ("generate") and
// full names ("presenton-generate"). Returns an error for unknown queues.
func ParseQueues(raw string) ([]string, error) {
	if raw == "" {
		return []string{versioning.QueueGenerate}, nil
	}

	shortNames := map[string]string{
		"generate": versioning.QueueGenerate,
		"export":   versioning.QueueExport,
	}
	fullNames := map[string]bool{
		versioning.QueueGenerate: true,
		versioning.QueueExport:   true,
	}

	seen := make(map[string]bool)
	var result []string
	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		// Resolve short name to full name.
		if full, ok := shortNames[name]; ok {
			name = full
		}
		if !fullNames[name] {
			return nil, fmt.Errorf("unknown queue %q", name)
		}
		if !seen[name] {
			seen[name] = true
			result = append(result, name)
		}
	}
	if len(result) == 0 {
		return []string{versioning.QueueGenerate}, nil
	}
	return result, nil
}
