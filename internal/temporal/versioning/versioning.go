// Package versioning defines workflow versions and task queue names.
package versioning

const (
	// Workflow versions for determinism tracking.
	PresentationV1 = "presentation-v1"

	// Task queues. Generation covers planning through render; export gets
	// its own queue so artifact writes can be permission-isolated.
	QueueGenerate = "presenton-generate"
	QueueExport   = "presenton-export"
)
