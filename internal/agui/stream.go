package agui

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/presenton/presenton-go/internal/domain"
	"github.com/presenton/presenton-go/internal/orchestrator"
	"github.com/presenton/presenton-go/internal/uischema"
)

// StreamConfig controls SSE stream behavior.
type StreamConfig struct {
	PollInterval time.Duration
	MaxDuration  time.Duration
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() StreamConfig {
	return StreamConfig{
		PollInterval: 2 * time.Second,
		MaxDuration:  30 * time.Minute,
	}
}

// StreamHandler serves SSE events for a workflow's state changes.
func StreamHandler(o orchestrator.Orchestrator, cfg StreamConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		wfID := r.PathValue("id")
		if wfID == "" {
			http.Error(w, "workflow id required", http.StatusBadRequest)
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming not supported", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		ctx, cancel := context.WithTimeout(r.Context(), cfg.MaxDuration)
		defer cancel()

		// Emit RUN_STARTED.
		writeSSE(w, flusher, newEvent(EventRunStarted, wfID, nil))

		// Initial state snapshot.
		result, err := o.GetState(ctx, wfID)
		if err != nil {
			writeSSE(w, flusher, newEvent(EventRunError, wfID, ErrorData{Message: err.Error()}))
			return
		}

		schema := uischema.Build(result.State)
		writeSSE(w, flusher, newEvent(EventStateSnapshot, wfID, StateSnapshotData{
			Phase:    result.State.CurrentPhase,
			State:    result.State,
			UISchema: schema,
		}))

		prev := result.State

		if prev.ShouldTerminate {
			writeSSE(w, flusher, newEvent(EventRunFinished, wfID, map[string]any{"reason": string(result.Reason)}))
			return
		}

		// Poll loop.
		ticker := time.NewTicker(cfg.PollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				result, err = o.GetState(ctx, wfID)
				if err != nil {
					writeSSE(w, flusher, newEvent(EventRunError, wfID, ErrorData{Message: err.Error()}))
					return
				}

				current := result.State

				// Phase transition.
				if current.CurrentPhase != prev.CurrentPhase {
					writeSSE(w, flusher, newEvent(EventStepFinished, wfID, StepData{Phase: prev.CurrentPhase}))
					writeSSE(w, flusher, newEvent(EventStepStarted, wfID, StepData{Phase: current.CurrentPhase}))
				}

				// Compute deltas and emit.
				patches := computePatches(prev, current)
				if len(patches) > 0 {
					schema = uischema.Build(current)
					writeSSE(w, flusher, newEvent(EventStateDelta, wfID, StateDeltaData{
						Phase:    current.CurrentPhase,
						Patches:  patches,
						UISchema: schema,
					}))
				}

				// Terminated: emit RUN_FINISHED and close.
				if current.ShouldTerminate {
					writeSSE(w, flusher, newEvent(EventRunFinished, wfID, map[string]any{"reason": string(result.Reason)}))
					return
				}
				prev = current
			}
		}
	}
}

// computePatches generates replace patches for the state fields that changed
// between polls. Field-specific comparison avoids a generic deep-diff
// dependency; the frontend applies the full UISchema from each delta anyway.
func computePatches(prev, cur domain.DeckState) []Patch {
	var patches []Patch

	if cur.CurrentPhase != prev.CurrentPhase {
		patches = append(patches, Patch{Op: "replace", Path: "/current_phase", Value: cur.CurrentPhase})
	}
	if cur.Review != prev.Review {
		patches = append(patches, Patch{Op: "replace", Path: "/review", Value: cur.Review})
	}
	if cur.Outline != nil && prev.Outline == nil {
		patches = append(patches, Patch{Op: "replace", Path: "/outline", Value: cur.Outline})
	}
	if len(cur.Slides) != len(prev.Slides) {
		patches = append(patches, Patch{Op: "replace", Path: "/slides", Value: cur.Slides})
	}
	if cur.Deck != nil && prev.Deck == nil {
		patches = append(patches, Patch{Op: "replace", Path: "/deck", Value: cur.Deck})
	}
	if cur.Export != nil && prev.Export == nil {
		patches = append(patches, Patch{Op: "replace", Path: "/export", Value: cur.Export})
	}
	if cur.Verification != nil && prev.Verification == nil {
		patches = append(patches, Patch{Op: "replace", Path: "/verification", Value: cur.Verification})
	}
	if cur.Error != nil && prev.Error == nil {
		patches = append(patches, Patch{Op: "replace", Path: "/error", Value: *cur.Error})
	}
	return patches
}

func writeSSE(w http.ResponseWriter, flusher http.Flusher, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, data)
	flusher.Flush()
}
