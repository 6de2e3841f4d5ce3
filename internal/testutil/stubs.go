// Package testutil provides deterministic stand-ins for the upstream LLM so
// the pipeline runs end to end without network access. Used by tests and by
// the worker's stub mode.
package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// StubLLM satisfies llm.Generator. It recognizes the outline and slide
// prompts produced by the pipeline and answers with well-formed JSON, so the
// real planner and composer parse it exactly as they would a model response.
type StubLLM struct {
	// Err, when set, is returned from every completion.
	Err error
}

func (s *StubLLM) Complete(_ context.Context, prompt string) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	if strings.Contains(prompt, "presentation outline about:") {
		return s.outlineCompletion(prompt)
	}
	if strings.Contains(prompt, "Slide topic:") {
		return s.slideCompletion(prompt)
	}
	return "", fmt.Errorf("stub llm: unrecognized prompt: %.60s", prompt)
}

func (s *StubLLM) outlineCompletion(prompt string) (string, error) {
	var n int
	var topic string
	if _, err := fmt.Sscanf(prompt, "Plan a %d-slide", &n); err != nil || n <= 0 {
		n = 3
	}
	if _, rest, ok := strings.Cut(prompt, "outline about: "); ok {
		topic, _, _ = strings.Cut(rest, "\n")
	}
	if topic == "" {
		topic = "Untitled"
	}

	type section struct {
		Title   string `json:"title"`
		Summary string `json:"summary"`
		Layout  string `json:"layout"`
	}
	sections := make([]section, n)
	for i := range sections {
		sections[i] = section{
			Title:   fmt.Sprintf("%s: point %d", topic, i+1),
			Summary: fmt.Sprintf("Covers aspect %d of %s", i+1, topic),
		}
	}
	out, err := json.Marshal(map[string]any{
		"title":    topic,
		"sections": sections,
		"notes":    "stubbed outline",
	})
	return string(out), err
}

func (s *StubLLM) slideCompletion(prompt string) (string, error) {
	topic := "Slide"
	if _, rest, ok := strings.Cut(prompt, "Slide topic: "); ok {
		topic, _, _ = strings.Cut(rest, "\n")
	}
	out, err := json.Marshal(map[string]any{
		"title":         topic,
		"bullets":       []string{topic + " in brief", topic + " in depth"},
		"speaker_notes": "Talk through " + topic,
	})
	return string(out), err
}
