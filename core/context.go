package core

import (
	"fmt"
	"sort"
	"strings"
)

// Default window sizes for context building. The orchestrator sees a larger
// unfiltered window; specialists get a smaller window restricted to the
// kinds relevant to delegated work.
const (
	OrchestratorWindow = 40
	SpecialistWindow   = 15
)

// Metadata keys excluded from serialized context. Token counters are noise
// to the model and thinking content is recorded as its own event.
var internalMetadataKeys = map[string]bool{
	"tokens":           true,
	"thinking_content": true,
}

// specialistKinds is the event subset rendered into specialist context.
var specialistKinds = map[EventKind]bool{
	EventUserMessage:     true,
	EventRoutingDecision: true,
	EventToolResult:      true,
	EventSynthesis:       true,
	EventError:           true,
}

// SerializeEvent renders one event as a tagged block for model context. The
// tag is the event kind, prefixed with the originating role when present;
// non-internal metadata fields follow the content as indented lines.
func SerializeEvent(ev Event) string {
	tag := string(ev.Kind)
	if ev.Role != "" {
		tag = fmt.Sprintf("%s_%s", ev.Role, ev.Kind)
	}

	var meta strings.Builder
	if len(ev.Metadata) > 0 {
		keys := make([]string, 0, len(ev.Metadata))
		for k := range ev.Metadata {
			if !internalMetadataKeys[k] {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		for _, k := range keys {
			meta.WriteString(fmt.Sprintf("\n  %s: %v", k, ev.Metadata[k]))
		}
	}

	return fmt.Sprintf("<%s>\n  %s%s\n</%s>", tag, ev.Content, meta.String(), tag)
}

// SerializeThread renders the most recent maxEvents events of a thread,
// optionally filtered to a set of kinds, joined with blank-line separation.
// It is pure: the thread is read, never mutated, and the output is
// deterministic for the same thread state and parameters.
func SerializeThread(t *Thread, maxEvents int, kinds map[EventKind]bool) string {
	events := t.RecentEvents(maxEvents, kinds)
	blocks := make([]string, 0, len(events))
	for _, ev := range events {
		blocks = append(blocks, SerializeEvent(ev))
	}
	return strings.Join(blocks, "\n\n")
}

// OrchestratorContext renders the full recent window for the orchestrator,
// which sees everything.
func OrchestratorContext(t *Thread) string {
	return SerializeThread(t, OrchestratorWindow, nil)
}

// SpecialistContext renders the focused window for a specialist: only the
// events relevant to delegated work.
func SpecialistContext(t *Thread) string {
	return SerializeThread(t, SpecialistWindow, specialistKinds)
}

// Truncate shortens s to at most n runes, used when embedding arbitrary text
// into event content.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
