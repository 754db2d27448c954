package core

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// EventKind enumerates the closed set of event types recorded in a Thread.
type EventKind string

const (
	// EventUserMessage is a message typed by the user.
	EventUserMessage EventKind = "user_message"
	// EventRoutingDecision records the orchestrator's decomposition choice.
	EventRoutingDecision EventKind = "routing_decision"
	// EventAgentStart marks the beginning of an agent execution.
	EventAgentStart EventKind = "agent_start"
	// EventAgentThinking captures a model's side-channel reasoning (truncated).
	EventAgentThinking EventKind = "agent_thinking"
	// EventAgentResponse is an agent's final text answer for a turn.
	EventAgentResponse EventKind = "agent_response"
	// EventToolCall records a requested tool invocation.
	EventToolCall EventKind = "tool_call"
	// EventToolResult records a tool's returned text (truncated).
	EventToolResult EventKind = "tool_result"
	// EventPipelineStart marks the beginning of a pipeline execution.
	EventPipelineStart EventKind = "pipeline_start"
	// EventPipelineStep marks the dispatch of one sub-task.
	EventPipelineStep EventKind = "pipeline_step"
	// EventPipelineComplete marks the end of a pipeline execution.
	EventPipelineComplete EventKind = "pipeline_complete"
	// EventSynthesis is the orchestrator's combined final answer.
	EventSynthesis EventKind = "synthesis"
	// EventError records a contained failure as short human-readable text.
	EventError EventKind = "error"
	// EventHumanRequest records a request for human input.
	EventHumanRequest EventKind = "human_request"
	// EventHumanResponse records the human's reply to a request.
	EventHumanResponse EventKind = "human_response"
)

// Event is a single immutable record in a Thread's timeline. Events are only
// ever created by appending to a Thread; they are never mutated or deleted,
// and their order in the log is the sole timeline of record.
type Event struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Kind      EventKind      `json:"kind"`
	Role      Role           `json:"role,omitempty"`
	Content   string         `json:"content"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// NewEvent constructs an event with a fresh id and UTC timestamp. Callers
// normally go through Thread.AddEvent which also serializes the append.
func NewEvent(kind EventKind, role Role, content string, metadata map[string]any) Event {
	return Event{
		ID:        NewID(),
		Timestamp: time.Now().UTC(),
		Kind:      kind,
		Role:      role,
		Content:   content,
		Metadata:  metadata,
	}
}

// NewID generates a short unique identifier for events, tasks and sub-tasks.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}
