// Package model defines the provider-neutral request/response types used to
// invoke a language model, the Model interface implemented by provider
// adapters, and a scripted MockModel for tests. The core never sees provider
// SDK types; adapters translate in both directions.
package model

import (
	"context"
	"fmt"
	"sync"
)

// Message is one entry in the ordered message list sent to a model. Roles
// follow chat-completion conventions: system, user, assistant, tool. An
// assistant message may carry tool calls; a tool message answers one of them
// via ToolCallID.
type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

// ToolCall is a function invocation requested by the model. Arguments is the
// raw JSON argument string as returned by the provider.
type ToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ToolDefinition declaratively exposes a callable function to the model.
// Parameters is a JSON Schema object (minimal subset).
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Request is one model invocation: the full message list plus the tool
// schemas offered for this call. When Tools is non-empty, adapters set the
// provider's tool choice to auto.
type Request struct {
	Messages []Message        `json:"messages"`
	Tools    []ToolDefinition `json:"tools,omitempty"`
}

// Usage carries the provider's token accounting for one call.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is the complete (non-streaming) result of one model call.
// Thinking carries side-channel reasoning when the provider exposes one;
// it is never part of Content.
type Response struct {
	Content      string     `json:"content"`
	ToolCalls    []ToolCall `json:"tool_calls,omitempty"`
	FinishReason string     `json:"finish_reason"`
	Thinking     string     `json:"thinking,omitempty"`
	Usage        Usage      `json:"usage"`
}

// Info describes a model implementation.
type Info struct {
	Name          string `json:"name"`
	Provider      string `json:"provider"`
	SupportsTools bool   `json:"supports_tools"`
}

// Model is the minimal interface the agent executor needs to drive
// generation. Generate blocks until the provider returns a complete
// response; failures surface as a single error.
type Model interface {
	Generate(ctx context.Context, req Request) (*Response, error)
	Info() Info
}

// MockModel is a scripted in-memory Model for tests. Responses are consumed
// in FIFO order; once the script is exhausted it echoes the last user
// message. Safe for concurrent use so parallel pipeline branches can share
// one instance.
type MockModel struct {
	mu       sync.Mutex
	info     Info
	script   []scripted
	requests []Request
}

type scripted struct {
	resp *Response
	err  error
}

// NewMockModel constructs an empty-scripted mock with tool support enabled.
func NewMockModel(name string) *MockModel {
	return &MockModel{
		info: Info{Name: name, Provider: "mock", SupportsTools: true},
	}
}

// EnqueueText scripts a plain text response.
func (m *MockModel) EnqueueText(text string) *MockModel {
	return m.Enqueue(&Response{Content: text, FinishReason: "stop", Usage: Usage{TotalTokens: len(text)}})
}

// EnqueueToolCall scripts a response requesting a single tool call.
func (m *MockModel) EnqueueToolCall(name, arguments string) *MockModel {
	return m.Enqueue(&Response{
		ToolCalls:    []ToolCall{{ID: "call_" + name, Name: name, Arguments: arguments}},
		FinishReason: "tool_calls",
	})
}

// EnqueueError scripts a provider failure.
func (m *MockModel) EnqueueError(err error) *MockModel {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, scripted{err: err})
	return m
}

// Enqueue scripts an arbitrary response.
func (m *MockModel) Enqueue(resp *Response) *MockModel {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, scripted{resp: resp})
	return m
}

// Requests returns a copy of every request seen so far, in call order.
func (m *MockModel) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.requests))
	copy(out, m.requests)
	return out
}

// Generate implements Model by replaying the script.
func (m *MockModel) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)

	if len(m.script) > 0 {
		next := m.script[0]
		m.script = m.script[1:]
		if next.err != nil {
			return nil, next.err
		}
		return next.resp, nil
	}

	var lastUser string
	for _, msg := range req.Messages {
		if msg.Role == "user" {
			lastUser = msg.Content
		}
	}
	return &Response{
		Content:      fmt.Sprintf("Mock response to: %s", lastUser),
		FinishReason: "stop",
	}, nil
}

// Info implements Model.
func (m *MockModel) Info() Info { return m.info }
