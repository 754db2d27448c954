package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/agentcrew/core"
	"github.com/hupe1980/agentcrew/logging"
	"github.com/hupe1980/agentcrew/model"
	"github.com/hupe1980/agentcrew/tool"
)

// DefaultMaxSteps bounds the generate/tool-call loop of one execution.
const DefaultMaxSteps = 10

// Executor drives one agent profile against its model: build context, call
// the model, resolve tool calls, repeat until a final text answer or the step
// budget runs out. Failures never escape as errors; they come back as text so
// callers can always continue the conversation.
type Executor struct {
	profile    Profile
	model      model.Model
	dispatcher *tool.Dispatcher
	logger     logging.Logger
	maxSteps   int
}

// ExecutorOptions configure an Executor.
type ExecutorOptions struct {
	Logger   logging.Logger
	MaxSteps int
}

// NewExecutor creates an executor for one profile/model pair.
func NewExecutor(profile Profile, m model.Model, dispatcher *tool.Dispatcher, optFns ...func(o *ExecutorOptions)) *Executor {
	opts := ExecutorOptions{
		Logger:   logging.NewNoOpLogger(),
		MaxSteps: DefaultMaxSteps,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Executor{
		profile:    profile,
		model:      m,
		dispatcher: dispatcher,
		logger:     opts.Logger,
		maxSteps:   opts.MaxSteps,
	}
}

// Profile returns the executor's agent profile.
func (e *Executor) Profile() Profile { return e.profile }

// Execute runs the agent loop on a thread. The returned string is always
// usable text: the agent's answer, an "[Error] ..." line when the model call
// failed, or a "[Warning] ..." line when the step budget was exhausted.
func (e *Executor) Execute(ctx context.Context, thread *core.Thread, input string) string {
	role := e.profile.Role()
	thread.AddEvent(core.EventAgentStart, role,
		fmt.Sprintf("Agent %s starting: %s", role, core.Truncate(input, 100)), nil)

	messages := e.buildMessages(thread, input)
	tools := e.profile.Tools()
	custom, _ := e.profile.(tool.CustomHandler)

	for step := 0; step < e.maxSteps; step++ {
		t0 := time.Now()
		resp, err := e.model.Generate(ctx, model.Request{Messages: messages, Tools: tools})
		latencyMS := float64(time.Since(t0)) / float64(time.Millisecond)

		if err != nil {
			errMsg := fmt.Sprintf("LLM call failed: %v", err)
			e.logger.Error("model call failed", "role", role, "error", err)
			thread.AddEvent(core.EventError, role, errMsg, nil)
			thread.UpdateMetrics(role, 0, 0, false)
			return "[Error] " + errMsg
		}

		if resp.Thinking != "" {
			thread.AddEvent(core.EventAgentThinking, role, core.Truncate(resp.Thinking, 500), nil)
		}

		content := StripThinking(resp.Content)
		toolCalls := resp.ToolCalls
		if len(toolCalls) == 0 && len(tools) > 0 {
			if textCalls := parseTextToolCalls(resp.Content); len(textCalls) > 0 {
				toolCalls = textCalls
				content = stripToolCallTags(content)
			}
		}

		if len(toolCalls) > 0 {
			for _, tc := range toolCalls {
				thread.AddEvent(core.EventToolCall, role,
					fmt.Sprintf("%s(%s)", tc.Name, core.Truncate(tc.Arguments, 200)), nil)

				var result string
				args, err := parseArgs(tc.Arguments)
				if err != nil {
					result = fmt.Sprintf("Error: invalid tool arguments: %v", err)
				} else {
					result = e.dispatcher.Dispatch(ctx, thread, role, tc.Name, args, custom)
				}

				thread.AddEvent(core.EventToolResult, role, core.Truncate(result, 500), nil)

				messages = append(messages,
					model.Message{Role: "assistant", ToolCalls: []model.ToolCall{tc}},
					model.Message{Role: "tool", Content: result, ToolCallID: tc.ID},
				)
			}
			continue
		}

		thread.AddEvent(core.EventAgentResponse, role, content, map[string]any{
			"tokens":     resp.Usage.TotalTokens,
			"latency_ms": latencyMS,
			"step":       step,
		})
		thread.UpdateMetrics(role, resp.Usage.TotalTokens, latencyMS, true)
		return content
	}

	thread.UpdateMetrics(role, 0, 0, false)
	return "[Warning] max steps reached - partial result"
}

// buildMessages assembles the context window: system prompt, serialized
// thread history as a primed exchange, then the task input.
func (e *Executor) buildMessages(thread *core.Thread, input string) []model.Message {
	messages := []model.Message{
		{Role: "system", Content: e.profile.SystemPrompt()},
	}
	if history := e.profile.History(thread); history != "" {
		messages = append(messages,
			model.Message{Role: "user", Content: "Context so far:\n" + history},
			model.Message{Role: "assistant", Content: "Understood. I have the context."},
		)
	}
	return append(messages, model.Message{Role: "user", Content: input})
}
