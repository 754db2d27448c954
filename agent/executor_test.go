package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hupe1980/agentcrew/core"
	"github.com/hupe1980/agentcrew/memory"
	"github.com/hupe1980/agentcrew/model"
	"github.com/hupe1980/agentcrew/skill"
	"github.com/hupe1980/agentcrew/tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDispatcher() *tool.Dispatcher {
	return tool.NewDispatcher(tool.DispatcherOptions{
		Memory: memory.NewInMemoryStore(),
		Skills: skill.NewRegistry(),
	})
}

func eventKinds(th *core.Thread) []core.EventKind {
	events := th.GetEvents()
	kinds := make([]core.EventKind, len(events))
	for i, ev := range events {
		kinds[i] = ev.Kind
	}
	return kinds
}

func TestExecutor_PlainAnswer(t *testing.T) {
	m := model.NewMockModel("thinker").EnqueueText("<think>private</think>The answer is 42.")
	exec := NewExecutor(NewThinker(), m, newTestDispatcher())
	th := core.NewThread("t1")

	out := exec.Execute(context.Background(), th, "what is the answer?")

	assert.Equal(t, "The answer is 42.", out)
	assert.Equal(t, []core.EventKind{core.EventAgentStart, core.EventAgentResponse}, eventKinds(th))

	metrics := th.MetricsFor(core.RoleThinker)
	assert.Equal(t, 1, metrics.SuccessCount)
	assert.Zero(t, metrics.ErrorCount)
}

func TestExecutor_ThinkingSideChannel(t *testing.T) {
	m := model.NewMockModel("reasoner").Enqueue(&model.Response{
		Content:      "done",
		Thinking:     "step by step reasoning",
		FinishReason: "stop",
	})
	exec := NewExecutor(NewReasoner(), m, newTestDispatcher())
	th := core.NewThread("t1")

	out := exec.Execute(context.Background(), th, "solve")

	assert.Equal(t, "done", out)
	assert.Contains(t, eventKinds(th), core.EventAgentThinking)
}

func TestExecutor_ToolCallLoop(t *testing.T) {
	m := model.NewMockModel("researcher").
		EnqueueToolCall("find_skill", `{"query":"debugging"}`).
		EnqueueText("final answer")
	exec := NewExecutor(NewResearcher(), m, newTestDispatcher())
	th := core.NewThread("t1")

	out := exec.Execute(context.Background(), th, "fix this bug")

	assert.Equal(t, "final answer", out)
	kinds := eventKinds(th)
	assert.Contains(t, kinds, core.EventToolCall)
	assert.Contains(t, kinds, core.EventToolResult)

	// second model call carries the tool result
	reqs := m.Requests()
	require.Len(t, reqs, 2)
	last := reqs[1].Messages[len(reqs[1].Messages)-1]
	assert.Equal(t, "tool", last.Role)
	assert.Contains(t, last.Content, "debugging")
}

func TestExecutor_TextFallbackToolCall(t *testing.T) {
	m := model.NewMockModel("thinker").
		EnqueueText(`<tool_call>{"name": "find_skill", "arguments": {"query": "security"}}</tool_call>`).
		EnqueueText("hardening plan")
	exec := NewExecutor(NewThinker(), m, newTestDispatcher())
	th := core.NewThread("t1")

	out := exec.Execute(context.Background(), th, "review security")

	assert.Equal(t, "hardening plan", out)
	assert.Contains(t, eventKinds(th), core.EventToolCall)
}

func TestExecutor_ModelFailureBecomesText(t *testing.T) {
	m := model.NewMockModel("speed").EnqueueError(errors.New("connection refused"))
	exec := NewExecutor(NewSpeed(), m, newTestDispatcher())
	th := core.NewThread("t1")

	out := exec.Execute(context.Background(), th, "quick task")

	assert.Contains(t, out, "[Error] LLM call failed:")
	assert.Contains(t, out, "connection refused")
	assert.Contains(t, eventKinds(th), core.EventError)

	metrics := th.MetricsFor(core.RoleSpeed)
	assert.Equal(t, 1, metrics.ErrorCount)
	assert.Zero(t, metrics.SuccessCount)
}

func TestExecutor_MaxStepsExhausted(t *testing.T) {
	m := model.NewMockModel("researcher").
		EnqueueToolCall("find_skill", `{"query":"a"}`).
		EnqueueToolCall("find_skill", `{"query":"b"}`)
	exec := NewExecutor(NewResearcher(), m, newTestDispatcher(), func(o *ExecutorOptions) {
		o.MaxSteps = 2
	})
	th := core.NewThread("t1")

	out := exec.Execute(context.Background(), th, "endless loop")

	assert.Equal(t, "[Warning] max steps reached - partial result", out)
	assert.Equal(t, 1, th.MetricsFor(core.RoleResearcher).ErrorCount)
}

func TestExecutor_RepairsMalformedToolArguments(t *testing.T) {
	// unquoted key is invalid JSON but repairable
	m := model.NewMockModel("thinker").
		EnqueueToolCall("find_skill", `{query: "debugging"}`).
		EnqueueText("recovered")
	exec := NewExecutor(NewThinker(), m, newTestDispatcher())
	th := core.NewThread("t1")

	out := exec.Execute(context.Background(), th, "task")

	assert.Equal(t, "recovered", out)
	var sawSkillResult bool
	for _, ev := range th.GetEvents() {
		if ev.Kind == core.EventToolResult && strings.Contains(ev.Content, "debugging") {
			sawSkillResult = true
		}
	}
	assert.True(t, sawSkillResult)
}

func TestExecutor_ContextPriming(t *testing.T) {
	m := model.NewMockModel("speed").EnqueueText("ok")
	exec := NewExecutor(NewSpeed(), m, newTestDispatcher())
	th := core.NewThread("t1")
	th.AddEvent(core.EventUserMessage, "", "earlier question", nil)

	exec.Execute(context.Background(), th, "follow-up")

	reqs := m.Requests()
	require.Len(t, reqs, 1)
	msgs := reqs[0].Messages
	require.Len(t, msgs, 4)
	assert.Equal(t, "system", msgs[0].Role)
	assert.Contains(t, msgs[1].Content, "Context so far:")
	assert.Contains(t, msgs[1].Content, "earlier question")
	assert.Equal(t, "Understood. I have the context.", msgs[2].Content)
	assert.Equal(t, "follow-up", msgs[3].Content)
}

func TestExecutor_EmptyThreadSkipsPriming(t *testing.T) {
	m := model.NewMockModel("speed").EnqueueText("ok")
	exec := NewExecutor(NewSpeed(), m, newTestDispatcher())

	exec.Execute(context.Background(), core.NewThread("t1"), "hi")

	reqs := m.Requests()
	require.Len(t, reqs, 1)
	require.Len(t, reqs[0].Messages, 2)
	assert.Equal(t, "system", reqs[0].Messages[0].Role)
	assert.Equal(t, "user", reqs[0].Messages[1].Role)
}
