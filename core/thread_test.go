package core

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThread_AddEvent(t *testing.T) {
	th := NewThread("t1")

	ev := th.AddEvent(EventUserMessage, "", "hello", nil)
	assert.NotEmpty(t, ev.ID)
	assert.Len(t, ev.ID, 12)
	assert.False(t, ev.Timestamp.IsZero())

	ev2 := th.AddEvent(EventAgentResponse, RoleSpeed, "hi", map[string]any{"tokens": 12})
	assert.NotEqual(t, ev.ID, ev2.ID)

	events := th.GetEvents()
	require.Len(t, events, 2)
	assert.Equal(t, EventUserMessage, events[0].Kind)
	assert.Equal(t, EventAgentResponse, events[1].Kind)
	assert.Equal(t, RoleSpeed, events[1].Role)

	last, ok := th.LastEvent()
	require.True(t, ok)
	assert.Equal(t, ev2.ID, last.ID)
}

func TestThread_GetEventsIsACopy(t *testing.T) {
	th := NewThread("t1")
	th.AddEvent(EventUserMessage, "", "original", nil)

	events := th.GetEvents()
	events[0].Content = "mutated"

	fresh := th.GetEvents()
	assert.Equal(t, "original", fresh[0].Content)
}

func TestThread_RecentEvents(t *testing.T) {
	th := NewThread("t1")
	th.AddEvent(EventUserMessage, "", "one", nil)
	th.AddEvent(EventToolCall, RoleResearcher, "two", nil)
	th.AddEvent(EventToolResult, RoleResearcher, "three", nil)
	th.AddEvent(EventAgentResponse, RoleResearcher, "four", nil)

	// window caps before filtering
	recent := th.RecentEvents(2, nil)
	require.Len(t, recent, 2)
	assert.Equal(t, "three", recent[0].Content)
	assert.Equal(t, "four", recent[1].Content)

	filtered := th.RecentEvents(10, map[EventKind]bool{EventToolResult: true})
	require.Len(t, filtered, 1)
	assert.Equal(t, "three", filtered[0].Content)
}

func TestThread_ConcurrentAppends(t *testing.T) {
	th := NewThread("t1")
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			th.AddEvent(EventPipelineStep, RoleThinker, "step", nil)
			th.UpdateMetrics(RoleThinker, 10, 5, true)
		}()
	}
	wg.Wait()

	assert.Len(t, th.GetEvents(), 50)
	m := th.MetricsFor(RoleThinker)
	assert.Equal(t, 50, m.TotalCalls)
	assert.Equal(t, 500, m.TotalTokens)
}

func TestAgentMetrics_DerivedValues(t *testing.T) {
	th := NewThread("t1")

	// 3 successes, 1 failure
	th.UpdateMetrics(RoleReasoner, 100, 200, true)
	th.UpdateMetrics(RoleReasoner, 100, 100, true)
	th.UpdateMetrics(RoleReasoner, 100, 100, true)
	th.UpdateMetrics(RoleReasoner, 0, 0, false)

	m := th.MetricsFor(RoleReasoner)
	assert.Equal(t, 4, m.TotalCalls)
	assert.Equal(t, 3, m.SuccessCount)
	assert.Equal(t, 1, m.ErrorCount)
	assert.InDelta(t, 0.75, m.SuccessRate(), 1e-9)
	assert.InDelta(t, 100.0, m.AvgLatencyMS(), 1e-9)
	require.NotNil(t, m.LastActive)
}

func TestAgentMetrics_ZeroValues(t *testing.T) {
	var m AgentMetrics
	assert.Zero(t, m.SuccessRate())
	assert.Zero(t, m.AvgLatencyMS())
}

func TestThread_Tasks(t *testing.T) {
	th := NewThread("t1")
	assert.Nil(t, th.CurrentTask())

	task := NewTask("do something", StrategySequential, []*SubTask{
		NewSubTask("step one", RoleThinker),
	})
	th.AddTask(task)

	current := th.CurrentTask()
	require.NotNil(t, current)
	assert.Equal(t, task.ID, current.ID)
	assert.Equal(t, StatusPending, current.Status)
	assert.Equal(t, StatusPending, current.SubTasks[0].Status)
}
