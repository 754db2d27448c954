package agent

import (
	"context"
	"testing"

	"github.com/hupe1980/agentcrew/core"
	"github.com/hupe1980/agentcrew/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrchestrator_DecomposeCreatesTask(t *testing.T) {
	m := model.NewMockModel("orchestrator").
		EnqueueToolCall("decompose_task", `{
			"strategy": "parallel",
			"reasoning": "independent angles",
			"sub_tasks": [
				{"description": "research current state", "assigned_agent": "researcher", "priority": 1, "skills": ["deep-research"]},
				{"description": "analyze trade-offs", "assigned_agent": "thinker", "priority": 2}
			]
		}`).
		EnqueueText("Decomposition complete.")
	exec := NewExecutor(NewOrchestrator(), m, newTestDispatcher())
	th := core.NewThread("t1")
	th.AddEvent(core.EventUserMessage, "", "compare databases", nil)

	exec.Execute(context.Background(), th, "compare databases")

	task := th.CurrentTask()
	require.NotNil(t, task)
	assert.Equal(t, core.StrategyParallel, task.Strategy)
	assert.Equal(t, "compare databases", task.UserInput)
	require.Len(t, task.SubTasks, 2)
	assert.Equal(t, core.RoleResearcher, task.SubTasks[0].AssignedAgent)
	assert.Equal(t, []string{"deep-research"}, task.SubTasks[0].Skills)
	assert.Equal(t, 2, task.SubTasks[1].Priority)

	var routing *core.Event
	for _, ev := range th.GetEvents() {
		if ev.Kind == core.EventRoutingDecision {
			routing = &ev
			break
		}
	}
	require.NotNil(t, routing)
	assert.Contains(t, routing.Content, "Pipeline: parallel")
	assert.Contains(t, routing.Content, "Sub-tasks: 2")
	assert.Contains(t, routing.Content, "independent angles")
}

func TestOrchestrator_DecomposeSkipsInvalidSubTasks(t *testing.T) {
	orch := NewOrchestrator()
	th := core.NewThread("t1")
	th.AddEvent(core.EventUserMessage, "", "do things", nil)

	out, handled := orch.HandleTool(context.Background(), th, "decompose_task", map[string]any{
		"strategy": "bogus",
		"sub_tasks": []any{
			map[string]any{"description": "ok", "assigned_agent": "speed"},
			map[string]any{"description": "", "assigned_agent": "speed"},
			map[string]any{"description": "bad role", "assigned_agent": "wizard"},
			map[string]any{"description": "not a specialist", "assigned_agent": "orchestrator"},
		},
	})

	require.True(t, handled)
	assert.Contains(t, out, "sequential pipeline")

	task := th.CurrentTask()
	require.NotNil(t, task)
	assert.Equal(t, core.StrategySequential, task.Strategy)
	require.Len(t, task.SubTasks, 1)
	assert.Equal(t, core.RoleSpeed, task.SubTasks[0].AssignedAgent)
}

func TestOrchestrator_DirectAndSynthesisTools(t *testing.T) {
	orch := NewOrchestrator()
	th := core.NewThread("t1")

	out, handled := orch.HandleTool(context.Background(), th, "direct_response", map[string]any{"response": "Paris."})
	require.True(t, handled)
	assert.Equal(t, "Paris.", out)

	out, handled = orch.HandleTool(context.Background(), th, "synthesize_results", map[string]any{"final_response": "combined"})
	require.True(t, handled)
	assert.Equal(t, "combined", out)

	_, handled = orch.HandleTool(context.Background(), th, "unknown_tool", nil)
	assert.False(t, handled)
}

func TestRegistry_BuildsExecutorsPerRole(t *testing.T) {
	models := map[core.Role]model.Model{
		core.RoleOrchestrator: model.NewMockModel("orch"),
		core.RoleThinker:      model.NewMockModel("thinker"),
		core.RoleSpeed:        model.NewMockModel("speed"),
	}
	reg := NewRegistry(models, newTestDispatcher())

	require.NotNil(t, reg.Orchestrator())
	assert.Equal(t, core.RoleOrchestrator, reg.Orchestrator().Profile().Role())

	exec, ok := reg.Get(core.RoleThinker)
	require.True(t, ok)
	assert.Equal(t, core.RoleThinker, exec.Profile().Role())

	_, ok = reg.Get(core.RoleReasoner)
	assert.False(t, ok)
}

func TestSpecialistProfiles(t *testing.T) {
	for _, role := range core.SpecialistRoles() {
		sp := NewSpecialist(role)
		require.NotNil(t, sp, role)
		assert.Equal(t, role, sp.Role())
		assert.NotEmpty(t, sp.SystemPrompt())
		assert.NotEmpty(t, sp.Tools())
	}
	assert.Nil(t, NewSpecialist(core.Role("wizard")))

	// reasoner has no web_fetch
	for _, td := range NewReasoner().Tools() {
		assert.NotEqual(t, "web_fetch", td.Name)
	}
}
