package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/agentcrew/core"
	"github.com/hupe1980/agentcrew/model"
	"github.com/hupe1980/agentcrew/tool"
)

// Orchestrator is the coordinating agent profile. It owns the routing
// decision: answer directly, or decompose the request into sub-tasks for the
// specialists and pick an execution strategy. Its routing tools
// (decompose_task, direct_response, synthesize_results) are handled here
// rather than in the shared dispatcher.
type Orchestrator struct{}

// NewOrchestrator creates the orchestrator profile.
func NewOrchestrator() *Orchestrator { return &Orchestrator{} }

// Role implements Profile.
func (o *Orchestrator) Role() core.Role { return core.RoleOrchestrator }

// SystemPrompt implements Profile.
func (o *Orchestrator) SystemPrompt() string {
	return "You are the Orchestrator of a multi-agent system. You coordinate 4 specialist agents:\n\n" +
		"AGENTS:\n" +
		"- thinker: Deep analysis, complex reasoning, planning, architecture\n" +
		"- speed: Quick answers, code generation, formatting, simple tasks\n" +
		"- researcher: Web search, current info, data gathering, fact-checking\n" +
		"- reasoner: Math, logic, chain-of-thought, verification\n\n" +
		"EXECUTION STRATEGIES:\n" +
		"- sequential: Tasks flow A -> B -> C (each uses previous output)\n" +
		"- parallel: Tasks run simultaneously, results merged\n" +
		"- consensus: All agents answer same question, best selected\n" +
		"- iterative: One agent produces, another reviews, refine until good\n\n" +
		"SKILL SYSTEM:\n" +
		"- Use find_skill to discover relevant skills BEFORE decomposing tasks\n" +
		"- Use use_skill to load skill knowledge when needed\n" +
		"- When decomposing, you can assign skill IDs to sub-tasks via the 'skills' field\n" +
		"- Skills provide specialized protocols and knowledge to agents\n\n" +
		"DECISION RULES:\n" +
		"1. Simple question -> use direct_response (no delegation)\n" +
		"2. Need current info -> researcher (sequential or parallel with others)\n" +
		"3. Complex analysis -> thinker (+ reasoner for verification if needed)\n" +
		"4. Code task -> speed (+ reasoner for review if complex)\n" +
		"5. Math/logic -> reasoner\n" +
		"6. Multi-faceted -> parallel strategy with relevant agents\n" +
		"7. High-stakes -> consensus strategy for reliability\n" +
		"8. Specialized domain -> find_skill first, then assign skills to agents\n\n" +
		"Use decompose_task to break work into sub-tasks.\n" +
		"Use direct_response for simple queries.\n" +
		"Use synthesize_results after all sub-tasks complete.\n\n" +
		"Be decisive. Route efficiently. Minimize unnecessary delegation."
}

// Tools implements Profile.
func (o *Orchestrator) Tools() []model.ToolDefinition { return tool.OrchestratorTools }

// History implements Profile. The orchestrator sees the full recent window.
func (o *Orchestrator) History(t *core.Thread) string { return core.OrchestratorContext(t) }

// HandleTool implements tool.CustomHandler for the routing tools.
func (o *Orchestrator) HandleTool(_ context.Context, thread *core.Thread, name string, args map[string]any) (string, bool) {
	switch name {
	case "decompose_task":
		return o.handleDecompose(thread, args), true
	case "direct_response":
		s, _ := args["response"].(string)
		return s, true
	case "synthesize_results":
		s, _ := args["final_response"].(string)
		return s, true
	default:
		return "", false
	}
}

// handleDecompose turns a decompose_task call into a Task on the thread and
// records the routing decision.
func (o *Orchestrator) handleDecompose(thread *core.Thread, args map[string]any) string {
	strategy := core.Strategy("sequential")
	if s, ok := args["strategy"].(string); ok && core.Strategy(s).Valid() {
		strategy = core.Strategy(s)
	}

	var subTasks []*core.SubTask
	if raw, ok := args["sub_tasks"].([]any); ok {
		for _, item := range raw {
			st, ok := item.(map[string]any)
			if !ok {
				continue
			}
			desc, _ := st["description"].(string)
			agentName, _ := st["assigned_agent"].(string)
			role := core.Role(agentName)
			if desc == "" || !role.Valid() || role == core.RoleOrchestrator {
				continue
			}
			sub := core.NewSubTask(desc, role)
			if p, ok := st["priority"].(float64); ok {
				sub.Priority = int(p)
			}
			sub.DependsOn = stringSlice(st["depends_on"])
			sub.Skills = stringSlice(st["skills"])
			subTasks = append(subTasks, sub)
		}
	}

	task := core.NewTask(lastUserMessage(thread), strategy, subTasks)
	thread.AddTask(task)

	reasoning, _ := args["reasoning"].(string)
	thread.AddEvent(core.EventRoutingDecision, core.RoleOrchestrator,
		fmt.Sprintf("Pipeline: %s | Sub-tasks: %d | %s", strategy, len(subTasks), reasoning), nil)

	summary := []string{fmt.Sprintf("Task decomposed -> %s pipeline:", strategy)}
	for i, st := range subTasks {
		summary = append(summary, fmt.Sprintf("  %d. [%s] %s", i+1, st.AssignedAgent, st.Description))
	}
	return strings.Join(summary, "\n")
}

// lastUserMessage returns the content of the most recent user message, so the
// created task records what the user actually asked rather than whatever
// event the orchestrator appended last.
func lastUserMessage(thread *core.Thread) string {
	events := thread.GetEvents()
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].Kind == core.EventUserMessage {
			return events[i].Content
		}
	}
	return ""
}

func stringSlice(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
