// Package pipeline executes a Task's sub-tasks through one of four
// strategies: sequential, parallel, consensus or iterative. The engine owns
// all Task and SubTask status transitions and records pipeline lifecycle
// events on the thread.
package pipeline

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hupe1980/agentcrew/agent"
	"github.com/hupe1980/agentcrew/core"
	"github.com/hupe1980/agentcrew/logging"
	"github.com/hupe1980/agentcrew/skill"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxRounds bounds the iterative strategy's produce/review cycles.
const DefaultMaxRounds = 3

// Engine runs task pipelines against the specialist executors.
type Engine struct {
	registry  *agent.Registry
	skills    core.SkillStore
	logger    logging.Logger
	maxRounds int
}

// EngineOptions configure an Engine.
type EngineOptions struct {
	Logger    logging.Logger
	MaxRounds int
}

// New creates an engine. Skills may be nil to disable skill injection.
func New(registry *agent.Registry, skills core.SkillStore, optFns ...func(o *EngineOptions)) *Engine {
	opts := EngineOptions{
		Logger:    logging.NewNoOpLogger(),
		MaxRounds: DefaultMaxRounds,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Engine{
		registry:  registry,
		skills:    skills,
		logger:    opts.Logger,
		maxRounds: opts.MaxRounds,
	}
}

// Execute runs the task with its declared strategy. The task always ends
// completed or failed; a failure is returned as "[Pipeline Error] ..." text
// and recorded as an error event, never as a Go error.
func (e *Engine) Execute(ctx context.Context, task *core.Task, thread *core.Thread) string {
	task.Status = core.StatusRunning
	thread.AddEvent(core.EventPipelineStart, "",
		fmt.Sprintf("Starting %s pipeline with %d sub-tasks", task.Strategy, len(task.SubTasks)), nil)

	t0 := time.Now()
	result := e.run(ctx, task, thread)
	task.TotalLatencyMS = float64(time.Since(t0)) / float64(time.Millisecond)

	thread.AddEvent(core.EventPipelineComplete, "",
		fmt.Sprintf("Pipeline %s completed: %s", task.Strategy, task.Status),
		map[string]any{"latency_ms": task.TotalLatencyMS})
	return result
}

func (e *Engine) run(ctx context.Context, task *core.Task, thread *core.Thread) (result string) {
	defer func() {
		if r := recover(); r != nil {
			task.Status = core.StatusFailed
			result = fmt.Sprintf("[Pipeline Error] %v", r)
			e.logger.Error("pipeline panicked", "strategy", task.Strategy, "panic", r)
			thread.AddEvent(core.EventError, "", result, nil)
			return
		}
	}()

	var err error
	switch task.Strategy {
	case core.StrategyParallel:
		result, err = e.parallel(ctx, task, thread)
	case core.StrategyConsensus:
		result, err = e.consensus(ctx, task, thread)
	case core.StrategyIterative:
		result, err = e.iterative(ctx, task, thread)
	default:
		result, err = e.sequential(ctx, task, thread)
	}
	if err != nil {
		task.Status = core.StatusFailed
		result = fmt.Sprintf("[Pipeline Error] %v", err)
		thread.AddEvent(core.EventError, "", result, nil)
		return result
	}

	task.Status = core.StatusCompleted
	now := time.Now().UTC()
	task.CompletedAt = &now
	return result
}

// runSubTask executes one sub-task with its assigned specialist, injecting
// skill knowledge into the context when skills were assigned. The returned
// error only signals an unresolvable assignment; agent failures are already
// text in the result.
func (e *Engine) runSubTask(ctx context.Context, subtask *core.SubTask, taskContext string, thread *core.Thread) (string, error) {
	exec, ok := e.registry.Get(subtask.AssignedAgent)
	if !ok {
		return "", fmt.Errorf("no agent registered for role %q", subtask.AssignedAgent)
	}
	subtask.Status = core.StatusRunning

	skillContext := e.skillContext(subtask.Skills)

	stepContent := fmt.Sprintf("[%s] %s", subtask.AssignedAgent, core.Truncate(subtask.Description, 100))
	if len(subtask.Skills) > 0 {
		stepContent += fmt.Sprintf(" (skills: %s)", strings.Join(subtask.Skills, ", "))
	}
	thread.AddEvent(core.EventPipelineStep, subtask.AssignedAgent, stepContent, nil)

	t0 := time.Now()
	result := exec.Execute(ctx, thread, skillContext+taskContext)
	subtask.LatencyMS = float64(time.Since(t0)) / float64(time.Millisecond)
	subtask.Status = core.StatusCompleted
	subtask.Result = result
	return result, nil
}

// skillContext renders assigned skill knowledge as a context preamble.
func (e *Engine) skillContext(skillIDs []string) string {
	if e.skills == nil || len(skillIDs) == 0 {
		return ""
	}
	var parts []string
	for _, id := range skillIDs {
		if knowledge, ok := e.skills.Knowledge(id); ok {
			parts = append(parts, skill.FormatKnowledge(id, knowledge))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "\n\n--- INJECTED SKILLS ---\n" +
		"Follow these specialized protocols for this task:\n\n" +
		strings.Join(parts, "\n\n") +
		"\n--- END SKILLS ---\n\n"
}

// sequential runs sub-tasks in priority order; each receives the previous
// result as context.
func (e *Engine) sequential(ctx context.Context, task *core.Task, thread *core.Thread) (string, error) {
	subTasks := make([]*core.SubTask, len(task.SubTasks))
	copy(subTasks, task.SubTasks)
	sort.SliceStable(subTasks, func(i, j int) bool { return subTasks[i].Priority < subTasks[j].Priority })

	context := task.UserInput
	var results []string
	for _, subtask := range subTasks {
		enriched := fmt.Sprintf("Original request: %s\n\nPrevious context:\n%s\n\nYour task: %s",
			task.UserInput, context, subtask.Description)
		result, err := e.runSubTask(ctx, subtask, enriched, thread)
		if err != nil {
			return "", err
		}
		context = result
		results = append(results, fmt.Sprintf("[%s] %s", subtask.AssignedAgent, result))
	}
	return strings.Join(results, "\n\n---\n\n"), nil
}

// parallel runs all sub-tasks concurrently. A failing branch is contained:
// its slot reports the failure and its sub-task is marked failed while the
// other branches complete normally. Results assemble in declaration order.
func (e *Engine) parallel(ctx context.Context, task *core.Task, thread *core.Thread) (string, error) {
	results := make([]string, len(task.SubTasks))
	branchErrs := make([]error, len(task.SubTasks))

	g, gctx := errgroup.WithContext(ctx)
	for i, subtask := range task.SubTasks {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					branchErrs[i] = fmt.Errorf("%v", r)
				}
			}()
			enriched := fmt.Sprintf("Original request: %s\n\nYour task: %s", task.UserInput, subtask.Description)
			result, err := e.runSubTask(gctx, subtask, enriched, thread)
			if err != nil {
				branchErrs[i] = err
				return nil
			}
			results[i] = result
			return nil
		})
	}
	_ = g.Wait()

	parts := make([]string, len(task.SubTasks))
	for i, subtask := range task.SubTasks {
		if branchErrs[i] != nil {
			subtask.Status = core.StatusFailed
			parts[i] = fmt.Sprintf("[%s] Error: %v", subtask.AssignedAgent, branchErrs[i])
			continue
		}
		parts[i] = fmt.Sprintf("[%s] %s", subtask.AssignedAgent, results[i])
	}
	return strings.Join(parts, "\n\n---\n\n"), nil
}

// consensus asks all four specialists the original question verbatim and
// collects every answer in the fixed specialist order.
func (e *Engine) consensus(ctx context.Context, task *core.Task, thread *core.Thread) (string, error) {
	roles := core.SpecialistRoles()
	results := make([]string, len(roles))
	branchErrs := make([]error, len(roles))

	g, gctx := errgroup.WithContext(ctx)
	for i, role := range roles {
		exec, ok := e.registry.Get(role)
		if !ok {
			branchErrs[i] = fmt.Errorf("no agent registered for role %q", role)
			continue
		}
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					branchErrs[i] = fmt.Errorf("%v", r)
				}
			}()
			results[i] = exec.Execute(gctx, thread, task.UserInput)
			return nil
		})
	}
	_ = g.Wait()

	parts := []string{"CONSENSUS RESULTS - Multiple agents answered the same question:\n"}
	for i, role := range roles {
		if branchErrs[i] != nil {
			parts = append(parts, fmt.Sprintf("[%s] Error: %v", role, branchErrs[i]))
			continue
		}
		parts = append(parts, fmt.Sprintf("[%s] %s", role, results[i]))
	}
	return strings.Join(parts, "\n\n---\n\n"), nil
}

// iterative alternates a producer and a reviewer: draft, review, refine,
// until the reviewer answers APPROVED or the round budget runs out. With
// fewer than two sub-tasks it degrades to sequential.
func (e *Engine) iterative(ctx context.Context, task *core.Task, thread *core.Thread) (string, error) {
	if len(task.SubTasks) < 2 {
		return e.sequential(ctx, task, thread)
	}

	producerTask := task.SubTasks[0]
	reviewerTask := task.SubTasks[1]

	producer, ok := e.registry.Get(producerTask.AssignedAgent)
	if !ok {
		return "", fmt.Errorf("no agent registered for role %q", producerTask.AssignedAgent)
	}
	reviewer, ok := e.registry.Get(reviewerTask.AssignedAgent)
	if !ok {
		return "", fmt.Errorf("no agent registered for role %q", reviewerTask.AssignedAgent)
	}

	draft := producer.Execute(ctx, thread,
		fmt.Sprintf("Original request: %s\n\nYour task: %s", task.UserInput, producerTask.Description))

	var review string
	for round := 0; round < e.maxRounds; round++ {
		review = reviewer.Execute(ctx, thread, fmt.Sprintf(
			"Original request: %s\n\nDraft (round %d):\n%s\n\n"+
				"Review this draft. If it's good, say 'APPROVED'. "+
				"Otherwise, provide specific feedback for improvement.",
			task.UserInput, round+1, draft))

		if strings.Contains(strings.ToUpper(review), "APPROVED") {
			break
		}

		draft = producer.Execute(ctx, thread, fmt.Sprintf(
			"Original request: %s\n\nYour previous draft:\n%s\n\n"+
				"Reviewer feedback:\n%s\n\nImprove your draft based on this feedback.",
			task.UserInput, draft, review))
	}

	producerTask.Result = draft
	producerTask.Status = core.StatusCompleted
	reviewerTask.Result = review
	reviewerTask.Status = core.StatusCompleted
	return draft, nil
}
