// Package runner wires the orchestrator, the pipeline engine and thread
// persistence into the top-level conversation flow: one user message in, one
// final answer out.
package runner

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/agentcrew/agent"
	"github.com/hupe1980/agentcrew/core"
	"github.com/hupe1980/agentcrew/logging"
	"github.com/hupe1980/agentcrew/pipeline"
)

// Runner drives one conversation turn end to end: orchestrator routing,
// optional pipeline execution, and the final synthesis pass.
type Runner struct {
	registry *agent.Registry
	engine   *pipeline.Engine
	threads  core.ThreadStore
	logger   logging.Logger
}

// Options configure a Runner.
type Options struct {
	// Threads enables saving the thread after every turn when set.
	Threads core.ThreadStore
	Logger  logging.Logger
}

// New creates a runner over a registry and engine.
func New(registry *agent.Registry, engine *pipeline.Engine, optFns ...func(o *Options)) *Runner {
	opts := Options{Logger: logging.NewNoOpLogger()}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Runner{
		registry: registry,
		engine:   engine,
		threads:  opts.Threads,
		logger:   opts.Logger,
	}
}

// Ask processes one user message on the thread and returns the final answer.
// The orchestrator decides between answering directly and delegating; when a
// task was decomposed the pipeline runs and a second orchestrator pass
// synthesizes the specialist results.
func (r *Runner) Ask(ctx context.Context, thread *core.Thread, input string) (string, error) {
	orch := r.registry.Orchestrator()
	if orch == nil {
		return "", fmt.Errorf("no orchestrator configured")
	}

	thread.AddEvent(core.EventUserMessage, "", input, nil)

	decision := orch.Execute(ctx, thread, input)

	final := decision
	if !r.wasDirectResponse(thread) {
		if task := thread.CurrentTask(); task != nil && task.Status == core.StatusPending && len(task.SubTasks) > 0 {
			result := r.engine.Execute(ctx, task, thread)

			synthInput := fmt.Sprintf(
				"The specialists have completed their work. Here are the results:\n\n%s\n\n"+
					"Original user request: %s\n\n"+
					"Synthesize a clear, comprehensive final response.",
				result, input)
			final = orch.Execute(ctx, thread, synthInput)
			task.FinalResult = final
			thread.AddEvent(core.EventSynthesis, core.RoleOrchestrator, final, nil)
		}
	}

	if r.threads != nil {
		if err := r.threads.Save(ctx, thread); err != nil {
			r.logger.Warn("failed to save thread", "thread", thread.ID, "error", err)
		}
	}
	return final, nil
}

// wasDirectResponse reports whether the orchestrator's latest turn answered
// via direct_response instead of decomposing.
func (r *Runner) wasDirectResponse(thread *core.Thread) bool {
	recent := thread.RecentEvents(5, nil)
	for i := len(recent) - 1; i >= 0; i-- {
		ev := recent[i]
		if ev.Kind == core.EventToolCall && strings.Contains(ev.Content, "direct_response") {
			return true
		}
	}
	return false
}
