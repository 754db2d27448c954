// Package agentcrew provides a high-level façade over the agent registry,
// pipeline engine and runner, enabling rapid construction of an orchestrated
// multi-agent crew. Most applications interact with this package by:
//  1. Creating a Crew via New() with one model per role (optionally
//     overriding the default in-memory stores)
//  2. Creating or loading a thread
//  3. Sending user messages through Ask()
//
// All defaults are safe for local development and testing; production
// deployments typically supply durable stores and a structured logger.
package agentcrew

import (
	"context"

	"github.com/hupe1980/agentcrew/agent"
	"github.com/hupe1980/agentcrew/core"
	"github.com/hupe1980/agentcrew/logging"
	"github.com/hupe1980/agentcrew/memory"
	"github.com/hupe1980/agentcrew/model"
	"github.com/hupe1980/agentcrew/pipeline"
	"github.com/hupe1980/agentcrew/runner"
	"github.com/hupe1980/agentcrew/session"
	"github.com/hupe1980/agentcrew/skill"
	"github.com/hupe1980/agentcrew/tool"
)

// Options configures a Crew. Any unset store falls back to an in-memory
// implementation; a nil Searcher leaves web search disabled.
type Options struct {
	// Threads persists conversation state between turns.
	Threads core.ThreadStore
	// Memory backs the save_memory / recall_memory tools.
	Memory core.MemoryStore
	// Skills backs skill discovery and injection.
	Skills core.SkillStore
	// Searcher enables the web_search tool when set.
	Searcher *tool.Searcher
	// Fetcher backs the web_fetch tool.
	Fetcher *tool.Fetcher
	// Logger receives structured progress output.
	Logger logging.Logger
	// MaxSteps bounds every agent's tool-calling loop.
	MaxSteps int
	// MaxRounds bounds the iterative strategy's refine loop.
	MaxRounds int
}

// Crew aggregates the wired components of one multi-agent system.
type Crew struct {
	registry *agent.Registry
	engine   *pipeline.Engine
	runner   *runner.Runner
	threads  core.ThreadStore
}

// New wires a Crew from one model per role. Roles without a model are simply
// absent from the registry; an orchestrator model is required for Ask.
func New(models map[core.Role]model.Model, optFns ...func(o *Options)) *Crew {
	opts := Options{
		Logger: logging.NewNoOpLogger(),
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Threads == nil {
		opts.Threads = session.NewInMemoryStore()
	}
	if opts.Memory == nil {
		opts.Memory = memory.NewInMemoryStore()
	}
	if opts.Skills == nil {
		opts.Skills = skill.NewRegistry()
	}
	if opts.Fetcher == nil {
		opts.Fetcher = tool.NewFetcher()
	}

	dispatcher := tool.NewDispatcher(tool.DispatcherOptions{
		Searcher: opts.Searcher,
		Fetcher:  opts.Fetcher,
		Memory:   opts.Memory,
		Skills:   opts.Skills,
	})
	registry := agent.NewRegistry(models, dispatcher, func(o *agent.ExecutorOptions) {
		o.Logger = opts.Logger
		if opts.MaxSteps > 0 {
			o.MaxSteps = opts.MaxSteps
		}
	})
	engine := pipeline.New(registry, opts.Skills, func(o *pipeline.EngineOptions) {
		o.Logger = opts.Logger
		if opts.MaxRounds > 0 {
			o.MaxRounds = opts.MaxRounds
		}
	})
	run := runner.New(registry, engine, func(o *runner.Options) {
		o.Threads = opts.Threads
		o.Logger = opts.Logger
	})

	return &Crew{registry: registry, engine: engine, runner: run, threads: opts.Threads}
}

// Ask processes one user message on the thread and returns the final answer.
func (c *Crew) Ask(ctx context.Context, thread *core.Thread, input string) (string, error) {
	return c.runner.Ask(ctx, thread, input)
}

// Registry returns the per-role executor registry.
func (c *Crew) Registry() *agent.Registry { return c.registry }

// Engine returns the pipeline engine.
func (c *Crew) Engine() *pipeline.Engine { return c.engine }

// Threads returns the configured thread store.
func (c *Crew) Threads() core.ThreadStore { return c.threads }
