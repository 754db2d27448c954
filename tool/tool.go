// Package tool implements the function-calling surface exposed to agents:
// JSON schema tool definitions, a shared dispatcher for the tools every agent
// can call, and the web search/fetch implementations behind them.
package tool

import (
	"context"
	"fmt"

	"github.com/hupe1980/agentcrew/core"
	"github.com/hupe1980/agentcrew/memory"
	"github.com/hupe1980/agentcrew/skill"
)

// Handler executes one shared tool call. Returned errors are rendered as
// text for the model; they never abort an agent run.
type Handler func(ctx context.Context, thread *core.Thread, role core.Role, args map[string]any) (string, error)

// CustomHandler lets an agent profile handle tools outside the shared table.
// The bool reports whether the tool was recognized.
type CustomHandler interface {
	HandleTool(ctx context.Context, thread *core.Thread, name string, args map[string]any) (string, bool)
}

// Dispatcher routes tool calls to the shared handler table, then to the
// calling agent's custom handler. Every outcome is a text result; unknown
// tools produce a not-implemented message rather than an error.
type Dispatcher struct {
	handlers map[string]Handler
}

// DispatcherOptions configure the shared tool implementations.
type DispatcherOptions struct {
	Searcher *Searcher
	Fetcher  *Fetcher
	Memory   core.MemoryStore
	Skills   core.SkillStore
}

// NewDispatcher builds the shared tool table. Nil options disable the
// corresponding tools (their calls fall through to not-implemented).
func NewDispatcher(opts DispatcherOptions) *Dispatcher {
	d := &Dispatcher{handlers: map[string]Handler{}}

	if opts.Searcher != nil {
		d.handlers["web_search"] = func(ctx context.Context, _ *core.Thread, _ core.Role, args map[string]any) (string, error) {
			results := opts.Searcher.Search(ctx, argString(args, "query"), argInt(args, "max_results", 5))
			return FormatSearchResults(results), nil
		}
	}
	if opts.Fetcher != nil {
		d.handlers["web_fetch"] = func(ctx context.Context, _ *core.Thread, _ core.Role, args map[string]any) (string, error) {
			result := opts.Fetcher.Fetch(ctx, argString(args, "url"), argInt(args, "max_chars", 8000))
			return FormatFetchResult(result), nil
		}
	}
	if opts.Memory != nil {
		d.handlers["save_memory"] = func(ctx context.Context, _ *core.Thread, role core.Role, args map[string]any) (string, error) {
			category := argString(args, "category")
			if category == "" {
				category = "general"
			}
			entry, err := opts.Memory.Save(ctx, argString(args, "content"), category, argStrings(args, "tags"), string(role))
			if err != nil {
				return "", fmt.Errorf("save memory: %w", err)
			}
			return fmt.Sprintf("Memory saved: %d [%s]", entry.ID, entry.Category), nil
		}
		d.handlers["recall_memory"] = func(ctx context.Context, _ *core.Thread, _ core.Role, args map[string]any) (string, error) {
			results, err := opts.Memory.Recall(ctx, argString(args, "query"), argString(args, "category"), argInt(args, "max_results", 5))
			if err != nil {
				return "", fmt.Errorf("recall memory: %w", err)
			}
			return memory.FormatRecallResults(results), nil
		}
	}
	if opts.Skills != nil {
		d.handlers["find_skill"] = func(_ context.Context, _ *core.Thread, _ core.Role, args map[string]any) (string, error) {
			return skill.FormatFindResults(opts.Skills.Find(argString(args, "query"), argInt(args, "max_results", 3))), nil
		}
		d.handlers["use_skill"] = func(_ context.Context, _ *core.Thread, _ core.Role, args map[string]any) (string, error) {
			id := argString(args, "skill_id")
			knowledge, ok := opts.Skills.Knowledge(id)
			if !ok {
				return fmt.Sprintf("Skill '%s' not found.", id), nil
			}
			return skill.FormatKnowledge(id, knowledge), nil
		}
	}

	return d
}

// Dispatch resolves one tool call: shared table first, then the custom
// handler. Handler errors come back as compact text so the model can react.
func (d *Dispatcher) Dispatch(ctx context.Context, thread *core.Thread, role core.Role, name string, args map[string]any, custom CustomHandler) string {
	if h, ok := d.handlers[name]; ok {
		out, err := h(ctx, thread, role, args)
		if err != nil {
			return fmt.Sprintf("Error: %v", err)
		}
		return out
	}
	if custom != nil {
		if out, ok := custom.HandleTool(ctx, thread, name, args); ok {
			return out
		}
	}
	return fmt.Sprintf("Tool '%s' not implemented.", name)
}

func argString(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

func argInt(args map[string]any, key string, def int) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return def
}

func argStrings(args map[string]any, key string) []string {
	raw, ok := args[key].([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
