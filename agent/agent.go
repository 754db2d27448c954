// Package agent implements the agents themselves: role profiles (system
// prompt, tool set, context policy) and the bounded executor loop that drives
// a model through tool calls to a final text answer.
package agent

import (
	"github.com/hupe1980/agentcrew/core"
	"github.com/hupe1980/agentcrew/model"
)

// Profile defines one agent's identity: its role, the prompt it owns, the
// tools it may call, and how much of the thread it sees. Profiles that handle
// tools beyond the shared set also implement tool.CustomHandler.
type Profile interface {
	Role() core.Role
	SystemPrompt() string
	Tools() []model.ToolDefinition
	History(t *core.Thread) string
}
