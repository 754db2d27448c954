package tool

import (
	"github.com/hupe1980/agentcrew/core"
	"github.com/hupe1980/agentcrew/model"
)

// Shared tool definitions. Parameters follow the minimal JSON Schema subset
// chat-completion providers accept.

// WebSearchTool searches the web through a SearXNG instance.
var WebSearchTool = model.ToolDefinition{
	Name:        "web_search",
	Description: "Search the web for current information using SearXNG. Returns titles, URLs, and snippets.",
	Parameters: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query":       map[string]any{"type": "string", "description": "Search query"},
			"max_results": map[string]any{"type": "integer", "description": "Max results (default 5)"},
		},
		"required": []string{"query"},
	},
}

// WebFetchTool retrieves and extracts text from a URL.
var WebFetchTool = model.ToolDefinition{
	Name:        "web_fetch",
	Description: "Fetch and extract text content from a URL. Returns page title and cleaned text.",
	Parameters: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"url":       map[string]any{"type": "string", "description": "The URL to fetch"},
			"max_chars": map[string]any{"type": "integer", "description": "Max characters to return (default 8000)"},
		},
		"required": []string{"url"},
	},
}

// FindSkillTool searches the skill registry.
var FindSkillTool = model.ToolDefinition{
	Name: "find_skill",
	Description: "Search for relevant skills/knowledge based on a query. Returns matching skills with descriptions. " +
		"Use this to discover what specialized knowledge is available before starting a task.",
	Parameters: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query":       map[string]any{"type": "string", "description": "What kind of skill or knowledge you need (e.g. 'security review', 'data analysis', 'code debugging')"},
			"max_results": map[string]any{"type": "integer", "description": "Max skills to return (default 3)"},
		},
		"required": []string{"query"},
	},
}

// UseSkillTool loads a skill's knowledge by id.
var UseSkillTool = model.ToolDefinition{
	Name: "use_skill",
	Description: "Load a skill's knowledge/instructions by its ID. Call find_skill first to discover available skills, " +
		"then use_skill to load the one you need. The skill's knowledge will be injected into your context.",
	Parameters: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"skill_id": map[string]any{"type": "string", "description": "The skill ID from find_skill results (e.g. 'deep-research', 'code-generation')"},
		},
		"required": []string{"skill_id"},
	},
}

// SaveMemoryTool persists information across conversations.
var SaveMemoryTool = model.ToolDefinition{
	Name: "save_memory",
	Description: "Save important information to persistent memory for future reference. Use after completing tasks to " +
		"remember solutions, user preferences, learned patterns, or key findings. " +
		"Categories: general, solution, preference, pattern, research.",
	Parameters: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"content":  map[string]any{"type": "string", "description": "The information to remember (be concise but complete)"},
			"category": map[string]any{"type": "string", "enum": []string{"general", "solution", "preference", "pattern", "research"}, "description": "Memory category"},
			"tags":     map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "description": "Tags for easier recall (e.g. ['python', 'api', 'bug-fix'])"},
		},
		"required": []string{"content"},
	},
}

// RecallMemoryTool searches persistent memory.
var RecallMemoryTool = model.ToolDefinition{
	Name: "recall_memory",
	Description: "Search persistent memory for relevant past knowledge. Use at the START of tasks to check if similar " +
		"problems were solved before, or to recall user preferences and past decisions.",
	Parameters: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query":       map[string]any{"type": "string", "description": "What to search for in memory"},
			"category":    map[string]any{"type": "string", "enum": []string{"general", "solution", "preference", "pattern", "research"}, "description": "Filter by category (optional)"},
			"max_results": map[string]any{"type": "integer", "description": "Max results to return (default 5)"},
		},
		"required": []string{"query"},
	},
}

// DecomposeTaskTool is the orchestrator's routing tool: it breaks a request
// into sub-tasks and picks an execution strategy.
var DecomposeTaskTool = model.ToolDefinition{
	Name:        "decompose_task",
	Description: "Break a complex user request into sub-tasks and assign each to a specialist agent.",
	Parameters: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"sub_tasks": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"description":    map[string]any{"type": "string", "description": "What this sub-task should accomplish"},
						"assigned_agent": map[string]any{"type": "string", "enum": []string{"thinker", "speed", "researcher", "reasoner"}, "description": "Which specialist agent to assign"},
						"priority":       map[string]any{"type": "integer", "description": "1=highest priority"},
						"depends_on":     map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "description": "IDs of sub-tasks this depends on"},
						"skills":         map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "description": "Skill IDs to inject into this agent (from find_skill results)"},
					},
					"required": []string{"description", "assigned_agent"},
				},
			},
			"strategy":  map[string]any{"type": "string", "enum": []string{"sequential", "parallel", "consensus", "iterative"}, "description": "How to execute the sub-tasks"},
			"reasoning": map[string]any{"type": "string", "description": "Why this decomposition and strategy"},
		},
		"required": []string{"sub_tasks", "strategy"},
	},
}

// DirectResponseTool answers the user without delegation.
var DirectResponseTool = model.ToolDefinition{
	Name:        "direct_response",
	Description: "Respond directly to the user without delegating to specialists. Use for simple questions.",
	Parameters: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"response": map[string]any{"type": "string", "description": "Direct answer to the user"},
		},
		"required": []string{"response"},
	},
}

// SynthesizeResultsTool combines specialist results into a final answer.
var SynthesizeResultsTool = model.ToolDefinition{
	Name:        "synthesize_results",
	Description: "Combine results from multiple specialist agents into a final coherent response.",
	Parameters: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"final_response": map[string]any{"type": "string", "description": "Synthesized final answer"},
			"confidence":     map[string]any{"type": "number", "description": "Confidence 0-1"},
			"sources":        map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "description": "Which agents contributed"},
		},
		"required": []string{"final_response"},
	},
}

// OrchestratorTools is the orchestrator's tool set: routing tools plus the
// shared memory and skill tools.
var OrchestratorTools = []model.ToolDefinition{
	SaveMemoryTool,
	RecallMemoryTool,
	DecomposeTaskTool,
	DirectResponseTool,
	SynthesizeResultsTool,
	FindSkillTool,
	UseSkillTool,
}

// SpecialistTools returns the tool set for a specialist role. The reasoner
// works from reasoning and search alone and does not get web_fetch.
func SpecialistTools(role core.Role) []model.ToolDefinition {
	if role == core.RoleReasoner {
		return []model.ToolDefinition{
			WebSearchTool,
			RecallMemoryTool,
			SaveMemoryTool,
			FindSkillTool,
			UseSkillTool,
		}
	}
	return []model.ToolDefinition{
		WebSearchTool,
		WebFetchTool,
		RecallMemoryTool,
		SaveMemoryTool,
		FindSkillTool,
		UseSkillTool,
	}
}
