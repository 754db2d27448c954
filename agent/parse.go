package agent

import (
	"encoding/json"
	"strings"

	"github.com/hupe1980/agentcrew/core"
	"github.com/hupe1980/agentcrew/model"
	"github.com/kaptinlin/jsonrepair"

	"regexp"
)

var (
	thinkRe     = regexp.MustCompile(`(?is)<think>.*?</think>`)
	thinkOpenRe = regexp.MustCompile(`(?is)<think>.*`)
	toolCallRe  = regexp.MustCompile(`(?is)<tool_call>\s*(.*?)\s*</tool_call>`)
)

// StripThinking removes <think> blocks some models embed in their output,
// including an unterminated trailing block.
func StripThinking(text string) string {
	if text == "" {
		return text
	}
	cleaned := thinkRe.ReplaceAllString(text, "")
	cleaned = thinkOpenRe.ReplaceAllString(cleaned, "")
	return strings.TrimSpace(cleaned)
}

// parseTextToolCalls extracts tool calls that models emit as
// <tool_call>{json}</tool_call> text instead of the native tool call format.
// Malformed blocks are skipped.
func parseTextToolCalls(content string) []model.ToolCall {
	if content == "" {
		return nil
	}
	matches := toolCallRe.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}

	var calls []model.ToolCall
	for _, m := range matches {
		var data map[string]any
		if err := json.Unmarshal([]byte(m[1]), &data); err != nil {
			continue
		}

		name, _ := data["name"].(string)
		if name == "" {
			if fn, ok := data["function"].(map[string]any); ok {
				name, _ = fn["name"].(string)
			}
		}
		if name == "" {
			continue
		}

		args := data["arguments"]
		if args == nil {
			args = data["parameters"]
		}
		if args == nil {
			if fn, ok := data["function"].(map[string]any); ok {
				args = fn["arguments"]
			}
		}

		argsJSON := "{}"
		switch v := args.(type) {
		case string:
			argsJSON = v
		case map[string]any:
			if raw, err := json.Marshal(v); err == nil {
				argsJSON = string(raw)
			}
		}

		calls = append(calls, model.ToolCall{
			ID:        "text_call_" + core.NewID()[:8],
			Name:      name,
			Arguments: argsJSON,
		})
	}
	return calls
}

// stripToolCallTags removes parsed <tool_call> blocks from model text.
func stripToolCallTags(content string) string {
	return strings.TrimSpace(toolCallRe.ReplaceAllString(content, ""))
}

// parseArgs decodes a tool call argument string, repairing malformed JSON
// before giving up.
func parseArgs(raw string) (map[string]any, error) {
	if strings.TrimSpace(raw) == "" {
		return map[string]any{}, nil
	}
	var args map[string]any
	if err := json.Unmarshal([]byte(raw), &args); err == nil {
		return args, nil
	}
	repaired, err := jsonrepair.JSONRepair(raw)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(repaired), &args); err != nil {
		return nil, err
	}
	return args, nil
}
