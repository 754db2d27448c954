package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripThinking(t *testing.T) {
	assert.Equal(t, "answer", StripThinking("<think>hmm</think>answer"))
	assert.Equal(t, "answer", StripThinking("<THINK>hmm\nmore</THINK>\nanswer"))
	// unterminated block swallows the rest
	assert.Equal(t, "before", StripThinking("before<think>never closed"))
	assert.Equal(t, "plain", StripThinking("plain"))
	assert.Equal(t, "", StripThinking(""))
}

func TestParseTextToolCalls(t *testing.T) {
	calls := parseTextToolCalls(`<tool_call>{"name": "web_search", "arguments": {"query": "go"}}</tool_call>`)
	require.Len(t, calls, 1)
	assert.Equal(t, "web_search", calls[0].Name)
	assert.JSONEq(t, `{"query":"go"}`, calls[0].Arguments)
	assert.Contains(t, calls[0].ID, "text_call_")
}

func TestParseTextToolCalls_AlternateShapes(t *testing.T) {
	// name and arguments nested under "function"
	calls := parseTextToolCalls(`<tool_call>{"function": {"name": "use_skill", "arguments": {"skill_id": "debugging"}}}</tool_call>`)
	require.Len(t, calls, 1)
	assert.Equal(t, "use_skill", calls[0].Name)

	// "parameters" instead of "arguments"
	calls = parseTextToolCalls(`<tool_call>{"name": "find_skill", "parameters": {"query": "math"}}</tool_call>`)
	require.Len(t, calls, 1)
	assert.JSONEq(t, `{"query":"math"}`, calls[0].Arguments)

	// string arguments pass through untouched
	calls = parseTextToolCalls(`<tool_call>{"name": "find_skill", "arguments": "{\"query\":\"x\"}"}</tool_call>`)
	require.Len(t, calls, 1)
	assert.Equal(t, `{"query":"x"}`, calls[0].Arguments)
}

func TestParseTextToolCalls_SkipsMalformed(t *testing.T) {
	content := `<tool_call>not json</tool_call><tool_call>{"name": "web_search", "arguments": {}}</tool_call>`
	calls := parseTextToolCalls(content)
	require.Len(t, calls, 1)
	assert.Equal(t, "web_search", calls[0].Name)

	assert.Nil(t, parseTextToolCalls("no calls here"))
	assert.Nil(t, parseTextToolCalls(`<tool_call>{"arguments": {}}</tool_call>`)) // missing name
}

func TestStripToolCallTags(t *testing.T) {
	content := `Let me search. <tool_call>{"name": "web_search"}</tool_call>`
	assert.Equal(t, "Let me search.", stripToolCallTags(content))
}

func TestParseArgs_RepairsMalformedJSON(t *testing.T) {
	args, err := parseArgs(`{"query": "go"}`)
	require.NoError(t, err)
	assert.Equal(t, "go", args["query"])

	// trailing comma is repairable
	args, err = parseArgs(`{"query": "go",}`)
	require.NoError(t, err)
	assert.Equal(t, "go", args["query"])

	// empty arguments mean no parameters
	args, err = parseArgs("")
	require.NoError(t, err)
	assert.Empty(t, args)
}
