// Package openai adapts the OpenAI Chat Completions API (and any
// OpenAI-compatible endpoint) to the generic model.Model interface. The
// adapter is non-streaming: one request, one complete response, with tool
// calls, token usage and any reasoning side channel mapped onto
// model.Response.
package openai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hupe1980/agentcrew/model"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Options configure the adapter. BaseURL selects an OpenAI-compatible
// endpoint; Extra is merged into the request body for provider-specific
// parameters (reasoning budgets, chat template switches and the like).
type Options struct {
	Model       string
	MaxTokens   int64
	Temperature float64
	TopP        float64
	BaseURL     string
	APIKey      string
	Extra       map[string]any
}

// Model wraps the OpenAI client behind model.Model.
type Model struct {
	client *openai.Client
	opts   Options
}

// NewModel creates an adapter with its own client.
func NewModel(optFns ...func(o *Options)) *Model {
	opts := Options{
		Model:       openai.ChatModelGPT4oMini,
		MaxTokens:   4096,
		Temperature: 0.7,
		TopP:        1.0,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	var clientOpts []option.RequestOption
	if opts.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(opts.BaseURL))
	}
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}
	client := openai.NewClient(clientOpts...)

	return &Model{client: &client, opts: opts}
}

// NewModelFromClient creates an adapter from an existing client.
func NewModelFromClient(client *openai.Client, optFns ...func(o *Options)) *Model {
	opts := Options{
		Model:       openai.ChatModelGPT4oMini,
		MaxTokens:   4096,
		Temperature: 0.7,
		TopP:        1.0,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Model{client: client, opts: opts}
}

// Generate implements model.Model.
func (m *Model) Generate(ctx context.Context, req model.Request) (*model.Response, error) {
	params := openai.ChatCompletionNewParams{
		Messages:            buildMessages(req.Messages),
		Model:               m.opts.Model,
		Temperature:         openai.Float(m.opts.Temperature),
		TopP:                openai.Float(m.opts.TopP),
		MaxCompletionTokens: openai.Int(m.opts.MaxTokens),
	}
	if len(req.Tools) > 0 {
		tools := make([]openai.ChatCompletionToolParam, len(req.Tools))
		for i, tdef := range req.Tools {
			tools[i] = openai.ChatCompletionToolParam{
				Type: "function",
				Function: openai.FunctionDefinitionParam{
					Name:        tdef.Name,
					Description: openai.String(tdef.Description),
					Parameters:  tdef.Parameters,
				},
			}
		}
		params.Tools = tools
	}

	var reqOpts []option.RequestOption
	for k, v := range m.opts.Extra {
		reqOpts = append(reqOpts, option.WithJSONSet(k, v))
	}

	resp, err := m.client.Chat.Completions.New(ctx, params, reqOpts...)
	if err != nil {
		return nil, fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai api error: no choices returned")
	}

	choice := resp.Choices[0]
	out := &model.Response{
		Content:      choice.Message.Content,
		FinishReason: choice.FinishReason,
		Thinking:     extractReasoning(choice.Message),
		Usage: model.Usage{
			PromptTokens:     int(resp.Usage.PromptTokens),
			CompletionTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:      int(resp.Usage.TotalTokens),
		},
	}
	for _, tc := range choice.Message.ToolCalls {
		out.ToolCalls = append(out.ToolCalls, model.ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	}
	return out, nil
}

// buildMessages converts neutral messages into SDK message unions, keeping
// assistant tool calls and their tool results adjacent.
func buildMessages(messages []model.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case "system":
			out = append(out, openai.SystemMessage(msg.Content))
		case "assistant":
			if len(msg.ToolCalls) == 0 {
				out = append(out, openai.AssistantMessage(msg.Content))
				continue
			}
			calls := make([]openai.ChatCompletionMessageToolCallParam, len(msg.ToolCalls))
			for i, tc := range msg.ToolCalls {
				calls[i] = openai.ChatCompletionMessageToolCallParam{
					ID:   tc.ID,
					Type: "function",
					Function: openai.ChatCompletionMessageToolCallFunctionParam{
						Name:      tc.Name,
						Arguments: tc.Arguments,
					},
				}
			}
			out = append(out, openai.ChatCompletionMessageParamUnion{
				OfAssistant: &openai.ChatCompletionAssistantMessageParam{
					Role:      "assistant",
					ToolCalls: calls,
				},
			})
		case "tool":
			out = append(out, openai.ToolMessage(msg.Content, msg.ToolCallID))
		default:
			out = append(out, openai.UserMessage(msg.Content))
		}
	}
	return out
}

// extractReasoning pulls a reasoning side channel out of the response when
// the endpoint provides one. OpenAI-compatible providers surface it as a
// non-standard message field, so it only exists in the raw JSON.
func extractReasoning(msg openai.ChatCompletionMessage) string {
	for _, key := range []string{"reasoning_content", "reasoning", "thinking"} {
		if f, ok := msg.JSON.ExtraFields[key]; ok && f.Valid() {
			var s string
			if err := json.Unmarshal([]byte(f.Raw()), &s); err == nil && s != "" {
				return s
			}
		}
	}
	return ""
}

// Info implements model.Model.
func (m *Model) Info() model.Info {
	return model.Info{Name: m.opts.Model, Provider: "openai", SupportsTools: true}
}
