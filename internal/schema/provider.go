package schema

import (
	"context"
	"encoding/json"
)

// ChatOptions configures a single LLM chat request.
type ChatOptions struct {
	Model       string
	MaxTokens   int
	Temperature float64
}

func NewChatOptions(model string, maxTokens int, temperature float64) ChatOptions {
	return ChatOptions{
		Model:       model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}
}

// ToolCallRequest is one tool invocation requested by the LLM.
//
// Arguments is either a structured map[string]any or the raw encoded string
// the provider received; the tool invoker normalises both shapes.
type ToolCallRequest struct {
	ID        string
	Name      string
	Arguments any
}

// ToWireMap serialises a ToolCallRequest into the OpenAI wire-format map.
// Structured arguments are encoded; raw string arguments are sent as received.
func (tc ToolCallRequest) ToWireMap() map[string]any {
	return map[string]any{
		"id":   tc.ID,
		"type": "function",
		"function": map[string]any{
			"name":      tc.Name,
			"arguments": tc.ArgumentsString(),
		},
	}
}

// ArgumentsString returns the arguments as an encoded JSON string.
func (tc ToolCallRequest) ArgumentsString() string {
	switch v := tc.Arguments.(type) {
	case nil:
		return "{}"
	case string:
		return v
	case json.RawMessage:
		return string(v)
	case []byte:
		return string(v)
	}
	data, err := json.Marshal(tc.Arguments)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// ToolCallResult answers exactly one ToolCallRequest with the same ID.
// Err is set when Payload carries an error description.
type ToolCallResult struct {
	ID      string
	Name    string
	Payload string
	Err     error
}

// LLMResponse is the normalised response from any LLM provider.
type LLMResponse struct {
	Content      string
	ToolCalls    []ToolCallRequest
	FinishReason string
	Usage        map[string]int // "prompt_tokens", "completion_tokens", "total_tokens"
}

// HasToolCalls reports whether the response contains at least one tool call.
func (r LLMResponse) HasToolCalls() bool { return len(r.ToolCalls) > 0 }

// LLMProvider is the decision function: given the history and the tools it may
// call, it either answers or requests tool calls.
type LLMProvider interface {
	Chat(ctx context.Context, messages Messages, tools []map[string]any, opts ChatOptions) (LLMResponse, error)
	DefaultModel() string
}
