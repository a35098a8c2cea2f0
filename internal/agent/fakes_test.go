package agent

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/crystaldolphin/toolchat/internal/schema"
)

// scriptedProvider replays canned responses and records every request.
type scriptedProvider struct {
	mu        sync.Mutex
	responses []scripted
	requests  []providerRequest
}

type scripted struct {
	resp schema.LLMResponse
	err  error
}

type providerRequest struct {
	Messages schema.Messages
	Tools    []map[string]any
}

func (p *scriptedProvider) Chat(ctx context.Context, messages schema.Messages, tools []map[string]any, opts schema.ChatOptions) (schema.LLMResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.requests = append(p.requests, providerRequest{Messages: messages, Tools: tools})
	if len(p.responses) == 0 {
		return schema.LLMResponse{}, errors.New("script exhausted")
	}
	next := p.responses[0]
	p.responses = p.responses[1:]
	return next.resp, next.err
}

func (p *scriptedProvider) DefaultModel() string { return "scripted" }

func (p *scriptedProvider) calls() []providerRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]providerRequest(nil), p.requests...)
}

func answer(text string) scripted {
	return scripted{resp: schema.LLMResponse{Content: text, FinishReason: "stop"}}
}

func toolCalls(calls ...schema.ToolCallRequest) scripted {
	return scripted{resp: schema.LLMResponse{ToolCalls: calls, FinishReason: "tool_calls"}}
}

// mathBackend is an in-process arithmetic backend.
type mathBackend struct {
	name   string
	mu     sync.Mutex
	closed int
}

func (b *mathBackend) Name() string { return b.name }

func (b *mathBackend) ListTools(ctx context.Context) ([]*mcpsdk.Tool, error) {
	var out []*mcpsdk.Tool
	for _, name := range []string{"add", "divide"} {
		out = append(out, &mcpsdk.Tool{Name: name, InputSchema: map[string]any{"type": "object"}})
	}
	return out, nil
}

func (b *mathBackend) CallTool(ctx context.Context, name string, args map[string]any) (string, error) {
	a, _ := args["a"].(float64)
	c, _ := args["b"].(float64)
	switch name {
	case "add":
		return fmt.Sprint(a + c), nil
	case "divide":
		if c == 0 {
			return "", errors.New("Cannot divide by zero")
		}
		return fmt.Sprint(a / c), nil
	}
	return "", fmt.Errorf("unknown tool %s", name)
}

func (b *mathBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed++
	return nil
}

func (b *mathBackend) closeCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

type transitionLog struct {
	mu    sync.Mutex
	steps [][2]State
}

func (l *transitionLog) record(from, to State) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.steps = append(l.steps, [2]State{from, to})
}

func (l *transitionLog) count(from, to State) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, s := range l.steps {
		if s[0] == from && s[1] == to {
			n++
		}
	}
	return n
}

func assertCorrelated(t *testing.T, msgs []schema.Message) {
	t.Helper()
	for i, m := range msgs {
		if !m.HasToolCalls() {
			continue
		}
		for j, tc := range m.ToolCalls {
			k := i + 1 + j
			if k >= len(msgs) {
				t.Fatalf("tool call %s has no result", tc.ID)
			}
			res := msgs[k]
			if res.Role != schema.RoleTool || res.ToolCallID != tc.ID {
				t.Fatalf("message %d should answer %s, got %+v", k, tc.ID, res)
			}
		}
	}
}
