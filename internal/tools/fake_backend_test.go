package tools

import (
	"context"
	"errors"
	"sync"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

type callRecord struct {
	Tool string
	Args map[string]any
}

// fakeBackend serves a fixed tool list; calls are answered by handler.
type fakeBackend struct {
	name    string
	tools   []string
	listErr error
	handler func(ctx context.Context, name string, args map[string]any) (string, error)

	mu    sync.Mutex
	calls []callRecord
}

func newFakeBackend(name string, tools ...string) *fakeBackend {
	return &fakeBackend{name: name, tools: tools}
}

func (b *fakeBackend) Name() string { return b.name }

func (b *fakeBackend) ListTools(ctx context.Context) ([]*mcpsdk.Tool, error) {
	if b.listErr != nil {
		return nil, b.listErr
	}
	out := make([]*mcpsdk.Tool, 0, len(b.tools))
	for _, name := range b.tools {
		out = append(out, &mcpsdk.Tool{
			Name:        name,
			Description: name + " on " + b.name,
			InputSchema: map[string]any{"type": "object", "properties": map[string]any{}},
		})
	}
	return out, nil
}

func (b *fakeBackend) CallTool(ctx context.Context, name string, args map[string]any) (string, error) {
	b.mu.Lock()
	b.calls = append(b.calls, callRecord{Tool: name, Args: args})
	b.mu.Unlock()
	if b.handler == nil {
		return "", errors.New("no handler")
	}
	return b.handler(ctx, name, args)
}

func (b *fakeBackend) recorded() []callRecord {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]callRecord(nil), b.calls...)
}
