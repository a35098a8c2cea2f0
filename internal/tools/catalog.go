package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/jonwraymond/toolfoundation/model"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/sync/errgroup"

	"github.com/crystaldolphin/toolchat/internal/schema"
)

// Backend is a connected tool host. *mcp.Client implements it.
type Backend interface {
	Name() string
	ListTools(ctx context.Context) ([]*mcpsdk.Tool, error)
	CallTool(ctx context.Context, name string, args map[string]any) (string, error)
}

// CatalogOptions controls how discovered tools are named.
type CatalogOptions struct {
	// Namespace exposes every tool as "<backend>_<tool>".
	Namespace bool
}

// Entry is one catalog tool bound to the backend that owns it.
type Entry struct {
	Descriptor model.Tool

	name    string
	backend Backend
}

var _ schema.Tool = (*Entry)(nil)

func (e *Entry) Name() string        { return e.name }
func (e *Entry) Description() string { return e.Descriptor.Description }

// Backend returns the id of the owning backend.
func (e *Entry) Backend() string { return e.Descriptor.Namespace }

// Parameters returns the input schema, falling back to an empty object schema.
func (e *Entry) Parameters() json.RawMessage {
	if e.Descriptor.InputSchema != nil {
		if data, err := json.Marshal(e.Descriptor.InputSchema); err == nil && string(data) != "null" {
			return data
		}
	}
	return json.RawMessage(`{"type":"object","properties":{}}`)
}

// Execute calls the tool on its backend under its original name.
func (e *Entry) Execute(ctx context.Context, params map[string]any) (string, error) {
	return e.backend.CallTool(ctx, e.Descriptor.Name, params)
}

// Catalog maps exposed tool names to their entries. It is built once and is
// read-only afterwards, so concurrent lookups need no locking.
type Catalog struct {
	entries map[string]*Entry
}

// BuildCatalog lists the tools of every backend concurrently and merges them in
// backend-name order. A discovery failure or a duplicate name fails the build.
func BuildCatalog(ctx context.Context, backends []Backend, opts CatalogOptions) (*Catalog, error) {
	sorted := make([]Backend, len(backends))
	copy(sorted, backends)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Name() < sorted[j].Name() })

	discovered := make([][]*mcpsdk.Tool, len(sorted))
	g, gctx := errgroup.WithContext(ctx)
	for i, b := range sorted {
		g.Go(func() error {
			list, err := b.ListTools(gctx)
			if err != nil {
				return fmt.Errorf("list tools on %q: %w", b.Name(), err)
			}
			discovered[i] = list
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	cat := &Catalog{entries: make(map[string]*Entry)}
	for i, b := range sorted {
		for _, t := range discovered[i] {
			if t == nil || t.Name == "" {
				continue
			}
			name := t.Name
			if opts.Namespace {
				name = b.Name() + "_" + t.Name
			}
			if prev, ok := cat.entries[name]; ok {
				return nil, &CatalogCollisionError{Tool: name, First: prev.Backend(), Second: b.Name()}
			}
			cat.entries[name] = &Entry{
				Descriptor: model.Tool{Tool: *t, Namespace: b.Name()},
				name:       name,
				backend:    b,
			}
			slog.Debug("tool registered", "server", b.Name(), "tool", name)
		}
		slog.Info("tools discovered", "server", b.Name(), "tools", len(discovered[i]))
	}
	return cat, nil
}

// Resolve returns the entry for name. The canonical "<backend>:<tool>" id is
// accepted as well.
func (c *Catalog) Resolve(name string) (*Entry, bool) {
	if e, ok := c.entries[name]; ok {
		return e, true
	}
	if !strings.Contains(name, ":") {
		return nil, false
	}
	backend, tool, err := model.ParseToolID(name)
	if err != nil {
		return nil, false
	}
	for _, e := range c.entries {
		if e.Backend() == backend && e.Descriptor.Name == tool {
			return e, true
		}
	}
	return nil, false
}

// Lookup resolves name to the callable tool.
func (c *Catalog) Lookup(name string) (schema.Tool, bool) {
	e, ok := c.Resolve(name)
	if !ok {
		return nil, false
	}
	return e, true
}

// Len returns the number of tools in the catalog.
func (c *Catalog) Len() int { return len(c.entries) }

// Names returns the exposed tool names, sorted.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.entries))
	for name := range c.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Entries returns the catalog entries sorted by name.
func (c *Catalog) Entries() []*Entry {
	names := c.Names()
	out := make([]*Entry, 0, len(names))
	for _, name := range names {
		out = append(out, c.entries[name])
	}
	return out
}

// Definitions returns all tool definitions in OpenAI function-calling format,
// sorted by name.
func (c *Catalog) Definitions() []map[string]any {
	entries := c.Entries()
	list := make([]map[string]any, 0, len(entries))
	for _, e := range entries {
		var params any
		if err := json.Unmarshal(e.Parameters(), &params); err != nil {
			params = map[string]any{"type": "object", "properties": map[string]any{}}
		}
		list = append(list, map[string]any{
			"type": "function",
			"function": map[string]any{
				"name":        e.Name(),
				"description": e.Description(),
				"parameters":  params,
			},
		})
	}
	return list
}
