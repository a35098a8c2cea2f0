package mcp

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

const defaultHandshakeTimeout = 30 * time.Second

// Implementation identifies toolchat to MCP servers during initialize.
var Implementation = &mcpsdk.Implementation{Name: "toolchat", Version: "1.0"}

// Client owns one live MCP session, either a spawned subprocess or a
// streamable HTTP connection. It is safe for concurrent use.
type Client struct {
	name    string
	session *mcpsdk.ClientSession

	closeOnce sync.Once
	closeErr  error
}

// Connect opens the transport described by cfg and completes the MCP
// initialize handshake within cfg.HandshakeTimeout. Every failure is a
// *TransportConnectError.
func Connect(ctx context.Context, name string, cfg ServerConfig) (*Client, error) {
	transport, err := transportBuilder(cfg)
	if err != nil {
		return nil, &TransportConnectError{Server: name, Err: err}
	}

	timeout := cfg.HandshakeTimeout
	if timeout <= 0 {
		timeout = defaultHandshakeTimeout
	}
	hctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	impl := mcpsdk.NewClient(Implementation, nil)
	session, err := impl.Connect(hctx, transport, nil)
	if err != nil {
		return nil, &TransportConnectError{Server: name, Err: err}
	}
	slog.Debug("MCP server connected", "server", name, "kind", cfg.Kind)
	return &Client{name: name, session: session}, nil
}

// Name returns the backend id this client was connected under.
func (c *Client) Name() string { return c.name }

// ListTools pages through the server's tools/list results.
func (c *Client) ListTools(ctx context.Context) ([]*mcpsdk.Tool, error) {
	var tools []*mcpsdk.Tool
	for tool, err := range c.session.Tools(ctx, nil) {
		if err != nil {
			return nil, err
		}
		tools = append(tools, tool)
	}
	return tools, nil
}

// CallTool invokes a tool and joins its text content. A result flagged with
// isError is returned as a *ToolError.
func (c *Client) CallTool(ctx context.Context, name string, args map[string]any) (string, error) {
	if args == nil {
		args = map[string]any{}
	}
	res, err := c.session.CallTool(ctx, &mcpsdk.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		return "", err
	}

	out := contentText(res.Content)
	if res.IsError {
		return "", &ToolError{Tool: name, Message: out}
	}
	if out == "" {
		out = "(no output)"
	}
	return out, nil
}

// Close ends the session, terminating the subprocess or HTTP session. It is
// safe to call more than once.
func (c *Client) Close() error {
	if c == nil || c.session == nil {
		return nil
	}
	c.closeOnce.Do(func() {
		c.closeErr = c.session.Close()
		slog.Debug("MCP server closed", "server", c.name)
	})
	return c.closeErr
}

func contentText(blocks []mcpsdk.Content) string {
	var parts []string
	for _, block := range blocks {
		switch b := block.(type) {
		case *mcpsdk.TextContent:
			if b.Text != "" {
				parts = append(parts, b.Text)
			}
		default:
			if data, err := json.Marshal(b); err == nil {
				parts = append(parts, string(data))
			}
		}
	}
	return strings.Join(parts, "\n")
}
