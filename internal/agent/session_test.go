package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/crystaldolphin/toolchat/internal/config"
	toolcfg "github.com/crystaldolphin/toolchat/internal/config/tool"
	"github.com/crystaldolphin/toolchat/internal/mcp"
)

type noCreds struct{}

func (noCreds) Lookup(string) string { return "" }

func TestOpen_MissingCredential(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Tools.MCPServers = map[string]toolcfg.MCPServerConfig{
		"expense": {
			Kind:           toolcfg.KindStream,
			URL:            "https://example.invalid/mcp",
			BearerTokenEnv: "FAST_MCP_API_KEY",
		},
	}

	_, err := Open(context.Background(), &cfg, noCreds{}, &scriptedProvider{}, Hooks{})
	var connErr *mcp.TransportConnectError
	if !errors.As(err, &connErr) {
		t.Fatalf("expected *mcp.TransportConnectError, got %v", err)
	}
	if connErr.Server != "expense" || !errors.Is(err, mcp.ErrMissingCredential) {
		t.Errorf("unexpected error %v", err)
	}
}

func TestOpen_UnreachableProcess(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Tools.MCPServers = map[string]toolcfg.MCPServerConfig{
		"math": {Command: "/nonexistent/toolchat-math"},
	}

	_, err := Open(context.Background(), &cfg, noCreds{}, &scriptedProvider{}, Hooks{})
	var connErr *mcp.TransportConnectError
	if !errors.As(err, &connErr) {
		t.Fatalf("expected *mcp.TransportConnectError, got %v", err)
	}
}
