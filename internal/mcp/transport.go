package mcp

import (
	"fmt"
	"net/http"
	"os"
	"os/exec"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	toolcfg "github.com/crystaldolphin/toolchat/internal/config/tool"
)

// transportBuilder is overridden in tests to connect over in-memory pipes.
var transportBuilder = buildTransport

func buildTransport(cfg ServerConfig) (mcpsdk.Transport, error) {
	switch cfg.Kind {
	case toolcfg.KindProcess:
		if cfg.Command == "" {
			return nil, fmt.Errorf("process transport: command is empty")
		}
		cmd := exec.Command(cfg.Command, cfg.Args...) // #nosec G204 -- command comes from the local config file
		if len(cfg.Env) > 0 {
			cmd.Env = os.Environ()
			for k, v := range cfg.Env {
				cmd.Env = append(cmd.Env, k+"="+v)
			}
		}
		return &mcpsdk.CommandTransport{Command: cmd}, nil
	case toolcfg.KindStream:
		if cfg.URL == "" {
			return nil, fmt.Errorf("stream transport: url is empty")
		}
		return &mcpsdk.StreamableClientTransport{
			Endpoint:   cfg.URL,
			HTTPClient: &http.Client{Transport: newHeaderTransport(cfg.Headers, cfg.BearerToken)},
		}, nil
	default:
		return nil, fmt.Errorf("unknown transport kind %q (want %q or %q)", cfg.Kind, toolcfg.KindProcess, toolcfg.KindStream)
	}
}

// headerTransport adds fixed headers to every outgoing request.
type headerTransport struct {
	headers map[string]string
	base    http.RoundTripper
}

func newHeaderTransport(headers map[string]string, bearer string) *headerTransport {
	h := make(map[string]string, len(headers)+1)
	for k, v := range headers {
		h[k] = v
	}
	if bearer != "" {
		h["Authorization"] = "Bearer " + bearer
	}
	return &headerTransport{headers: h, base: http.DefaultTransport}
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if len(t.headers) == 0 {
		return t.base.RoundTrip(req)
	}
	req = req.Clone(req.Context())
	for k, v := range t.headers {
		req.Header.Set(k, v)
	}
	return t.base.RoundTrip(req)
}
