package mcp

import (
	"fmt"
	"time"

	toolcfg "github.com/crystaldolphin/toolchat/internal/config/tool"
)

// ServerConfig holds the connection parameters for a single MCP server, with
// credentials already resolved.
type ServerConfig struct {
	Kind    string
	Command string
	Args    []string
	Env     map[string]string
	URL     string
	Headers map[string]string

	// BearerToken is sent as "Authorization: Bearer <token>" on stream transports.
	BearerToken string

	// HandshakeTimeout bounds the initialize exchange. Zero means 30s.
	HandshakeTimeout time.Duration
}

// CredentialSource resolves secrets by name. *config.Credentials implements it.
type CredentialSource interface {
	Lookup(key string) string
}

// FromConfig converts a config-layer server entry into a ServerConfig. A bearer
// token variable that resolves to nothing is reported as a connect error so the
// backend is never contacted unauthenticated.
func FromConfig(name string, c toolcfg.MCPServerConfig, creds CredentialSource, handshake time.Duration) (ServerConfig, error) {
	cfg := ServerConfig{
		Kind:             c.ResolvedKind(),
		Command:          c.Command,
		Args:             c.Args,
		Env:              c.Env,
		URL:              c.URL,
		Headers:          c.Headers,
		HandshakeTimeout: handshake,
	}
	if c.BearerTokenEnv != "" {
		var token string
		if creds != nil {
			token = creds.Lookup(c.BearerTokenEnv)
		}
		if token == "" {
			return ServerConfig{}, &TransportConnectError{
				Server: name,
				Err:    fmt.Errorf("%w: %s is not set", ErrMissingCredential, c.BearerTokenEnv),
			}
		}
		cfg.BearerToken = token
	}
	return cfg, nil
}

// ConfigsFrom converts every configured server; the first failure is returned.
func ConfigsFrom(servers map[string]toolcfg.MCPServerConfig, creds CredentialSource, handshake time.Duration) (map[string]ServerConfig, error) {
	out := make(map[string]ServerConfig, len(servers))
	for name, c := range servers {
		cfg, err := FromConfig(name, c, creds, handshake)
		if err != nil {
			return nil, err
		}
		out[name] = cfg
	}
	return out, nil
}
