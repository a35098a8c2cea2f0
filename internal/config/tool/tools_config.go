package tool

// ToolsConfig groups all tool-level settings.
type ToolsConfig struct {
	NamespaceTools          bool                       `json:"namespaceTools" yaml:"namespaceTools"`
	TimeoutSeconds          int                        `json:"timeoutSeconds" yaml:"timeoutSeconds"`
	HandshakeTimeoutSeconds int                        `json:"handshakeTimeoutSeconds" yaml:"handshakeTimeoutSeconds"`
	Concurrency             int                        `json:"concurrency" yaml:"concurrency"`
	MCPServers              map[string]MCPServerConfig `json:"mcpServers" yaml:"mcpServers"`
}

// DefaultToolConfigs wires the two backends of the reference deployment: the
// bundled arithmetic server spawned over stdio and the hosted expense tracker.
// selfCommand is the executable that serves the "math-server" subcommand.
func DefaultToolConfigs(selfCommand string) ToolsConfig {
	return ToolsConfig{
		TimeoutSeconds:          30,
		HandshakeTimeoutSeconds: 30,
		Concurrency:             4,
		MCPServers: map[string]MCPServerConfig{
			"math": {
				Kind:    KindProcess,
				Command: selfCommand,
				Args:    []string{"math-server"},
			},
			"expense": {
				Kind:           KindStream,
				URL:            "https://simple-addition.fastmcp.app/mcp",
				BearerTokenEnv: "FAST_MCP_API_KEY",
			},
		},
	}
}
