package tool

// Transport kinds.
const (
	KindProcess = "process"
	KindStream  = "stream"
)

// MCPServerConfig describes one MCP server connection (subprocess or
// streamable HTTP). Kind may be left empty: a command implies "process" and a
// url implies "stream".
type MCPServerConfig struct {
	Kind           string            `json:"kind,omitempty" yaml:"kind,omitempty"`
	Command        string            `json:"command,omitempty" yaml:"command,omitempty"`
	Args           []string          `json:"args,omitempty" yaml:"args,omitempty"`
	Env            map[string]string `json:"env,omitempty" yaml:"env,omitempty"`
	URL            string            `json:"url,omitempty" yaml:"url,omitempty"`
	Headers        map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	BearerTokenEnv string            `json:"bearerTokenEnv,omitempty" yaml:"bearerTokenEnv,omitempty"`
}

// ResolvedKind returns Kind, inferring it from Command/URL when unset.
func (c MCPServerConfig) ResolvedKind() string {
	if c.Kind != "" {
		return c.Kind
	}
	if c.Command != "" {
		return KindProcess
	}
	if c.URL != "" {
		return KindStream
	}
	return ""
}
