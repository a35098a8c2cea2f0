// Package config defines the configuration schema for toolchat.
//
// JSON keys use camelCase; YAML files use the same keys.
package config

import (
	"os"
	"time"

	"github.com/crystaldolphin/toolchat/internal/config/agent"
	"github.com/crystaldolphin/toolchat/internal/config/provider"
	"github.com/crystaldolphin/toolchat/internal/config/tool"
	"github.com/crystaldolphin/toolchat/internal/schema"
)

// Config is the root configuration object, loaded from ~/.toolchat/config.json.
type Config struct {
	Agents   agent.AgentsConfig      `json:"agents" yaml:"agents"`
	Provider provider.ProviderConfig `json:"provider" yaml:"provider"`
	Tools    tool.ToolsConfig        `json:"tools" yaml:"tools"`
}

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() Config {
	return Config{
		Agents:   agent.DefaultAgentsConfig(),
		Provider: provider.DefaultProviderConfig(),
		Tools:    tool.DefaultToolConfigs(selfCommand()),
	}
}

// AgentSettings converts the agent and tool sections into engine settings.
func (c *Config) AgentSettings() schema.AgentSettings {
	d := c.Agents.Defaults
	rounds := d.MaxToolRounds
	if rounds <= 0 {
		rounds = 1
	}
	return schema.AgentSettings{
		Model:           d.Model,
		MaxTokens:       d.MaxTokens,
		Temperature:     d.Temperature,
		MaxToolRounds:   rounds,
		SystemPrompt:    d.SystemPrompt,
		LLMTimeout:      seconds(d.LLMTimeoutSeconds, 120),
		ToolTimeout:     seconds(c.Tools.TimeoutSeconds, 30),
		ToolConcurrency: c.Tools.Concurrency,
	}
}

// HandshakeTimeout bounds the MCP initialize exchange of every backend.
func (c *Config) HandshakeTimeout() time.Duration {
	return seconds(c.Tools.HandshakeTimeoutSeconds, 30)
}

func seconds(n, def int) time.Duration {
	if n <= 0 {
		n = def
	}
	return time.Duration(n) * time.Second
}

// selfCommand returns the path of the running binary so the default "math"
// backend can spawn it with the math-server subcommand.
func selfCommand() string {
	exe, err := os.Executable()
	if err != nil {
		return "toolchat"
	}
	return exe
}
