package agent

// DefaultSystemPrompt is placed first in every session history.
const DefaultSystemPrompt = "You have access to tools. When you choose to call a tool, do not narrate status updates. " +
	"After tools run, return only a concise final answer."

type AgentDefaults struct {
	Model             string  `json:"model" yaml:"model"`
	MaxTokens         int     `json:"maxTokens" yaml:"maxTokens"`
	Temperature       float64 `json:"temperature" yaml:"temperature"`
	MaxToolRounds     int     `json:"maxToolRounds" yaml:"maxToolRounds"`
	SystemPrompt      string  `json:"systemPrompt" yaml:"systemPrompt"`
	LLMTimeoutSeconds int     `json:"llmTimeoutSeconds" yaml:"llmTimeoutSeconds"`
}

type AgentsConfig struct {
	Defaults AgentDefaults `json:"defaults" yaml:"defaults"`
}

func defaultAgentDefaults() AgentDefaults {
	return AgentDefaults{
		Model:             "gpt-4.1-nano",
		MaxTokens:         4096,
		Temperature:       0,
		MaxToolRounds:     1,
		SystemPrompt:      DefaultSystemPrompt,
		LLMTimeoutSeconds: 120,
	}
}

func DefaultAgentsConfig() AgentsConfig {
	return AgentsConfig{Defaults: defaultAgentDefaults()}
}
