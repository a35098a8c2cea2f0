package schema

import "time"

// AgentSettings holds the per-session knobs of the conversation engine.
type AgentSettings struct {
	Model           string
	MaxTokens       int
	Temperature     float64
	MaxToolRounds   int
	SystemPrompt    string
	LLMTimeout      time.Duration
	ToolTimeout     time.Duration
	ToolConcurrency int
}
