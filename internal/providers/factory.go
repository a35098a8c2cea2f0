package providers

import (
	"time"

	"github.com/crystaldolphin/toolchat/internal/schema"
)

// Params are the raw values needed to construct a schema.LLMProvider.
// Extracted from config.Config by the caller to avoid an import cycle.
type Params struct {
	ProviderName string // registry name, e.g. "openrouter"
	APIKey       string
	APIBase      string
	ExtraHeaders map[string]string
	DefaultModel string
	Timeout      time.Duration
}

// New creates the provider for p. Every known endpoint speaks the OpenAI chat
// completions protocol.
func New(p Params) schema.LLMProvider {
	spec := Detect(p.ProviderName, p.APIKey, p.APIBase)
	return NewOpenAIProvider(p.APIKey, p.APIBase, p.DefaultModel, spec, p.ExtraHeaders, p.Timeout)
}
