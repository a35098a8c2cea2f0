package provider

// ProviderConfig selects the OpenAI-compatible chat endpoint and its
// credentials. Name picks a known endpoint ("openai", "openrouter", "ollama",
// ...); APIBase overrides its URL. APIKey wins over APIKeyEnv when both are set.
type ProviderConfig struct {
	Name         string            `json:"name" yaml:"name"`
	APIKey       string            `json:"apiKey" yaml:"apiKey"`
	APIKeyEnv    string            `json:"apiKeyEnv" yaml:"apiKeyEnv"`
	APIBase      string            `json:"apiBase,omitempty" yaml:"apiBase,omitempty"`
	ExtraHeaders map[string]string `json:"extraHeaders,omitempty" yaml:"extraHeaders,omitempty"`
}

func DefaultProviderConfig() ProviderConfig {
	return ProviderConfig{
		Name:      "openai",
		APIKeyEnv: "OPENAI_API_KEY",
	}
}
