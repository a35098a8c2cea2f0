package providers

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Spec is the metadata record for one OpenAI-compatible endpoint.
type Spec struct {
	Name        string // config name, e.g. "openrouter"
	DisplayName string // shown by the tools and onboard commands
	EnvKey      string // env var conventionally holding the API key

	DefaultAPIBase string

	// Gateway endpoints route "vendor/model" names themselves, so the
	// model string is passed through untouched.
	IsGateway           bool
	DetectByKeyPrefix   string // api key prefix identifying the gateway
	DetectByBaseKeyword string // api base substring identifying the endpoint

	// Local endpoints accept any key, including none.
	IsLocal bool
}

var titleCaser = cases.Title(language.English)

// Label returns the display name, defaulting to the title-cased Name.
func (s Spec) Label() string {
	if s.DisplayName != "" {
		return s.DisplayName
	}
	return titleCaser.String(s.Name)
}

// Specs lists the known endpoints. Order = match priority.
var Specs = []Spec{
	{
		Name:           "openai",
		DisplayName:    "OpenAI",
		EnvKey:         "OPENAI_API_KEY",
		DefaultAPIBase: "https://api.openai.com/v1",
	},
	{
		Name:                "openrouter",
		DisplayName:         "OpenRouter",
		EnvKey:              "OPENROUTER_API_KEY",
		DefaultAPIBase:      "https://openrouter.ai/api/v1",
		IsGateway:           true,
		DetectByKeyPrefix:   "sk-or-",
		DetectByBaseKeyword: "openrouter",
	},
	{
		Name:                "deepseek",
		DisplayName:         "DeepSeek",
		EnvKey:              "DEEPSEEK_API_KEY",
		DefaultAPIBase:      "https://api.deepseek.com/v1",
		DetectByBaseKeyword: "deepseek",
	},
	{
		Name:                "groq",
		EnvKey:              "GROQ_API_KEY",
		DefaultAPIBase:      "https://api.groq.com/openai/v1",
		DetectByBaseKeyword: "groq",
	},
	{
		Name:                "ollama",
		DefaultAPIBase:      "http://localhost:11434/v1",
		DetectByBaseKeyword: "11434",
		IsLocal:             true,
	},
	{
		Name:           "vllm",
		DisplayName:    "vLLM",
		DefaultAPIBase: "http://localhost:8000/v1",
		IsLocal:        true,
	},
}

// FindByName returns the spec with the given name, or nil.
func FindByName(name string) *Spec {
	name = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for i := range Specs {
		if Specs[i].Name == name {
			return &Specs[i]
		}
	}
	return nil
}

// Detect picks the spec for a provider. An explicit name wins, then the api key
// prefix, then a keyword in the api base. It falls back to OpenAI.
func Detect(name, apiKey, apiBase string) *Spec {
	if s := FindByName(name); s != nil {
		return s
	}
	for i := range Specs {
		s := &Specs[i]
		if s.DetectByKeyPrefix != "" && strings.HasPrefix(apiKey, s.DetectByKeyPrefix) {
			return s
		}
	}
	base := strings.ToLower(apiBase)
	for i := range Specs {
		s := &Specs[i]
		if s.DetectByBaseKeyword != "" && strings.Contains(base, s.DetectByBaseKeyword) {
			return s
		}
	}
	return &Specs[0]
}

// resolveModel strips a "<provider>/" prefix so the endpoint receives the bare
// model name. Gateways keep the prefix because they route on it.
func (s *Spec) resolveModel(model string) string {
	if s == nil || s.IsGateway {
		return model
	}
	prefix := s.Name + "/"
	if strings.HasPrefix(strings.ToLower(model), prefix) {
		return model[len(prefix):]
	}
	return model
}
