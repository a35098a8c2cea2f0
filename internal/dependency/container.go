// Package dependency wires core toolchat services using go.uber.org/dig.
package dependency

import (
	"context"
	"fmt"

	"go.uber.org/dig"

	"github.com/crystaldolphin/toolchat/internal/agent"
	"github.com/crystaldolphin/toolchat/internal/config"
	"github.com/crystaldolphin/toolchat/internal/providers"
	"github.com/crystaldolphin/toolchat/internal/schema"
)

// Container holds the dig graph for one CLI invocation.
// Callers use the typed getter methods; they never need to import dig directly.
type Container struct {
	d     *dig.Container
	cfg   *config.Config
	creds *config.Credentials
}

// EnvFile is a named string type so dig can distinguish the dotenv path from
// other strings.
type EnvFile string

// New builds the graph from cfg. envFile is an optional dotenv file consulted
// for credentials after the process environment.
func New(cfg *config.Config, envFile string) (*Container, error) {
	d := dig.New()

	if err := d.Provide(func() *config.Config { return cfg }); err != nil {
		return nil, err
	}
	if err := d.Provide(func() EnvFile { return EnvFile(envFile) }); err != nil {
		return nil, err
	}
	if err := d.Provide(newCredentials); err != nil {
		return nil, err
	}
	if err := d.Provide(newProvider); err != nil {
		return nil, err
	}

	c := &Container{d: d, cfg: cfg}
	err := d.Invoke(func(creds *config.Credentials) {
		c.creds = creds
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container) Config() *config.Config           { return c.cfg }
func (c *Container) Credentials() *config.Credentials { return c.creds }

// Provider resolves the LLM provider. It fails when no API key is configured
// for a remote endpoint.
func (c *Container) Provider() (schema.LLMProvider, error) {
	var p schema.LLMProvider
	err := c.d.Invoke(func(provider schema.LLMProvider) { p = provider })
	if err != nil {
		return nil, dig.RootCause(err)
	}
	return p, nil
}

// OpenSession connects the configured backends and returns a ready session.
func (c *Container) OpenSession(ctx context.Context, hooks agent.Hooks) (*agent.Session, error) {
	p, err := c.Provider()
	if err != nil {
		return nil, err
	}
	return agent.Open(ctx, c.cfg, c.creds, p, hooks)
}

func newCredentials(envFile EnvFile) (*config.Credentials, error) {
	return config.NewCredentials(string(envFile))
}

func newProvider(cfg *config.Config, creds *config.Credentials) (schema.LLMProvider, error) {
	pc := cfg.Provider
	spec := providers.Detect(pc.Name, pc.APIKey, pc.APIBase)

	apiKey := cfg.APIKey(creds)
	if apiKey == "" && pc.APIKeyEnv == "" {
		apiKey = creds.Lookup(spec.EnvKey)
	}
	if apiKey == "" && !spec.IsLocal {
		env := pc.APIKeyEnv
		if env == "" {
			env = spec.EnvKey
		}
		return nil, fmt.Errorf("no API key for %s: set %s or edit %s", spec.Label(), env, config.ConfigPath())
	}

	settings := cfg.AgentSettings()
	return providers.New(providers.Params{
		ProviderName: spec.Name,
		APIKey:       apiKey,
		APIBase:      pc.APIBase,
		ExtraHeaders: pc.ExtraHeaders,
		DefaultModel: settings.Model,
		Timeout:      settings.LLMTimeout,
	}), nil
}
