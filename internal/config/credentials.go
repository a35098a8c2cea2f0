package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Credentials resolves secrets such as FAST_MCP_API_KEY. The process
// environment wins; an optional dotenv file fills in the rest.
type Credentials struct {
	v *viper.Viper
}

// NewCredentials returns a resolver reading the environment and, if it exists,
// envFile (typically ".env" in the working directory).
func NewCredentials(envFile string) (*Credentials, error) {
	v := viper.New()
	v.AutomaticEnv()

	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			v.SetConfigFile(envFile)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				return nil, err
			}
		}
	}
	return &Credentials{v: v}, nil
}

// Lookup returns the trimmed value of key, or "" when unset.
func (c *Credentials) Lookup(key string) string {
	if c == nil || key == "" {
		return ""
	}
	return strings.TrimSpace(c.v.GetString(key))
}

// APIKey returns the provider API key from the config or its env variable.
func (c *Config) APIKey(creds *Credentials) string {
	if c.Provider.APIKey != "" {
		return c.Provider.APIKey
	}
	return creds.Lookup(c.Provider.APIKeyEnv)
}
