package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/crystaldolphin/toolchat/internal/config/tool"
)

func writeConfig(t *testing.T, dir string, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_NonExistent(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.json")
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	def := DefaultConfig()
	if cfg.Agents.Defaults.Model != def.Agents.Defaults.Model {
		t.Errorf("expected default model %q, got %q", def.Agents.Defaults.Model, cfg.Agents.Defaults.Model)
	}
	if len(cfg.Tools.MCPServers) != 2 {
		t.Errorf("expected the two default servers, got %d", len(cfg.Tools.MCPServers))
	}
}

func TestLoad_ValidConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, map[string]any{
		"agents": map[string]any{
			"defaults": map[string]any{
				"model":         "gpt-4o",
				"maxTokens":     2048,
				"maxToolRounds": 3,
			},
		},
	})

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Agents.Defaults.Model != "gpt-4o" {
		t.Errorf("expected model %q, got %q", "gpt-4o", cfg.Agents.Defaults.Model)
	}
	if cfg.Agents.Defaults.MaxTokens != 2048 {
		t.Errorf("expected maxTokens 2048, got %d", cfg.Agents.Defaults.MaxTokens)
	}
	if got := cfg.AgentSettings().MaxToolRounds; got != 3 {
		t.Errorf("expected 3 tool rounds, got %d", got)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte("{not valid json"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("expected no error for invalid JSON (falls back to default), got: %v", err)
	}
	def := DefaultConfig()
	if cfg.Agents.Defaults.Model != def.Agents.Defaults.Model {
		t.Errorf("expected default model %q, got %q", def.Agents.Defaults.Model, cfg.Agents.Defaults.Model)
	}
}

func TestLoad_ServersReplaceDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, map[string]any{
		"tools": map[string]any{
			"mcpServers": map[string]any{
				"weather": map[string]any{"url": "https://weather.example/mcp"},
			},
		},
	})

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Tools.MCPServers) != 1 {
		t.Fatalf("expected only the configured server, got %v", cfg.Tools.MCPServers)
	}
	if kind := cfg.Tools.MCPServers["weather"].ResolvedKind(); kind != tool.KindStream {
		t.Errorf("expected inferred kind %q, got %q", tool.KindStream, kind)
	}
}

func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `
agents:
  defaults:
    model: gpt-4.1-mini
tools:
  namespaceTools: true
  mcpServers:
    math:
      command: uv
      args: [run, fastmcp, run, main.py]
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Agents.Defaults.Model != "gpt-4.1-mini" {
		t.Errorf("expected model from YAML, got %q", cfg.Agents.Defaults.Model)
	}
	if !cfg.Tools.NamespaceTools {
		t.Error("expected namespaceTools=true")
	}
	math := cfg.Tools.MCPServers["math"]
	if math.ResolvedKind() != tool.KindProcess || len(math.Args) != 4 {
		t.Errorf("unexpected math server config: %+v", math)
	}
}

func TestSave_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	original := DefaultConfig()
	original.Agents.Defaults.Model = "gpt-4o-mini"
	original.Agents.Defaults.MaxTokens = 1234

	if err := Save(&original, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Agents.Defaults.Model != original.Agents.Defaults.Model {
		t.Errorf("model mismatch: got %q, want %q", loaded.Agents.Defaults.Model, original.Agents.Defaults.Model)
	}
	if loaded.Agents.Defaults.MaxTokens != original.Agents.Defaults.MaxTokens {
		t.Errorf("maxTokens mismatch: got %d, want %d", loaded.Agents.Defaults.MaxTokens, original.Agents.Defaults.MaxTokens)
	}
	if loaded.Tools.MCPServers["expense"].BearerTokenEnv != "FAST_MCP_API_KEY" {
		t.Errorf("expense server lost its credential binding: %+v", loaded.Tools.MCPServers["expense"])
	}
}

func TestSave_FilePermissions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := DefaultConfig()
	if err := Save(&cfg, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("expected permissions 0600, got %04o", perm)
	}
}

func TestSave_CreatesDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "dir", "config.json")

	cfg := DefaultConfig()
	if err := Save(&cfg, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("file not created: %v", err)
	}
}

func TestCredentials_EnvWinsOverDotenv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	body := "FAST_MCP_API_KEY=from-file\nOTHER_TOKEN=other\n"
	if err := os.WriteFile(envFile, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FAST_MCP_API_KEY", "from-env")

	creds, err := NewCredentials(envFile)
	if err != nil {
		t.Fatalf("NewCredentials: %v", err)
	}
	if got := creds.Lookup("FAST_MCP_API_KEY"); got != "from-env" {
		t.Errorf("expected env value, got %q", got)
	}
	if got := creds.Lookup("OTHER_TOKEN"); got != "other" {
		t.Errorf("expected dotenv value, got %q", got)
	}
	if got := creds.Lookup("MISSING_TOKEN"); got != "" {
		t.Errorf("expected empty value, got %q", got)
	}
}

func TestAPIKey_FallsBackToEnv(t *testing.T) {
	t.Setenv("TOOLCHAT_TEST_KEY", "sk-test")
	creds, err := NewCredentials("")
	if err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()
	cfg.Provider.APIKeyEnv = "TOOLCHAT_TEST_KEY"
	if got := cfg.APIKey(creds); got != "sk-test" {
		t.Errorf("expected key from env, got %q", got)
	}
	cfg.Provider.APIKey = "sk-inline"
	if got := cfg.APIKey(creds); got != "sk-inline" {
		t.Errorf("expected inline key, got %q", got)
	}
}
