// Package cmd implements the toolchat CLI using cobra.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/crystaldolphin/toolchat/internal/config"
	"github.com/crystaldolphin/toolchat/internal/dependency"
)

const version = "0.1.0"
const logo = "🧮"

var (
	configPath string
	envFile    string
	showLogs   bool
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "toolchat",
	Short: logo + " toolchat: chat with an LLM that calls MCP tools",
	Long:  logo + " toolchat connects an OpenAI-compatible model to one or more MCP tool servers",
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		setupLogging(showLogs)
	},
	SilenceUsage: true,
}

// Execute runs the root command and exits on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = version

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default ~/.toolchat/config.json)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Dotenv file consulted for credentials")
	rootCmd.PersistentFlags().BoolVar(&showLogs, "logs", false, "Show runtime logs")

	rootCmd.AddCommand(onboardCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(toolsCmd)
	rootCmd.AddCommand(mathServerCmd)
}

func setupLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

func resolvedConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.ConfigPath()
}

// loadContainer reads the config and builds the dependency graph.
func loadContainer() (*dependency.Container, error) {
	cfg, err := config.Load(resolvedConfigPath())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return dependency.New(cfg, envFile)
}
