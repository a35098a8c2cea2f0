package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/crystaldolphin/toolchat/internal/config"
)

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Write a default configuration file",
	RunE:  runOnboard,
}

func runOnboard(_ *cobra.Command, _ []string) error {
	cfgPath := resolvedConfigPath()

	if _, err := os.Stat(cfgPath); err == nil {
		fmt.Printf("Config already exists at %s\n", cfgPath)
		fmt.Printf("Press Enter to refresh (keep existing values) or Ctrl+C to cancel: ")
		fmt.Scanln()
		existing, loadErr := config.Load(cfgPath)
		if loadErr != nil {
			def := config.DefaultConfig()
			existing = &def
		}
		if err := config.Save(existing, cfgPath); err != nil {
			return err
		}
		fmt.Printf("✓ Config refreshed at %s\n", cfgPath)
	} else {
		cfg := config.DefaultConfig()
		if err := config.Save(&cfg, cfgPath); err != nil {
			return err
		}
		fmt.Printf("✓ Created config at %s\n", cfgPath)
	}

	fmt.Printf("\n%s toolchat is ready!\n\n", logo)
	fmt.Println("Next steps:")
	fmt.Println("  1. Export OPENAI_API_KEY (or put it in .env)")
	fmt.Println("  2. Export FAST_MCP_API_KEY for the hosted expense server, or remove it from the config")
	fmt.Printf("  3. Chat: toolchat chat\n")
	return nil
}
