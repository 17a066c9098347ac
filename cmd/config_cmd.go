package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"agentstat/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Sessions dir:   %s\n", config.SessionsDir(cfg))
	fmt.Printf("    Extensions dir: %s\n", config.ExtensionsDir(cfg))
	if cfg.General.CacheDir != "" {
		fmt.Printf("    Cache dir:      %s\n", cfg.General.CacheDir)
	}
	fmt.Printf("    Default period: %s\n", cfg.General.DefaultPeriod)
	fmt.Printf("    Show cost:      %v\n", cfg.General.ShowCost)
	fmt.Println()

	if len(cfg.Filters.ExcludeProjects) > 0 {
		fmt.Println("  [Filters]")
		fmt.Printf("    Exclude projects: %s\n", strings.Join(cfg.Filters.ExcludeProjects, ", "))
		fmt.Println()
	}

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)

	return nil
}
