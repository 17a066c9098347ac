package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"agentstat/internal/cli"
	"agentstat/internal/config"
	"agentstat/internal/source"
	"agentstat/internal/tui"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup",
	RunE:  runSetupCmd,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetupCmd(_ *cobra.Command, _ []string) error {
	home, _ := os.UserHomeDir()
	files, _ := source.ScanDir(flagSessionsDir, home)

	fmt.Println()
	fmt.Println("  Welcome to agentstat!")
	if len(files) > 0 {
		fmt.Printf("  Found %s session logs in %s (%d projects)\n",
			cli.FormatNumber(int64(len(files))), flagSessionsDir, source.CountProjects(files))
	} else {
		fmt.Printf("  No session logs found in %s yet.\n", flagSessionsDir)
	}
	fmt.Println()

	saved, err := tui.RunSetup(cfg)
	if err != nil {
		return err
	}
	cfg = saved

	fmt.Printf("\n  Saved to %s\n", config.ConfigPath())
	return nil
}
