package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"agentstat/internal/cli"
	"agentstat/internal/inventory"
	"agentstat/internal/model"
)

var flagAudit bool

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Tool usage breakdown",
	RunE:  runTools,
}

func init() {
	toolsCmd.Flags().BoolVar(&flagAudit, "audit", false, "Compare used tools against installed extensions")
	rootCmd.AddCommand(toolsCmd)
}

func runTools(_ *cobra.Command, _ []string) error {
	_, filtered, stats, err := loadAggregated()
	if err != nil {
		return err
	}

	if flagAudit {
		return runToolAudit(stats.Tools)
	}

	if jsonOutput() {
		return cli.WriteJSON(os.Stdout, stats.Tools)
	}

	if len(stats.Tools) == 0 {
		fmt.Println("\n  No tool calls in the selected time range.")
		return nil
	}

	type row struct {
		name string
		ts   *model.ToolStats
	}
	rows := make([]row, 0, len(stats.Tools))
	for name, ts := range stats.Tools {
		rows = append(rows, row{name, ts})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].ts.Calls != rows[j].ts.Calls {
			return rows[i].ts.Calls > rows[j].ts.Calls
		}
		return rows[i].name < rows[j].name
	})
	if len(rows) > flagLimit {
		rows = rows[:flagLimit]
	}

	table := cli.Table{
		Title:   fmt.Sprintf("Tool Calls — %s (%d sessions)", stats.Label, len(filtered)),
		Headers: []string{"Tool", "Calls", "Errors", "Sessions", "Last Used"},
	}
	for _, r := range rows {
		table.Rows = append(table.Rows, []string{
			r.name,
			cli.FormatNumber(int64(r.ts.Calls)),
			cli.FormatNumber(int64(r.ts.Errors)),
			cli.FormatNumber(int64(r.ts.SessionCount)),
			cli.FormatTime(r.ts.LastUsed),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(table))
	return nil
}

func runToolAudit(used map[string]*model.ToolStats) error {
	installed, err := inventory.Scan(flagExtensionsDir)
	if err != nil {
		return fmt.Errorf("scanning extensions: %w", err)
	}

	audit := inventory.Run(installed, lo.Keys(used))

	if jsonOutput() {
		return cli.WriteJSON(os.Stdout, audit)
	}

	fmt.Println()
	fmt.Printf("  Installed extensions: %d    Tools seen in sessions: %d\n\n",
		len(audit.Installed), len(audit.Used))

	if len(audit.Unused) == 0 && len(audit.Missing) == 0 {
		fmt.Println("  Everything installed is used, and everything used is installed.")
		return nil
	}

	if len(audit.Unused) > 0 {
		fmt.Println("  Installed but never used:")
		for _, name := range audit.Unused {
			fmt.Printf("    - %s\n", name)
		}
		fmt.Println()
	}
	if len(audit.Missing) > 0 {
		fmt.Println("  Used in sessions but not installed (built-in or removed):")
		for _, name := range audit.Missing {
			fmt.Printf("    - %s\n", name)
		}
	}

	return nil
}
