package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"agentstat/internal/cli"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List individual sessions, newest first",
	RunE:  runSessions,
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
}

func runSessions(_ *cobra.Command, _ []string) error {
	_, filtered, stats, err := loadAggregated()
	if err != nil {
		return err
	}

	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].StartTime.After(filtered[j].StartTime)
	})
	if len(filtered) > flagLimit {
		filtered = filtered[:flagLimit]
	}

	if jsonOutput() {
		return cli.WriteJSON(os.Stdout, filtered)
	}

	if len(filtered) == 0 {
		fmt.Println("\n  No sessions in the selected time range.")
		return nil
	}

	headers := []string{"Started", "Project", "Msgs", "Tools", "Tokens", "Duration"}
	if flagShowCost {
		headers = append(headers, "Cost")
	}

	table := cli.Table{
		Title:   fmt.Sprintf("Sessions — %s", stats.Label),
		Headers: headers,
	}
	for _, s := range filtered {
		row := []string{
			cli.FormatTime(s.StartTime),
			s.Project,
			cli.FormatNumber(int64(s.TotalMessages)),
			cli.FormatNumber(int64(s.ToolCalls)),
			cli.FormatTokens(s.Tokens.Total),
			cli.FormatDurationMs(s.DurationMs),
		}
		if flagShowCost {
			row = append(row, cli.FormatCost(s.Cost))
		}
		table.Rows = append(table.Rows, row)
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(table))
	return nil
}
