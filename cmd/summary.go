package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"agentstat/internal/cli"
	"agentstat/internal/model"
	"agentstat/internal/pipeline"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Usage summary for the selected period",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	result, filtered, stats, err := loadAggregated()
	if err != nil {
		return err
	}

	if jsonOutput() {
		return cli.WriteJSON(os.Stdout, stats)
	}

	if result.TotalFiles == 0 {
		fmt.Println("\n  No session logs found.")
		fmt.Printf("  Looked in %s — is the assistant installed?\n", flagSessionsDir)
		return nil
	}
	if len(filtered) == 0 {
		fmt.Println("\n  No sessions in the selected time range.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("AGENT USAGE  %s", stats.Label)))
	fmt.Println()

	rows := [][]string{
		{"Sessions", cli.FormatNumber(int64(len(filtered)))},
		{"Messages", cli.FormatNumber(int64(stats.TotalMessages))},
		{"  User", cli.FormatNumber(int64(stats.UserMessages))},
		{"  Assistant", cli.FormatNumber(int64(stats.AssistantMessages))},
		{"Total Time", cli.FormatDurationMs(stats.TotalDurationMs)},
		{"---"},
		{"Tool Calls", cli.FormatNumber(int64(stats.ToolCalls))},
		{"Tool Errors", cli.FormatNumber(int64(stats.ToolErrors))},
		{"Distinct Tools", cli.FormatNumber(int64(len(stats.Tools)))},
		{"---"},
		{"Input Tokens", cli.FormatTokens(stats.Tokens.Input)},
		{"Output Tokens", cli.FormatTokens(stats.Tokens.Output)},
		{"Cache Read", cli.FormatTokens(stats.Tokens.CacheRead)},
		{"Cache Write", cli.FormatTokens(stats.Tokens.CacheWrite)},
		{"Total Tokens", cli.FormatTokens(stats.Tokens.Total)},
	}
	if flagShowCost {
		rows = append(rows, []string{"---"}, []string{"Cost (reported)", cli.FormatCost(stats.Cost)})
	}
	rows = append(rows,
		[]string{"---"},
		[]string{"Projects", cli.FormatNumber(int64(len(stats.Projects)))},
		[]string{"Models", cli.FormatNumber(int64(len(stats.Models)))},
	)
	if name, ts, ok := pipeline.TopBy(stats.Tools, func(t *model.ToolStats) float64 { return float64(t.Calls) }); ok {
		rows = append(rows, []string{"Top Tool", fmt.Sprintf("%s (%s calls)", name, cli.FormatNumber(int64(ts.Calls)))})
	}
	if _, ms, ok := pipeline.TopBy(stats.Models, func(m *model.ModelStats) float64 { return float64(m.Tokens) }); ok {
		rows = append(rows, []string{"Top Model", fmt.Sprintf("%s (%s tok)", ms.Model, cli.FormatTokens(ms.Tokens))})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))

	if result.SkippedLines > 0 && !flagQuiet {
		fmt.Fprintf(os.Stderr, "\n  %d malformed log lines were skipped\n", result.SkippedLines)
	}

	return nil
}
