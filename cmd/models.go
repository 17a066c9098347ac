package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"agentstat/internal/cli"
	"agentstat/internal/model"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Usage by model and provider",
	RunE:  runModels,
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}

func runModels(_ *cobra.Command, _ []string) error {
	_, _, stats, err := loadAggregated()
	if err != nil {
		return err
	}

	if jsonOutput() {
		return cli.WriteJSON(os.Stdout, stats.Models)
	}

	if len(stats.Models) == 0 {
		fmt.Println("\n  No model usage in the selected time range.")
		return nil
	}

	rows := make([]*model.ModelStats, 0, len(stats.Models))
	for _, ms := range stats.Models {
		rows = append(rows, ms)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Tokens != rows[j].Tokens {
			return rows[i].Tokens > rows[j].Tokens
		}
		return rows[i].Model < rows[j].Model
	})
	if len(rows) > flagLimit {
		rows = rows[:flagLimit]
	}

	headers := []string{"Model", "Provider", "Calls", "Tokens"}
	if flagShowCost {
		headers = append(headers, "Cost")
	}

	table := cli.Table{
		Title:   fmt.Sprintf("Models — %s", stats.Label),
		Headers: headers,
	}
	for _, ms := range rows {
		row := []string{
			ms.Model,
			ms.Provider,
			cli.FormatNumber(int64(ms.Calls)),
			cli.FormatTokens(ms.Tokens),
		}
		if flagShowCost {
			row = append(row, cli.FormatCost(ms.Cost))
		}
		table.Rows = append(table.Rows, row)
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(table))
	return nil
}
