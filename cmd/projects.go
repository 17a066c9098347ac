package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"agentstat/internal/cli"
	"agentstat/internal/model"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Usage by project",
	RunE:  runProjects,
}

func init() {
	rootCmd.AddCommand(projectsCmd)
}

func runProjects(_ *cobra.Command, _ []string) error {
	_, _, stats, err := loadAggregated()
	if err != nil {
		return err
	}

	if jsonOutput() {
		return cli.WriteJSON(os.Stdout, stats.Projects)
	}

	if len(stats.Projects) == 0 {
		fmt.Println("\n  No projects in the selected time range.")
		return nil
	}

	type row struct {
		name string
		ps   *model.ProjectStats
	}
	rows := make([]row, 0, len(stats.Projects))
	maxSessions := 0
	for name, ps := range stats.Projects {
		rows = append(rows, row{name, ps})
		if ps.Sessions > maxSessions {
			maxSessions = ps.Sessions
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].ps.Sessions != rows[j].ps.Sessions {
			return rows[i].ps.Sessions > rows[j].ps.Sessions
		}
		return rows[i].name < rows[j].name
	})
	if len(rows) > flagLimit {
		rows = rows[:flagLimit]
	}

	table := cli.Table{
		Title:   fmt.Sprintf("Projects — %s", stats.Label),
		Headers: []string{"Project", "Sessions", "Messages", "Tool Calls", "Tokens", ""},
	}
	for _, r := range rows {
		table.Rows = append(table.Rows, []string{
			r.name,
			cli.FormatNumber(int64(r.ps.Sessions)),
			cli.FormatNumber(int64(r.ps.Messages)),
			cli.FormatNumber(int64(r.ps.ToolCalls)),
			cli.FormatTokens(r.ps.Tokens),
			cli.RenderHorizontalBar(float64(r.ps.Sessions), float64(maxSessions), 16),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(table))
	return nil
}
