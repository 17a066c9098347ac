package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"agentstat/internal/cli"
	"agentstat/internal/model"
	"agentstat/internal/pipeline"
)

var (
	flagMetric string
	flagBy     string
	flagTop    int
	flagBucket string
)

var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Usage over time, bucketed by calendar period",
	RunE:  runTrends,
}

func init() {
	trendsCmd.Flags().StringVar(&flagMetric, "metric", pipeline.MetricTokens, "Metric: tokens, sessions, tool-calls, messages")
	trendsCmd.Flags().StringVar(&flagBy, "by", "", "Breakdown dimension: tool, model, provider, project")
	trendsCmd.Flags().IntVar(&flagTop, "top", 5, "Top N breakdown categories, rest folded into \"other\"")
	trendsCmd.Flags().StringVar(&flagBucket, "bucket", pipeline.BucketDaily, "Bucket size: hourly, daily, weekly, monthly")
	rootCmd.AddCommand(trendsCmd)
}

func runTrends(_ *cobra.Command, _ []string) error {
	result, err := loadData()
	if err != nil {
		return err
	}
	filtered, _, err := applyFilters(result.Sessions)
	if err != nil {
		return err
	}

	points, err := pipeline.BuildTimeSeries(filtered, flagMetric, flagBucket, flagBy, flagTop)
	if err != nil {
		return err
	}

	if jsonOutput() {
		return cli.WriteJSON(os.Stdout, points)
	}

	if len(points) == 0 {
		fmt.Println("\n  No activity in the selected time range.")
		return nil
	}

	fmt.Println()
	if flagBy == "" {
		renderTrendTable(points)
	} else {
		renderTrendBreakdown(points)
	}

	values := make([]float64, len(points))
	for i, pt := range points {
		values[i] = float64(pt.Value)
	}
	fmt.Printf("\n  %s\n", cli.RenderSparkline(values))

	return nil
}

func metricTitle(metric string) string {
	switch metric {
	case pipeline.MetricTokens:
		return "Tokens"
	case pipeline.MetricSessions:
		return "Sessions"
	case pipeline.MetricToolCalls:
		return "Tool Calls"
	default:
		return "Messages"
	}
}

func renderTrendTable(points []model.TimeSeriesPoint) {
	var maxVal int64
	for _, pt := range points {
		if pt.Value > maxVal {
			maxVal = pt.Value
		}
	}

	table := cli.Table{
		Title:   fmt.Sprintf("%s per %s bucket", metricTitle(flagMetric), flagBucket),
		Headers: []string{"Bucket", metricTitle(flagMetric), ""},
	}
	for _, pt := range points {
		table.Rows = append(table.Rows, []string{
			pt.Label,
			cli.FormatNumber(pt.Value),
			cli.RenderHorizontalBar(float64(pt.Value), float64(maxVal), 24),
		})
	}
	fmt.Print(cli.RenderTable(table))
}

// renderTrendBreakdown prints one column per breakdown category, with
// categories ordered by their series-wide totals.
func renderTrendBreakdown(points []model.TimeSeriesPoint) {
	totals := make(map[string]int64)
	for _, pt := range points {
		for cat, v := range pt.Breakdown {
			totals[cat] += v
		}
	}
	cats := lo.Keys(totals)
	sort.Slice(cats, func(i, j int) bool {
		// "other" always last.
		if cats[i] == "other" {
			return false
		}
		if cats[j] == "other" {
			return true
		}
		if totals[cats[i]] != totals[cats[j]] {
			return totals[cats[i]] > totals[cats[j]]
		}
		return cats[i] < cats[j]
	})

	table := cli.Table{
		Title:   fmt.Sprintf("%s per %s bucket by %s", metricTitle(flagMetric), flagBucket, flagBy),
		Headers: append([]string{"Bucket"}, cats...),
	}
	for _, pt := range points {
		row := []string{pt.Label}
		for _, cat := range cats {
			if v, ok := pt.Breakdown[cat]; ok {
				row = append(row, cli.FormatNumber(v))
			} else {
				row = append(row, "-")
			}
		}
		table.Rows = append(table.Rows, row)
	}
	fmt.Print(cli.RenderTable(table))
}
