package tui

import (
	"fmt"
	"sort"
	"strings"

	"agentstat/internal/cli"
	"agentstat/internal/model"
	"agentstat/internal/tui/components"
	"agentstat/internal/tui/theme"
)

func (a App) contentWidth() int {
	w := a.width
	if w <= 0 {
		w = 80
	}
	return w
}

func (a App) renderOverview() string {
	if a.agg == nil {
		return "  no data"
	}
	w := a.contentWidth()

	metrics := []components.Metric{
		{Label: "Sessions", Value: cli.FormatNumber(int64(len(a.filtered)))},
		{Label: "Messages", Value: cli.FormatNumber(int64(a.agg.TotalMessages))},
		{Label: "Tool calls", Value: cli.FormatNumber(int64(a.agg.ToolCalls))},
		{Label: "Tokens", Value: cli.FormatTokens(a.agg.Tokens.Total)},
	}
	if a.cfg.General.ShowCost {
		metrics = append(metrics, components.Metric{Label: "Cost", Value: cli.FormatCost(a.agg.Cost)})
	}

	values := make([]float64, len(a.series))
	labels := make([]string, len(a.series))
	for i, pt := range a.series {
		values[i] = float64(pt.Value)
		labels[i] = shortLabel(pt.Label)
	}

	chart := components.BarChart(values, labels, theme.Active.Blue, components.CardInnerWidth(w), 8)
	if chart == "" {
		chart = "no activity in this period"
	}

	return components.MetricCardRow(metrics, w) + "\n" +
		components.ContentCard("Tokens over time", chart, w)
}

// shortLabel trims bucket labels to their day or hour part for the
// x-axis.
func shortLabel(label string) string {
	if idx := strings.IndexByte(label, ' '); idx >= 0 {
		return strings.TrimSuffix(label[idx+1:], ":00")
	}
	if len(label) == 10 {
		return label[5:]
	}
	return label
}

func (a App) renderTools() string {
	if a.agg == nil || len(a.agg.Tools) == 0 {
		return "  no tool calls in this period"
	}
	w := a.contentWidth()
	inner := components.CardInnerWidth(w)

	type row struct {
		name string
		ts   *model.ToolStats
	}
	rows := make([]row, 0, len(a.agg.Tools))
	maxCalls := 0
	for name, ts := range a.agg.Tools {
		rows = append(rows, row{name, ts})
		if ts.Calls > maxCalls {
			maxCalls = ts.Calls
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].ts.Calls != rows[j].ts.Calls {
			return rows[i].ts.Calls > rows[j].ts.Calls
		}
		return rows[i].name < rows[j].name
	})

	var b strings.Builder
	barW := inner / 3
	for _, r := range rows {
		errs := ""
		if r.ts.Errors > 0 {
			errs = fmt.Sprintf("  %d errors", r.ts.Errors)
		}
		b.WriteString(fmt.Sprintf("%-18s %s %s (%d sessions)%s\n",
			truncate(r.name, 18),
			cli.RenderHorizontalBar(float64(r.ts.Calls), float64(maxCalls), barW),
			cli.FormatNumber(int64(r.ts.Calls)),
			r.ts.SessionCount,
			errs,
		))
	}

	return components.ContentCard("Tool calls", strings.TrimRight(b.String(), "\n"), w)
}

func (a App) renderModels() string {
	if a.agg == nil || len(a.agg.Models) == 0 {
		return "  no model usage in this period"
	}
	w := a.contentWidth()

	rows := make([]*model.ModelStats, 0, len(a.agg.Models))
	var maxTokens int64
	for _, ms := range a.agg.Models {
		rows = append(rows, ms)
		if ms.Tokens > maxTokens {
			maxTokens = ms.Tokens
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Tokens != rows[j].Tokens {
			return rows[i].Tokens > rows[j].Tokens
		}
		return rows[i].Model < rows[j].Model
	})

	var b strings.Builder
	barW := components.CardInnerWidth(w) / 3
	for _, ms := range rows {
		cost := ""
		if a.cfg.General.ShowCost && ms.Cost > 0 {
			cost = "  " + cli.FormatCost(ms.Cost)
		}
		b.WriteString(fmt.Sprintf("%-28s %s %s tok  %s calls%s\n",
			truncate(ms.Model+" ("+ms.Provider+")", 28),
			cli.RenderHorizontalBar(float64(ms.Tokens), float64(maxTokens), barW),
			cli.FormatTokens(ms.Tokens),
			cli.FormatNumber(int64(ms.Calls)),
			cost,
		))
	}

	return components.ContentCard("Models", strings.TrimRight(b.String(), "\n"), w)
}

func (a App) renderProjects() string {
	if a.agg == nil || len(a.agg.Projects) == 0 {
		return "  no projects in this period"
	}
	w := a.contentWidth()

	type row struct {
		name string
		ps   *model.ProjectStats
	}
	rows := make([]row, 0, len(a.agg.Projects))
	maxSessions := 0
	for name, ps := range a.agg.Projects {
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

	var b strings.Builder
	barW := components.CardInnerWidth(w) / 3
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("%-24s %s %d sessions  %s msgs  %s tok\n",
			truncate(r.name, 24),
			cli.RenderHorizontalBar(float64(r.ps.Sessions), float64(maxSessions), barW),
			r.ps.Sessions,
			cli.FormatNumber(int64(r.ps.Messages)),
			cli.FormatTokens(r.ps.Tokens),
		))
	}

	return components.ContentCard("Projects", strings.TrimRight(b.String(), "\n"), w)
}

func (a App) renderSessions() string {
	if len(a.filtered) == 0 {
		return "  no sessions in this period"
	}
	return a.sessionsTbl.View()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
