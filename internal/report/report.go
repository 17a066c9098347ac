// Package report renders aggregated usage data as a single self-contained
// HTML file. Styles are inlined, charts are plain SVG built client-side
// from an embedded JSON payload, so the file works offline and switching
// periods never needs a server.
package report

import (
	"fmt"
	"html/template"
	"io"
	"sort"
	"time"

	"github.com/bytedance/sonic"

	"agentstat/internal/model"
	"agentstat/internal/pipeline"
)

// PeriodData is one selectable period in the dashboard.
type PeriodData struct {
	Name     string                  `json:"name"`
	Label    string                  `json:"label"`
	Summary  Summary                 `json:"summary"`
	Tools    []NamedCount            `json:"tools"`
	Models   []NamedCount            `json:"models"`
	Projects []NamedCount            `json:"projects"`
	Series   []model.TimeSeriesPoint `json:"series"`
}

// Summary is the headline stats block for a period.
type Summary struct {
	Sessions   int     `json:"sessions"`
	Messages   int     `json:"messages"`
	ToolCalls  int     `json:"toolCalls"`
	ToolErrors int     `json:"toolErrors"`
	Tokens     int64   `json:"tokens"`
	Cost       float64 `json:"cost"`
	Projects   int     `json:"projects"`
}

// NamedCount is one row of a ranked breakdown list.
type NamedCount struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// Data is the full payload embedded into the HTML file.
type Data struct {
	GeneratedAt   time.Time    `json:"generatedAt"`
	DefaultPeriod string       `json:"defaultPeriod"`
	ShowCost      bool         `json:"showCost"`
	Periods       []PeriodData `json:"periods"`
}

// reportPeriods is the fixed set of selectable periods, in tab order.
var reportPeriods = []string{"today", "week", "month", "quarter", "year", "all"}

// seriesBucket picks a chart granularity that keeps the point count sane
// for the period's span.
func seriesBucket(period string) string {
	switch period {
	case "today":
		return pipeline.BucketHourly
	case "week", "month":
		return pipeline.BucketDaily
	case "quarter":
		return pipeline.BucketWeekly
	default:
		return pipeline.BucketMonthly
	}
}

// Build assembles the dashboard payload from the full session set. Each
// period is filtered and aggregated independently so the client can switch
// between them without recomputing anything.
func Build(sessions []model.SessionStats, defaultPeriod string, showCost bool, now time.Time) (*Data, error) {
	d := &Data{
		GeneratedAt:   now,
		DefaultPeriod: defaultPeriod,
		ShowCost:      showCost,
	}

	for _, name := range reportPeriods {
		p, err := pipeline.ResolvePeriod(name, now)
		if err != nil {
			return nil, err
		}
		subset := pipeline.FilterSessions(sessions, p, pipeline.FilterOptions{})
		agg := pipeline.Aggregate(subset, p)

		series, err := pipeline.BuildTimeSeries(subset, pipeline.MetricTokens, seriesBucket(name), "", 0)
		if err != nil {
			return nil, err
		}

		d.Periods = append(d.Periods, PeriodData{
			Name:  name,
			Label: p.Label,
			Summary: Summary{
				Sessions:   len(subset),
				Messages:   agg.TotalMessages,
				ToolCalls:  agg.ToolCalls,
				ToolErrors: agg.ToolErrors,
				Tokens:     agg.Tokens.Total,
				Cost:       agg.Cost,
				Projects:   len(agg.Projects),
			},
			Tools:    topTools(agg, 10),
			Models:   topModels(agg, 10),
			Projects: topProjects(agg, 10),
			Series:   series,
		})
	}

	return d, nil
}

func topTools(agg *model.AggregatedStats, limit int) []NamedCount {
	out := make([]NamedCount, 0, len(agg.Tools))
	for name, ts := range agg.Tools {
		out = append(out, NamedCount{Name: name, Value: int64(ts.Calls)})
	}
	return rank(out, limit)
}

func topModels(agg *model.AggregatedStats, limit int) []NamedCount {
	out := make([]NamedCount, 0, len(agg.Models))
	for _, ms := range agg.Models {
		out = append(out, NamedCount{Name: ms.Model, Value: ms.Tokens})
	}
	return rank(out, limit)
}

func topProjects(agg *model.AggregatedStats, limit int) []NamedCount {
	out := make([]NamedCount, 0, len(agg.Projects))
	for name, ps := range agg.Projects {
		out = append(out, NamedCount{Name: name, Value: int64(ps.Sessions)})
	}
	return rank(out, limit)
}

func rank(rows []NamedCount, limit int) []NamedCount {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Value != rows[j].Value {
			return rows[i].Value > rows[j].Value
		}
		return rows[i].Name < rows[j].Name
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

// Render writes the complete HTML document for d.
func Render(w io.Writer, d *Data) error {
	payload, err := sonic.ConfigDefault.Marshal(d)
	if err != nil {
		return fmt.Errorf("encoding report payload: %w", err)
	}

	return reportTmpl.Execute(w, struct {
		Generated string
		Payload   template.JS
	}{
		Generated: d.GeneratedAt.Local().Format("2006-01-02 15:04"),
		Payload:   template.JS(payload),
	})
}
