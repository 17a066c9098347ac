package pipeline

import (
	"fmt"
	"sort"
	"time"

	"github.com/samber/lo"

	"agentstat/internal/model"
)

// Metrics a time series can aggregate per bucket.
const (
	MetricTokens    = "tokens"
	MetricSessions  = "sessions"
	MetricToolCalls = "tool-calls"
	MetricMessages  = "messages"
)

// Bucket sizes. All bucketing uses UTC calendar fields so results never
// depend on the host locale.
const (
	BucketHourly  = "hourly"
	BucketDaily   = "daily"
	BucketWeekly  = "weekly"
	BucketMonthly = "monthly"
)

// Breakdown dimensions.
const (
	ByTool     = "tool"
	ByModel    = "model"
	ByProvider = "provider"
	ByProject  = "project"
)

// otherKey collects breakdown categories outside the top N.
const otherKey = "other"

// BuildTimeSeries groups sessions into calendar-aligned buckets for the
// given metric, optionally broken down by a categorical dimension with the
// remainder collapsed into "other". breakdown may be empty; topN <= 0
// disables collapsing. Empty input yields an empty series. Points come
// back sorted ascending by bucket start.
func BuildTimeSeries(sessions []model.SessionStats, metric, bucket, breakdown string, topN int) ([]model.TimeSeriesPoint, error) {
	if err := validateTrendArgs(metric, bucket, breakdown); err != nil {
		return nil, err
	}

	type bucketAcc struct {
		value     int64
		breakdown map[string]int64
	}
	buckets := make(map[time.Time]*bucketAcc)

	for i := range sessions {
		s := &sessions[i]
		// A session contributes entirely to its start bucket, never split
		// across boundaries.
		start := bucketStart(s.StartTime.UTC(), bucket)
		acc, ok := buckets[start]
		if !ok {
			acc = &bucketAcc{}
			if breakdown != "" {
				acc.breakdown = make(map[string]int64)
			}
			buckets[start] = acc
		}
		acc.value += metricValue(s, metric)

		if breakdown != "" {
			for cat, v := range breakdownValues(s, metric, breakdown) {
				acc.breakdown[cat] += v
			}
		}
	}

	// Top-N selection is global across all buckets, so a category is either
	// always shown or always folded into "other" over the whole series.
	var keep map[string]struct{}
	if breakdown != "" && topN > 0 {
		totals := make(map[string]int64)
		for _, acc := range buckets {
			for cat, v := range acc.breakdown {
				totals[cat] += v
			}
		}
		cats := lo.Keys(totals)
		sort.Slice(cats, func(i, j int) bool {
			if totals[cats[i]] != totals[cats[j]] {
				return totals[cats[i]] > totals[cats[j]]
			}
			return cats[i] < cats[j]
		})
		if len(cats) > topN {
			cats = cats[:topN]
		}
		keep = make(map[string]struct{}, len(cats))
		for _, c := range cats {
			keep[c] = struct{}{}
		}
	}

	points := make([]model.TimeSeriesPoint, 0, len(buckets))
	for start, acc := range buckets {
		point := model.TimeSeriesPoint{
			Start: start,
			Label: bucketLabel(start, bucket),
			Value: acc.value,
		}
		if breakdown != "" {
			point.Breakdown = make(map[string]int64, len(acc.breakdown))
			var other int64
			for cat, v := range acc.breakdown {
				if keep != nil {
					if _, ok := keep[cat]; !ok {
						other += v
						continue
					}
				}
				point.Breakdown[cat] = v
			}
			if other != 0 {
				point.Breakdown[otherKey] = other
			}
		}
		points = append(points, point)
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Start.Before(points[j].Start)
	})
	return points, nil
}

func validateTrendArgs(metric, bucket, breakdown string) error {
	switch metric {
	case MetricTokens, MetricSessions, MetricToolCalls, MetricMessages:
	default:
		return fmt.Errorf("unknown metric %q", metric)
	}
	switch bucket {
	case BucketHourly, BucketDaily, BucketWeekly, BucketMonthly:
	default:
		return fmt.Errorf("unknown bucket size %q", bucket)
	}
	switch breakdown {
	case "", ByTool, ByModel, ByProvider, ByProject:
	default:
		return fmt.Errorf("unknown breakdown %q", breakdown)
	}
	return nil
}

func bucketStart(t time.Time, bucket string) time.Time {
	switch bucket {
	case BucketHourly:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, time.UTC)
	case BucketDaily:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	case BucketWeekly:
		// ISO week, Monday start.
		weekday := int(t.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		monday := t.AddDate(0, 0, -(weekday - 1))
		return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, time.UTC)
	default: // monthly
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
}

func bucketLabel(start time.Time, bucket string) string {
	switch bucket {
	case BucketHourly:
		return start.Format("2006-01-02 15:00")
	case BucketDaily:
		return start.Format("2006-01-02")
	case BucketWeekly:
		year, week := start.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	default:
		return start.Format("2006-01")
	}
}

func metricValue(s *model.SessionStats, metric string) int64 {
	switch metric {
	case MetricTokens:
		return s.Tokens.Total
	case MetricSessions:
		return 1
	case MetricToolCalls:
		return int64(s.ToolCalls)
	default:
		return int64(s.TotalMessages)
	}
}

func breakdownValues(s *model.SessionStats, metric, breakdown string) map[string]int64 {
	out := make(map[string]int64)
	switch breakdown {
	case ByTool:
		for name, tu := range s.Tools {
			out[name] += int64(tu.Calls)
		}
	case ByModel:
		for key, mu := range s.Models {
			name, _ := SplitModelKey(key)
			out[name] += modelValue(mu, metric)
		}
	case ByProvider:
		for key, mu := range s.Models {
			_, provider := SplitModelKey(key)
			out[provider] += modelValue(mu, metric)
		}
	case ByProject:
		out[s.Project] += metricValue(s, metric)
	}
	return out
}

func modelValue(mu *model.ModelUsage, metric string) int64 {
	if metric == MetricTokens {
		return mu.Tokens
	}
	return int64(mu.Calls)
}
