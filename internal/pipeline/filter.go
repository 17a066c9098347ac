// Package pipeline orchestrates session loading, caching, filtering,
// aggregation, and trend bucketing.
package pipeline

import (
	"fmt"
	"strings"
	"time"

	"agentstat/internal/model"
)

// Period is a resolved time window with a human label.
type Period struct {
	From  time.Time
	To    time.Time
	Label string
}

// ResolvePeriod computes the window for a named period against the
// caller-supplied current instant. Boundaries use now's location so the
// function stays pure and testable.
func ResolvePeriod(name string, now time.Time) (Period, error) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch name {
	case "", "today":
		return Period{From: midnight, To: now, Label: "Today"}, nil

	case "week":
		// ISO week, Monday start.
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		from := midnight.AddDate(0, 0, -(weekday - 1))
		return Period{From: from, To: now, Label: "This Week"}, nil

	case "month":
		from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return Period{From: from, To: now, Label: "This Month"}, nil

	case "quarter":
		q := (int(now.Month()) - 1) / 3
		from := time.Date(now.Year(), time.Month(q*3+1), 1, 0, 0, 0, 0, now.Location())
		label := fmt.Sprintf("Q%d %d", q+1, now.Year())
		return Period{From: from, To: now, Label: label}, nil

	case "year":
		from := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		return Period{From: from, To: now, Label: fmt.Sprintf("Year %d", now.Year())}, nil

	case "all":
		return Period{From: time.Unix(0, 0).In(now.Location()), To: now, Label: "All Time"}, nil

	default:
		return Period{}, fmt.Errorf("unknown period %q (want today, week, month, quarter, year, or all)", name)
	}
}

// FilterOptions selects sessions by time window and project name.
type FilterOptions struct {
	Period string
	// Explicit bounds override the named period entirely when either is set.
	From *time.Time
	To   *time.Time

	Project         string   // case-insensitive substring include
	ExcludeProjects []string // case-insensitive substring excludes; empty list is a no-op
}

// Resolve turns the options into a concrete window against now.
func (o FilterOptions) Resolve(now time.Time) (Period, error) {
	if o.From != nil || o.To != nil {
		p := Period{From: time.Unix(0, 0), To: now, Label: "Custom Range"}
		if o.From != nil {
			p.From = *o.From
		}
		if o.To != nil {
			p.To = *o.To
		}
		return p, nil
	}
	name := o.Period
	if name == "" {
		name = "all"
	}
	return ResolvePeriod(name, now)
}

// FilterSessions returns the sessions whose start time falls within the
// period (inclusive on both bounds) and whose project passes the
// include/exclude substring filters.
func FilterSessions(sessions []model.SessionStats, p Period, o FilterOptions) []model.SessionStats {
	var result []model.SessionStats
	for _, s := range sessions {
		if s.StartTime.Before(p.From) || s.StartTime.After(p.To) {
			continue
		}
		if o.Project != "" && !containsIgnoreCase(s.Project, o.Project) {
			continue
		}
		if excludedProject(s.Project, o.ExcludeProjects) {
			continue
		}
		result = append(result, s)
	}
	return result
}

func excludedProject(project string, excludes []string) bool {
	for _, e := range excludes {
		if e == "" {
			continue
		}
		if containsIgnoreCase(project, e) {
			return true
		}
	}
	return false
}

func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
