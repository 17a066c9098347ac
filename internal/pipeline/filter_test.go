package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agentstat/internal/model"
)

func sessionAt(id string, start time.Time) model.SessionStats {
	return model.SessionStats{ID: id, Project: "p", StartTime: start, EndTime: start}
}

func TestResolvePeriod(t *testing.T) {
	now := time.Date(2026, 2, 11, 15, 0, 0, 0, time.UTC) // a Wednesday

	tests := []struct {
		name     string
		wantFrom time.Time
		wantLbl  string
	}{
		{"today", time.Date(2026, 2, 11, 0, 0, 0, 0, time.UTC), "Today"},
		{"week", time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC), "This Week"},
		{"month", time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), "This Month"},
		{"quarter", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), "Q1 2026"},
		{"year", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), "Year 2026"},
		{"all", time.Unix(0, 0).In(time.UTC), "All Time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ResolvePeriod(tt.name, now)
			require.NoError(t, err)
			assert.True(t, p.From.Equal(tt.wantFrom), "From = %v, want %v", p.From, tt.wantFrom)
			assert.True(t, p.To.Equal(now))
			assert.Equal(t, tt.wantLbl, p.Label)
		})
	}

	_, err := ResolvePeriod("fortnight", now)
	assert.Error(t, err)
}

func TestResolvePeriod_WeekOnMonday(t *testing.T) {
	monday := time.Date(2026, 2, 9, 10, 0, 0, 0, time.UTC)
	p, err := ResolvePeriod("week", monday)
	require.NoError(t, err)
	assert.True(t, p.From.Equal(time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC)))
}

func TestFilterSessions_Periods(t *testing.T) {
	now := time.Date(2026, 2, 11, 15, 0, 0, 0, time.UTC)
	sessions := []model.SessionStats{
		sessionAt("jan", time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)),
		sessionAt("mon", time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)),
		sessionAt("tue", time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)),
		sessionAt("wed", time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)),
	}

	ids := func(periodName string) []string {
		p, err := ResolvePeriod(periodName, now)
		require.NoError(t, err)
		var got []string
		for _, s := range FilterSessions(sessions, p, FilterOptions{}) {
			got = append(got, s.ID)
		}
		return got
	}

	assert.Equal(t, []string{"mon", "tue", "wed"}, ids("week"))
	assert.Equal(t, []string{"mon", "tue", "wed"}, ids("month"))
	assert.Equal(t, []string{"jan", "mon", "tue", "wed"}, ids("year"))
	assert.Equal(t, []string{"jan", "mon", "tue", "wed"}, ids("all"))
}

func TestFilterSessions_ExplicitBoundsOverridePeriod(t *testing.T) {
	now := time.Date(2026, 2, 11, 15, 0, 0, 0, time.UTC)
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	opts := FilterOptions{Period: "today", From: &from}
	p, err := opts.Resolve(now)
	require.NoError(t, err)

	// The named period is ignored entirely; the missing bound defaults to now.
	assert.True(t, p.From.Equal(from))
	assert.True(t, p.To.Equal(now))
	assert.Equal(t, "Custom Range", p.Label)
}

func TestFilterSessions_BoundsInclusive(t *testing.T) {
	from := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 2, 11, 0, 0, 0, 0, time.UTC)
	sessions := []model.SessionStats{
		sessionAt("on-from", from),
		sessionAt("on-to", to),
		sessionAt("before", from.Add(-time.Second)),
		sessionAt("after", to.Add(time.Second)),
	}

	got := FilterSessions(sessions, Period{From: from, To: to}, FilterOptions{})
	require.Len(t, got, 2)
	assert.Equal(t, "on-from", got[0].ID)
	assert.Equal(t, "on-to", got[1].ID)
}

func TestFilterSessions_ProjectFilters(t *testing.T) {
	at := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	p := Period{From: at.AddDate(0, 0, -1), To: at.AddDate(0, 0, 1)}

	mk := func(id, project string) model.SessionStats {
		s := sessionAt(id, at)
		s.Project = project
		return s
	}
	sessions := []model.SessionStats{
		mk("a", "home"),
		mk("b", "home"),
		mk("c", "tektoncd/pipeline"),
		mk("d", "nixpkgs"),
	}

	got := FilterSessions(sessions, p, FilterOptions{ExcludeProjects: []string{"HOME"}})
	require.Len(t, got, 2)
	assert.Equal(t, "tektoncd/pipeline", got[0].Project)
	assert.Equal(t, "nixpkgs", got[1].Project)

	got = FilterSessions(sessions, p, FilterOptions{Project: "Tekton"})
	require.Len(t, got, 1)
	assert.Equal(t, "c", got[0].ID)

	// An empty exclude list is a no-op.
	got = FilterSessions(sessions, p, FilterOptions{ExcludeProjects: []string{}})
	assert.Len(t, got, 4)
}
