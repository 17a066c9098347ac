package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agentstat/internal/model"
)

func reportFixture() []model.SessionStats {
	start := time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)
	return []model.SessionStats{
		{
			ID:            "s1",
			Project:       "myapp",
			StartTime:     start,
			EndTime:       start.Add(time.Hour),
			TotalMessages: 12,
			ToolCalls:     4,
			Tokens:        model.TokenUsage{Total: 500},
			Cost:          1.25,
			Tools:         map[string]*model.ToolUsage{"bash": {Calls: 4}},
			Models:        map[string]*model.ModelUsage{"claude-sonnet-4-5@github-copilot": {Calls: 6, Tokens: 500}},
		},
		{
			ID:            "s2",
			Project:       "nixpkgs",
			StartTime:     start.Add(-40 * 24 * time.Hour),
			EndTime:       start.Add(-40 * 24 * time.Hour),
			TotalMessages: 3,
			Tokens:        model.TokenUsage{Total: 100},
		},
	}
}

func TestBuild(t *testing.T) {
	now := time.Date(2026, 2, 11, 15, 0, 0, 0, time.UTC)
	d, err := Build(reportFixture(), "month", true, now)
	require.NoError(t, err)

	require.Len(t, d.Periods, 6)
	assert.Equal(t, "month", d.DefaultPeriod)

	byName := map[string]PeriodData{}
	for _, p := range d.Periods {
		byName[p.Name] = p
	}

	month := byName["month"]
	assert.Equal(t, 1, month.Summary.Sessions, "older session falls outside the month")
	assert.Equal(t, int64(500), month.Summary.Tokens)
	require.Len(t, month.Tools, 1)
	assert.Equal(t, "bash", month.Tools[0].Name)
	require.Len(t, month.Models, 1)
	assert.Equal(t, "claude-sonnet-4-5", month.Models[0].Name)

	all := byName["all"]
	assert.Equal(t, 2, all.Summary.Sessions)
	assert.Equal(t, int64(600), all.Summary.Tokens)
	assert.Equal(t, 2, all.Summary.Projects)

	today := byName["today"]
	assert.Equal(t, 0, today.Summary.Sessions)
	assert.Empty(t, today.Series)
}

func TestRender(t *testing.T) {
	now := time.Date(2026, 2, 11, 15, 0, 0, 0, time.UTC)
	d, err := Build(reportFixture(), "month", false, now)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, d))
	html := buf.String()

	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "const DATA = {")
	assert.Contains(t, html, `"defaultPeriod":"month"`)
	assert.Contains(t, html, "myapp")
	assert.NotContains(t, html, "<script src", "document must not load external resources")
	assert.NotContains(t, html, "<link rel")
}

func TestRender_EmptyData(t *testing.T) {
	d, err := Build(nil, "all", true, time.Now())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, d))
	assert.Contains(t, buf.String(), "Agent Usage Report")
}
