package pipeline

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agentstat/internal/model"
)

func fixtureSessions() []model.SessionStats {
	t0 := time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)
	return []model.SessionStats{
		{
			ID: "s1", Project: "myapp",
			StartTime: t0, EndTime: t0.Add(time.Hour), DurationMs: 3600000,
			TotalMessages: 10, UserMessages: 4, AssistantMessages: 5,
			ToolCalls: 3, ToolResults: 1, ToolErrors: 1,
			Tokens: model.TokenUsage{Input: 100, Output: 50, Total: 150},
			Cost:   1.0,
			Tools: map[string]*model.ToolUsage{
				"bash": {Calls: 2, Errors: 1},
				"read": {Calls: 1},
			},
			Models: map[string]*model.ModelUsage{
				"claude-sonnet-4-5@github-copilot": {Calls: 5, Tokens: 150, Cost: 1.0},
			},
		},
		{
			ID: "s2", Project: "myapp",
			StartTime: t0.Add(24 * time.Hour), EndTime: t0.Add(26 * time.Hour), DurationMs: 7200000,
			TotalMessages: 6, UserMessages: 2, AssistantMessages: 3,
			ToolCalls: 2, ToolResults: 1,
			Tokens: model.TokenUsage{Input: 200, Output: 100, Total: 300},
			Cost:   2.0,
			Tools: map[string]*model.ToolUsage{
				"bash": {Calls: 2},
			},
			Models: map[string]*model.ModelUsage{
				"claude-sonnet-4-5@20250929": {Calls: 3, Tokens: 300, Cost: 2.0},
			},
		},
		{
			ID: "s3", Project: "nixpkgs",
			StartTime: t0.Add(2 * time.Hour), EndTime: t0.Add(3 * time.Hour), DurationMs: 3600000,
			TotalMessages: 2, UserMessages: 1, AssistantMessages: 1,
			Tokens: model.TokenUsage{Input: 25, Output: 0, Total: 25},
			Cost:   0.5,
			Tools:  map[string]*model.ToolUsage{},
			Models: map[string]*model.ModelUsage{},
		},
	}
}

func allPeriod() Period {
	return Period{
		From:  time.Unix(0, 0),
		To:    time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
		Label: "All Time",
	}
}

func TestAggregate_Totals(t *testing.T) {
	agg := Aggregate(fixtureSessions(), allPeriod())

	assert.Equal(t, 3, agg.TotalSessions)
	assert.Equal(t, 18, agg.TotalMessages)
	assert.Equal(t, 7, agg.UserMessages)
	assert.Equal(t, 9, agg.AssistantMessages)
	assert.Equal(t, 5, agg.ToolCalls)
	assert.Equal(t, 2, agg.ToolResults)
	assert.Equal(t, 1, agg.ToolErrors)
	assert.Equal(t, int64(475), agg.Tokens.Total)
	assert.Equal(t, 3.5, agg.Cost)
	assert.Equal(t, int64(14400000), agg.TotalDurationMs)
}

func TestAggregate_Tools(t *testing.T) {
	agg := Aggregate(fixtureSessions(), allPeriod())

	bash := agg.Tools["bash"]
	require.NotNil(t, bash)
	assert.Equal(t, 4, bash.Calls)
	assert.Equal(t, 1, bash.Errors)
	// Two distinct sessions used bash, regardless of call volume.
	assert.Equal(t, 2, bash.SessionCount)
	// lastUsed is the max endTime across contributing sessions.
	wantLast := time.Date(2026, 2, 11, 10, 0, 0, 0, time.UTC)
	assert.True(t, bash.LastUsed.Equal(wantLast), "LastUsed = %v", bash.LastUsed)

	read := agg.Tools["read"]
	require.NotNil(t, read)
	assert.Equal(t, 1, read.SessionCount)
}

func TestAggregate_ModelKeySplit(t *testing.T) {
	agg := Aggregate(fixtureSessions(), allPeriod())

	ms := agg.Models["claude-sonnet-4-5@github-copilot"]
	require.NotNil(t, ms)
	assert.Equal(t, "claude-sonnet-4-5", ms.Model)
	assert.Equal(t, "github-copilot", ms.Provider)

	// A purely numeric suffix is a date in the model name, not a provider.
	ms = agg.Models["claude-sonnet-4-5@20250929"]
	require.NotNil(t, ms)
	assert.Equal(t, "claude-sonnet-4-5@20250929", ms.Model)
	assert.Equal(t, "unknown", ms.Provider)
}

func TestAggregate_Projects(t *testing.T) {
	agg := Aggregate(fixtureSessions(), allPeriod())

	myapp := agg.Projects["myapp"]
	require.NotNil(t, myapp)
	assert.Equal(t, 2, myapp.Sessions)
	assert.Equal(t, 16, myapp.Messages)
	assert.Equal(t, 5, myapp.ToolCalls)
	assert.Equal(t, int64(450), myapp.Tokens)

	assert.Equal(t, 1, agg.Projects["nixpkgs"].Sessions)
}

func TestAggregate_Commutative(t *testing.T) {
	base := Aggregate(fixtureSessions(), allPeriod())

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := fixtureSessions()
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		agg := Aggregate(shuffled, allPeriod())

		assert.Equal(t, base.Tokens, agg.Tokens)
		assert.Equal(t, base.Cost, agg.Cost)
		assert.Equal(t, base.TotalMessages, agg.TotalMessages)
		assert.Equal(t, base.Tools, agg.Tools)
		assert.Equal(t, base.Models, agg.Models)
		assert.Equal(t, base.Projects, agg.Projects)
	}
}

func TestAggregate_Empty(t *testing.T) {
	agg := Aggregate(nil, allPeriod())
	assert.Zero(t, agg.TotalSessions)
	assert.Empty(t, agg.Tools)
	assert.Empty(t, agg.Models)
	assert.Empty(t, agg.Projects)
}

func TestSplitModelKey(t *testing.T) {
	tests := []struct {
		key, model, provider string
	}{
		{"claude-sonnet-4-5@20250929", "claude-sonnet-4-5@20250929", "unknown"},
		{"claude-sonnet-4-5@github-copilot", "claude-sonnet-4-5", "github-copilot"},
		{"gpt-5@openai", "gpt-5", "openai"},
		{"bare-model", "bare-model", "unknown"},
		{"trailing@", "trailing@", "unknown"},
	}
	for _, tt := range tests {
		m, p := SplitModelKey(tt.key)
		assert.Equal(t, tt.model, m, tt.key)
		assert.Equal(t, tt.provider, p, tt.key)
	}
}

func TestTopBy(t *testing.T) {
	m := map[string]*model.ProjectStats{
		"a": {Tokens: 10},
		"b": {Tokens: 30},
		"c": {Tokens: 20},
	}
	key, val, ok := TopBy(m, func(p *model.ProjectStats) float64 { return float64(p.Tokens) })
	require.True(t, ok)
	assert.Equal(t, "b", key)
	assert.Equal(t, int64(30), val.Tokens)

	_, _, ok = TopBy(map[string]*model.ProjectStats{}, func(p *model.ProjectStats) float64 { return 0 })
	assert.False(t, ok)
}
