package model

import "time"

// ToolStats holds merged tool usage across sessions. SessionIDs is the set
// of sessions that used the tool at least once; SessionCount mirrors its
// cardinality for serialization.
type ToolStats struct {
	Calls        int                 `json:"calls"`
	Errors       int                 `json:"errors"`
	SessionIDs   map[string]struct{} `json:"-"`
	SessionCount int                 `json:"sessions"`
	LastUsed     time.Time           `json:"lastUsed"`
}

// ModelStats holds merged usage for one model key. Model and Provider are
// split out of the "<model>@<provider>" key at merge time; a purely numeric
// trailing segment is a model-name date suffix, not a provider, and maps to
// provider "unknown".
type ModelStats struct {
	Model    string  `json:"model"`
	Provider string  `json:"provider"`
	Calls    int     `json:"calls"`
	Tokens   int64   `json:"tokens"`
	Cost     float64 `json:"cost"`
}

// ProjectStats holds merged per-project totals.
type ProjectStats struct {
	Sessions  int   `json:"sessions"`
	Messages  int   `json:"messages"`
	ToolCalls int   `json:"toolCalls"`
	Tokens    int64 `json:"tokens"`
}

// AggregatedStats is the result of folding a filtered session list.
// Built fresh per query, never cached.
type AggregatedStats struct {
	From  time.Time `json:"from"`
	To    time.Time `json:"to"`
	Label string    `json:"label"`

	Sessions []SessionStats `json:"-"`

	TotalSessions     int `json:"totalSessions"`
	TotalMessages     int `json:"totalMessages"`
	UserMessages      int `json:"userMessages"`
	AssistantMessages int `json:"assistantMessages"`

	ToolCalls   int `json:"toolCalls"`
	ToolResults int `json:"toolResults"`
	ToolErrors  int `json:"toolErrors"`

	Tokens          TokenUsage `json:"tokens"`
	Cost            float64    `json:"cost"`
	TotalDurationMs int64      `json:"totalDurationMs"`

	Tools    map[string]*ToolStats    `json:"tools"`
	Models   map[string]*ModelStats   `json:"models"`
	Projects map[string]*ProjectStats `json:"projects"`
}

// TimeSeriesPoint is one calendar-aligned bucket of a trend series.
// Breakdown is nil when no breakdown dimension was requested.
type TimeSeriesPoint struct {
	Start     time.Time        `json:"start"`
	Label     string           `json:"label"`
	Value     int64            `json:"value"`
	Breakdown map[string]int64 `json:"breakdown,omitempty"`
}
