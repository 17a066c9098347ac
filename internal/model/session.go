// Package model defines domain types for agentstat sessions and aggregates.
package model

import "time"

// TokenUsage accumulates token counts across one or more assistant turns.
type TokenUsage struct {
	Input      int64 `json:"input"`
	Output     int64 `json:"output"`
	CacheRead  int64 `json:"cacheRead"`
	CacheWrite int64 `json:"cacheWrite"`
	Total      int64 `json:"total"`
}

// Add merges another usage record into this one.
func (t *TokenUsage) Add(o TokenUsage) {
	t.Input += o.Input
	t.Output += o.Output
	t.CacheRead += o.CacheRead
	t.CacheWrite += o.CacheWrite
	t.Total += o.Total
}

// ToolUsage tracks call and error counts for one tool within a session.
type ToolUsage struct {
	Calls  int `json:"calls"`
	Errors int `json:"errors"`
}

// ModelUsage tracks per-model usage within a session, keyed in
// SessionStats.Models by the exact "<model>@<provider>" string the
// session reported.
type ModelUsage struct {
	Calls  int     `json:"calls"`
	Tokens int64   `json:"tokens"`
	Cost   float64 `json:"cost"`
}

// SessionStats holds the derived metrics for a single session file.
// It is built once by the parser and never mutated afterwards.
type SessionStats struct {
	ID       string `json:"id"`
	Cwd      string `json:"cwd"`
	Project  string `json:"project"`
	FilePath string `json:"filePath"`

	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
	DurationMs int64     `json:"durationMs"`

	TotalMessages     int `json:"totalMessages"`
	UserMessages      int `json:"userMessages"`
	AssistantMessages int `json:"assistantMessages"`

	ToolCalls   int `json:"toolCalls"`
	ToolResults int `json:"toolResults"`
	ToolErrors  int `json:"toolErrors"`

	Tokens TokenUsage `json:"tokens"`
	Cost   float64    `json:"cost"`

	Tools  map[string]*ToolUsage  `json:"tools"`
	Models map[string]*ModelUsage `json:"models"`
}

// TotalTokens returns the session's total token count.
func (s *SessionStats) TotalTokens() int64 {
	return s.Tokens.Total
}
