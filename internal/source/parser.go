// Package source discovers and parses agent JSONL session files.
package source

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"agentstat/internal/model"
)

// ParseResult holds the output of parsing a single JSONL file.
// Stats is nil when the file has no session header (not an error).
type ParseResult struct {
	Stats        *model.SessionStats
	SkippedLines int
	Err          error
}

// ParseFile reads a JSONL session file and derives its session statistics.
// Malformed lines are skipped individually; only an unreadable file sets Err.
func ParseFile(df DiscoveredFile, home string) ParseResult {
	f, err := os.Open(df.Path)
	if err != nil {
		return ParseResult{Err: err}
	}
	defer func() { _ = f.Close() }()

	entries, skipped, err := ReadEntries(f)
	if err != nil {
		return ParseResult{Err: err}
	}

	return ParseResult{
		Stats:        DeriveSessionStats(df, entries, home),
		SkippedLines: skipped,
	}
}

// ReadEntries parses a stream of JSONL lines into raw entries. Each line is
// parsed independently: blank lines are ignored, lines that fail to parse
// are counted and skipped. Logs are append-only, so a crash mid-write can
// leave a truncated final line; that must never fail the whole file.
func ReadEntries(r io.Reader) ([]RawEntry, int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 256*1024), 4*1024*1024)

	var entries []RawEntry
	skipped := 0

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var entry RawEntry
		if err := sonic.Unmarshal(line, &entry); err != nil {
			skipped++
			continue
		}

		switch entry.Type {
		case EntrySession, EntryMessage, EntryModelChange, EntryThinkingLevel:
		default:
			entry.Type = EntryUnrecognized
		}
		if entry.Message != nil {
			switch entry.Message.Role {
			case RoleUser, RoleAssistant, RoleToolResult, RoleBashExecution:
			default:
				entry.Message.Role = RoleUnrecognized
			}
		}

		entries = append(entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, skipped, err
	}
	return entries, skipped, nil
}

// DeriveSessionStats folds raw entries into one SessionStats. A file with
// no "session" header entry is not a valid session and yields nil.
func DeriveSessionStats(df DiscoveredFile, entries []RawEntry, home string) *model.SessionStats {
	var header *RawEntry
	for i := range entries {
		if entries[i].Type == EntrySession {
			header = &entries[i]
			break
		}
	}
	if header == nil {
		return nil
	}

	headerTime := parseTimestamp(header.Timestamp)

	stats := &model.SessionStats{
		ID:        header.ID,
		Cwd:       header.Cwd,
		FilePath:  df.Path,
		StartTime: headerTime,
		EndTime:   headerTime,
		Tools:     make(map[string]*model.ToolUsage),
		Models:    make(map[string]*model.ModelUsage),
	}
	if stats.ID == "" {
		stats.ID = df.SessionID
	}

	for i := range entries {
		entry := &entries[i]
		if entry.Type != EntryMessage || entry.Message == nil {
			continue
		}
		msg := entry.Message

		// The message timestamp takes precedence over the entry timestamp.
		ts := parseTimestamp(msg.Timestamp)
		if ts.IsZero() {
			ts = parseTimestamp(entry.Timestamp)
		}
		if !ts.IsZero() && ts.After(stats.EndTime) {
			stats.EndTime = ts
		}

		switch msg.Role {
		case RoleUser:
			stats.UserMessages++
			stats.TotalMessages++

		case RoleAssistant:
			stats.AssistantMessages++
			stats.TotalMessages++
			applyAssistantTurn(stats, msg)

		case RoleToolResult:
			stats.TotalMessages++
			stats.ToolResults++
			if msg.IsError {
				stats.ToolErrors++
				// Error tallies attach only to tools with a recorded call;
				// a result naming an unknown tool is ignored here.
				if tu, ok := stats.Tools[msg.ToolName]; ok {
					tu.Errors++
				}
			}

		case RoleBashExecution:
			// Tracked in the log but excluded from tool-call accounting.
		}
	}

	stats.DurationMs = stats.EndTime.Sub(stats.StartTime).Milliseconds()
	stats.Project = deriveProject(stats.Cwd, df.Project, home)

	return stats
}

func applyAssistantTurn(stats *model.SessionStats, msg *RawMessage) {
	var turn model.TokenUsage
	if msg.Usage != nil {
		turn = model.TokenUsage{
			Input:      msg.Usage.Input,
			Output:     msg.Usage.Output,
			CacheRead:  msg.Usage.CacheRead,
			CacheWrite: msg.Usage.CacheWrite,
		}
		turn.Total = turn.Input + turn.Output + turn.CacheRead + turn.CacheWrite
	}
	stats.Tokens.Add(turn)

	var cost float64
	if msg.Cost != nil {
		cost = msg.Cost.Total
	}
	stats.Cost += cost

	if msg.Model != "" {
		key := ModelKey(msg.Model, msg.Provider)
		mu, ok := stats.Models[key]
		if !ok {
			mu = &model.ModelUsage{}
			stats.Models[key] = mu
		}
		mu.Calls++
		mu.Tokens += turn.Total
		mu.Cost += cost
	}

	// A single assistant turn may carry several tool calls; each counts.
	for _, block := range msg.Content {
		if block.Type != "toolCall" {
			continue
		}
		stats.ToolCalls++
		if block.Name == "" {
			continue
		}
		tu, ok := stats.Tools[block.Name]
		if !ok {
			tu = &model.ToolUsage{}
			stats.Tools[block.Name] = tu
		}
		tu.Calls++
	}
}

// ModelKey builds the session-reported model map key.
func ModelKey(modelName, provider string) string {
	if provider == "" {
		provider = "unknown"
	}
	return modelName + "@" + provider
}

// sourceRoots are conventional source-root directory names stripped from
// the front of a project path.
var sourceRoots = map[string]bool{
	"projects": true, "repos": true, "src": true,
	"code": true, "workspace": true, "dev": true,
}

// ProjectFromPath derives a display project name from a working directory.
// Pure string transform: strip the home prefix, then one conventional
// source-root segment, then a leading separator. Empty maps to "~".
func ProjectFromPath(path, home string) string {
	p := path
	if home != "" && strings.HasPrefix(p, home) {
		p = strings.TrimPrefix(p, home)
	}
	p = strings.TrimPrefix(p, "/")
	if seg, rest, ok := strings.Cut(p, "/"); sourceRoots[seg] {
		if ok {
			p = rest
		} else {
			p = ""
		}
	}
	p = strings.TrimPrefix(p, "/")
	if p == "" {
		return "~"
	}
	return p
}

func deriveProject(cwd, fallback, home string) string {
	if cwd != "" {
		return ProjectFromPath(cwd, home)
	}
	if fallback != "" {
		return fallback
	}
	return "~"
}

func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	ts, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return ts
}
