package pipeline

import (
	"strings"

	"agentstat/internal/model"
)

// Aggregate folds a filtered session list into one AggregatedStats. The
// fold is order-independent: every operation is a commutative sum or a
// max-merge, so any permutation of sessions yields the same result.
func Aggregate(sessions []model.SessionStats, p Period) *model.AggregatedStats {
	agg := &model.AggregatedStats{
		From:     p.From,
		To:       p.To,
		Label:    p.Label,
		Sessions: sessions,
		Tools:    make(map[string]*model.ToolStats),
		Models:   make(map[string]*model.ModelStats),
		Projects: make(map[string]*model.ProjectStats),
	}

	for i := range sessions {
		s := &sessions[i]

		agg.TotalSessions++
		agg.TotalMessages += s.TotalMessages
		agg.UserMessages += s.UserMessages
		agg.AssistantMessages += s.AssistantMessages
		agg.ToolCalls += s.ToolCalls
		agg.ToolResults += s.ToolResults
		agg.ToolErrors += s.ToolErrors
		agg.Tokens.Add(s.Tokens)
		agg.Cost += s.Cost
		agg.TotalDurationMs += s.DurationMs

		for name, tu := range s.Tools {
			ts, ok := agg.Tools[name]
			if !ok {
				ts = &model.ToolStats{SessionIDs: make(map[string]struct{})}
				agg.Tools[name] = ts
			}
			ts.Calls += tu.Calls
			ts.Errors += tu.Errors
			ts.SessionIDs[s.ID] = struct{}{}
			if s.EndTime.After(ts.LastUsed) {
				ts.LastUsed = s.EndTime
			}
		}

		// The merge stays keyed on the exact session-reported string; the
		// model/provider split happens here, not at storage time.
		for key, mu := range s.Models {
			ms, ok := agg.Models[key]
			if !ok {
				modelName, provider := SplitModelKey(key)
				ms = &model.ModelStats{Model: modelName, Provider: provider}
				agg.Models[key] = ms
			}
			ms.Calls += mu.Calls
			ms.Tokens += mu.Tokens
			ms.Cost += mu.Cost
		}

		ps, ok := agg.Projects[s.Project]
		if !ok {
			ps = &model.ProjectStats{}
			agg.Projects[s.Project] = ps
		}
		ps.Sessions++
		ps.Messages += s.TotalMessages
		ps.ToolCalls += s.ToolCalls
		ps.Tokens += s.Tokens.Total
	}

	for _, ts := range agg.Tools {
		ts.SessionCount = len(ts.SessionIDs)
	}

	return agg
}

// SplitModelKey splits a "<model>@<provider>" key into display fields. A
// purely numeric final segment is a date suffix of the model name itself,
// so the model keeps the full key and the provider is "unknown".
func SplitModelKey(key string) (modelName, provider string) {
	at := strings.LastIndex(key, "@")
	if at < 0 {
		return key, "unknown"
	}
	suffix := key[at+1:]
	if suffix == "" || isNumeric(suffix) {
		return key, "unknown"
	}
	return key[:at], suffix
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// TopBy returns the key and value with the strictly greatest numeric value,
// or ok=false for an empty map. On ties the first-encountered maximal entry
// wins; map iteration order is implementation-defined, and so is this
// tie-break (ties produce identical numbers either way).
func TopBy[V any](m map[string]V, value func(V) float64) (key string, val V, ok bool) {
	best := 0.0
	for k, v := range m {
		n := value(v)
		if !ok || n > best {
			key, val, best, ok = k, v, n, true
		}
	}
	return key, val, ok
}
