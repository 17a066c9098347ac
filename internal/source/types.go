package source

// Entry type discriminants. Anything else decodes to EntryUnrecognized.
const (
	EntrySession       = "session"
	EntryMessage       = "message"
	EntryModelChange   = "model_change"
	EntryThinkingLevel = "thinking_level_change"
	EntryUnrecognized  = "unrecognized"
)

// Message role discriminants. Anything else decodes to RoleUnrecognized.
const (
	RoleUser          = "user"
	RoleAssistant     = "assistant"
	RoleToolResult    = "toolResult"
	RoleBashExecution = "bashExecution"
	RoleUnrecognized  = "unrecognized"
)

// RawEntry is one line of a JSONL session file, tagged by "type".
// A "session" entry is the file header (id, timestamp, cwd); a "message"
// entry wraps one RawMessage. Order in the file is significant.
type RawEntry struct {
	Type      string      `json:"type"`
	ID        string      `json:"id,omitempty"`
	Timestamp string      `json:"timestamp,omitempty"`
	Cwd       string      `json:"cwd,omitempty"`
	Model     string      `json:"model,omitempty"`
	Message   *RawMessage `json:"message,omitempty"`
}

// RawMessage is the agent message envelope, tagged by "role".
type RawMessage struct {
	Role      string         `json:"role"`
	Timestamp string         `json:"timestamp,omitempty"`
	Text      string         `json:"text,omitempty"`
	Model     string         `json:"model,omitempty"`
	Provider  string         `json:"provider,omitempty"`
	Usage     *RawUsage      `json:"usage,omitempty"`
	Cost      *RawCost       `json:"cost,omitempty"`
	Content   []ContentBlock `json:"content,omitempty"`

	// toolResult fields
	ToolCallID string `json:"toolCallId,omitempty"`
	ToolName   string `json:"toolName,omitempty"`
	IsError    bool   `json:"isError,omitempty"`
}

// ContentBlock is one block of an assistant message: text, thinking, or
// toolCall. Only toolCall blocks affect counters.
type ContentBlock struct {
	Type string `json:"type"`
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
	Text string `json:"text,omitempty"`
}

// RawUsage holds token counts for one assistant turn. Absent fields
// default to zero.
type RawUsage struct {
	Input      int64 `json:"input"`
	Output     int64 `json:"output"`
	CacheRead  int64 `json:"cacheRead"`
	CacheWrite int64 `json:"cacheWrite"`
}

// RawCost holds the cost breakdown for one assistant turn.
type RawCost struct {
	Input      float64 `json:"input"`
	Output     float64 `json:"output"`
	CacheRead  float64 `json:"cacheRead"`
	CacheWrite float64 `json:"cacheWrite"`
	Total      float64 `json:"total"`
}

// DiscoveredFile is one JSONL session file found during directory scanning.
type DiscoveredFile struct {
	Path        string
	Project     string // decoded display name
	ProjectDir  string // raw directory name
	DecodedPath string // directory name decoded back to a filesystem path
	SessionID   string // extracted from the filename
}
