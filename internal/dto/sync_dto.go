package dto

import "time"

// ExecutionRecord is the telemetry payload replayed to POST /executions.
type ExecutionRecord struct {
	ToolId      string        `json:"tool_id"`
	InputChars  int           `json:"input_chars"`
	OutputChars int           `json:"output_chars"`
	Duration    time.Duration `json:"duration_ns"`
	StartedAt   time.Time     `json:"started_at"`
	Succeeded   bool          `json:"succeeded"`
}

// FavoriteToggle is replayed to POST/DELETE /tools/{id}/favorite.
type FavoriteToggle struct {
	ToolId   string `json:"tool_id"`
	Favorite bool   `json:"favorite"`
}

// PreferencesUpdate is replayed to PUT /users/preferences. The preferences
// body is opaque to the sync layer.
type PreferencesUpdate struct {
	Preferences map[string]interface{} `json:"preferences"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// UsageLog is replayed to POST /usage/log.
type UsageLog struct {
	Event      string    `json:"event"`
	Detail     string    `json:"detail,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
