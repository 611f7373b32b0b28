package models

import "time"

// Event types written by the edge controller and the API.
const (
	EventModeChange      = "MODE_CHANGE"
	EventBuzzer          = "BUZZER"
	EventSettingsChanged = "SETTINGS_CHANGED"
	EventError           = "ERROR"
)

// EventTypes lists every type the log can hold, in display order.
var EventTypes = []string{EventModeChange, EventBuzzer, EventSettingsChanged, EventError}

// Event is a single log entry.
type Event struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // MODE_CHANGE | BUZZER | SETTINGS_CHANGED | ERROR
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
