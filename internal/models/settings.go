package models

import "time"

// Settings is one persisted row of the threshold configuration.
type Settings struct {
	ID                int       `json:"id"`
	TempHighThreshold float64   `json:"temp_high_threshold"`
	TempLowThreshold  float64   `json:"temp_low_threshold"`
	LightThreshold    int       `json:"light_threshold"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// SettingsPayload is the body exchanged on /settings.
// Pointers distinguish an absent field from a zero value.
type SettingsPayload struct {
	TempHighThreshold *float64 `json:"temp_high_threshold"`
	TempLowThreshold  *float64 `json:"temp_low_threshold"`
	LightThreshold    *int     `json:"light_threshold"`
}

// Complete reports whether all three thresholds are present.
func (p SettingsPayload) Complete() bool {
	return p.TempHighThreshold != nil && p.TempLowThreshold != nil && p.LightThreshold != nil
}
