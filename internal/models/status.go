package models

import "time"

// ModeUnknown is reported when no mode has been logged yet.
const ModeUnknown = "UNKNOWN"

// SensorReading is one row of sensor_log.
type SensorReading struct {
	ID          int       `json:"id"`
	Temperature float64   `json:"temperature"`
	Humidity    float64   `json:"humidity"`
	Light       int       `json:"light"`
	Timestamp   time.Time `json:"timestamp"`
}

// FanState is one row of fan_log.
type FanState struct {
	ID        int       `json:"id"`
	Speed     int       `json:"speed"`
	Source    string    `json:"source"` // reported by the microcontroller, e.g. POT or FIXED
	Timestamp time.Time `json:"timestamp"`
}

// ModeEntry is one row of mode_log.
type ModeEntry struct {
	ID        int       `json:"id"`
	Mode      string    `json:"mode"`
	Timestamp time.Time `json:"timestamp"`
}

// StatusSnapshot is the point-in-time view served on /status.
type StatusSnapshot struct {
	Mode   string         `json:"mode"`
	Sensor *SensorReading `json:"sensor"`
	Fan    *FanState      `json:"fan"`
}
