package edge

import (
	"math"

	"climate_station/internal/models"
)

// Change-detection deadbands.
const (
	TempDeadband     = 0.5
	HumDeadband      = 2.0
	LightDeadband    = 8
	FanSpeedDeadband = 2
)

// Thresholds drive the buzzer.
type Thresholds struct {
	TempHigh float64
	TempLow  float64
	Light    int
}

// DefaultThresholds apply until a settings row exists.
var DefaultThresholds = Thresholds{TempHigh: 30.0, TempLow: 15.0, Light: 30}

func thresholdsFrom(s models.Settings) Thresholds {
	return Thresholds{TempHigh: s.TempHighThreshold, TempLow: s.TempLowThreshold, Light: s.LightThreshold}
}

// Alarm is true when it is bright and the temperature is out of band.
// The reason is one of high_temp, low_temp, in_range or dark.
func (t Thresholds) Alarm(temp float64, light int) (bool, string) {
	switch {
	case light <= t.Light:
		return false, "dark"
	case temp > t.TempHigh:
		return true, "high_temp"
	case temp < t.TempLow:
		return true, "low_temp"
	default:
		return false, "in_range"
	}
}

// sensorChanged reports whether r differs enough from prev to be stored.
func sensorChanged(prev *models.SensorReading, r models.SensorReading) bool {
	if prev == nil {
		return true
	}
	return math.Abs(r.Temperature-prev.Temperature) > TempDeadband ||
		math.Abs(r.Humidity-prev.Humidity) > HumDeadband ||
		absInt(r.Light-prev.Light) > LightDeadband
}

func fanChanged(prev *models.FanState, f models.FanState) bool {
	if prev == nil {
		return true
	}
	return absInt(f.Speed-prev.Speed) > FanSpeedDeadband || f.Source != prev.Source
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
