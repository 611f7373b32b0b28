package models

// SummaryStats aggregates the sensor history. Averages are time-weighted.
type SummaryStats struct {
	AvgTemperature float64 `json:"avg_temperature"`
	MinTemperature float64 `json:"min_temperature"`
	MaxTemperature float64 `json:"max_temperature"`
	AvgHumidity    float64 `json:"avg_humidity"`
	MinHumidity    float64 `json:"min_humidity"`
	MaxHumidity    float64 `json:"max_humidity"`
	AvgLight       float64 `json:"avg_light"`
	MinLight       int     `json:"min_light"`
	MaxLight       int     `json:"max_light"`
}
