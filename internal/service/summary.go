package service

import (
	"context"
	"errors"
	"math"

	"climate_station/internal/models"
	"climate_station/internal/repository"
)

// ErrNotEnoughData is returned while fewer than two readings span a non-zero interval.
var ErrNotEnoughData = errors.New("not enough data to summarize")

type SummaryService struct {
	readings repository.ReadingRepo
}

func NewSummaryService(readings repository.ReadingRepo) *SummaryService {
	return &SummaryService{readings: readings}
}

func (s *SummaryService) Summarize(ctx context.Context) (models.SummaryStats, error) {
	rows, err := s.readings.SensorHistory(ctx)
	if err != nil {
		return models.SummaryStats{}, err
	}
	return summarize(rows)
}

// summarize weights each reading by how long it stayed current, i.e. until
// the next reading. The last reading has no duration and only counts for min/max.
func summarize(rows []models.SensorReading) (models.SummaryStats, error) {
	if len(rows) < 2 {
		return models.SummaryStats{}, ErrNotEnoughData
	}

	var total, wTemp, wHum, wLight float64
	for i := 0; i < len(rows)-1; i++ {
		dt := rows[i+1].Timestamp.Sub(rows[i].Timestamp).Seconds()
		wTemp += rows[i].Temperature * dt
		wHum += rows[i].Humidity * dt
		wLight += float64(rows[i].Light) * dt
		total += dt
	}
	if total <= 0 {
		return models.SummaryStats{}, ErrNotEnoughData
	}

	out := models.SummaryStats{
		AvgTemperature: round2(wTemp / total),
		AvgHumidity:    round2(wHum / total),
		AvgLight:       round2(wLight / total),
		MinTemperature: rows[0].Temperature,
		MaxTemperature: rows[0].Temperature,
		MinHumidity:    rows[0].Humidity,
		MaxHumidity:    rows[0].Humidity,
		MinLight:       rows[0].Light,
		MaxLight:       rows[0].Light,
	}
	for _, r := range rows[1:] {
		out.MinTemperature = math.Min(out.MinTemperature, r.Temperature)
		out.MaxTemperature = math.Max(out.MaxTemperature, r.Temperature)
		out.MinHumidity = math.Min(out.MinHumidity, r.Humidity)
		out.MaxHumidity = math.Max(out.MaxHumidity, r.Humidity)
		out.MinLight = min(out.MinLight, r.Light)
		out.MaxLight = max(out.MaxLight, r.Light)
	}
	return out, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
