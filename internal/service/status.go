package service

import (
	"context"

	"climate_station/internal/models"
	"climate_station/internal/repository"
)

type StatusService struct {
	readings repository.ReadingRepo
}

func NewStatusService(readings repository.ReadingRepo) *StatusService {
	return &StatusService{readings: readings}
}

// Snapshot assembles the latest mode, sensor reading and fan state.
// Sensor and Fan stay nil until something was logged.
func (s *StatusService) Snapshot(ctx context.Context) (models.StatusSnapshot, error) {
	snap := models.StatusSnapshot{Mode: models.ModeUnknown}

	mode, err := s.readings.LatestMode(ctx)
	if err != nil {
		return models.StatusSnapshot{}, err
	}
	if mode != nil {
		snap.Mode = mode.Mode
	}

	if snap.Sensor, err = s.readings.LatestSensor(ctx); err != nil {
		return models.StatusSnapshot{}, err
	}
	if snap.Fan, err = s.readings.LatestFan(ctx); err != nil {
		return models.StatusSnapshot{}, err
	}
	return snap, nil
}
