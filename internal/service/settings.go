package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"climate_station/internal/models"
	"climate_station/internal/repository"
)

var (
	ErrMissingSettings = errors.New("missing one or more required fields")
	ErrInvalidSettings = errors.New("invalid settings")
)

type SettingsService struct {
	settingsRepo repository.SettingsRepo
	eventRepo    repository.EventRepo
	now          func() time.Time
}

func NewSettingsService(settingsRepo repository.SettingsRepo, eventRepo repository.EventRepo) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo, eventRepo: eventRepo, now: time.Now}
}

// Current returns the newest settings, or nil when none were ever stored.
func (s *SettingsService) Current(ctx context.Context) (*models.Settings, error) {
	return s.settingsRepo.Latest(ctx)
}

// Update validates and stores a new settings row, then logs SETTINGS_CHANGED.
func (s *SettingsService) Update(ctx context.Context, p models.SettingsPayload) (models.Settings, error) {
	if !p.Complete() {
		return models.Settings{}, ErrMissingSettings
	}
	if err := validateThresholds(*p.TempHighThreshold, *p.TempLowThreshold, *p.LightThreshold); err != nil {
		return models.Settings{}, err
	}

	st := models.Settings{
		TempHighThreshold: *p.TempHighThreshold,
		TempLowThreshold:  *p.TempLowThreshold,
		LightThreshold:    *p.LightThreshold,
		UpdatedAt:         s.now().UTC(),
	}
	id, err := s.settingsRepo.Insert(ctx, st)
	if err != nil {
		return models.Settings{}, err
	}
	st.ID = id

	if s.eventRepo != nil {
		_ = s.eventRepo.Append(ctx, models.Event{
			OccurredAt:  st.UpdatedAt,
			Type:        models.EventSettingsChanged,
			Description: "Thresholds updated",
			Metadata: map[string]any{
				"temp_high_threshold": st.TempHighThreshold,
				"temp_low_threshold":  st.TempLowThreshold,
				"light_threshold":     st.LightThreshold,
			},
		})
	}
	return st, nil
}

func validateThresholds(high, low float64, light int) error {
	if low >= high {
		return fmt.Errorf("%w: temp_low_threshold %.1f must be below temp_high_threshold %.1f", ErrInvalidSettings, low, high)
	}
	if light < 0 {
		return fmt.Errorf("%w: light_threshold %d must not be negative", ErrInvalidSettings, light)
	}
	return nil
}
