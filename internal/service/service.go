package service

import (
	"context"

	"climate_station/internal/models"
	"climate_station/internal/repository"
)

type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Settings reads and replaces the threshold configuration.
type Settings interface {
	Current(ctx context.Context) (*models.Settings, error)
	Update(ctx context.Context, p models.SettingsPayload) (models.Settings, error)
}

// Status exposes the latest mode, sensor reading and fan state.
type Status interface {
	Snapshot(ctx context.Context) (models.StatusSnapshot, error)
}

// Summary aggregates the sensor history.
type Summary interface {
	Summarize(ctx context.Context) (models.SummaryStats, error)
}

// EventLog exposes append-only logs with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.Event, error)
}

// Service aggregates all sub-services for the HTTP layer.
type Service struct {
	Settings
	Status
	Summary
	EventLog
	Authorization
}

func NewService(repos *repository.Repository, auth AuthOptions) *Service {
	return &Service{
		Settings:      NewSettingsService(repos.Settings, repos.Events),
		Status:        NewStatusService(repos.Readings),
		Summary:       NewSummaryService(repos.Readings),
		EventLog:      NewEventLogService(repos.Events),
		Authorization: NewAuthService(repos.Auth, auth),
	}
}
