package repository

import (
	"context"
	"database/sql"
	"time"

	"climate_station/internal/models"
)

type Authorization interface {
	Create(ctx context.Context, username, hash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// SettingsRepo stores threshold configuration; the newest row is current.
type SettingsRepo interface {
	Latest(ctx context.Context) (*models.Settings, error)
	Insert(ctx context.Context, s models.Settings) (int, error)
}

// ReadingRepo stores what the edge controller observes.
type ReadingRepo interface {
	InsertSensor(ctx context.Context, r models.SensorReading) error
	LatestSensor(ctx context.Context) (*models.SensorReading, error)
	SensorHistory(ctx context.Context) ([]models.SensorReading, error)

	InsertFan(ctx context.Context, f models.FanState) error
	LatestFan(ctx context.Context) (*models.FanState, error)

	InsertMode(ctx context.Context, mode string, at time.Time) error
	LatestMode(ctx context.Context) (*models.ModeEntry, error)
}

type EventRepo interface {
	Append(ctx context.Context, e models.Event) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.Event, error)
}

type Repository struct {
	Settings SettingsRepo
	Readings ReadingRepo
	Events   EventRepo
	Auth     Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Settings: NewSettingsSQLite(db),
		Readings: NewReadingSQLite(db),
		Events:   NewEventSQLite(db),
		Auth:     NewOperatorSQLite(db),
	}
}
