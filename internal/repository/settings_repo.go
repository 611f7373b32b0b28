package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"climate_station/internal/models"
)

type SettingsSQLite struct {
	db *sql.DB
}

func NewSettingsSQLite(db *sql.DB) *SettingsSQLite {
	return &SettingsSQLite{db: db}
}

var _ SettingsRepo = (*SettingsSQLite)(nil)

const (
	insertSettingsSQL       = `INSERT INTO settings (temp_high_threshold, temp_low_threshold, light_threshold, updated_at) VALUES (?, ?, ?, ?)`
	selectLatestSettingsSQL = `SELECT id, temp_high_threshold, temp_low_threshold, light_threshold, updated_at FROM settings ORDER BY updated_at DESC, id DESC LIMIT 1`
)

// Latest returns the most recent settings row, or (nil, nil) when none exist.
func (r *SettingsSQLite) Latest(ctx context.Context) (*models.Settings, error) {
	var s models.Settings
	err := r.db.QueryRowContext(ctx, selectLatestSettingsSQL).
		Scan(&s.ID, &s.TempHighThreshold, &s.TempLowThreshold, &s.LightThreshold, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select latest settings: %w", err)
	}
	s.UpdatedAt = s.UpdatedAt.UTC()
	return &s, nil
}

// Insert appends a settings row; history is kept, the newest wins.
func (r *SettingsSQLite) Insert(ctx context.Context, s models.Settings) (int, error) {
	ts := s.UpdatedAt
	if ts.IsZero() {
		ts = time.Now()
	}
	res, err := r.db.ExecContext(ctx, insertSettingsSQL,
		s.TempHighThreshold,
		s.TempLowThreshold,
		s.LightThreshold,
		ts.UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert settings: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for settings: %w", err)
	}
	return int(id), nil
}
