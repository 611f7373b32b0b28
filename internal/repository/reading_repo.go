package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"climate_station/internal/models"
)

type ReadingSQLite struct {
	db *sql.DB
}

func NewReadingSQLite(db *sql.DB) *ReadingSQLite {
	return &ReadingSQLite{db: db}
}

var _ ReadingRepo = (*ReadingSQLite)(nil)

const (
	insertSensorSQL       = `INSERT INTO sensor_log (temperature, humidity, light, timestamp) VALUES (?, ?, ?, ?)`
	selectLatestSensorSQL = `SELECT id, temperature, humidity, light, timestamp FROM sensor_log ORDER BY timestamp DESC, id DESC LIMIT 1`
	selectSensorsAscSQL   = `SELECT id, temperature, humidity, light, timestamp FROM sensor_log ORDER BY timestamp ASC, id ASC`

	insertFanSQL       = `INSERT INTO fan_log (speed, source, timestamp) VALUES (?, ?, ?)`
	selectLatestFanSQL = `SELECT id, speed, source, timestamp FROM fan_log ORDER BY timestamp DESC, id DESC LIMIT 1`

	insertModeSQL       = `INSERT INTO mode_log (mode, timestamp) VALUES (?, ?)`
	selectLatestModeSQL = `SELECT id, mode, timestamp FROM mode_log ORDER BY timestamp DESC, id DESC LIMIT 1`
)

func stamp(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t.UTC()
}

func (r *ReadingSQLite) InsertSensor(ctx context.Context, s models.SensorReading) error {
	_, err := r.db.ExecContext(ctx, insertSensorSQL, s.Temperature, s.Humidity, s.Light, stamp(s.Timestamp))
	if err != nil {
		return fmt.Errorf("insert sensor reading: %w", err)
	}
	return nil
}

// LatestSensor returns (nil, nil) when nothing was logged yet.
func (r *ReadingSQLite) LatestSensor(ctx context.Context) (*models.SensorReading, error) {
	var s models.SensorReading
	err := r.db.QueryRowContext(ctx, selectLatestSensorSQL).
		Scan(&s.ID, &s.Temperature, &s.Humidity, &s.Light, &s.Timestamp)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select latest sensor reading: %w", err)
	}
	s.Timestamp = s.Timestamp.UTC()
	return &s, nil
}

// SensorHistory returns every reading, oldest first.
func (r *ReadingSQLite) SensorHistory(ctx context.Context) ([]models.SensorReading, error) {
	rows, err := r.db.QueryContext(ctx, selectSensorsAscSQL)
	if err != nil {
		return nil, fmt.Errorf("select sensor history: %w", err)
	}
	defer rows.Close()

	out := make([]models.SensorReading, 0, 256)
	for rows.Next() {
		var s models.SensorReading
		if err := rows.Scan(&s.ID, &s.Temperature, &s.Humidity, &s.Light, &s.Timestamp); err != nil {
			return nil, fmt.Errorf("scan sensor reading: %w", err)
		}
		s.Timestamp = s.Timestamp.UTC()
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sensor history: %w", err)
	}
	return out, nil
}

func (r *ReadingSQLite) InsertFan(ctx context.Context, f models.FanState) error {
	_, err := r.db.ExecContext(ctx, insertFanSQL, f.Speed, f.Source, stamp(f.Timestamp))
	if err != nil {
		return fmt.Errorf("insert fan state: %w", err)
	}
	return nil
}

func (r *ReadingSQLite) LatestFan(ctx context.Context) (*models.FanState, error) {
	var f models.FanState
	err := r.db.QueryRowContext(ctx, selectLatestFanSQL).Scan(&f.ID, &f.Speed, &f.Source, &f.Timestamp)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select latest fan state: %w", err)
	}
	f.Timestamp = f.Timestamp.UTC()
	return &f, nil
}

func (r *ReadingSQLite) InsertMode(ctx context.Context, mode string, at time.Time) error {
	if _, err := r.db.ExecContext(ctx, insertModeSQL, mode, stamp(at)); err != nil {
		return fmt.Errorf("insert mode %q: %w", mode, err)
	}
	return nil
}

func (r *ReadingSQLite) LatestMode(ctx context.Context) (*models.ModeEntry, error) {
	var m models.ModeEntry
	err := r.db.QueryRowContext(ctx, selectLatestModeSQL).Scan(&m.ID, &m.Mode, &m.Timestamp)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select latest mode: %w", err)
	}
	m.Timestamp = m.Timestamp.UTC()
	return &m, nil
}
