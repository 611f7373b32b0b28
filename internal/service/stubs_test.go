package service

import (
	"context"
	"time"

	"climate_station/internal/models"
)

type fakeEventRepo struct {
	gotCtx  context.Context
	gotFrom time.Time
	gotTo   time.Time
	gotType string

	events []models.Event
	err    error

	appended []models.Event
	calls    int
}

func (f *fakeEventRepo) List(ctx context.Context, from, to time.Time, typ string) ([]models.Event, error) {
	f.calls++
	f.gotCtx = ctx
	f.gotFrom = from
	f.gotTo = to
	f.gotType = typ
	return f.events, f.err
}

func (f *fakeEventRepo) Append(ctx context.Context, e models.Event) error {
	f.appended = append(f.appended, e)
	return nil
}

type fakeSettingsRepo struct {
	latest    *models.Settings
	latestErr error
	insertID  int
	insertErr error
	inserted  []models.Settings
}

func (f *fakeSettingsRepo) Latest(ctx context.Context) (*models.Settings, error) {
	return f.latest, f.latestErr
}

func (f *fakeSettingsRepo) Insert(ctx context.Context, s models.Settings) (int, error) {
	f.inserted = append(f.inserted, s)
	return f.insertID, f.insertErr
}

// fakeReadingRepo answers the Latest*/History queries from fixed values.
type fakeReadingRepo struct {
	sensor  *models.SensorReading
	fan     *models.FanState
	mode    *models.ModeEntry
	history []models.SensorReading
	err     error
}

func (f *fakeReadingRepo) InsertSensor(ctx context.Context, r models.SensorReading) error { return f.err }
func (f *fakeReadingRepo) LatestSensor(ctx context.Context) (*models.SensorReading, error) {
	return f.sensor, f.err
}
func (f *fakeReadingRepo) SensorHistory(ctx context.Context) ([]models.SensorReading, error) {
	return f.history, f.err
}
func (f *fakeReadingRepo) InsertFan(ctx context.Context, s models.FanState) error { return f.err }
func (f *fakeReadingRepo) LatestFan(ctx context.Context) (*models.FanState, error) {
	return f.fan, f.err
}
func (f *fakeReadingRepo) InsertMode(ctx context.Context, mode string, at time.Time) error {
	return f.err
}
func (f *fakeReadingRepo) LatestMode(ctx context.Context) (*models.ModeEntry, error) {
	return f.mode, f.err
}

func f64(v float64) *float64 { return &v }
func intp(v int) *int { return &v }
