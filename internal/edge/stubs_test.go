package edge

import (
	"context"
	"errors"
	"sync"
	"time"

	"climate_station/internal/models"
)

// ---- Test doubles ----

type settingsStub struct {
	mu     sync.Mutex
	latest *models.Settings
	err    error
	calls  int
}

func (s *settingsStub) Latest(ctx context.Context) (*models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.latest, s.err
}
func (s *settingsStub) Insert(ctx context.Context, st models.Settings) (int, error) {
	return 0, errors.New("not used")
}
func (s *settingsStub) set(st *models.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = st
}

type readingsStub struct {
	mu        sync.Mutex
	sensors   []models.SensorReading
	fans      []models.FanState
	modes     []string
	last      *models.SensorReading
	insertErr error
}

func (r *readingsStub) InsertSensor(ctx context.Context, rd models.SensorReading) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return r.insertErr
	}
	r.sensors = append(r.sensors, rd)
	return nil
}
func (r *readingsStub) LatestSensor(ctx context.Context) (*models.SensorReading, error) {
	return r.last, nil
}
func (r *readingsStub) SensorHistory(ctx context.Context) ([]models.SensorReading, error) {
	return nil, nil
}
func (r *readingsStub) InsertFan(ctx context.Context, f models.FanState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fans = append(r.fans, f)
	return nil
}
func (r *readingsStub) LatestFan(ctx context.Context) (*models.FanState, error) { return nil, nil }
func (r *readingsStub) InsertMode(ctx context.Context, mode string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return r.insertErr
	}
	r.modes = append(r.modes, mode)
	return nil
}
func (r *readingsStub) LatestMode(ctx context.Context) (*models.ModeEntry, error) { return nil, nil }
func (r *readingsStub) sensorCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sensors)
}

type eventsStub struct {
	mu      sync.Mutex
	appends []models.Event
}

func (e *eventsStub) Append(ctx context.Context, ev models.Event) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.appends = append(e.appends, ev)
	return nil
}
func (e *eventsStub) List(ctx context.Context, from, to time.Time, typ string) ([]models.Event, error) {
	return nil, nil
}
func (e *eventsStub) ofType(typ string) []models.Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []models.Event
	for _, ev := range e.appends {
		if ev.Type == typ {
			out = append(out, ev)
		}
	}
	return out
}

type gaugeStub struct {
	mu     sync.Mutex
	values map[string]float64
}

func (g *gaugeStub) Gauge(name string, value float64, tags ...string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.values == nil {
		g.values = map[string]float64{}
	}
	g.values[name] = value
}

func newTestController() (*Controller, *settingsStub, *readingsStub, *eventsStub) {
	st, rd, ev := &settingsStub{}, &readingsStub{}, &eventsStub{}
	c := NewController(Store{Settings: st, Readings: rd, Events: ev}, nil, nil, time.Second)
	c.now = func() time.Time { return time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC) }
	return c, st, rd, ev
}
