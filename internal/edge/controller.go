// Package edge runs the loop between the microcontroller's serial line and the
// database: it logs mode, sensor and fan changes and drives the buzzer.
package edge

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"climate_station/internal/logger"
	"climate_station/internal/metrics"
	"climate_station/internal/models"
	"climate_station/internal/repository"

	"github.com/google/uuid"
)

const (
	buzzerOn  = "ON"
	buzzerOff = "OFF"

	defaultRefresh = 3 * time.Second
)

// ErrPortClosed is returned by Run when the line source reaches EOF.
var ErrPortClosed = errors.New("edge: port closed")

// Store is what the controller persists into.
type Store struct {
	Settings repository.SettingsRepo
	Readings repository.ReadingRepo
	Events   repository.EventRepo
}

// Controller is not safe for concurrent use; Run owns it.
type Controller struct {
	store   Store
	gauges  metrics.Gauges
	log     *logger.Logger
	refresh time.Duration
	now     func() time.Time

	thresholds Thresholds
	mode       string
	temp, hum  *float64
	buzzer     string
	lastSensor *models.SensorReading
	lastFan    *models.FanState
}

func NewController(store Store, gauges metrics.Gauges, log *logger.Logger, refresh time.Duration) *Controller {
	if gauges == nil {
		gauges = metrics.Nop{}
	}
	if log == nil {
		log = logger.Nop()
	}
	if refresh <= 0 {
		refresh = defaultRefresh
	}
	return &Controller{
		store:      store,
		gauges:     gauges,
		log:        log,
		refresh:    refresh,
		now:        time.Now,
		thresholds: DefaultThresholds,
	}
}

// Thresholds returns the values currently in force.
func (c *Controller) Thresholds() Thresholds { return c.thresholds }

// Run reads lines from port until ctx is done or the port fails. Buzzer
// commands are written back to port. The port is closed on return.
func (c *Controller) Run(ctx context.Context, port io.ReadWriteCloser) error {
	defer func() { _ = port.Close() }()

	lines := make(chan string)
	readErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)

	go func() {
		sc := bufio.NewScanner(port)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-done:
				return
			}
		}
		err := sc.Err()
		if err == nil {
			err = ErrPortClosed
		}
		readErr <- err
	}()

	if last, err := c.store.Readings.LatestSensor(ctx); err == nil {
		c.lastSensor = last
	} else {
		c.log.Warnw("edge_last_sensor_unavailable", "err", err)
	}
	c.refreshThresholds(ctx)

	ticker := time.NewTicker(c.refresh)
	defer ticker.Stop()

	c.log.Infow("edge_started", "refresh", c.refresh.String())
	for {
		select {
		case <-ctx.Done():
			c.log.Infow("edge_stopped")
			return nil
		case <-ticker.C:
			c.refreshThresholds(ctx)
		case line := <-lines:
			c.HandleLine(ctx, line, port)
		case err := <-readErr:
			c.appendEvent(ctx, models.Event{
				OccurredAt:  c.now().UTC(),
				Type:        models.EventError,
				Description: "serial line lost",
				Metadata:    map[string]any{"err": err.Error()},
			})
			return fmt.Errorf("read serial: %w", err)
		}
	}
}

func (c *Controller) refreshThresholds(ctx context.Context) {
	st, err := c.store.Settings.Latest(ctx)
	if err != nil {
		c.log.Warnw("edge_thresholds_fetch_failed", "err", err)
		return
	}
	if st == nil {
		return
	}
	if t := thresholdsFrom(*st); t != c.thresholds {
		c.thresholds = t
		c.log.Infow("edge_thresholds_updated",
			"temp_high", t.TempHigh,
			"temp_low", t.TempLow,
			"light", t.Light,
		)
	}
}

// HandleLine applies one line from the microcontroller. Malformed lines are logged and skipped.
func (c *Controller) HandleLine(ctx context.Context, line string, w io.Writer) {
	msg, err := ParseLine(line)
	if err != nil {
		if line != "" {
			c.log.Debugw("edge_line_skipped", "line", line, "err", err)
		}
		return
	}

	switch msg.Kind {
	case KindMode:
		c.onMode(ctx, msg.Mode)
	case KindTemp:
		if c.mode == ModeAuto {
			v := msg.Value
			c.temp = &v
		}
	case KindHum:
		if c.mode == ModeAuto {
			v := msg.Value
			c.hum = &v
		}
	case KindLight:
		if c.mode != ModeAuto {
			return
		}
		if c.temp == nil || c.hum == nil {
			c.log.Debugw("edge_light_without_reading", "light", msg.Light)
			return
		}
		c.onReading(ctx, w, models.SensorReading{Temperature: *c.temp, Humidity: *c.hum, Light: msg.Light})
	case KindFan:
		if c.mode == ModeManual {
			c.onFan(ctx, models.FanState{Speed: msg.FanSpeed, Source: msg.FanSource})
		}
	}
}

func (c *Controller) onMode(ctx context.Context, mode string) {
	if mode == c.mode {
		return
	}
	now := c.now().UTC()
	if err := c.store.Readings.InsertMode(ctx, mode, now); err != nil {
		// mode stays unchanged so the next MODE line retries
		c.log.Errorw("edge_mode_insert_failed", "mode", mode, "err", err)
		return
	}
	c.appendEvent(ctx, models.Event{
		OccurredAt:  now,
		Type:        models.EventModeChange,
		Description: "mode changed to " + mode,
		Metadata:    map[string]any{"from": c.mode, "to": mode},
	})
	c.log.Infow("edge_mode_changed", "from", c.mode, "to", mode)
	c.mode = mode
}

func (c *Controller) onReading(ctx context.Context, w io.Writer, r models.SensorReading) {
	c.gauges.Gauge(metrics.GaugeTemperature, r.Temperature)
	c.gauges.Gauge(metrics.GaugeHumidity, r.Humidity)
	c.gauges.Gauge(metrics.GaugeLight, float64(r.Light))

	c.driveBuzzer(ctx, w, r)

	if !sensorChanged(c.lastSensor, r) {
		return
	}
	r.Timestamp = c.now().UTC()
	if err := c.store.Readings.InsertSensor(ctx, r); err != nil {
		c.log.Errorw("edge_sensor_insert_failed", "err", err)
		return
	}
	c.lastSensor = &r
	c.log.Debugw("edge_sensor_logged", "temperature", r.Temperature, "humidity", r.Humidity, "light", r.Light)
}

// driveBuzzer writes a command only when the wanted state differs from the last one sent.
func (c *Controller) driveBuzzer(ctx context.Context, w io.Writer, r models.SensorReading) {
	alarm, reason := c.thresholds.Alarm(r.Temperature, r.Light)
	want, cmd, gauge := buzzerOff, CmdBuzzOff, 0.0
	if alarm {
		want, cmd, gauge = buzzerOn, CmdBuzzOn, 1.0
	}
	if want == c.buzzer {
		return
	}
	if _, err := io.WriteString(w, cmd); err != nil {
		c.log.Errorw("edge_buzzer_write_failed", "state", want, "err", err)
		return
	}
	c.buzzer = want
	c.gauges.Gauge(metrics.GaugeBuzzer, gauge)
	c.log.Infow("edge_buzzer", "state", want, "reason", reason, "temperature", r.Temperature, "light", r.Light)
	c.appendEvent(ctx, models.Event{
		OccurredAt:  c.now().UTC(),
		Type:        models.EventBuzzer,
		Description: "buzzer " + want,
		Metadata: map[string]any{
			"state":       want,
			"reason":      reason,
			"temperature": r.Temperature,
			"light":       r.Light,
		},
	})
}

func (c *Controller) onFan(ctx context.Context, f models.FanState) {
	if !fanChanged(c.lastFan, f) {
		return
	}
	f.Timestamp = c.now().UTC()
	if err := c.store.Readings.InsertFan(ctx, f); err != nil {
		c.log.Errorw("edge_fan_insert_failed", "err", err)
		return
	}
	c.lastFan = &f
	c.log.Debugw("edge_fan_logged", "speed", f.Speed, "source", f.Source)
}

func (c *Controller) appendEvent(ctx context.Context, e models.Event) {
	if c.store.Events == nil {
		return
	}
	e.EventID = uuid.NewString()
	if err := c.store.Events.Append(ctx, e); err != nil {
		c.log.Warnw("edge_event_append_failed", "type", e.Type, "err", err)
	}
}
