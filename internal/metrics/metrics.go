// Package metrics emits DogStatsD gauges for the edge controller.
package metrics

import (
	"climate_station/internal/logger"

	"github.com/DataDog/datadog-go/statsd"
)

const (
	GaugeTemperature = "sensor.temperature"
	GaugeHumidity    = "sensor.humidity"
	GaugeLight       = "sensor.light"
	GaugeBuzzer      = "buzzer.on"
)

// Gauges is the sink the edge controller reports into.
type Gauges interface {
	Gauge(name string, value float64, tags ...string)
}

// Nop drops every sample. Used when no agent address is configured.
type Nop struct{}

func (Nop) Gauge(string, float64, ...string) {}

// Statsd sends gauges to a DogStatsD agent.
type Statsd struct {
	client *statsd.Client
	log    *logger.Logger
}

// New returns Nop when addr is empty.
func New(addr, namespace string, tags []string, log *logger.Logger) (Gauges, error) {
	if addr == "" {
		return Nop{}, nil
	}
	c, err := statsd.New(addr)
	if err != nil {
		return nil, err
	}
	c.Namespace = namespace
	c.Tags = tags
	if log != nil {
		log.Infow("statsd_initialized", "addr", addr, "namespace", namespace, "tags", tags)
	}
	return &Statsd{client: c, log: log}, nil
}

func (s *Statsd) Gauge(name string, value float64, tags ...string) {
	if err := s.client.Gauge(name, value, tags, 1); err != nil && s.log != nil {
		s.log.Warnw("statsd_gauge_failed", "metric", name, "err", err)
	}
}

func (s *Statsd) Close() error {
	return s.client.Close()
}
