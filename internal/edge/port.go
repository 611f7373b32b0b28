package edge

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.bug.st/serial"
)

// PortConfig selects the line source.
type PortConfig struct {
	Device   string
	Baud     int
	Simulate bool
	SimTick  time.Duration
	SimSeed  uint64
}

// Open returns the serial device, or a running Simulator when Simulate is set.
// The simulator stops with ctx.
func Open(ctx context.Context, cfg PortConfig) (io.ReadWriteCloser, error) {
	if cfg.Simulate {
		sim := NewSimulator(cfg.SimTick, cfg.SimSeed)
		go sim.Run(ctx)
		return sim, nil
	}
	port, err := serial.Open(cfg.Device, &serial.Mode{BaudRate: cfg.Baud})
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", cfg.Device, err)
	}
	return port, nil
}
