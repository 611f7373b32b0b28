package edge

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"sync"
	"time"
)

// ----------- Simulation constants -----------
const (
	AmbientC        = 25.0 // ambient temperature °C
	AmbientHum      = 45.0 // ambient relative humidity %
	AmbientLight    = 50   // ambient light %
	TempStepC       = 1.2  // max random walk per tick °C
	HumStep         = 3.0  // max random walk per tick %
	LightStep       = 12   // max random walk per tick %
	AmbientPull     = 0.05 // fraction of the distance to ambient recovered per tick
	ManualEvery     = 40   // ticks per AUTO/MANUAL cycle
	ManualTicks     = 8    // ticks spent in MANUAL each cycle
	DefaultSimTick  = 1 * time.Second
	simFanSourcePot = "POT"
)

// Simulator stands in for the microcontroller: Run emits the same line
// protocol on Read, and Write records the commands it is sent.
type Simulator struct {
	tick time.Duration
	rng  *rand.Rand

	pr *io.PipeReader
	pw *io.PipeWriter

	mu       sync.Mutex
	temp     float64
	hum      float64
	light    int
	fan      int
	buzzer   bool
	commands []string
	ticks    int
}

// NewSimulator returns a simulator at ambient. Equal seeds give equal output.
func NewSimulator(tick time.Duration, seed uint64) *Simulator {
	if tick <= 0 {
		tick = DefaultSimTick
	}
	pr, pw := io.Pipe()
	return &Simulator{
		tick:  tick,
		rng:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		pr:    pr,
		pw:    pw,
		temp:  AmbientC,
		hum:   AmbientHum,
		light: AmbientLight,
	}
}

// Run ticks at the configured interval until ctx is canceled or the simulator is closed.
func (s *Simulator) Run(ctx context.Context) {
	t := time.NewTicker(s.tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			_ = s.pw.CloseWithError(io.EOF)
			return
		case <-t.C:
			if _, err := io.WriteString(s.pw, s.step()); err != nil {
				return
			}
		}
	}
}

// step advances the model one tick and returns the lines for it.
func (s *Simulator) step() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ticks++
	var b strings.Builder
	if s.ticks%ManualEvery >= ManualEvery-ManualTicks {
		s.fan = clampInt(s.fan+s.rng.IntN(21)-10, 0, 100)
		fmt.Fprintf(&b, "MODE:%s\nFAN:%s=%d%%\n", ModeManual, simFanSourcePot, s.fan)
		return b.String()
	}

	s.temp += (s.rng.Float64()*2-1)*TempStepC + (AmbientC-s.temp)*AmbientPull
	s.hum = clampFloat(s.hum+(s.rng.Float64()*2-1)*HumStep+(AmbientHum-s.hum)*AmbientPull, 0, 100)
	s.light = clampInt(s.light+s.rng.IntN(2*LightStep+1)-LightStep, 0, 100)

	fmt.Fprintf(&b, "MODE:%s\nTEMP:%.1fC\nHUM:%.1f%%\nLIGHT:%d%%\n", ModeAuto, s.temp, s.hum, s.light)
	return b.String()
}

func (s *Simulator) Read(p []byte) (int, error) {
	return s.pr.Read(p)
}

// Write accepts BUZZ:ON / BUZZ:OFF commands.
func (s *Simulator) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cmd := range strings.Split(strings.TrimSpace(string(p)), "\n") {
		cmd = strings.TrimSpace(cmd)
		switch cmd {
		case strings.TrimSpace(CmdBuzzOn):
			s.buzzer = true
		case strings.TrimSpace(CmdBuzzOff):
			s.buzzer = false
		default:
			continue
		}
		s.commands = append(s.commands, cmd)
	}
	return len(p), nil
}

func (s *Simulator) Close() error {
	_ = s.pw.Close()
	return s.pr.Close()
}

// Buzzer reports the last commanded buzzer state.
func (s *Simulator) Buzzer() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buzzer
}

// Commands returns the commands received so far.
func (s *Simulator) Commands() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.commands))
	copy(out, s.commands)
	return out
}

// helpers
func clampFloat(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
