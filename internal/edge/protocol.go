package edge

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Operating modes reported by the microcontroller.
const (
	ModeAuto   = "AUTO"
	ModeManual = "MANUAL"
)

// Commands written back to the microcontroller.
const (
	CmdBuzzOn  = "BUZZ:ON\n"
	CmdBuzzOff = "BUZZ:OFF\n"
)

// Kind tells which field a line carries.
type Kind int

const (
	KindMode Kind = iota + 1
	KindTemp
	KindHum
	KindLight
	KindFan
)

var ErrUnknownLine = errors.New("unknown line")

// Message is one decoded line.
type Message struct {
	Kind      Kind
	Mode      string
	Value     float64 // TEMP, HUM
	Light     int
	FanSource string
	FanSpeed  int
}

// ParseLine decodes MODE:<m>, TEMP:<f>C, HUM:<f>%, LIGHT:<i>% and FAN:<source>=<speed>%.
func ParseLine(line string) (Message, error) {
	line = strings.TrimSpace(line)
	prefix, rest, ok := strings.Cut(line, ":")
	if !ok {
		return Message{}, fmt.Errorf("%w: %q", ErrUnknownLine, line)
	}

	switch prefix {
	case "MODE":
		mode, _, _ := strings.Cut(rest, ":")
		if mode == "" {
			return Message{}, fmt.Errorf("empty mode in %q", line)
		}
		return Message{Kind: KindMode, Mode: mode}, nil
	case "TEMP":
		v, err := strconv.ParseFloat(strings.TrimSuffix(rest, "C"), 64)
		if err != nil {
			return Message{}, fmt.Errorf("parse temperature %q: %w", line, err)
		}
		return Message{Kind: KindTemp, Value: v}, nil
	case "HUM":
		v, err := strconv.ParseFloat(strings.TrimSuffix(rest, "%"), 64)
		if err != nil {
			return Message{}, fmt.Errorf("parse humidity %q: %w", line, err)
		}
		return Message{Kind: KindHum, Value: v}, nil
	case "LIGHT":
		v, err := strconv.Atoi(strings.TrimSuffix(rest, "%"))
		if err != nil {
			return Message{}, fmt.Errorf("parse light %q: %w", line, err)
		}
		return Message{Kind: KindLight, Light: v}, nil
	case "FAN":
		source, speed, ok := strings.Cut(rest, "=")
		if !ok || source == "" || strings.Contains(speed, "=") {
			return Message{}, fmt.Errorf("malformed fan line %q", line)
		}
		v, err := strconv.Atoi(strings.TrimSuffix(speed, "%"))
		if err != nil {
			return Message{}, fmt.Errorf("parse fan speed %q: %w", line, err)
		}
		return Message{Kind: KindFan, FanSource: source, FanSpeed: v}, nil
	}
	return Message{}, fmt.Errorf("%w: %q", ErrUnknownLine, line)
}
