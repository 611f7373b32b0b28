package edge

import (
	"errors"
	"testing"
)

func TestParseLine(t *testing.T) {
	cases := []struct {
		line string
		want Message
	}{
		{"MODE:AUTO", Message{Kind: KindMode, Mode: "AUTO"}},
		{"MODE:MANUAL:extra\r", Message{Kind: KindMode, Mode: "MANUAL"}},
		{"TEMP:23.5C", Message{Kind: KindTemp, Value: 23.5}},
		{"TEMP:-4C", Message{Kind: KindTemp, Value: -4}},
		{"HUM:51.2%", Message{Kind: KindHum, Value: 51.2}},
		{"LIGHT:66%", Message{Kind: KindLight, Light: 66}},
		{"  LIGHT:0%  ", Message{Kind: KindLight, Light: 0}},
		{"FAN:POT=45%", Message{Kind: KindFan, FanSource: "POT", FanSpeed: 45}},
		{"FAN:FIXED=100%", Message{Kind: KindFan, FanSource: "FIXED", FanSpeed: 100}},
	}
	for _, tc := range cases {
		got, err := ParseLine(tc.line)
		if err != nil {
			t.Fatalf("ParseLine(%q): %v", tc.line, err)
		}
		if got != tc.want {
			t.Fatalf("ParseLine(%q) = %+v, want %+v", tc.line, got, tc.want)
		}
	}
}

func TestParseLine_Rejects(t *testing.T) {
	for _, line := range []string{"", "hello", "MODE:", "TEMP:abcC", "HUM:%", "LIGHT:12.5%", "FAN:POT", "FAN:=4%", "FAN:POT=a%", "BUZZ:ON"} {
		if _, err := ParseLine(line); err == nil {
			t.Errorf("ParseLine(%q): expected error", line)
		}
	}
	if _, err := ParseLine("RSSI:-40"); !errors.Is(err, ErrUnknownLine) {
		t.Errorf("expected ErrUnknownLine, got %v", err)
	}
}

func TestThresholdsAlarm(t *testing.T) {
	th := DefaultThresholds
	cases := []struct {
		temp   float64
		light  int
		alarm  bool
		reason string
	}{
		{35, 50, true, "high_temp"},
		{10, 50, true, "low_temp"},
		{20, 50, false, "in_range"},
		{35, 30, false, "dark"},
		{30, 31, false, "in_range"},
		{15, 31, false, "in_range"},
	}
	for _, tc := range cases {
		alarm, reason := th.Alarm(tc.temp, tc.light)
		if alarm != tc.alarm || reason != tc.reason {
			t.Errorf("Alarm(%v, %d) = %v %q, want %v %q", tc.temp, tc.light, alarm, reason, tc.alarm, tc.reason)
		}
	}
}
