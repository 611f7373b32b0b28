// Package page holds the named elements a view renders into.
package page

import "sync"

// Color of a message element.
type Color string

const (
	ColorNone   Color = ""
	ColorGreen  Color = "green"
	ColorOrange Color = "orange"
	ColorRed    Color = "red"
)

// Status page element ids.
const (
	IDMode        = "mode"
	IDTemperature = "temperature"
	IDHumidity    = "humidity"
	IDLight       = "light"
	IDFanSpeed    = "fan_speed"
	IDFanSource   = "fan_source"
)

// Summary page element ids.
const (
	IDAvgTemp  = "avg_temp"
	IDMinTemp  = "min_temp"
	IDMaxTemp  = "max_temp"
	IDAvgHum   = "avg_hum"
	IDMinHum   = "min_hum"
	IDMaxHum   = "max_hum"
	IDAvgLight = "avg_light"
	IDMinLight = "min_light"
	IDMaxLight = "max_light"
)

// Settings form element ids.
const (
	IDTempHigh       = "temp-high"
	IDTempLow        = "temp-low"
	IDLightThreshold = "light-threshold"
	IDResponseMsg    = "response-msg"
)

// Element is a single named slot on a page.
type Element struct {
	Text  string
	Value string
	Color Color
}

// Document is the set of elements of one rendered page plus any alerts raised while rendering.
// Safe for concurrent use.
type Document struct {
	mu       sync.RWMutex
	elements map[string]Element
	alerts   []string
}

func NewDocument() *Document {
	return &Document{elements: make(map[string]Element)}
}

// SetText replaces the text content of id.
func (d *Document) SetText(id, text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	el := d.elements[id]
	el.Text = text
	d.elements[id] = el
}

// SetValue replaces the input value of id.
func (d *Document) SetValue(id, value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	el := d.elements[id]
	el.Value = value
	d.elements[id] = el
}

// SetMessage sets text and color together.
func (d *Document) SetMessage(id, text string, color Color) {
	d.mu.Lock()
	defer d.mu.Unlock()
	el := d.elements[id]
	el.Text = text
	el.Color = color
	d.elements[id] = el
}

// Alert records a user-facing alert.
func (d *Document) Alert(msg string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.alerts = append(d.alerts, msg)
}

// Element returns the element and whether it was ever written.
func (d *Document) Element(id string) (Element, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	el, ok := d.elements[id]
	return el, ok
}

// Text is a shorthand for Element(id).Text.
func (d *Document) Text(id string) string {
	el, _ := d.Element(id)
	return el.Text
}

// Value is a shorthand for Element(id).Value.
func (d *Document) Value(id string) string {
	el, _ := d.Element(id)
	return el.Value
}

// Color is a shorthand for Element(id).Color.
func (d *Document) Color(id string) Color {
	el, _ := d.Element(id)
	return el.Color
}

func (d *Document) Alerts() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]string, len(d.alerts))
	copy(out, d.alerts)
	return out
}
