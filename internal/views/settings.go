package views

import (
	"context"
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"climate_station/internal/client"
	"climate_station/internal/logger"
	"climate_station/internal/models"
	"climate_station/internal/page"
)

const (
	MsgLoadError     = "Error loading settings."
	MsgNoSettings    = "No settings available. Please set them."
	MsgUpdated       = "Settings updated successfully!"
	MsgUpdateFailed  = "Failed to update settings."
	MsgUpdateNetwork = "Error updating settings."
)

var floatPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// FormValues are the raw strings typed into the settings form.
type FormValues struct {
	TempHigh       string
	TempLow        string
	LightThreshold string
}

// Payload parses the form the way a browser's parseFloat/parseInt would:
// leading whitespace is skipped and the longest numeric prefix wins.
// A field with no numeric prefix becomes nil and is posted as null.
func (f FormValues) Payload() models.SettingsPayload {
	return models.SettingsPayload{
		TempHighThreshold: parseFloatPrefix(f.TempHigh),
		TempLowThreshold:  parseFloatPrefix(f.TempLow),
		LightThreshold:    parseIntPrefix(f.LightThreshold),
	}
}

func parseFloatPrefix(s string) *float64 {
	m := floatPrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return nil
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// parseIntPrefix accepts an optional sign and a 0x/0X hex prefix. Values
// past the int range saturate at math.MaxInt or math.MinInt.
func parseIntPrefix(s string) *int {
	s = strings.TrimSpace(s)
	sign := ""
	if s != "" && (s[0] == '+' || s[0] == '-') {
		sign, s = s[:1], s[1:]
	}
	base, isDigit := 10, isDecimal
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		base, isDigit, s = 16, isHex, s[2:]
	}
	n := strings.IndexFunc(s, func(r rune) bool { return !isDigit(r) })
	if n < 0 {
		n = len(s)
	}
	if n == 0 {
		return nil
	}
	v, err := strconv.ParseInt(sign+s[:n], base, 0)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return nil
	}
	i := int(v)
	return &i
}

func isDecimal(r rune) bool { return r >= '0' && r <= '9' }

func isHex(r rune) bool {
	return isDecimal(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// SettingsView reads and writes the threshold form.
type SettingsView struct {
	api SettingsAPI
	log *logger.Logger
}

func NewSettingsView(api SettingsAPI, log *logger.Logger) *SettingsView {
	return &SettingsView{api: api, log: orNop(log)}
}

// Load pre-fills the three inputs. Inputs are left alone unless all three values came back.
func (v *SettingsView) Load(ctx context.Context, doc *page.Document) {
	p, err := v.api.GetSettings(ctx)
	if err != nil {
		v.log.Errorw("settings_load_failed", "err", err)
		doc.SetMessage(page.IDResponseMsg, MsgLoadError, page.ColorRed)
		return
	}
	if !p.Complete() {
		doc.SetMessage(page.IDResponseMsg, MsgNoSettings, page.ColorOrange)
		return
	}
	doc.SetValue(page.IDTempHigh, formatFloat(*p.TempHighThreshold))
	doc.SetValue(page.IDTempLow, formatFloat(*p.TempLowThreshold))
	doc.SetValue(page.IDLightThreshold, strconv.Itoa(*p.LightThreshold))
}

// Submit posts the form once and reports the outcome in response-msg.
func (v *SettingsView) Submit(ctx context.Context, doc *page.Document, form FormValues) {
	doc.SetValue(page.IDTempHigh, form.TempHigh)
	doc.SetValue(page.IDTempLow, form.TempLow)
	doc.SetValue(page.IDLightThreshold, form.LightThreshold)

	err := v.api.UpdateSettings(ctx, form.Payload())
	if err == nil {
		doc.SetMessage(page.IDResponseMsg, MsgUpdated, page.ColorGreen)
		return
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		v.log.Infow("settings_update_rejected", "status", apiErr.StatusCode, "message", apiErr.Message)
		msg := apiErr.Message
		if msg == "" {
			msg = MsgUpdateFailed
		}
		doc.SetMessage(page.IDResponseMsg, msg, page.ColorRed)
		return
	}

	v.log.Errorw("settings_update_failed", "err", err)
	doc.SetMessage(page.IDResponseMsg, MsgUpdateNetwork, page.ColorRed)
}
