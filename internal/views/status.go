package views

import (
	"context"
	"strconv"

	"climate_station/internal/logger"
	"climate_station/internal/models"
	"climate_station/internal/page"
)

const AlertStatus = "Error fetching status data"

type StatusView struct {
	api StatusAPI
	log *logger.Logger
}

func NewStatusView(api StatusAPI, log *logger.Logger) *StatusView {
	return &StatusView{api: api, log: orNop(log)}
}

// Load renders mode, and sensor/fan values only when the API returned them.
func (v *StatusView) Load(ctx context.Context, doc *page.Document) {
	snap, err := v.api.GetStatus(ctx)
	if err != nil {
		v.log.Errorw("status_fetch_failed", "err", err)
		doc.Alert(AlertStatus)
		return
	}

	mode := snap.Mode
	if mode == "" {
		mode = models.ModeUnknown
	}
	doc.SetText(page.IDMode, mode)

	if s := snap.Sensor; s != nil {
		doc.SetText(page.IDTemperature, formatFloat(s.Temperature))
		doc.SetText(page.IDHumidity, formatFloat(s.Humidity))
		doc.SetText(page.IDLight, strconv.Itoa(s.Light))
	}
	if f := snap.Fan; f != nil {
		doc.SetText(page.IDFanSpeed, strconv.Itoa(f.Speed))
		doc.SetText(page.IDFanSource, f.Source)
	}
}
