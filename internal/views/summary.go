package views

import (
	"context"

	"climate_station/internal/logger"
	"climate_station/internal/page"
)

const AlertSummary = "Error fetching summary data"

type SummaryView struct {
	api SummaryAPI
	log *logger.Logger
}

func NewSummaryView(api SummaryAPI, log *logger.Logger) *SummaryView {
	return &SummaryView{api: api, log: orNop(log)}
}

// Load writes all nine fields; a key missing from the response renders empty.
func (v *SummaryView) Load(ctx context.Context, doc *page.Document) {
	sum, err := v.api.GetSummary(ctx)
	if err != nil {
		v.log.Errorw("summary_fetch_failed", "err", err)
		doc.Alert(AlertSummary)
		return
	}

	for id, val := range map[string]*float64{
		page.IDAvgTemp:  sum.AvgTemperature,
		page.IDMinTemp:  sum.MinTemperature,
		page.IDMaxTemp:  sum.MaxTemperature,
		page.IDAvgHum:   sum.AvgHumidity,
		page.IDMinHum:   sum.MinHumidity,
		page.IDMaxHum:   sum.MaxHumidity,
		page.IDAvgLight: sum.AvgLight,
		page.IDMinLight: sum.MinLight,
		page.IDMaxLight: sum.MaxLight,
	} {
		doc.SetText(id, formatOptional(val))
	}
}
