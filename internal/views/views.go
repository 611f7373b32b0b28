// Package views fills a page.Document from the device API: one view per page.
package views

import (
	"context"
	"strconv"

	"climate_station/internal/client"
	"climate_station/internal/logger"
	"climate_station/internal/models"
)

// SettingsAPI is the part of the device API the settings form needs.
type SettingsAPI interface {
	GetSettings(ctx context.Context) (models.SettingsPayload, error)
	UpdateSettings(ctx context.Context, p models.SettingsPayload) error
}

type StatusAPI interface {
	GetStatus(ctx context.Context) (models.StatusSnapshot, error)
}

type SummaryAPI interface {
	GetSummary(ctx context.Context) (client.SummaryResult, error)
}

var (
	_ SettingsAPI = (*client.Client)(nil)
	_ StatusAPI   = (*client.Client)(nil)
	_ SummaryAPI  = (*client.Client)(nil)
)

func orNop(log *logger.Logger) *logger.Logger {
	if log == nil {
		return logger.Nop()
	}
	return log
}

// formatFloat prints the shortest representation, so 30 renders as "30" and 21.5 as "21.5".
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatOptional renders a missing value as empty text.
func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}
