package views

import (
	"context"

	"climate_station/internal/client"
	"climate_station/internal/models"
)

type fakeSettingsAPI struct {
	get    models.SettingsPayload
	getErr error
	upErr  error

	posted []models.SettingsPayload
}

func (f *fakeSettingsAPI) GetSettings(ctx context.Context) (models.SettingsPayload, error) {
	return f.get, f.getErr
}
func (f *fakeSettingsAPI) UpdateSettings(ctx context.Context, p models.SettingsPayload) error {
	f.posted = append(f.posted, p)
	return f.upErr
}

type fakeStatusAPI struct {
	snap models.StatusSnapshot
	err  error
}

func (f *fakeStatusAPI) GetStatus(ctx context.Context) (models.StatusSnapshot, error) {
	return f.snap, f.err
}

type fakeSummaryAPI struct {
	sum client.SummaryResult
	err error
}

func (f *fakeSummaryAPI) GetSummary(ctx context.Context) (client.SummaryResult, error) {
	return f.sum, f.err
}

func f64(v float64) *float64 { return &v }
func intp(v int) *int { return &v }
