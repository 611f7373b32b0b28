package handlers

import (
	"context"
	"net/http"
	"time"

	"climate_station/internal/models"
	"climate_station/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastParseToken string
}

func (m *mockAuth) SignUp(ctx context.Context, username, password string) (int, error) {
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(ctx context.Context, username, password string) (string, error) {
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockSettings struct {
	current    *models.Settings
	currentErr error
	updateErr  error

	updates []models.SettingsPayload
}

func (m *mockSettings) Current(ctx context.Context) (*models.Settings, error) {
	return m.current, m.currentErr
}
func (m *mockSettings) Update(ctx context.Context, p models.SettingsPayload) (models.Settings, error) {
	m.updates = append(m.updates, p)
	if m.updateErr != nil {
		return models.Settings{}, m.updateErr
	}
	return models.Settings{
		ID:                1,
		TempHighThreshold: *p.TempHighThreshold,
		TempLowThreshold:  *p.TempLowThreshold,
		LightThreshold:    *p.LightThreshold,
	}, nil
}

type mockStatus struct {
	snap models.StatusSnapshot
	err  error
}

func (m *mockStatus) Snapshot(ctx context.Context) (models.StatusSnapshot, error) {
	return m.snap, m.err
}

type mockSummary struct {
	stats models.SummaryStats
	err   error
}

func (m *mockSummary) Summarize(ctx context.Context) (models.SummaryStats, error) {
	return m.stats, m.err
}

type mockEventLog struct {
	resp     []models.Event
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.Event, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	return newTestRouterWith(s, Options{})
}

func newTestRouterWith(s *service.Service, opts Options) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewHandler(s, nil, opts).InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
