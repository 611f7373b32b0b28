package tui

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"climate_station/internal/client"
	"climate_station/internal/views"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/status":
			_, _ = io.WriteString(w, `{"mode":"AUTO","sensor":{"temperature":21.5,"humidity":40,"light":12}}`)
		case "/settings":
			_, _ = io.WriteString(w, `{"temp_high_threshold":30,"temp_low_threshold":15}`)
		default:
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"message":"Not enough data to summarize"}`)
		}
	}))
	t.Cleanup(srv.Close)

	api := client.New(srv.URL)
	return New(Views{
		Status:   views.NewStatusView(api, nil),
		Summary:  views.NewSummaryView(api, nil),
		Settings: views.NewSettingsView(api, nil),
	}, time.Second)
}

func TestModel_LoadRendersAllPanels(t *testing.T) {
	m := newTestModel(t)

	msg := m.Init()()
	loaded, ok := msg.(loadedMsg)
	require.True(t, ok, "Init should produce a loadedMsg, got %T", msg)

	next, cmd := m.Update(loaded)
	assert.Nil(t, cmd)
	out := next.(Model).View()

	assert.Contains(t, out, "AUTO")
	assert.Contains(t, out, "21.5")
	assert.Contains(t, out, "No settings available. Please set them.")
	assert.NotContains(t, out, "Error fetching summary data", "not enough data renders blanks")
	assert.Contains(t, out, "r reload")
}

func TestModel_Keys(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	assert.Nil(t, cmd, "reload is ignored while the first load is running")

	next, _ := m.Update(loadedMsg{doc: m.doc, at: time.Now()})
	_, cmd = next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	require.NotNil(t, cmd)
	assert.IsType(t, loadedMsg{}, cmd())

	_, cmd = next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
