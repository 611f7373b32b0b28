// Package tui is the terminal monitor: the three pages rendered side by side.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"climate_station/internal/page"
	"climate_station/internal/views"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ── Styles ───────────────────────────────────────────────────────────

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	panelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Width(14)
	alertStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	messageColors = map[page.Color]lipgloss.Color{
		page.ColorGreen:  lipgloss.Color("10"),
		page.ColorOrange: lipgloss.Color("214"),
		page.ColorRed:    lipgloss.Color("9"),
	}
)

// ── Model ────────────────────────────────────────────────────────────

// Views are the page controllers the monitor runs on every reload.
type Views struct {
	Status   *views.StatusView
	Summary  *views.SummaryView
	Settings *views.SettingsView
}

type loadedMsg struct {
	doc *page.Document
	at  time.Time
}

type Model struct {
	views   Views
	timeout time.Duration

	doc      *page.Document
	loading  bool
	loadedAt time.Time
	width    int
}

func New(v Views, timeout time.Duration) Model {
	return Model{views: v, timeout: timeout, doc: page.NewDocument(), loading: true}
}

// load runs the three views concurrently into a fresh document.
func (m Model) load() tea.Cmd {
	v, timeout := m.views, m.timeout
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		doc := page.NewDocument()
		done := make(chan struct{}, 3)
		go func() { v.Status.Load(ctx, doc); done <- struct{}{} }()
		go func() { v.Summary.Load(ctx, doc); done <- struct{}{} }()
		go func() { v.Settings.Load(ctx, doc); done <- struct{}{} }()
		for i := 0; i < 3; i++ {
			<-done
		}
		return loadedMsg{doc: doc, at: time.Now()}
	}
}

// ── Init / Update ────────────────────────────────────────────────────

func (m Model) Init() tea.Cmd {
	return m.load()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			if m.loading {
				return m, nil
			}
			m.loading = true
			return m, m.load()
		}
	case loadedMsg:
		m.doc = msg.doc
		m.loadedAt = msg.at
		m.loading = false
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

// ── View ─────────────────────────────────────────────────────────────

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Climate Station"))
	b.WriteString("\n\n")

	panels := lipgloss.JoinHorizontal(lipgloss.Top,
		panel("Status", m.doc, [][2]string{
			{"Mode", page.IDMode},
			{"Temperature", page.IDTemperature},
			{"Humidity", page.IDHumidity},
			{"Light", page.IDLight},
			{"Fan speed", page.IDFanSpeed},
			{"Fan source", page.IDFanSource},
		}, false),
		panel("Summary", m.doc, [][2]string{
			{"Avg temp", page.IDAvgTemp},
			{"Min temp", page.IDMinTemp},
			{"Max temp", page.IDMaxTemp},
			{"Avg humidity", page.IDAvgHum},
			{"Min humidity", page.IDMinHum},
			{"Max humidity", page.IDMaxHum},
			{"Avg light", page.IDAvgLight},
			{"Min light", page.IDMinLight},
			{"Max light", page.IDMaxLight},
		}, false),
		panel("Settings", m.doc, [][2]string{
			{"High temp", page.IDTempHigh},
			{"Low temp", page.IDTempLow},
			{"Light", page.IDLightThreshold},
		}, true),
	)
	b.WriteString(panels)
	b.WriteString("\n")

	if el, ok := m.doc.Element(page.IDResponseMsg); ok && el.Text != "" {
		style := lipgloss.NewStyle()
		if c, ok := messageColors[el.Color]; ok {
			style = style.Foreground(c)
		}
		b.WriteString(style.Render(el.Text))
		b.WriteString("\n")
	}
	for _, a := range m.doc.Alerts() {
		b.WriteString(alertStyle.Render("! " + a))
		b.WriteString("\n")
	}

	status := "loading…"
	if !m.loading {
		status = fmt.Sprintf("updated %s", m.loadedAt.Format("15:04:05"))
	}
	b.WriteString(helpStyle.Render(status + "  ·  r reload  ·  q quit"))
	return b.String()
}

// panel renders label/element rows; inputs show Value instead of Text.
func panel(title string, doc *page.Document, rows [][2]string, inputs bool) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	for _, r := range rows {
		v := doc.Text(r[1])
		if inputs {
			v = doc.Value(r[1])
		}
		if v == "" {
			v = "-"
		}
		b.WriteString("\n" + labelStyle.Render(r[0]) + v)
	}
	return panelStyle.Render(b.String())
}
