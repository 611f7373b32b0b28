package main

import (
	"fmt"
	"net/http"
	"os"

	"climate_station/internal/client"
	"climate_station/internal/config"
	"climate_station/internal/logger"
	"climate_station/internal/tui"
	"climate_station/internal/views"

	tea "github.com/charmbracelet/bubbletea"
)

const logFile = "monitor.log"

func main() {
	cfg, err := config.Load("configs", ".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// the alternate screen owns stdout, so logs go to a file
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()
	log := logger.NewWriter(f, cfg.LogLevel)

	api := client.New(cfg.Dashboard.APIBaseURL,
		client.WithHTTPClient(&http.Client{Timeout: cfg.Dashboard.Timeout}),
		client.WithToken(cfg.Dashboard.APIToken),
	)
	m := tui.New(tui.Views{
		Status:   views.NewStatusView(api, log),
		Summary:  views.NewSummaryView(api, log),
		Settings: views.NewSettingsView(api, log),
	}, cfg.Dashboard.Timeout)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
