// Package config loads configs/config.yml through viper, with CLIMATE_*
// environment overrides and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "CLIMATE"

// Config holds the settings of every command in this repo.
type Config struct {
	Port     string
	LogLevel string
	DBPath   string

	Auth      AuthConfig
	Edge      EdgeConfig
	Metrics   MetricsConfig
	Dashboard DashboardConfig
}

type AuthConfig struct {
	Enabled    bool
	SigningKey string
	TokenTTL   time.Duration
}

// EdgeConfig drives the serial edge controller.
type EdgeConfig struct {
	Enabled          bool
	Device           string
	Baud             int
	Simulate         bool
	SimulateTick     time.Duration
	ThresholdRefresh time.Duration
}

type MetricsConfig struct {
	StatsdAddr string
	Namespace  string
	Tags       []string
}

// DashboardConfig is read by the web dashboard and the terminal monitor.
type DashboardConfig struct {
	Port       string
	APIBaseURL string
	APIToken   string
	Timeout    time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "5000")
	v.SetDefault("log.level", "info")
	v.SetDefault("db.path", "climate.db")

	v.SetDefault("auth.enabled", false)
	v.SetDefault("auth.token_ttl", time.Hour)

	v.SetDefault("edge.enabled", false)
	v.SetDefault("edge.device", "/dev/ttyACM0")
	v.SetDefault("edge.baud", 9600)
	v.SetDefault("edge.simulate", false)
	v.SetDefault("edge.simulate_tick", time.Second)
	v.SetDefault("edge.threshold_refresh", 3*time.Second)

	v.SetDefault("metrics.namespace", "climate.")

	v.SetDefault("dashboard.port", "8080")
	v.SetDefault("dashboard.api_base_url", "http://localhost:5000")
	v.SetDefault("dashboard.timeout", 10*time.Second)
}

// Load reads the config file found in paths (first match wins). A missing
// file is not an error: defaults and environment still apply.
func Load(paths ...string) (Config, error) {
	_ = godotenv.Load(".env")

	v := viper.New()
	setDefaults(v)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}
	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		Port:     v.GetString("port"),
		LogLevel: v.GetString("log.level"),
		DBPath:   v.GetString("db.path"),
		Auth: AuthConfig{
			Enabled:    v.GetBool("auth.enabled"),
			SigningKey: v.GetString("auth.signing_key"),
			TokenTTL:   v.GetDuration("auth.token_ttl"),
		},
		Edge: EdgeConfig{
			Enabled:          v.GetBool("edge.enabled"),
			Device:           v.GetString("edge.device"),
			Baud:             v.GetInt("edge.baud"),
			Simulate:         v.GetBool("edge.simulate"),
			SimulateTick:     v.GetDuration("edge.simulate_tick"),
			ThresholdRefresh: v.GetDuration("edge.threshold_refresh"),
		},
		Metrics: MetricsConfig{
			StatsdAddr: v.GetString("metrics.statsd_addr"),
			Namespace:  v.GetString("metrics.namespace"),
			Tags:       v.GetStringSlice("metrics.tags"),
		},
		Dashboard: DashboardConfig{
			Port:       v.GetString("dashboard.port"),
			APIBaseURL: strings.TrimRight(v.GetString("dashboard.api_base_url"), "/"),
			APIToken:   v.GetString("dashboard.api_token"),
			Timeout:    v.GetDuration("dashboard.timeout"),
		},
	}

	if cfg.Auth.Enabled && cfg.Auth.SigningKey == "" {
		return cfg, errors.New("auth.signing_key is required when auth.enabled is true")
	}
	if cfg.Dashboard.APIBaseURL == "" {
		return cfg, errors.New("dashboard.api_base_url must not be empty")
	}
	if cfg.Edge.ThresholdRefresh <= 0 {
		return cfg, fmt.Errorf("invalid edge.threshold_refresh %s", cfg.Edge.ThresholdRefresh)
	}
	return cfg, nil
}
