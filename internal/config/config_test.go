package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg == nil {
		t.Fatal("Default() returned nil")
	}

	if cfg.SportsData.BaseURL != "https://api.sportsdata.io/v3/nfl" {
		t.Errorf("SportsData.BaseURL = %q", cfg.SportsData.BaseURL)
	}
	if cfg.Weather.BaseURL != "https://api.openweathermap.org" {
		t.Errorf("Weather.BaseURL = %q", cfg.Weather.BaseURL)
	}
	if cfg.Cache.TTLMinutes != 60 {
		t.Errorf("Cache.TTLMinutes = %d, want 60", cfg.Cache.TTLMinutes)
	}
	if cfg.Analysis.RecentGames != 5 {
		t.Errorf("Analysis.RecentGames = %d, want 5", cfg.Analysis.RecentGames)
	}
	if cfg.Analysis.Prediction.Momentum != 0.25 {
		t.Errorf("Analysis.Prediction.Momentum = %f, want 0.25", cfg.Analysis.Prediction.Momentum)
	}
	if cfg.Pipeline.Parallel {
		t.Error("Pipeline.Parallel should be false by default")
	}
	if cfg.Pipeline.MaxParallel != 4 {
		t.Errorf("Pipeline.MaxParallel = %d, want 4", cfg.Pipeline.MaxParallel)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
}

func TestDefaultPassesValidation(t *testing.T) {
	if errs := Default().Validate(); len(errs) > 0 {
		t.Fatalf("default config should validate, got: %v", ValidationErrors(errs))
	}
}

func TestCacheTTL(t *testing.T) {
	c := CacheConfig{TTLMinutes: 90}
	if got := c.CacheTTL(); got != 90*time.Minute {
		t.Errorf("CacheTTL() = %v, want 90m", got)
	}
}

func TestLoadFromViper(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	SetDefaults()
	viper.Set("sportsdata.api_key", "test-key")
	viper.Set("cache.ttl_minutes", 15)
	viper.Set("pipeline.parallel", true)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.SportsData.APIKey != "test-key" {
		t.Errorf("SportsData.APIKey = %q, want %q", cfg.SportsData.APIKey, "test-key")
	}
	if cfg.Cache.TTLMinutes != 15 {
		t.Errorf("Cache.TTLMinutes = %d, want 15", cfg.Cache.TTLMinutes)
	}
	if !cfg.Pipeline.Parallel {
		t.Error("Pipeline.Parallel should be true")
	}
	// Defaults still fill unset keys.
	if cfg.Analysis.RecentGames != 5 {
		t.Errorf("Analysis.RecentGames = %d, want 5", cfg.Analysis.RecentGames)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	SetDefaults()
	viper.Set("cache.ttl_minutes", -1)
	viper.Set("logging.level", "loud")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() should fail for invalid config")
	}
	if !strings.Contains(err.Error(), "cache.ttl_minutes") {
		t.Errorf("error should name cache.ttl_minutes: %v", err)
	}
	if !strings.Contains(err.Error(), "logging.level") {
		t.Errorf("error should name logging.level: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"negative ttl", func(c *Config) { c.Cache.TTLMinutes = -5 }, "cache.ttl_minutes"},
		{"zero recent games", func(c *Config) { c.Analysis.RecentGames = 0 }, "analysis.recent_games"},
		{"weight above one", func(c *Config) { c.Analysis.Prediction.Momentum = 1.5 }, "analysis.prediction.momentum"},
		{"negative weight", func(c *Config) { c.Analysis.Prediction.WeatherShrink = -0.1 }, "analysis.prediction.weather_shrink"},
		{"zero max parallel", func(c *Config) { c.Pipeline.MaxParallel = 0 }, "pipeline.max_parallel"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			errs := cfg.Validate()
			if len(errs) != 1 {
				t.Fatalf("want 1 validation error, got %d: %v", len(errs), errs)
			}
			if errs[0].Field != tt.field {
				t.Errorf("Field = %q, want %q", errs[0].Field, tt.field)
			}
		})
	}
}

func TestConfigDirHonorsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	want := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "gameday")
	if got := ConfigDir(); got != want {
		t.Errorf("ConfigDir() = %q, want %q", got, want)
	}
	if got := ConfigFile(); got != filepath.Join(want, "config.yaml") {
		t.Errorf("ConfigFile() = %q", got)
	}
}
