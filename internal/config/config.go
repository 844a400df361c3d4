package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete gameday configuration
type Config struct {
	SportsData SportsDataConfig `mapstructure:"sportsdata"`
	Weather    WeatherConfig    `mapstructure:"weather"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Analysis   AnalysisConfig   `mapstructure:"analysis"`
	Pipeline   PipelineConfig   `mapstructure:"pipeline"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// SportsDataConfig controls access to the NFL stats API
type SportsDataConfig struct {
	// BaseURL is the root of the stats API
	BaseURL string `mapstructure:"base_url"`
	// APIKey is sent as the subscription key header on every request
	APIKey string `mapstructure:"api_key"`
}

// WeatherConfig controls access to the weather API
type WeatherConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
}

// CacheConfig controls the in-memory response cache
type CacheConfig struct {
	// TTLMinutes is how long fetched responses stay valid (default: 60)
	TTLMinutes int `mapstructure:"ttl_minutes"`
}

// AnalysisConfig controls the analyzers
type AnalysisConfig struct {
	// RecentGames is how many recent games to sample per team (default: 5)
	RecentGames int `mapstructure:"recent_games"`
	// Prediction tunes the final prediction weights
	Prediction PredictionConfig `mapstructure:"prediction"`
}

// PredictionConfig tunes how much each signal moves the win probability
type PredictionConfig struct {
	Momentum      float64 `mapstructure:"momentum"`
	HomeField     float64 `mapstructure:"home_field"`
	InjuryPenalty float64 `mapstructure:"injury_penalty"`
	WeatherShrink float64 `mapstructure:"weather_shrink"`
}

// PipelineConfig controls workflow execution
type PipelineConfig struct {
	// Parallel runs independent nodes concurrently (default: false)
	Parallel bool `mapstructure:"parallel"`
	// MaxParallel caps concurrent nodes when Parallel is set (default: 4)
	MaxParallel int `mapstructure:"max_parallel"`
}

// LoggingConfig controls log output
type LoggingConfig struct {
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		SportsData: SportsDataConfig{
			BaseURL: "https://api.sportsdata.io/v3/nfl",
		},
		Weather: WeatherConfig{
			BaseURL: "https://api.openweathermap.org",
		},
		Cache: CacheConfig{
			TTLMinutes: 60,
		},
		Analysis: AnalysisConfig{
			RecentGames: 5,
			Prediction: PredictionConfig{
				Momentum:      0.25,
				HomeField:     0.06,
				InjuryPenalty: 0.04,
				WeatherShrink: 0.15,
			},
		},
		Pipeline: PipelineConfig{
			Parallel:    false,
			MaxParallel: 4,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// CacheTTL returns the cache TTL as a time.Duration
func (c *CacheConfig) CacheTTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("sportsdata.base_url", defaults.SportsData.BaseURL)
	viper.SetDefault("sportsdata.api_key", defaults.SportsData.APIKey)

	viper.SetDefault("weather.base_url", defaults.Weather.BaseURL)
	viper.SetDefault("weather.api_key", defaults.Weather.APIKey)

	viper.SetDefault("cache.ttl_minutes", defaults.Cache.TTLMinutes)

	viper.SetDefault("analysis.recent_games", defaults.Analysis.RecentGames)
	viper.SetDefault("analysis.prediction.momentum", defaults.Analysis.Prediction.Momentum)
	viper.SetDefault("analysis.prediction.home_field", defaults.Analysis.Prediction.HomeField)
	viper.SetDefault("analysis.prediction.injury_penalty", defaults.Analysis.Prediction.InjuryPenalty)
	viper.SetDefault("analysis.prediction.weather_shrink", defaults.Analysis.Prediction.WeatherShrink)

	viper.SetDefault("pipeline.parallel", defaults.Pipeline.Parallel)
	viper.SetDefault("pipeline.max_parallel", defaults.Pipeline.MaxParallel)

	viper.SetDefault("logging.level", defaults.Logging.Level)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "gameday")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".gameday"
	}
	return filepath.Join(home, ".config", "gameday")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
