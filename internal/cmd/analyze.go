package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gameday/internal/analysis"
	"gameday/internal/config"
	"gameday/internal/pipeline"
	"gameday/internal/report"
	"gameday/internal/sportsdata"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a matchup and predict the outcome",
	Long: `Run the full analysis workflow for a single game: fetch recent games,
injury reports, and the forecast, run every analyzer, and print the
combined prediction.

Requires GAMEDAY_SPORTSDATA_API_KEY and GAMEDAY_WEATHER_API_KEY (or the
matching config file entries).`,
	Example: `  gameday analyze --home "Buffalo Bills" --away "Miami Dolphins" --date 2025-12-14 --venue Buffalo`,
	RunE:    runAnalyze,
}

var (
	analyzeHome     string
	analyzeAway     string
	analyzeDate     string
	analyzeVenue    string
	analyzeJSON     bool // Output as JSON
	analyzeOutput   string
	analyzeParallel bool
)

func init() {
	analyzeCmd.Flags().StringVar(&analyzeHome, "home", "", "home team name (required)")
	analyzeCmd.Flags().StringVar(&analyzeAway, "away", "", "away team name (required)")
	analyzeCmd.Flags().StringVar(&analyzeDate, "date", "", "game date, YYYY-MM-DD")
	analyzeCmd.Flags().StringVar(&analyzeVenue, "venue", "", "game city, used for the weather lookup")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Output the result as JSON")
	analyzeCmd.Flags().StringVar(&analyzeOutput, "output", "", "also write the result as JSON to this file")
	analyzeCmd.Flags().BoolVar(&analyzeParallel, "parallel", false, "run independent analysis steps concurrently")
	_ = analyzeCmd.MarkFlagRequired("home")
	_ = analyzeCmd.MarkFlagRequired("away")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cfg.SportsData.APIKey == "" {
		return fmt.Errorf("sportsdata.api_key is not set (try GAMEDAY_SPORTSDATA_API_KEY)")
	}
	if cfg.Weather.APIKey == "" && analyzeVenue != "" {
		return fmt.Errorf("weather.api_key is not set (try GAMEDAY_WEATHER_API_KEY)")
	}

	log := newLogger(cfg)
	source := sportsdata.NewClient(cfg.SportsData.BaseURL, cfg.SportsData.APIKey, cfg.Cache.CacheTTL(), log)
	weather := sportsdata.NewWeatherClient(cfg.Weather.BaseURL, cfg.Weather.APIKey, cfg.Cache.CacheTTL(), log)

	p := pipeline.New(source, weather, pipeline.Options{
		RecentGames: cfg.Analysis.RecentGames,
		Weights: analysis.PredictionWeights{
			Momentum:      cfg.Analysis.Prediction.Momentum,
			HomeField:     cfg.Analysis.Prediction.HomeField,
			InjuryPenalty: cfg.Analysis.Prediction.InjuryPenalty,
			WeatherShrink: cfg.Analysis.Prediction.WeatherShrink,
		},
		Parallel:    analyzeParallel || cfg.Pipeline.Parallel,
		MaxParallel: cfg.Pipeline.MaxParallel,
		Logger:      log,
	})

	m := pipeline.Matchup{
		HomeTeam: analyzeHome,
		AwayTeam: analyzeAway,
		Date:     analyzeDate,
		Venue:    analyzeVenue,
	}

	res, runErr := p.Run(cmd.Context(), m)

	r := report.New(os.Stdout)
	if analyzeJSON {
		r = report.NewJSON(os.Stdout)
	}
	if res != nil {
		if err := r.Render(m, res); err != nil {
			return err
		}
		if analyzeOutput != "" {
			if err := writeResultFile(analyzeOutput, m, res); err != nil {
				return err
			}
		}
	}
	return runErr
}

func writeResultFile(path string, m pipeline.Matchup, res *pipeline.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing result file: %w", err)
	}
	defer f.Close()
	return report.NewJSON(f).Render(m, res)
}
