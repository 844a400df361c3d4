package analysis

import (
	"fmt"

	"gameday/internal/sportsdata"
	"gameday/internal/workflow"
)

// Well-known payload keys. The first group is seeded by the caller or the
// fetch nodes; the second is emitted by the analyzers.
const (
	KeyHomeTeam     = "home_team"
	KeyAwayTeam     = "away_team"
	KeyGameDate     = "game_date"
	KeyVenue        = "venue"
	KeyHomeGames    = "home_games"
	KeyAwayGames    = "away_games"
	KeyHomeInjuries = "home_injuries"
	KeyAwayInjuries = "away_injuries"
	KeyForecast     = "forecast"

	KeyPerformance   = "performance"
	KeyWeatherImpact = "weather_impact"
	KeyInjuryImpact  = "injury_impact"
	KeyRosterChanges = "roster_changes"
	KeyLocation      = "location"
	KeySeasonStats   = "season_stats"
	KeyMatchup       = "matchup"
	KeyCoaching      = "coaching"
	KeyPrediction    = "prediction"
)

// Impact grades a factor's effect on the game.
type Impact string

const (
	ImpactPositive Impact = "positive"
	ImpactNeutral  Impact = "neutral"
	ImpactNegative Impact = "negative"
)

func payloadValue[T any](p workflow.Payload, key string) (T, error) {
	var zero T
	v, ok := p[key]
	if !ok {
		return zero, fmt.Errorf("missing %q in payload", key)
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("payload key %q: want %T, got %T", key, zero, v)
	}
	return typed, nil
}

func gamesFrom(p workflow.Payload, key string) ([]sportsdata.Game, error) {
	return payloadValue[[]sportsdata.Game](p, key)
}

func injuriesFrom(p workflow.Payload, key string) ([]sportsdata.Injury, error) {
	return payloadValue[[]sportsdata.Injury](p, key)
}

func stringFrom(p workflow.Payload, key string) (string, error) {
	return payloadValue[string](p, key)
}
