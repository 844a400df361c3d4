package sportsdata

import "context"

// Game is one completed game seen from a single team's perspective.
type Game struct {
	Date               string  `json:"date"`
	Opponent           string  `json:"opponent"`
	Home               bool    `json:"home"`
	PointsScored       int     `json:"points_scored"`
	PointsAllowed      int     `json:"points_allowed"`
	TotalYards         int     `json:"total_yards"`
	YardsAllowed       int     `json:"yards_allowed"`
	PassingYards       int     `json:"passing_yards"`
	RushingYards       int     `json:"rushing_yards"`
	Turnovers          int     `json:"turnovers"`
	ThirdDownRate      float64 `json:"third_down_rate"`
	FourthDownRate     float64 `json:"fourth_down_rate"`
	Sacks              int     `json:"sacks"`
	Penalties          int     `json:"penalties"`
	PenaltyYards       int     `json:"penalty_yards"`
	RedZoneAttempts    int     `json:"red_zone_attempts"`
	RedZoneConversions int     `json:"red_zone_conversions"`
}

// Injury is one entry from a team's injury report.
type Injury struct {
	Player   string `json:"player"`
	Position string `json:"position"`
	Injury   string `json:"injury"`
	Status   string `json:"status"`
}

// Forecast is the reduced weather outlook for a game.
type Forecast struct {
	Temperature         int    `json:"temperature"`
	FeelsLike           int    `json:"feels_like"`
	Conditions          string `json:"conditions"`
	Description         string `json:"description"`
	WindSpeed           int    `json:"wind_speed"`
	Humidity            int    `json:"humidity"`
	PrecipitationChance int    `json:"precipitation_chance"`
}

// Source provides team game data to the analysis pipeline. Implemented by
// Client; faked in tests.
type Source interface {
	RecentGames(ctx context.Context, team string, n int) ([]Game, error)
	InjuryReport(ctx context.Context, team string) ([]Injury, error)
}

// WeatherSource provides game-day forecasts. Implemented by WeatherClient.
type WeatherSource interface {
	GameForecast(ctx context.Context, city, gameDate string) (Forecast, error)
}
