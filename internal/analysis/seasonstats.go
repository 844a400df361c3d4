package analysis

import (
	"context"

	"gameday/internal/sportsdata"
	"gameday/internal/workflow"
)

// SeasonSummary is a team's per-game statistical profile over the sampled
// games.
type SeasonSummary struct {
	PointsPerGame        float64 `json:"points_per_game"`
	YardsPerGame         float64 `json:"yards_per_game"`
	ThirdDownRate        float64 `json:"third_down_efficiency"`
	PointsAllowedPerGame float64 `json:"points_allowed_per_game"`
	YardsAllowedPerGame  float64 `json:"yards_allowed_per_game"`
}

// SeasonReport is the season-stats analyzer's output for both teams.
type SeasonReport struct {
	Home SeasonSummary `json:"home"`
	Away SeasonSummary `json:"away"`
}

// SeasonStats summarizes offensive and defensive production per game.
type SeasonStats struct{}

// Run reads KeyHomeGames/KeyAwayGames and emits KeySeasonStats.
func (SeasonStats) Run(ctx context.Context, input workflow.Payload) (workflow.Payload, error) {
	home, err := gamesFrom(input, KeyHomeGames)
	if err != nil {
		return nil, err
	}
	away, err := gamesFrom(input, KeyAwayGames)
	if err != nil {
		return nil, err
	}
	report := &SeasonReport{
		Home: summarize(home),
		Away: summarize(away),
	}
	return workflow.Payload{KeySeasonStats: report}, nil
}

func summarize(games []sportsdata.Game) SeasonSummary {
	var s SeasonSummary
	if len(games) == 0 {
		return s
	}
	for _, g := range games {
		s.PointsPerGame += float64(g.PointsScored)
		s.YardsPerGame += float64(g.TotalYards)
		s.ThirdDownRate += g.ThirdDownRate
		s.PointsAllowedPerGame += float64(g.PointsAllowed)
		s.YardsAllowedPerGame += float64(g.YardsAllowed)
	}
	n := float64(len(games))
	s.PointsPerGame /= n
	s.YardsPerGame /= n
	s.ThirdDownRate /= n
	s.PointsAllowedPerGame /= n
	s.YardsAllowedPerGame /= n
	return s
}
