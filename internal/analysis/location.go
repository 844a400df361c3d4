package analysis

import (
	"context"

	"gameday/internal/sportsdata"
	"gameday/internal/workflow"
)

// VenueSplit is a team's record at one kind of venue.
type VenueSplit struct {
	Games            int     `json:"games"`
	WinRate          float64 `json:"win_rate"`
	AvgPointsScored  float64 `json:"avg_points_scored"`
	AvgPointsAllowed float64 `json:"avg_points_allowed"`
}

// TeamLocation is a team's home/away performance split.
type TeamLocation struct {
	Home      VenueSplit `json:"home"`
	Away      VenueSplit `json:"away"`
	Advantage string     `json:"advantage"` // "home" or "neutral"
}

// LocationReport is the venue analyzer's output for both teams.
type LocationReport struct {
	Home TeamLocation `json:"home"`
	Away TeamLocation `json:"away"`
}

// Location reviews performance differences between home and away games.
type Location struct{}

// Run reads KeyHomeGames/KeyAwayGames and emits KeyLocation.
func (Location) Run(ctx context.Context, input workflow.Payload) (workflow.Payload, error) {
	home, err := gamesFrom(input, KeyHomeGames)
	if err != nil {
		return nil, err
	}
	away, err := gamesFrom(input, KeyAwayGames)
	if err != nil {
		return nil, err
	}
	report := &LocationReport{
		Home: locationFor(home),
		Away: locationFor(away),
	}
	return workflow.Payload{KeyLocation: report}, nil
}

func locationFor(games []sportsdata.Game) TeamLocation {
	var home, away []sportsdata.Game
	for _, g := range games {
		if g.Home {
			home = append(home, g)
		} else {
			away = append(away, g)
		}
	}

	loc := TeamLocation{
		Home:      splitFor(home),
		Away:      splitFor(away),
		Advantage: "neutral",
	}
	if loc.Home.WinRate > loc.Away.WinRate {
		loc.Advantage = "home"
	}
	return loc
}

func splitFor(games []sportsdata.Game) VenueSplit {
	split := VenueSplit{Games: len(games)}
	if len(games) == 0 {
		return split
	}

	wins := 0
	for _, g := range games {
		if g.PointsScored > g.PointsAllowed {
			wins++
		}
		split.AvgPointsScored += float64(g.PointsScored)
		split.AvgPointsAllowed += float64(g.PointsAllowed)
	}
	n := float64(len(games))
	split.WinRate = float64(wins) / n
	split.AvgPointsScored /= n
	split.AvgPointsAllowed /= n
	return split
}
