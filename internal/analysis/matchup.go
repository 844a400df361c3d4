package analysis

import (
	"context"
	"fmt"

	"gameday/internal/sportsdata"
	"gameday/internal/workflow"
)

// MatchupReport describes the head-to-head history between the two teams,
// limited to whatever meetings appear in the sampled games.
type MatchupReport struct {
	Meetings            int      `json:"meetings"`
	HistoricalAdvantage string   `json:"historical_advantage"`
	AvgPointsWinner     float64  `json:"avg_points_winner"`
	AvgPointsLoser      float64  `json:"avg_points_loser"`
	KeyFactors          []string `json:"key_factors"`
}

// Matchup analyzes prior meetings between the two teams.
type Matchup struct{}

// Run reads both teams' games and the team names, then emits KeyMatchup.
func (Matchup) Run(ctx context.Context, input workflow.Payload) (workflow.Payload, error) {
	homeTeam, err := stringFrom(input, KeyHomeTeam)
	if err != nil {
		return nil, err
	}
	awayTeam, err := stringFrom(input, KeyAwayTeam)
	if err != nil {
		return nil, err
	}
	homeGames, err := gamesFrom(input, KeyHomeGames)
	if err != nil {
		return nil, err
	}

	awayCode := sportsdata.TeamCode(awayTeam)
	report := &MatchupReport{HistoricalAdvantage: "none", KeyFactors: []string{}}

	var homeWins, awayWins int
	var winnerPoints, loserPoints float64
	for _, g := range homeGames {
		if g.Opponent != awayCode {
			continue
		}
		report.Meetings++
		hi, lo := g.PointsScored, g.PointsAllowed
		if g.PointsScored > g.PointsAllowed {
			homeWins++
		} else if g.PointsAllowed > g.PointsScored {
			awayWins++
			hi, lo = lo, hi
		}
		winnerPoints += float64(hi)
		loserPoints += float64(lo)
	}

	if report.Meetings > 0 {
		n := float64(report.Meetings)
		report.AvgPointsWinner = winnerPoints / n
		report.AvgPointsLoser = loserPoints / n
		switch {
		case homeWins > awayWins:
			report.HistoricalAdvantage = sportsdata.TeamCode(homeTeam)
			report.KeyFactors = append(report.KeyFactors,
				fmt.Sprintf("%s won %d of %d recent meetings", homeTeam, homeWins, report.Meetings))
		case awayWins > homeWins:
			report.HistoricalAdvantage = awayCode
			report.KeyFactors = append(report.KeyFactors,
				fmt.Sprintf("%s won %d of %d recent meetings", awayTeam, awayWins, report.Meetings))
		default:
			report.KeyFactors = append(report.KeyFactors,
				fmt.Sprintf("Recent meetings split %d-%d", homeWins, awayWins))
		}
		if margin := report.AvgPointsWinner - report.AvgPointsLoser; margin >= 10 {
			report.KeyFactors = append(report.KeyFactors,
				fmt.Sprintf("Recent meetings decided by %.1f points on average", margin))
		}
	}

	return workflow.Payload{KeyMatchup: report}, nil
}
