package analysis

import (
	"context"

	"gameday/internal/sportsdata"
	"gameday/internal/workflow"
)

// Momentum weights over the trend components.
const (
	yardsWeight      = 0.3
	scoringWeight    = 0.4
	efficiencyWeight = 0.3
)

// TeamTrends captures a team's direction over its recent games, oldest to
// newest, as discrete gradients of the underlying stats.
type TeamTrends struct {
	YardsTrend      []float64 `json:"yards_trend"`
	ScoringTrend    []float64 `json:"scoring_trend"`
	EfficiencyTrend []float64 `json:"efficiency_trend"`
	Momentum        float64   `json:"momentum"`
}

// PerformanceReport is the performance analyzer's output for both teams.
type PerformanceReport struct {
	Home TeamTrends `json:"home"`
	Away TeamTrends `json:"away"`
}

// Performance examines current form and momentum by reviewing each team's
// recent games.
type Performance struct{}

// Run reads KeyHomeGames/KeyAwayGames and emits KeyPerformance.
func (Performance) Run(ctx context.Context, input workflow.Payload) (workflow.Payload, error) {
	home, err := gamesFrom(input, KeyHomeGames)
	if err != nil {
		return nil, err
	}
	away, err := gamesFrom(input, KeyAwayGames)
	if err != nil {
		return nil, err
	}
	report := &PerformanceReport{
		Home: trendsFor(home),
		Away: trendsFor(away),
	}
	return workflow.Payload{KeyPerformance: report}, nil
}

func trendsFor(games []sportsdata.Game) TeamTrends {
	// Games arrive newest first; trends read oldest to newest.
	yards := make([]float64, 0, len(games))
	points := make([]float64, 0, len(games))
	efficiency := make([]float64, 0, len(games))
	for i := len(games) - 1; i >= 0; i-- {
		yards = append(yards, float64(games[i].TotalYards))
		points = append(points, float64(games[i].PointsScored))
		efficiency = append(efficiency, games[i].ThirdDownRate)
	}

	tr := TeamTrends{
		YardsTrend:      gradient(yards),
		ScoringTrend:    gradient(points),
		EfficiencyTrend: gradient(efficiency),
	}
	tr.Momentum = yardsWeight*mean(tr.YardsTrend) +
		scoringWeight*mean(tr.ScoringTrend) +
		efficiencyWeight*mean(tr.EfficiencyTrend)
	return tr
}

// gradient computes the discrete gradient of a series: one-sided differences
// at the edges, central differences in the interior.
func gradient(xs []float64) []float64 {
	n := len(xs)
	if n == 0 {
		return nil
	}
	if n == 1 {
		return []float64{0}
	}
	out := make([]float64, n)
	out[0] = xs[1] - xs[0]
	out[n-1] = xs[n-1] - xs[n-2]
	for i := 1; i < n-1; i++ {
		out[i] = (xs[i+1] - xs[i-1]) / 2
	}
	return out
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
