package analysis

import (
	"context"
	"fmt"

	"gameday/internal/workflow"
)

// PredictionWeights tunes how much each signal moves the win probability.
type PredictionWeights struct {
	Momentum      float64 `mapstructure:"momentum" json:"momentum"`
	HomeField     float64 `mapstructure:"home_field" json:"home_field"`
	InjuryPenalty float64 `mapstructure:"injury_penalty" json:"injury_penalty"`
	WeatherShrink float64 `mapstructure:"weather_shrink" json:"weather_shrink"`
}

// DefaultPredictionWeights are the weights used when none are configured.
func DefaultPredictionWeights() PredictionWeights {
	return PredictionWeights{
		Momentum:      0.25,
		HomeField:     0.06,
		InjuryPenalty: 0.04,
		WeatherShrink: 0.15,
	}
}

// Prediction is the final verdict on the game.
type Prediction struct {
	ProjectedWinner    string   `json:"projected_winner"`
	HomeWinProbability float64  `json:"home_win_probability"`
	Insights           []string `json:"insights"`
}

// Predictor combines the upstream analyzers' reports into a game prediction.
type Predictor struct {
	Weights PredictionWeights
}

// Run reads every upstream report plus the team names and emits KeyPrediction.
func (p Predictor) Run(ctx context.Context, input workflow.Payload) (workflow.Payload, error) {
	homeTeam, err := stringFrom(input, KeyHomeTeam)
	if err != nil {
		return nil, err
	}
	awayTeam, err := stringFrom(input, KeyAwayTeam)
	if err != nil {
		return nil, err
	}
	perf, err := payloadValue[*PerformanceReport](input, KeyPerformance)
	if err != nil {
		return nil, err
	}
	injuries, err := payloadValue[*InjuryReport](input, KeyInjuryImpact)
	if err != nil {
		return nil, err
	}
	weather, err := payloadValue[*WeatherImpact](input, KeyWeatherImpact)
	if err != nil {
		return nil, err
	}

	w := p.Weights
	if w == (PredictionWeights{}) {
		w = DefaultPredictionWeights()
	}

	prob := 0.5
	insights := []string{}

	momentumEdge := perf.Home.Momentum - perf.Away.Momentum
	prob += w.Momentum * clamp(momentumEdge, -1, 1)
	switch {
	case momentumEdge > 0.1:
		insights = append(insights, fmt.Sprintf("%s carries stronger recent momentum", homeTeam))
	case momentumEdge < -0.1:
		insights = append(insights, fmt.Sprintf("%s carries stronger recent momentum", awayTeam))
	}

	prob += w.HomeField
	insights = append(insights, fmt.Sprintf("%s has home-field advantage", homeTeam))

	injuryEdge := keyInjuryCount(injuries.Away) - keyInjuryCount(injuries.Home)
	prob += w.InjuryPenalty * clamp(float64(injuryEdge), -3, 3)
	if n := keyInjuryCount(injuries.Home); n > 0 {
		insights = append(insights, fmt.Sprintf("%s missing %d key players", homeTeam, n))
	}
	if n := keyInjuryCount(injuries.Away); n > 0 {
		insights = append(insights, fmt.Sprintf("%s missing %d key players", awayTeam, n))
	}

	// Bad weather adds variance, so pull the estimate toward a coin flip.
	if risks := len(weather.RiskFactors); risks > 0 {
		shrink := clamp(w.WeatherShrink*float64(risks), 0, 1)
		prob = 0.5 + (prob-0.5)*(1-shrink)
		insights = append(insights, "Weather conditions increase outcome uncertainty")
	}

	prob = clamp(prob, 0.05, 0.95)

	winner := homeTeam
	if prob < 0.5 {
		winner = awayTeam
	}

	pred := &Prediction{
		ProjectedWinner:    winner,
		HomeWinProbability: prob,
		Insights:           insights,
	}
	return workflow.Payload{KeyPrediction: pred}, nil
}

func keyInjuryCount(t TeamInjuries) int {
	n := 0
	for _, inj := range t.KeyInjuries {
		if inj.Impact == "high" {
			n++
		}
	}
	return n
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
