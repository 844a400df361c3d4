package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gameday/internal/workflow"
)

func predictionInput(perf *PerformanceReport, inj *InjuryReport, wx *WeatherImpact) workflow.Payload {
	return workflow.Payload{
		KeyHomeTeam:      "Buffalo Bills",
		KeyAwayTeam:      "Miami Dolphins",
		KeyPerformance:   perf,
		KeyInjuryImpact:  inj,
		KeyWeatherImpact: wx,
	}
}

func runPrediction(t *testing.T, p Predictor, input workflow.Payload) *Prediction {
	t.Helper()
	out, err := p.Run(context.Background(), input)
	require.NoError(t, err)
	pred, ok := out[KeyPrediction].(*Prediction)
	require.True(t, ok)
	return pred
}

func TestPredictorHomeEdge(t *testing.T) {
	pred := runPrediction(t, Predictor{}, predictionInput(
		&PerformanceReport{
			Home: TeamTrends{Momentum: 0.5},
			Away: TeamTrends{Momentum: 0.1},
		},
		&InjuryReport{
			Away: TeamInjuries{KeyInjuries: []KeyInjury{
				{Player: "T. Tagovailoa", Position: "QB", Impact: "high"},
			}},
		},
		&WeatherImpact{},
	))

	// 0.5 + 0.25*0.4 momentum + 0.06 home field + 0.04 injury edge.
	assert.InDelta(t, 0.70, pred.HomeWinProbability, 1e-9)
	assert.Equal(t, "Buffalo Bills", pred.ProjectedWinner)
	assert.Contains(t, pred.Insights, "Buffalo Bills carries stronger recent momentum")
	assert.Contains(t, pred.Insights, "Buffalo Bills has home-field advantage")
	assert.Contains(t, pred.Insights, "Miami Dolphins missing 1 key players")
}

func TestPredictorAwayFavored(t *testing.T) {
	pred := runPrediction(t, Predictor{}, predictionInput(
		&PerformanceReport{
			Home: TeamTrends{Momentum: -1.0},
			Away: TeamTrends{Momentum: 1.0},
		},
		&InjuryReport{},
		&WeatherImpact{},
	))

	// Momentum edge clamps to -1: 0.5 - 0.25 + 0.06.
	assert.InDelta(t, 0.31, pred.HomeWinProbability, 1e-9)
	assert.Equal(t, "Miami Dolphins", pred.ProjectedWinner)
}

func TestPredictorWeatherShrinksTowardCoinFlip(t *testing.T) {
	perf := &PerformanceReport{Home: TeamTrends{Momentum: 0.4}}
	clear := runPrediction(t, Predictor{}, predictionInput(perf, &InjuryReport{}, &WeatherImpact{}))
	stormy := runPrediction(t, Predictor{}, predictionInput(perf, &InjuryReport{}, &WeatherImpact{
		RiskFactors: []string{"High winds may affect passing and kicking", "Likely precipitation favors the running game"},
	}))

	assert.Greater(t, clear.HomeWinProbability, stormy.HomeWinProbability)
	assert.Greater(t, stormy.HomeWinProbability, 0.5)
	assert.Contains(t, stormy.Insights, "Weather conditions increase outcome uncertainty")
}

func TestPredictorProbabilityClamped(t *testing.T) {
	p := Predictor{Weights: PredictionWeights{Momentum: 5, HomeField: 5}}
	pred := runPrediction(t, p, predictionInput(
		&PerformanceReport{Home: TeamTrends{Momentum: 1}},
		&InjuryReport{},
		&WeatherImpact{},
	))
	assert.InDelta(t, 0.95, pred.HomeWinProbability, 1e-9)
}

func TestPredictorMissingUpstream(t *testing.T) {
	_, err := Predictor{}.Run(context.Background(), workflow.Payload{
		KeyHomeTeam: "Buffalo Bills",
		KeyAwayTeam: "Miami Dolphins",
	})
	assert.Error(t, err)
}
