package analysis

import (
	"context"

	"gameday/internal/sportsdata"
	"gameday/internal/workflow"
)

// Weather thresholds at which conditions start to change the game.
const (
	freezingTempF    = 32
	highWindMPH      = 15
	wetGameChancePct = 50
)

// WeatherImpact grades how the forecast affects each phase of the game.
type WeatherImpact struct {
	Overall     Impact   `json:"overall"`
	PassingGame Impact   `json:"passing_game"`
	RunningGame Impact   `json:"running_game"`
	KickingGame Impact   `json:"kicking_game"`
	RiskFactors []string `json:"risk_factors"`
}

// Weather analyzes forecast conditions and their potential impact on game
// performance.
type Weather struct{}

// Run reads KeyForecast and emits KeyWeatherImpact.
func (Weather) Run(ctx context.Context, input workflow.Payload) (workflow.Payload, error) {
	fc, err := payloadValue[sportsdata.Forecast](input, KeyForecast)
	if err != nil {
		return nil, err
	}
	return workflow.Payload{KeyWeatherImpact: assessWeather(fc)}, nil
}

func assessWeather(fc sportsdata.Forecast) *WeatherImpact {
	impact := &WeatherImpact{
		Overall:     ImpactNeutral,
		PassingGame: ImpactNeutral,
		RunningGame: ImpactNeutral,
		KickingGame: ImpactNeutral,
	}

	if fc.Temperature < freezingTempF {
		impact.Overall = ImpactNegative
		impact.PassingGame = ImpactNegative
		impact.RiskFactors = append(impact.RiskFactors, "Cold weather may affect ball handling")
	}

	if fc.WindSpeed > highWindMPH {
		impact.PassingGame = ImpactNegative
		impact.KickingGame = ImpactNegative
		impact.RiskFactors = append(impact.RiskFactors, "High winds may affect passing and kicking")
	}

	if fc.PrecipitationChance > wetGameChancePct {
		impact.PassingGame = ImpactNegative
		impact.RunningGame = ImpactPositive
		impact.RiskFactors = append(impact.RiskFactors, "Likely precipitation favors the running game")
	}

	return impact
}
