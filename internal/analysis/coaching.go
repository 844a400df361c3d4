package analysis

import (
	"context"

	"gameday/internal/sportsdata"
	"gameday/internal/workflow"
)

// CoachingTendencies captures play-calling signals visible in the box scores.
type CoachingTendencies struct {
	RunPassRatio      float64 `json:"run_pass_ratio"`
	FourthDownRate    float64 `json:"fourth_down_rate"`
	RedZoneEfficiency float64 `json:"red_zone_efficiency"`
}

// CoachingReport holds the tendencies for both staffs.
type CoachingReport struct {
	Home CoachingTendencies `json:"home"`
	Away CoachingTendencies `json:"away"`
}

// Coaching derives play-calling tendencies from recent games.
type Coaching struct{}

// Run reads KeyHomeGames/KeyAwayGames and emits KeyCoaching.
func (Coaching) Run(ctx context.Context, input workflow.Payload) (workflow.Payload, error) {
	home, err := gamesFrom(input, KeyHomeGames)
	if err != nil {
		return nil, err
	}
	away, err := gamesFrom(input, KeyAwayGames)
	if err != nil {
		return nil, err
	}
	report := &CoachingReport{
		Home: tendenciesFor(home),
		Away: tendenciesFor(away),
	}
	return workflow.Payload{KeyCoaching: report}, nil
}

func tendenciesFor(games []sportsdata.Game) CoachingTendencies {
	var t CoachingTendencies
	if len(games) == 0 {
		return t
	}
	var rushing, passing float64
	var rzAttempts, rzConversions int
	for _, g := range games {
		rushing += float64(g.RushingYards)
		passing += float64(g.PassingYards)
		t.FourthDownRate += g.FourthDownRate
		rzAttempts += g.RedZoneAttempts
		rzConversions += g.RedZoneConversions
	}
	if passing > 0 {
		t.RunPassRatio = rushing / passing
	}
	t.FourthDownRate /= float64(len(games))
	if rzAttempts > 0 {
		t.RedZoneEfficiency = float64(rzConversions) / float64(rzAttempts)
	}
	return t
}
