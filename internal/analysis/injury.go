package analysis

import (
	"context"
	"sort"

	"gameday/internal/sportsdata"
	"gameday/internal/workflow"
)

// skillPositions are the positions whose absence is graded high impact.
var skillPositions = map[string]bool{
	"QB": true,
	"RB": true,
	"WR": true,
}

// KeyInjury is an injured player unlikely to play.
type KeyInjury struct {
	Player   string `json:"player"`
	Position string `json:"position"`
	Impact   string `json:"impact"` // "high" or "moderate"
}

// TeamInjuries summarizes one team's injury report.
type TeamInjuries struct {
	KeyInjuries    []KeyInjury `json:"key_injuries"`
	PositionGroups []string    `json:"position_groups_affected"`
}

// InjuryReport is the injury analyzer's output for both teams.
type InjuryReport struct {
	Home TeamInjuries `json:"home"`
	Away TeamInjuries `json:"away"`
}

// Injuries analyzes the impact of injuries on both teams.
type Injuries struct{}

// Run reads KeyHomeInjuries/KeyAwayInjuries and emits KeyInjuryImpact.
func (Injuries) Run(ctx context.Context, input workflow.Payload) (workflow.Payload, error) {
	home, err := injuriesFrom(input, KeyHomeInjuries)
	if err != nil {
		return nil, err
	}
	away, err := injuriesFrom(input, KeyAwayInjuries)
	if err != nil {
		return nil, err
	}
	report := &InjuryReport{
		Home: assessInjuries(home),
		Away: assessInjuries(away),
	}
	return workflow.Payload{KeyInjuryImpact: report}, nil
}

func assessInjuries(injuries []sportsdata.Injury) TeamInjuries {
	var out TeamInjuries
	groups := make(map[string]bool)

	for _, inj := range injuries {
		if inj.Status != "Out" && inj.Status != "Doubtful" {
			continue
		}
		impact := "moderate"
		if skillPositions[inj.Position] {
			impact = "high"
		}
		out.KeyInjuries = append(out.KeyInjuries, KeyInjury{
			Player:   inj.Player,
			Position: inj.Position,
			Impact:   impact,
		})
		groups[inj.Position] = true
	}

	for g := range groups {
		out.PositionGroups = append(out.PositionGroups, g)
	}
	sort.Strings(out.PositionGroups)
	return out
}
