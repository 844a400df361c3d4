package analysis

import (
	"context"

	"gameday/internal/sportsdata"
	"gameday/internal/workflow"
)

// RosterChange is one significant change to a team's available lineup.
type RosterChange struct {
	Type   string `json:"type"`
	Player string `json:"player"`
	Impact string `json:"impact"` // "negative" or "moderate"
}

// RosterReport is the roster analyzer's output for both teams.
type RosterReport struct {
	Home []RosterChange `json:"home"`
	Away []RosterChange `json:"away"`
}

// Roster investigates roster changes and their impact on team dynamics.
// Players ruled out are the changes that matter on game day.
type Roster struct{}

// Run reads KeyHomeInjuries/KeyAwayInjuries and emits KeyRosterChanges.
func (Roster) Run(ctx context.Context, input workflow.Payload) (workflow.Payload, error) {
	home, err := injuriesFrom(input, KeyHomeInjuries)
	if err != nil {
		return nil, err
	}
	away, err := injuriesFrom(input, KeyAwayInjuries)
	if err != nil {
		return nil, err
	}
	report := &RosterReport{
		Home: rosterChanges(home),
		Away: rosterChanges(away),
	}
	return workflow.Payload{KeyRosterChanges: report}, nil
}

func rosterChanges(injuries []sportsdata.Injury) []RosterChange {
	var changes []RosterChange
	for _, inj := range injuries {
		if inj.Status != "Out" {
			continue
		}
		impact := "moderate"
		if skillPositions[inj.Position] {
			impact = "negative"
		}
		changes = append(changes, RosterChange{
			Type:   "injury",
			Player: inj.Player,
			Impact: impact,
		})
	}
	return changes
}
