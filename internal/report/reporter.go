// Package report renders pipeline results for the terminal and as JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"gameday/internal/analysis"
	"gameday/internal/pipeline"
	"gameday/internal/workflow"
)

// Reporter writes a pipeline result to its writer.
type Reporter struct {
	w    io.Writer
	json bool
}

// New returns a Reporter writing human-readable output.
func New(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

// NewJSON returns a Reporter writing a single JSON document.
func NewJSON(w io.Writer) *Reporter {
	return &Reporter{w: w, json: true}
}

// Document is the JSON shape of a rendered result.
type Document struct {
	HomeTeam   string                  `json:"home_team"`
	AwayTeam   string                  `json:"away_team"`
	GameDate   string                  `json:"game_date,omitempty"`
	Venue      string                  `json:"venue,omitempty"`
	Verdict    workflow.NodeState      `json:"verdict"`
	Prediction *analysis.Prediction    `json:"prediction,omitempty"`
	Nodes      []workflow.NodeStatus   `json:"nodes"`
	Status     workflow.WorkflowStatus `json:"status"`
}

// Render writes the result of analyzing a matchup.
func (r *Reporter) Render(m pipeline.Matchup, res *pipeline.Result) error {
	if r.json {
		return r.renderJSON(m, res)
	}
	r.renderNodes(res)
	r.renderVerdict(m, res)
	return nil
}

func (r *Reporter) renderJSON(m pipeline.Matchup, res *pipeline.Result) error {
	doc := Document{
		HomeTeam:   m.HomeTeam,
		AwayTeam:   m.AwayTeam,
		GameDate:   m.Date,
		Venue:      m.Venue,
		Verdict:    res.Status.Verdict,
		Prediction: res.Prediction,
		Nodes:      res.Nodes,
		Status:     res.Status,
	}
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func (r *Reporter) renderNodes(res *pipeline.Result) {
	fmt.Fprintln(r.w, Bold("Analysis steps"))
	for _, st := range res.Nodes {
		line := fmt.Sprintf("  %s %s", StatusIcon(st.State), st.Name)
		if st.Duration > 0 {
			line += Dim(fmt.Sprintf("  (%s)", st.Duration.Round(time.Millisecond)))
		}
		if st.Err != "" {
			line += "  " + Red(st.Err)
		}
		fmt.Fprintln(r.w, line)
	}
	fmt.Fprintln(r.w)
}

func (r *Reporter) renderVerdict(m pipeline.Matchup, res *pipeline.Result) {
	if res.Prediction == nil {
		fmt.Fprintln(r.w, BoldRed("✗ Analysis did not reach a prediction"))
		fmt.Fprintf(r.w, "  %d of %d steps completed\n", res.Status.Completed, res.Status.Total)
		return
	}

	pred := res.Prediction
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render(fmt.Sprintf("%s at %s", m.AwayTeam, m.HomeTeam)))
	if m.Date != "" {
		b.WriteString(Dim("  " + m.Date))
	}
	b.WriteString("\n\n")
	b.WriteString("Projected winner: " + winnerStyle.Render(pred.ProjectedWinner) + "\n")
	b.WriteString(fmt.Sprintf("Home win probability: %.0f%%\n", pred.HomeWinProbability*100))
	if len(pred.Insights) > 0 {
		b.WriteString("\n")
		for _, insight := range pred.Insights {
			b.WriteString("  • " + insight + "\n")
		}
	}
	fmt.Fprintln(r.w, panelStyle.Render(strings.TrimRight(b.String(), "\n")))
}
