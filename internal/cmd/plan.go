package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gameday/internal/config"
	"gameday/internal/pipeline"
	"gameday/internal/report"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Print the analysis steps without running them",
	Long: `Show the order the analysis workflow would execute in for a matchup.
No data is fetched and no analyzers run.`,
	RunE: runPlan,
}

var (
	planHome string
	planAway string
)

func init() {
	planCmd.Flags().StringVar(&planHome, "home", "", "home team name (required)")
	planCmd.Flags().StringVar(&planAway, "away", "", "away team name (required)")
	_ = planCmd.MarkFlagRequired("home")
	_ = planCmd.MarkFlagRequired("away")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Plan never fetches, so nil sources are fine.
	p := pipeline.New(nil, nil, pipeline.Options{RecentGames: cfg.Analysis.RecentGames})
	m := pipeline.Matchup{HomeTeam: planHome, AwayTeam: planAway}
	g, err := p.Build(m)
	if err != nil {
		return err
	}
	order, err := g.TopologicalOrder()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s %s at %s\n", report.Bold("Execution plan:"), planAway, planHome)
	for i, name := range order {
		fmt.Fprintf(w, "  %2d. %s", i+1, name)
		n, _ := g.Node(name)
		if deps := n.Dependencies(); len(deps) > 0 {
			fmt.Fprintf(w, "  %s", report.Dim("after "+strings.Join(deps, ", ")))
		}
		fmt.Fprintln(w)
	}
	return nil
}
