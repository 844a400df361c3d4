// Package pipeline assembles the fetch and analysis workers into a game
// analysis workflow.
package pipeline

import (
	"context"
	"fmt"

	"gameday/internal/analysis"
	"gameday/internal/logging"
	"gameday/internal/sportsdata"
	"gameday/internal/workflow"
)

// Node names, in registration order.
const (
	NodeHomeGames    = "fetch_home_games"
	NodeAwayGames    = "fetch_away_games"
	NodeHomeInjuries = "fetch_home_injuries"
	NodeAwayInjuries = "fetch_away_injuries"
	NodeForecast     = "fetch_forecast"
	NodePerformance  = "analyze_performance"
	NodeWeather      = "analyze_weather"
	NodeInjuries     = "analyze_injuries"
	NodeRoster       = "analyze_roster"
	NodeLocation     = "analyze_location"
	NodeSeasonStats  = "analyze_season_stats"
	NodeMatchup      = "analyze_matchup"
	NodeCoaching     = "analyze_coaching"
	NodePrediction   = "predict"
)

// Matchup identifies the game to analyze.
type Matchup struct {
	HomeTeam string
	AwayTeam string
	Date     string // YYYY-MM-DD
	Venue    string // city, used for the weather lookup
}

// Result is the outcome of a full pipeline run.
type Result struct {
	Prediction  *analysis.Prediction
	NodeResults map[string]workflow.Payload
	Status      workflow.WorkflowStatus
	Nodes       []workflow.NodeStatus
}

// Options tunes pipeline construction.
type Options struct {
	// RecentGames is how many recent games to sample per team.
	RecentGames int
	// Weights overrides the default prediction weights when non-zero.
	Weights analysis.PredictionWeights
	// Parallel runs independent nodes concurrently.
	Parallel bool
	// MaxParallel caps in-flight nodes when Parallel is set.
	MaxParallel int
	// Logger defaults to a no-op logger.
	Logger *logging.Logger
}

// Pipeline builds and runs game analysis workflows.
type Pipeline struct {
	source  sportsdata.Source
	weather sportsdata.WeatherSource
	opts    Options
	log     *logging.Logger
}

// New returns a Pipeline backed by the given data sources.
func New(source sportsdata.Source, weather sportsdata.WeatherSource, opts Options) *Pipeline {
	if opts.RecentGames < 1 {
		opts.RecentGames = 5
	}
	if opts.MaxParallel < 1 {
		opts.MaxParallel = 4
	}
	log := opts.Logger
	if log == nil {
		log = logging.NewNop()
	}
	return &Pipeline{source: source, weather: weather, opts: opts, log: log}
}

// Build assembles the workflow graph for a matchup. Fetch nodes have no
// dependencies; every analyzer depends only on the fetches it reads, so the
// parallel executor can overlap independent branches.
func (p *Pipeline) Build(m Matchup) (*workflow.Graph, error) {
	if m.HomeTeam == "" || m.AwayTeam == "" {
		return nil, fmt.Errorf("both home and away teams are required")
	}

	g := workflow.New()

	nodes := []struct {
		name   string
		worker workflow.Worker
		deps   []string
	}{
		{NodeHomeGames, p.fetchGames(m.HomeTeam, analysis.KeyHomeGames), nil},
		{NodeAwayGames, p.fetchGames(m.AwayTeam, analysis.KeyAwayGames), nil},
		{NodeHomeInjuries, p.fetchInjuries(m.HomeTeam, analysis.KeyHomeInjuries), nil},
		{NodeAwayInjuries, p.fetchInjuries(m.AwayTeam, analysis.KeyAwayInjuries), nil},
		{NodeForecast, p.fetchForecast(m.Venue, m.Date), nil},
		{NodePerformance, analysis.Performance{}, []string{NodeHomeGames, NodeAwayGames}},
		{NodeWeather, analysis.Weather{}, []string{NodeForecast}},
		{NodeInjuries, analysis.Injuries{}, []string{NodeHomeInjuries, NodeAwayInjuries}},
		{NodeRoster, analysis.Roster{}, []string{NodeHomeInjuries, NodeAwayInjuries}},
		{NodeLocation, analysis.Location{}, []string{NodeHomeGames, NodeAwayGames}},
		{NodeSeasonStats, analysis.SeasonStats{}, []string{NodeHomeGames, NodeAwayGames}},
		{NodeMatchup, analysis.Matchup{}, []string{NodeHomeGames}},
		{NodeCoaching, analysis.Coaching{}, []string{NodeHomeGames, NodeAwayGames}},
		{NodePrediction, analysis.Predictor{Weights: p.opts.Weights}, []string{NodePerformance, NodeInjuries, NodeWeather}},
	}
	for _, n := range nodes {
		if err := g.AddNode(n.name, n.worker, n.deps); err != nil {
			return nil, fmt.Errorf("adding node %s: %w", n.name, err)
		}
	}
	return g, nil
}

// Plan returns the node names in the order the serial executor would run
// them, without executing anything.
func (p *Pipeline) Plan(m Matchup) ([]string, error) {
	g, err := p.Build(m)
	if err != nil {
		return nil, err
	}
	return g.TopologicalOrder()
}

// Run builds the workflow for a matchup and executes it to a prediction.
// On a node failure the partial statuses are still returned alongside the
// error so the caller can report which analyses completed.
func (p *Pipeline) Run(ctx context.Context, m Matchup) (*Result, error) {
	g, err := p.Build(m)
	if err != nil {
		return nil, err
	}

	initial := workflow.Payload{
		analysis.KeyHomeTeam: m.HomeTeam,
		analysis.KeyAwayTeam: m.AwayTeam,
		analysis.KeyGameDate: m.Date,
		analysis.KeyVenue:    m.Venue,
	}

	p.log.Info("starting analysis",
		"home", m.HomeTeam, "away", m.AwayTeam, "date", m.Date,
		"parallel", p.opts.Parallel)

	var results map[string]workflow.Payload
	if p.opts.Parallel {
		results, err = g.ExecuteParallel(ctx, initial, p.opts.MaxParallel)
	} else {
		results, err = g.ExecuteWorkflow(ctx, initial)
	}

	res := &Result{
		NodeResults: results,
		Status:      g.Status(),
		Nodes:       nodeStatuses(g),
	}
	if err != nil {
		p.log.Error("analysis failed", "err", err)
		return res, err
	}

	if out, ok := results[NodePrediction]; ok {
		res.Prediction, _ = out[analysis.KeyPrediction].(*analysis.Prediction)
	}
	p.log.Info("analysis complete",
		"winner", res.Prediction.ProjectedWinner,
		"home_win_probability", res.Prediction.HomeWinProbability)
	return res, nil
}

func nodeStatuses(g *workflow.Graph) []workflow.NodeStatus {
	names := g.Names()
	out := make([]workflow.NodeStatus, 0, len(names))
	for _, name := range names {
		st, err := g.NodeStatus(name)
		if err != nil {
			continue
		}
		out = append(out, st)
	}
	return out
}

func (p *Pipeline) fetchGames(team, key string) workflow.Worker {
	return workflow.WorkerFunc(func(ctx context.Context, _ workflow.Payload) (workflow.Payload, error) {
		games, err := p.source.RecentGames(ctx, team, p.opts.RecentGames)
		if err != nil {
			return nil, fmt.Errorf("fetching recent games for %s: %w", team, err)
		}
		p.log.Debug("fetched games", "team", team, "count", len(games))
		return workflow.Payload{key: games}, nil
	})
}

func (p *Pipeline) fetchInjuries(team, key string) workflow.Worker {
	return workflow.WorkerFunc(func(ctx context.Context, _ workflow.Payload) (workflow.Payload, error) {
		injuries, err := p.source.InjuryReport(ctx, team)
		if err != nil {
			return nil, fmt.Errorf("fetching injuries for %s: %w", team, err)
		}
		p.log.Debug("fetched injuries", "team", team, "count", len(injuries))
		return workflow.Payload{key: injuries}, nil
	})
}

func (p *Pipeline) fetchForecast(city, date string) workflow.Worker {
	return workflow.WorkerFunc(func(ctx context.Context, _ workflow.Payload) (workflow.Payload, error) {
		if city == "" || date == "" {
			// No venue or date to look up; assume benign conditions.
			p.log.Debug("skipping forecast lookup", "city", city, "date", date)
			return workflow.Payload{analysis.KeyForecast: sportsdata.Forecast{
				Temperature: 70,
				Conditions:  "Clear",
			}}, nil
		}
		fc, err := p.weather.GameForecast(ctx, city, date)
		if err != nil {
			return nil, fmt.Errorf("fetching forecast for %s: %w", city, err)
		}
		return workflow.Payload{analysis.KeyForecast: fc}, nil
	})
}
