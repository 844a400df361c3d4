// Package sportsdata fetches the NFL game data consumed by the analysis
// pipeline: completed games with box-score stats, injury reports, and
// game-day weather forecasts. Responses are cached in memory with a fixed
// expiry so repeated pipeline nodes do not re-fetch.
package sportsdata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"gameday/internal/logging"
)

// Client fetches team game data from a sportsdata-style JSON API.
type Client struct {
	baseURL string
	apiKey  string
	hc      *http.Client
	cache   *ttlCache
	log     *logging.Logger
	now     func() time.Time
}

// NewClient builds a stats client. A nil logger disables logging.
func NewClient(baseURL, apiKey string, cacheTTL time.Duration, log *logging.Logger) *Client {
	if log == nil {
		log = logging.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		hc:      &http.Client{Timeout: 30 * time.Second},
		cache:   newTTLCache(cacheTTL),
		log:     log.With("component", "sportsdata"),
		now:     time.Now,
	}
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", c.apiKey)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: unexpected status %s", url, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// currentSeason follows the NFL calendar: September onward belongs to the
// current year's season, earlier months to the previous one.
func (c *Client) currentSeason() int {
	t := c.now()
	if t.Month() > time.August {
		return t.Year()
	}
	return t.Year() - 1
}

// RecentGames returns the team's n most recent completed games, newest
// first, with per-game box-score stats.
func (c *Client) RecentGames(ctx context.Context, team string, n int) ([]Game, error) {
	cacheKey := fmt.Sprintf("recent_games_%s_%d", team, n)
	if v, ok := c.cache.get(cacheKey); ok {
		return v.([]Game), nil
	}

	code := TeamCode(team)
	body, err := c.get(ctx, fmt.Sprintf("%s/scores/json/Schedules/%d", c.baseURL, c.currentSeason()))
	if err != nil {
		c.log.Error("fetching schedule", "team", code, "err", err)
		return nil, err
	}

	var finals []gjson.Result
	gjson.ParseBytes(body).ForEach(func(_, g gjson.Result) bool {
		if g.Get("Status").String() != "Final" {
			return true
		}
		if g.Get("HomeTeam").String() != code && g.Get("AwayTeam").String() != code {
			return true
		}
		finals = append(finals, g)
		return true
	})
	sort.SliceStable(finals, func(i, j int) bool {
		return finals[i].Get("Date").String() > finals[j].Get("Date").String()
	})
	if len(finals) > n {
		finals = finals[:n]
	}

	games := make([]Game, 0, len(finals))
	for _, sched := range finals {
		game, err := c.boxScore(ctx, sched, code)
		if err != nil {
			c.log.Error("fetching box score", "team", code, "game", sched.Get("GameKey").String(), "err", err)
			return nil, err
		}
		games = append(games, game)
	}

	c.cache.set(cacheKey, games)
	return games, nil
}

func (c *Client) boxScore(ctx context.Context, sched gjson.Result, code string) (Game, error) {
	gameKey := sched.Get("GameKey").String()
	body, err := c.get(ctx, fmt.Sprintf("%s/stats/json/BoxScoreByGameID/%s", c.baseURL, gameKey))
	if err != nil {
		return Game{}, err
	}

	doc := gjson.ParseBytes(body)
	home := sched.Get("HomeTeam").String() == code
	teamSide, oppSide := "HomeTeam", "AwayTeam"
	if !home {
		teamSide, oppSide = oppSide, teamSide
	}
	ts := doc.Get(teamSide)
	os := doc.Get(oppSide)

	thirdRate := 0.0
	if att := ts.Get("ThirdDownAttempts").Float(); att > 0 {
		thirdRate = ts.Get("ThirdDownConversions").Float() / att
	}
	fourthRate := 0.0
	if att := ts.Get("FourthDownAttempts").Float(); att > 0 {
		fourthRate = ts.Get("FourthDownConversions").Float() / att
	}

	return Game{
		Date:               sched.Get("Date").String(),
		Opponent:           os.Get("Team").String(),
		Home:               home,
		PointsScored:       int(ts.Get("Score").Int()),
		PointsAllowed:      int(os.Get("Score").Int()),
		TotalYards:         int(ts.Get("TotalYards").Int()),
		YardsAllowed:       int(os.Get("TotalYards").Int()),
		PassingYards:       int(ts.Get("PassingYards").Int()),
		RushingYards:       int(ts.Get("RushingYards").Int()),
		Turnovers:          int(ts.Get("Turnovers").Int()),
		ThirdDownRate:      thirdRate,
		FourthDownRate:     fourthRate,
		Sacks:              int(ts.Get("Sacks").Int()),
		Penalties:          int(ts.Get("Penalties").Int()),
		PenaltyYards:       int(ts.Get("PenaltyYards").Int()),
		RedZoneAttempts:    int(ts.Get("RedZoneAttempts").Int()),
		RedZoneConversions: int(ts.Get("RedZoneConversions").Int()),
	}, nil
}

// InjuryReport returns the league injury report filtered to one team.
func (c *Client) InjuryReport(ctx context.Context, team string) ([]Injury, error) {
	code := TeamCode(team)
	body, err := c.get(ctx, c.baseURL+"/stats/json/Injuries")
	if err != nil {
		c.log.Error("fetching injuries", "team", code, "err", err)
		return nil, err
	}

	var injuries []Injury
	gjson.ParseBytes(body).ForEach(func(_, inj gjson.Result) bool {
		if inj.Get("Team").String() != code {
			return true
		}
		injuries = append(injuries, Injury{
			Player:   inj.Get("Name").String(),
			Position: inj.Get("Position").String(),
			Injury:   inj.Get("InjuryDescription").String(),
			Status:   inj.Get("Status").String(),
		})
		return true
	})
	return injuries, nil
}
