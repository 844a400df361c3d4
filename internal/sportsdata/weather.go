package sportsdata

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"gameday/internal/logging"
)

// WeatherClient fetches game-day forecasts from an OpenWeather-style API:
// the venue city is geocoded, then the forecast entry nearest the game date
// is reduced to the fields the analysis cares about.
type WeatherClient struct {
	baseURL string
	apiKey  string
	hc      *http.Client
	cache   *ttlCache
	log     *logging.Logger
}

// NewWeatherClient builds a weather client. A nil logger disables logging.
func NewWeatherClient(baseURL, apiKey string, cacheTTL time.Duration, log *logging.Logger) *WeatherClient {
	if log == nil {
		log = logging.NewNop()
	}
	return &WeatherClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		hc:      &http.Client{Timeout: 30 * time.Second},
		cache:   newTTLCache(cacheTTL),
		log:     log.With("component", "weather"),
	}
}

func (w *WeatherClient) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := w.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: unexpected status %s", rawURL, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// GameForecast returns the forecast for the given city on the given game
// date (YYYY-MM-DD). It fails if the city cannot be geocoded or no forecast
// entry falls within a day of the game.
func (w *WeatherClient) GameForecast(ctx context.Context, city, gameDate string) (Forecast, error) {
	cacheKey := "weather_" + city + "_" + gameDate
	if v, ok := w.cache.get(cacheKey); ok {
		return v.(Forecast), nil
	}

	gameTime, err := time.Parse("2006-01-02", gameDate)
	if err != nil {
		return Forecast{}, fmt.Errorf("invalid game date %q: %w", gameDate, err)
	}

	geoURL := fmt.Sprintf("%s/geo/1.0/direct?q=%s&limit=1&appid=%s",
		w.baseURL, url.QueryEscape(city+",US"), url.QueryEscape(w.apiKey))
	body, err := w.get(ctx, geoURL)
	if err != nil {
		w.log.Error("geocoding venue", "city", city, "err", err)
		return Forecast{}, err
	}
	loc := gjson.ParseBytes(body).Get("0")
	if !loc.Exists() {
		return Forecast{}, fmt.Errorf("location not found: %s", city)
	}

	fcURL := fmt.Sprintf("%s/data/2.5/forecast?lat=%v&lon=%v&appid=%s&units=imperial",
		w.baseURL, loc.Get("lat").Float(), loc.Get("lon").Float(), url.QueryEscape(w.apiKey))
	body, err = w.get(ctx, fcURL)
	if err != nil {
		w.log.Error("fetching forecast", "city", city, "err", err)
		return Forecast{}, err
	}

	var entry gjson.Result
	found := false
	gjson.ParseBytes(body).Get("list").ForEach(func(_, f gjson.Result) bool {
		at := time.Unix(f.Get("dt").Int(), 0)
		if at.Sub(gameTime).Abs() < 24*time.Hour {
			entry = f
			found = true
			return false
		}
		return true
	})
	if !found {
		return Forecast{}, fmt.Errorf("no forecast available for date: %s", gameDate)
	}

	fc := Forecast{
		Temperature:         int(math.Round(entry.Get("main.temp").Float())),
		FeelsLike:           int(math.Round(entry.Get("main.feels_like").Float())),
		Conditions:          entry.Get("weather.0.main").String(),
		Description:         entry.Get("weather.0.description").String(),
		WindSpeed:           int(math.Round(entry.Get("wind.speed").Float())),
		Humidity:            int(entry.Get("main.humidity").Int()),
		PrecipitationChance: int(math.Round(entry.Get("pop").Float() * 100)),
	}
	w.cache.set(cacheKey, fc)
	return fc, nil
}
