package openweather

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/sony/gobreaker"

	"github.com/i474232898/climacrave/internal/weather"
)

// DefaultBaseURL is the OpenWeatherMap 2.5 API root.
const DefaultBaseURL = "https://api.openweathermap.org/data/2.5"

var errNoConditions = errors.New("weather payload has no conditions")

var _ weather.Fetcher = (*Client)(nil)

// Client fetches current weather from OpenWeatherMap. Each call is a single
// round trip; nothing is cached.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	circuit    *gobreaker.CircuitBreaker
	now        func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithClock overrides the clock used to derive the season.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// New creates a Client. An empty apiKey is allowed; the provider will reject
// the request and the call fails with a NetworkError.
func New(client *http.Client, baseURL, apiKey string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
		circuit:    newCircuitBreaker("openweather"),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchByCoordinates returns the current weather at lat/lon.
func (c *Client) FetchByCoordinates(ctx context.Context, lat, lon float64) (weather.Snapshot, error) {
	values := url.Values{}
	values.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	return c.fetch(ctx, values)
}

// FetchByCity returns the current weather for a city name. Unknown cities
// come back from the provider as 404 and surface as a NetworkError.
func (c *Client) FetchByCity(ctx context.Context, city string) (weather.Snapshot, error) {
	values := url.Values{}
	values.Set("q", city)
	return c.fetch(ctx, values)
}

type currentPayload struct {
	Name string `json:"name"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		ID          int    `json:"id"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Sys struct {
		Country string `json:"country"`
	} `json:"sys"`
}

func (c *Client) fetch(ctx context.Context, values url.Values) (weather.Snapshot, error) {
	values.Set("appid", c.apiKey)
	values.Set("units", "metric")

	u := fmt.Sprintf("%s/weather?%s", c.baseURL, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return weather.Snapshot{}, err
	}

	resp, err := doRequest(c.httpClient, c.circuit, req)
	if err != nil {
		return weather.Snapshot{}, err
	}
	defer resp.Body.Close()

	var payload currentPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Snapshot{}, fmt.Errorf("decode weather payload: %w", err)
	}

	return c.toSnapshot(payload)
}

func (c *Client) toSnapshot(p currentPayload) (weather.Snapshot, error) {
	if len(p.Weather) == 0 {
		return weather.Snapshot{}, errNoConditions
	}
	now := c.now()
	w := p.Weather[0]

	return weather.Snapshot{
		Temperature: roundHalfUp(p.Main.Temp),
		Condition:   weather.ClassifyCondition(w.ID),
		Humidity:    roundHalfUp(p.Main.Humidity),
		Season:      weather.SeasonForMonth(int(now.Month())),
		Description: w.Description,
		Icon:        w.Icon,
		Location:    fmt.Sprintf("%s, %s", p.Name, p.Sys.Country),
		FetchedAt:   now.UTC(),
	}, nil
}

// roundHalfUp rounds .5 towards positive infinity, so -2.5 becomes -2.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
