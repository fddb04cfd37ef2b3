package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/i474232898/climacrave/internal/weather"
	"github.com/i474232898/climacrave/internal/weather/openweather"
)

type AppConfig struct {
	OpenWeatherAPIKey  string
	OpenWeatherBaseURL string

	// HTTPTimeout bounds every outbound weather request.
	HTTPTimeout time.Duration

	// RefreshInterval controls how often the current location is re-fetched (0 = never).
	RefreshInterval time.Duration

	// Startup location. DefaultCoordinates is nil unless both DEFAULT_LAT and
	// DEFAULT_LON are set.
	DefaultCity        string
	DefaultCoordinates *weather.Coordinates

	CatalogPath    string // empty means the embedded catalog
	RecommendLimit int

	Port      string
	LogLevel  string
	LogFormat string
}

// Load reads configuration from environment with sensible defaults.
// A missing .env file is not an error.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = getenvDefault("OPENWEATHER_API_KEY", os.Getenv("WEATHER_API_KEY"))
	cfg.OpenWeatherBaseURL = getenvDefault("OPENWEATHER_BASE_URL", openweather.DefaultBaseURL)

	timeout, err := getenvDuration("HTTP_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: must be positive")
	}
	cfg.HTTPTimeout = timeout

	interval, err := getenvDuration("REFRESH_INTERVAL", "0")
	if err != nil {
		return nil, err
	}
	if interval < 0 {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: must not be negative")
	}
	cfg.RefreshInterval = interval

	cfg.DefaultCity = getenvDefault("DEFAULT_CITY", "New York")

	coords, err := loadDefaultCoordinates()
	if err != nil {
		return nil, err
	}
	cfg.DefaultCoordinates = coords

	cfg.CatalogPath = os.Getenv("CATALOG_PATH")
	cfg.RecommendLimit = getenvInt("RECOMMEND_LIMIT", 12)
	if cfg.RecommendLimit <= 0 {
		return nil, fmt.Errorf("invalid RECOMMEND_LIMIT: must be positive")
	}

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.LogLevel = getenvDefault("LOG_LEVEL", "info")
	cfg.LogFormat = getenvDefault("LOG_FORMAT", "json")

	return cfg, nil
}

func loadDefaultCoordinates() (*weather.Coordinates, error) {
	latStr := os.Getenv("DEFAULT_LAT")
	lonStr := os.Getenv("DEFAULT_LON")
	if latStr == "" && lonStr == "" {
		return nil, nil
	}
	if latStr == "" || lonStr == "" {
		return nil, errors.New("DEFAULT_LAT and DEFAULT_LON must be set together")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil || lat < -90 || lat > 90 {
		return nil, fmt.Errorf("invalid DEFAULT_LAT %q", latStr)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil || lon < -180 || lon > 180 {
		return nil, fmt.Errorf("invalid DEFAULT_LON %q", lonStr)
	}
	return &weather.Coordinates{Lat: lat, Lon: lon}, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
