package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WeatherFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "climacrave_weather_fetches_total",
			Help: "Total number of weather fetches by lookup kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	WeatherFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "climacrave_weather_fetch_duration_seconds",
			Help:    "Duration of weather provider round trips in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)

	Recommendations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "climacrave_recommendations_total",
			Help: "Total number of recommendation lists computed",
		},
	)

	FoodQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "climacrave_food_queries_total",
			Help: "Total number of catalog search and filter requests",
		},
		[]string{"kind"},
	)

	CatalogItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "climacrave_catalog_items",
			Help: "Number of food items in the loaded catalog",
		},
	)
)

// Outcome labels for WeatherFetches.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)
