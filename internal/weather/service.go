package weather

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/i474232898/climacrave/internal/metrics"
)

const (
	kindCoordinates = "coordinates"
	kindCity        = "city"
)

// Service fetches the current weather and keeps it in the store.
// Concurrent refreshes are not coordinated: whichever completes last wins.
type Service struct {
	fetcher Fetcher
	store   Store
	logger  *zap.Logger

	mu       sync.Mutex
	fallback *Location // default city registered by Bootstrap
}

// NewService creates a new Service.
func NewService(fetcher Fetcher, store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		fetcher: fetcher,
		store:   store,
		logger:  logger.Named("weather"),
	}
}

// Bootstrap performs the startup fetch. With coordinates it fetches by
// coordinates and reports any error; without them it falls back to the
// default city.
func (s *Service) Bootstrap(ctx context.Context, coords *Coordinates, defaultCity string) (Snapshot, error) {
	s.mu.Lock()
	s.fallback = &Location{City: defaultCity}
	s.mu.Unlock()

	if coords != nil {
		return s.RefreshByCoordinates(ctx, coords.Lat, coords.Lon)
	}

	s.logger.Info("no coordinates configured; using default city", zap.String("city", defaultCity))
	return s.RefreshByCity(ctx, defaultCity)
}

// RefreshByCoordinates fetches the weather at lat/lon and makes it current.
func (s *Service) RefreshByCoordinates(ctx context.Context, lat, lon float64) (Snapshot, error) {
	loc := Location{Coordinates: &Coordinates{Lat: lat, Lon: lon}}
	return s.refresh(ctx, loc, kindCoordinates, func(ctx context.Context) (Snapshot, error) {
		return s.fetcher.FetchByCoordinates(ctx, lat, lon)
	})
}

// RefreshByCity fetches the weather for a city and makes it current.
func (s *Service) RefreshByCity(ctx context.Context, city string) (Snapshot, error) {
	loc := Location{City: city}
	return s.refresh(ctx, loc, kindCity, func(ctx context.Context) (Snapshot, error) {
		return s.fetcher.FetchByCity(ctx, city)
	})
}

// RefreshCurrent re-fetches the last successfully fetched location, or the
// Bootstrap default city if nothing has succeeded yet.
func (s *Service) RefreshCurrent(ctx context.Context) (Snapshot, error) {
	loc, ok := s.store.LastLocation()
	if !ok {
		s.mu.Lock()
		fallback := s.fallback
		s.mu.Unlock()

		if fallback == nil {
			return Snapshot{}, ErrNoLocation
		}
		loc = *fallback
	}
	if loc.Coordinates != nil {
		return s.RefreshByCoordinates(ctx, loc.Coordinates.Lat, loc.Coordinates.Lon)
	}
	return s.RefreshByCity(ctx, loc.City)
}

// Current returns the current snapshot or the store's not-found error.
func (s *Service) Current() (Snapshot, error) {
	return s.store.GetLatest()
}

// State returns the current weather, loading flag and last error message.
func (s *Service) State() State {
	return s.store.State()
}

func (s *Service) refresh(
	ctx context.Context,
	loc Location,
	kind string,
	fetch func(ctx context.Context) (Snapshot, error),
) (Snapshot, error) {
	s.store.BeginFetch()

	start := time.Now()
	snap, err := fetch(ctx)
	metrics.WeatherFetchDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())

	if err != nil {
		err = normalizeError(err)
		metrics.WeatherFetches.WithLabelValues(kind, metrics.OutcomeFailure).Inc()
		s.logger.Warn("weather fetch failed; keeping previous snapshot",
			zap.String("location", loc.Key()),
			zap.Error(err),
		)
		s.store.FailFetch(Message(err))
		return Snapshot{}, err
	}

	metrics.WeatherFetches.WithLabelValues(kind, metrics.OutcomeSuccess).Inc()
	s.store.CompleteFetch(snap, loc)

	s.logger.Debug("weather updated",
		zap.String("location", snap.Location),
		zap.Int("temperature", snap.Temperature),
		zap.String("condition", string(snap.Condition)),
		zap.String("season", string(snap.Season)),
	)
	return snap, nil
}
