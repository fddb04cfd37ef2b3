package weather

import (
	"context"
)

// Fetcher retrieves the current weather from a provider.
type Fetcher interface {
	FetchByCoordinates(ctx context.Context, lat, lon float64) (Snapshot, error)
	FetchByCity(ctx context.Context, city string) (Snapshot, error)
}

// Store holds the current snapshot and fetch status.
type Store interface {
	BeginFetch()
	CompleteFetch(snapshot Snapshot, loc Location)
	FailFetch(message string)
	GetLatest() (Snapshot, error)
	State() State
	LastLocation() (Location, bool)
}
