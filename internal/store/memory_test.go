package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/climacrave/internal/weather"
)

func TestMemoryStoreEmpty(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.GetLatest()
	assert.ErrorIs(t, err, ErrNotFound)

	st := s.State()
	assert.Nil(t, st.Weather)
	assert.False(t, st.Loading)
	assert.Empty(t, st.Error)
}

func TestMemoryStoreKeepsOnlyLatest(t *testing.T) {
	s := NewMemoryStore()

	s.BeginFetch()
	s.CompleteFetch(weather.Snapshot{Location: "Oslo, NO", Temperature: -3}, weather.Location{City: "Oslo"})
	s.BeginFetch()
	s.CompleteFetch(weather.Snapshot{Location: "Rome, IT", Temperature: 24}, weather.Location{City: "Rome"})

	got, err := s.GetLatest()
	require.NoError(t, err)
	assert.Equal(t, "Rome, IT", got.Location)
	assert.Equal(t, 24, got.Temperature)
}

func TestMemoryStoreFailureRetainsSnapshot(t *testing.T) {
	s := NewMemoryStore()

	s.BeginFetch()
	s.CompleteFetch(weather.Snapshot{Location: "Oslo, NO"}, weather.Location{City: "Oslo"})

	s.BeginFetch()
	assert.True(t, s.State().Loading)
	s.FailFetch("Failed to fetch weather data")

	st := s.State()
	require.NotNil(t, st.Weather)
	assert.Equal(t, "Oslo, NO", st.Weather.Location)
	assert.False(t, st.Loading)
	assert.Equal(t, "Failed to fetch weather data", st.Error)

	// A new fetch clears the previous error.
	s.BeginFetch()
	assert.Empty(t, s.State().Error)
}

func TestMemoryStoreLoadingTracksOverlappingFetches(t *testing.T) {
	s := NewMemoryStore()

	s.BeginFetch()
	s.BeginFetch()
	s.CompleteFetch(weather.Snapshot{Location: "A"}, weather.Location{City: "A"})
	assert.True(t, s.State().Loading)

	s.CompleteFetch(weather.Snapshot{Location: "B"}, weather.Location{City: "B"})
	assert.False(t, s.State().Loading)

	got, err := s.GetLatest()
	require.NoError(t, err)
	assert.Equal(t, "B", got.Location)
}

func TestMemoryStoreStateIsACopy(t *testing.T) {
	s := NewMemoryStore()
	s.CompleteFetch(weather.Snapshot{Location: "Lima, PE"}, weather.Location{City: "Lima"})

	st := s.State()
	st.Weather.Location = "changed"

	got, err := s.GetLatest()
	require.NoError(t, err)
	assert.Equal(t, "Lima, PE", got.Location)
}

func TestMemoryStoreLastLocationFollowsSnapshot(t *testing.T) {
	s := NewMemoryStore()

	_, ok := s.LastLocation()
	assert.False(t, ok)

	s.BeginFetch()
	s.CompleteFetch(weather.Snapshot{Location: "Oslo, NO"}, weather.Location{City: "Oslo"})
	s.BeginFetch()
	s.CompleteFetch(weather.Snapshot{Location: "Somewhere"}, weather.Location{Coordinates: &weather.Coordinates{Lat: 1, Lon: 2}})

	loc, ok := s.LastLocation()
	require.True(t, ok)
	assert.Equal(t, "1,2", loc.Key())

	s.BeginFetch()
	s.FailFetch("Failed to fetch weather data")

	loc, ok = s.LastLocation()
	require.True(t, ok)
	assert.Equal(t, "1,2", loc.Key())
}
