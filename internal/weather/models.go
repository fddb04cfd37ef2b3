package weather

import (
	"fmt"
	"time"
)

// Condition represents a normalized high-level weather condition.
type Condition string

const (
	ConditionClear  Condition = "clear"
	ConditionCloudy Condition = "cloudy"
	ConditionRainy  Condition = "rainy"
	ConditionSnowy  Condition = "snowy"
	ConditionStormy Condition = "stormy"
	ConditionFoggy  Condition = "foggy"

	// ConditionSunny is never produced by ClassifyCondition. Catalog tags and
	// the scoring rules still refer to it.
	ConditionSunny Condition = "sunny"

	// ConditionWindy is the display fallback for labels outside the closed set.
	ConditionWindy Condition = "windy"
)

// Known reports whether c belongs to the closed set of classified labels.
func (c Condition) Known() bool {
	switch c {
	case ConditionClear, ConditionCloudy, ConditionRainy, ConditionSnowy, ConditionStormy, ConditionFoggy:
		return true
	}
	return false
}

// Display returns the label used when rendering c, falling back to windy.
func (c Condition) Display() Condition {
	if c.Known() {
		return c
	}
	return ConditionWindy
}

// Season is derived from the calendar month.
type Season string

const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonAutumn Season = "autumn"
	SeasonWinter Season = "winter"
)

// Coordinates is a latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Location identifies what to fetch weather for: coordinates when present,
// otherwise a city name.
type Location struct {
	City        string       `json:"city,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// Key returns a printable key for logs.
func (l Location) Key() string {
	if l.Coordinates != nil {
		return fmt.Sprintf("%g,%g", l.Coordinates.Lat, l.Coordinates.Lon)
	}
	return l.City
}

// Snapshot is a single point-in-time weather reading. A new snapshot replaces
// the previous one; no history is kept.
type Snapshot struct {
	Temperature int       `json:"temperature"` // degrees Celsius, rounded
	Condition   Condition `json:"condition"`
	Humidity    int       `json:"humidity"` // percent
	Season      Season    `json:"season"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Location    string    `json:"location"`
	FetchedAt   time.Time `json:"fetched_at"` // always UTC
}

// State is the presentation view of the current weather: the last good
// snapshot (if any), whether a fetch is outstanding, and the last error.
type State struct {
	Weather *Snapshot `json:"weather"`
	Loading bool      `json:"loading"`
	Error   string    `json:"error,omitempty"`
}
