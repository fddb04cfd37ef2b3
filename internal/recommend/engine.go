// Package recommend ranks, searches and filters the food catalog against the
// current weather. Every function returns a new slice and leaves its input
// untouched.
package recommend

import (
	"cmp"
	"math/rand/v2"
	"slices"

	"github.com/i474232898/climacrave/internal/common"
	"github.com/i474232898/climacrave/internal/food"
	"github.com/i474232898/climacrave/internal/weather"
)

// DefaultLimit is the number of items Recommend returns.
const DefaultLimit = 12

// Score weights.
const (
	coldBonus      = 50
	rainyBonus     = 30
	sunnyBonus     = 30
	cloudyBonus    = 20
	seasonBonus    = 25
	humidityBonus  = 20
	healthyBonus   = 15
	randomSpread   = 10
	coldThreshold  = 10 // degrees C, inclusive
	humidThreshold = 70 // percent, exclusive
	dryThreshold   = 40 // percent, exclusive
)

// RandFunc returns a pseudo-random value in [0, 1). It must be safe for
// concurrent use.
type RandFunc func() float64

// Engine scores catalog items against a weather snapshot.
type Engine struct {
	limit int
	rand  RandFunc
}

// Option configures an Engine.
type Option func(*Engine)

// WithLimit sets how many items Recommend returns. Non-positive values keep
// DefaultLimit.
func WithLimit(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.limit = n
		}
	}
}

// WithRand replaces the source of the random score term.
func WithRand(r RandFunc) Option {
	return func(e *Engine) {
		if r != nil {
			e.rand = r
		}
	}
}

// New creates an Engine. By default the random term comes from the
// process-wide math/rand/v2 source.
func New(opts ...Option) *Engine {
	e := &Engine{
		limit: DefaultLimit,
		rand:  rand.Float64,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Limit returns the maximum number of items Recommend returns.
func (e *Engine) Limit() int {
	return e.limit
}

// Score returns the deterministic part of an item's relevance for w.
//
// Salads and ice cream receive the cold-weather bonus along with items
// tagged cold or winter.
func Score(item food.Item, w weather.Snapshot) float64 {
	tags := item.WeatherConditions
	score := 0

	if w.Temperature <= coldThreshold {
		if common.HasAny(tags, "cold", "winter") ||
			item.Category == food.CategorySalads ||
			item.Category == food.CategoryIceCream {
			score += coldBonus
		}
	}

	if w.Condition == weather.ConditionRainy && common.HasAny(tags, string(weather.ConditionRainy)) {
		score += rainyBonus
	}
	if w.Condition == weather.ConditionSunny && common.HasAny(tags, string(weather.ConditionSunny)) {
		score += sunnyBonus
	}
	if w.Condition == weather.ConditionCloudy && common.HasAny(tags, string(weather.ConditionCloudy)) {
		score += cloudyBonus
	}

	if w.Season != "" && common.HasAny(tags, string(w.Season)) {
		score += seasonBonus
	}

	if w.Humidity > humidThreshold && common.HasAny(tags, "humid") {
		score += humidityBonus
	}
	if w.Humidity < dryThreshold && common.HasAny(tags, "dry") {
		score += humidityBonus
	}

	if item.IsHealthy {
		score += healthyBonus
	}

	return float64(score)
}

// Rank scores every item, adds the random term and sorts by descending score.
// Equal scores keep catalog order.
func (e *Engine) Rank(items []food.Item, w weather.Snapshot) []food.ScoredItem {
	scored := make([]food.ScoredItem, len(items))
	for i, item := range items {
		scored[i] = food.ScoredItem{
			Item:  item,
			Score: Score(item, w) + e.rand()*randomSpread,
		}
	}

	slices.SortStableFunc(scored, func(a, b food.ScoredItem) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return scored
}

// Recommend returns at most Limit items ranked for w.
func (e *Engine) Recommend(items []food.Item, w weather.Snapshot) []food.Item {
	ranked := e.Rank(items, w)
	if len(ranked) > e.limit {
		ranked = ranked[:e.limit]
	}

	out := make([]food.Item, len(ranked))
	for i, s := range ranked {
		out[i] = s.Item
	}
	return out
}

// Search returns the items whose name, description, category or any
// ingredient contains query, ignoring case. Order is preserved and an empty
// query matches everything.
func Search(items []food.Item, query string) []food.Item {
	out := make([]food.Item, 0, len(items))
	for _, item := range items {
		if matches(item, query) {
			out = append(out, item)
		}
	}
	return out
}

func matches(item food.Item, query string) bool {
	if common.ContainsFold(item.Name, query) ||
		common.ContainsFold(item.Description, query) ||
		common.ContainsFold(string(item.Category), query) {
		return true
	}
	for _, ingredient := range item.Ingredients {
		if common.ContainsFold(ingredient, query) {
			return true
		}
	}
	return false
}

// Filter returns the items matching f, in order.
func Filter(items []food.Item, f food.Filter) []food.Item {
	out := make([]food.Item, 0, len(items))
	for _, item := range items {
		if f.Match(item) {
			out = append(out, item)
		}
	}
	return out
}
