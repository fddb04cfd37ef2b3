package food

// Category groups food items in the catalog.
type Category string

const (
	CategorySoups      Category = "soups"
	CategorySalads     Category = "salads"
	CategoryMainCourse Category = "main_course"
	CategoryColdDrinks Category = "cold_drinks"
	CategoryDesserts   Category = "desserts"
	CategoryIceCream   Category = "ice_cream"
)

// CategoryInfo pairs a category with its display name.
type CategoryInfo struct {
	ID   Category `json:"id"`
	Name string   `json:"name"`
}

// Categories lists every category in display order.
var Categories = []CategoryInfo{
	{ID: CategorySoups, Name: "Soups"},
	{ID: CategorySalads, Name: "Salads"},
	{ID: CategoryMainCourse, Name: "Main Course"},
	{ID: CategoryColdDrinks, Name: "Drinks"},
	{ID: CategoryDesserts, Name: "Desserts"},
	{ID: CategoryIceCream, Name: "Ice Cream"},
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, info := range Categories {
		if info.ID == c {
			return true
		}
	}
	return false
}

// Difficulty is how hard an item is to prepare.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Item is an immutable catalog entry. WeatherConditions holds free-form tags
// such as "cold", "rainy", "summer", "humid" or "dry".
type Item struct {
	ID                string     `json:"id" validate:"required"`
	Name              string     `json:"name" validate:"required"`
	Description       string     `json:"description"`
	Category          Category   `json:"category" validate:"required,oneof=soups salads main_course cold_drinks desserts ice_cream"`
	ImageURL          string     `json:"image_url"`
	WeatherConditions []string   `json:"weather_conditions"`
	IsHealthy         bool       `json:"is_healthy"`
	Calories          int        `json:"calories" validate:"gte=0"`
	PrepTime          int        `json:"prep_time" validate:"gte=0"` // minutes
	Difficulty        Difficulty `json:"difficulty" validate:"required,oneof=easy medium hard"`
	Ingredients       []string   `json:"ingredients"`
	Benefits          []string   `json:"benefits"`
	PriceRange        string     `json:"price_range"`
}

// ScoredItem is an Item annotated with its score for one ranking pass.
type ScoredItem struct {
	Item
	Score float64 `json:"score"`
}

// Filter selects catalog items by attribute. Zero values are ignored.
type Filter struct {
	Category    Category   `json:"category,omitempty"`
	MaxCalories int        `json:"max_calories,omitempty"`
	MaxPrepTime int        `json:"max_prep_time,omitempty"`
	Difficulty  Difficulty `json:"difficulty,omitempty"`
	HealthyOnly bool       `json:"healthy_only,omitempty"`
}

// Match reports whether item satisfies every set field of f.
func (f Filter) Match(item Item) bool {
	if f.Category != "" && item.Category != f.Category {
		return false
	}
	if f.MaxCalories > 0 && item.Calories > f.MaxCalories {
		return false
	}
	if f.MaxPrepTime > 0 && item.PrepTime > f.MaxPrepTime {
		return false
	}
	if f.Difficulty != "" && item.Difficulty != f.Difficulty {
		return false
	}
	if f.HealthyOnly && !item.IsHealthy {
		return false
	}
	return true
}
