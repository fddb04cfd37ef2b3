package httpapi

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/i474232898/climacrave/internal/food"
	"github.com/i474232898/climacrave/internal/metrics"
	"github.com/i474232898/climacrave/internal/recommend"
	"github.com/i474232898/climacrave/internal/weather"
)

var validate = validator.New()

// View modes reported with list responses.
const (
	ViewRecommended = "recommended"
	ViewFiltered    = "filtered"
)

const noWeatherMessage = "no weather data available"

// Deps are the collaborators the HTTP handlers need.
type Deps struct {
	Weather *weather.Service
	Catalog *food.Catalog
	Engine  *recommend.Engine
	Logger  *zap.Logger
}

type listResponse struct {
	View    string            `json:"view"`
	Heading string            `json:"heading,omitempty"`
	Weather *weather.Snapshot `json:"weather,omitempty"`
	Count   int               `json:"count"`
	Items   []food.Item       `json:"items"`
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("http")

	v1 := app.Group("/api/v1")

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		st := deps.Weather.State()
		if st.Weather == nil && !st.Loading {
			msg := noWeatherMessage
			if st.Error != "" {
				msg = st.Error
			}
			return fiber.NewError(fiber.StatusNotFound, msg)
		}
		return c.JSON(st)
	})

	v1.Post("/weather/location", func(c *fiber.Ctx) error {
		var req locationRequest
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		var err error
		if req.Lat != nil {
			_, err = deps.Weather.RefreshByCoordinates(c.UserContext(), *req.Lat, *req.Lon)
		} else {
			_, err = deps.Weather.RefreshByCity(c.UserContext(), req.City)
		}
		if err != nil {
			logger.Info("location change failed", zap.Error(err))
			return fiber.NewError(fiber.StatusBadGateway, weather.Message(err))
		}

		return c.JSON(deps.Weather.State())
	})

	v1.Get("/foods", func(c *fiber.Ctx) error {
		f, err := parseFilterQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		metrics.FoodQueries.WithLabelValues("filter").Inc()
		return c.JSON(newList(ViewFiltered, recommend.Filter(deps.Catalog.Items(), f)))
	})

	v1.Get("/foods/search", func(c *fiber.Ctx) error {
		f, err := parseFilterQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		metrics.FoodQueries.WithLabelValues("search").Inc()
		items := deps.Catalog.Items()
		if q := c.Query("q"); strings.TrimSpace(q) != "" {
			items = recommend.Search(items, q)
		}
		return c.JSON(newList(ViewFiltered, recommend.Filter(items, f)))
	})

	v1.Get("/foods/recommendations", func(c *fiber.Ctx) error {
		snap, err := deps.Weather.Current()
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, noWeatherMessage)
		}

		items := deps.Engine.Recommend(deps.Catalog.Items(), snap)
		metrics.Recommendations.Inc()

		resp := newList(ViewRecommended, items)
		resp.Heading = Heading(snap)
		resp.Weather = &snap
		return c.JSON(resp)
	})

	v1.Get("/foods/:id", func(c *fiber.Ctx) error {
		item, ok := deps.Catalog.Get(c.Params("id"))
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "food item not found")
		}
		return c.JSON(item)
	})

	v1.Get("/categories", func(c *fiber.Ctx) error {
		return c.JSON(food.Categories)
	})
}

// Heading is the title shown above a recommendation list.
func Heading(w weather.Snapshot) string {
	return fmt.Sprintf("Perfect for %d°C %s weather", w.Temperature, w.Condition.Display())
}

func newList(view string, items []food.Item) listResponse {
	return listResponse{View: view, Count: len(items), Items: items}
}

// locationRequest selects a new location either by city or by coordinates.
type locationRequest struct {
	City string   `json:"city"`
	Lat  *float64 `json:"lat" validate:"omitempty,gte=-90,lte=90"`
	Lon  *float64 `json:"lon" validate:"omitempty,gte=-180,lte=180"`
}

func (l *locationRequest) bind(c *fiber.Ctx) error {
	if len(c.Body()) > 0 {
		if err := c.BodyParser(l); err != nil {
			return errors.New("invalid request body")
		}
	} else {
		l.City = c.Query("city")
		lat, err := parseOptionalFloat(c.Query("lat"))
		if err != nil {
			return errors.New("lat must be a number")
		}
		lon, err := parseOptionalFloat(c.Query("lon"))
		if err != nil {
			return errors.New("lon must be a number")
		}
		l.Lat, l.Lon = lat, lon
	}

	if (l.Lat == nil) != (l.Lon == nil) {
		return errors.New("lat and lon must be provided together")
	}
	if l.Lat == nil && l.City == "" {
		return errors.New("city or lat and lon are required")
	}
	return validate.Struct(l)
}

func parseOptionalFloat(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// filterQuery holds the catalog filter query parameters.
type filterQuery struct {
	Category    string `query:"category" validate:"omitempty,oneof=soups salads main_course cold_drinks desserts ice_cream"`
	MaxCalories int    `query:"max_calories" validate:"gte=0"`
	MaxPrepTime int    `query:"max_prep_time" validate:"gte=0"`
	Difficulty  string `query:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	HealthyOnly bool   `query:"healthy_only"`
}

func parseFilterQuery(c *fiber.Ctx) (food.Filter, error) {
	var q filterQuery
	if err := c.QueryParser(&q); err != nil {
		return food.Filter{}, errors.New("invalid filter parameters")
	}
	if err := validate.Struct(q); err != nil {
		return food.Filter{}, err
	}

	return food.Filter{
		Category:    food.Category(q.Category),
		MaxCalories: q.MaxCalories,
		MaxPrepTime: q.MaxPrepTime,
		Difficulty:  food.Difficulty(q.Difficulty),
		HealthyOnly: q.HealthyOnly,
	}, nil
}
