package httpapi

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/i474232898/climacrave/internal/food"
	"github.com/i474232898/climacrave/internal/recommend"
	"github.com/i474232898/climacrave/internal/store"
	"github.com/i474232898/climacrave/internal/weather"
)

var rainyLondon = weather.Snapshot{
	Temperature: 5,
	Condition:   weather.ConditionRainy,
	Humidity:    80,
	Season:      weather.SeasonWinter,
	Description: "light rain",
	Location:    "London, GB",
}

// stubFetcher knows London and any coordinates; other cities are 404s.
type stubFetcher struct{}

func (stubFetcher) FetchByCoordinates(_ context.Context, lat, lon float64) (weather.Snapshot, error) {
	snap := rainyLondon
	snap.Location = "Somewhere"
	return snap, nil
}

func (stubFetcher) FetchByCity(_ context.Context, city string) (weather.Snapshot, error) {
	if city == "London" {
		return rainyLondon, nil
	}
	return weather.Snapshot{}, &weather.NetworkError{StatusCode: http.StatusNotFound}
}

// blockingFetcher holds every fetch until release is closed.
type blockingFetcher struct {
	started chan struct{}
	release chan struct{}
}

func newBlockingFetcher() *blockingFetcher {
	return &blockingFetcher{started: make(chan struct{}, 1), release: make(chan struct{})}
}

func (f *blockingFetcher) wait() weather.Snapshot {
	f.started <- struct{}{}
	<-f.release
	return rainyLondon
}

func (f *blockingFetcher) FetchByCoordinates(context.Context, float64, float64) (weather.Snapshot, error) {
	return f.wait(), nil
}

func (f *blockingFetcher) FetchByCity(context.Context, string) (weather.Snapshot, error) {
	return f.wait(), nil
}

type testEnv struct {
	app *fiber.App
	svc *weather.Service
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	return newTestEnvWith(t, stubFetcher{})
}

func newTestEnvWith(t *testing.T, fetcher weather.Fetcher) testEnv {
	t.Helper()

	catalog, err := food.DefaultCatalog()
	require.NoError(t, err)

	logger := zaptest.NewLogger(t)
	svc := weather.NewService(fetcher, store.NewMemoryStore(), logger)

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	RegisterRoutes(app, Deps{
		Weather: svc,
		Catalog: catalog,
		Engine:  recommend.New(recommend.WithRand(func() float64 { return 0 })),
		Logger:  logger,
	})
	return testEnv{app: app, svc: svc}
}

func (e testEnv) do(t *testing.T, req *http.Request) (int, []byte) {
	t.Helper()
	resp, err := e.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func (e testEnv) get(t *testing.T, target string) (int, []byte) {
	t.Helper()
	return e.do(t, httptest.NewRequest(http.MethodGet, target, nil))
}

func (e testEnv) post(t *testing.T, target string) (int, []byte) {
	t.Helper()
	return e.do(t, httptest.NewRequest(http.MethodPost, target, nil))
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(body, &v))
	return v
}

type errorBody struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

func TestCategories(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.get(t, "/api/v1/categories")
	require.Equal(t, http.StatusOK, status)

	cats := decode[[]food.CategoryInfo](t, body)
	assert.Equal(t, food.Categories, cats)
}

func TestFoodsListAndFilter(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.get(t, "/api/v1/foods")
	require.Equal(t, http.StatusOK, status)
	all := decode[listResponse](t, body)
	assert.Equal(t, ViewFiltered, all.View)
	assert.Equal(t, 24, all.Count)
	assert.Equal(t, "1", all.Items[0].ID)

	status, body = env.get(t, "/api/v1/foods?category=soups&healthy_only=true")
	require.Equal(t, http.StatusOK, status)
	soups := decode[listResponse](t, body)
	require.NotEmpty(t, soups.Items)
	for _, it := range soups.Items {
		assert.Equal(t, food.CategorySoups, it.Category)
		assert.True(t, it.IsHealthy)
	}

	status, body = env.get(t, "/api/v1/foods?max_prep_time=15")
	require.Equal(t, http.StatusOK, status)
	for _, it := range decode[listResponse](t, body).Items {
		assert.LessOrEqual(t, it.PrepTime, 15)
	}
}

func TestFoodsFilterValidation(t *testing.T) {
	env := newTestEnv(t)

	for _, target := range []string{
		"/api/v1/foods?category=pasta",
		"/api/v1/foods?difficulty=extreme",
		"/api/v1/foods?max_calories=lots",
		"/api/v1/foods?max_calories=-1",
		"/api/v1/foods/search?q=soup&category=pasta",
	} {
		status, body := env.get(t, target)
		assert.Equal(t, http.StatusBadRequest, status, target)
		assert.True(t, decode[errorBody](t, body).Error, target)
	}
}

func TestSearch(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.get(t, "/api/v1/foods/search?q=PIZZA")
	require.Equal(t, http.StatusOK, status)
	res := decode[listResponse](t, body)
	assert.Equal(t, ViewFiltered, res.View)

	ids := make([]string, 0, len(res.Items))
	for _, it := range res.Items {
		ids = append(ids, it.ID)
	}
	assert.Contains(t, ids, "13")

	status, body = env.get(t, "/api/v1/foods/search")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 24, decode[listResponse](t, body).Count)

	for _, blank := range []string{"%20", "%20%20", "%09"} {
		status, body = env.get(t, "/api/v1/foods/search?q="+blank)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, 24, decode[listResponse](t, body).Count, "q=%s", blank)
	}

	status, body = env.get(t, "/api/v1/foods/search?q=%20&category=soups")
	require.Equal(t, http.StatusOK, status)
	for _, it := range decode[listResponse](t, body).Items {
		assert.Equal(t, food.CategorySoups, it.Category)
	}

	status, body = env.get(t, "/api/v1/foods/search?q=zzzz-no-such-food")
	require.Equal(t, http.StatusOK, status)
	empty := decode[listResponse](t, body)
	assert.Zero(t, empty.Count)
	assert.NotNil(t, empty.Items)
}

func TestFoodByID(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.get(t, "/api/v1/foods/13")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Pizza Margherita", decode[food.Item](t, body).Name)

	status, _ = env.get(t, "/api/v1/foods/999")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestWeatherBeforeFirstFetch(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.get(t, "/api/v1/weather/current")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, noWeatherMessage, decode[errorBody](t, body).Message)

	status, _ = env.get(t, "/api/v1/foods/recommendations")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestWeatherWhileFirstFetchIsLoading(t *testing.T) {
	f := newBlockingFetcher()
	env := newTestEnvWith(t, f)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = env.svc.Bootstrap(context.Background(), nil, "London")
	}()
	<-f.started

	status, body := env.get(t, "/api/v1/weather/current")
	close(f.release)
	<-done

	require.Equal(t, http.StatusOK, status)
	st := decode[weather.State](t, body)
	assert.Nil(t, st.Weather)
	assert.True(t, st.Loading)

	status, body = env.get(t, "/api/v1/weather/current")
	require.Equal(t, http.StatusOK, status)
	st = decode[weather.State](t, body)
	require.NotNil(t, st.Weather)
	assert.False(t, st.Loading)
}

func TestChangeLocationAndRecommend(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.post(t, "/api/v1/weather/location?city=London")
	require.Equal(t, http.StatusOK, status)
	st := decode[weather.State](t, body)
	require.NotNil(t, st.Weather)
	assert.Equal(t, "London, GB", st.Weather.Location)
	assert.False(t, st.Loading)

	status, body = env.get(t, "/api/v1/weather/current")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "London, GB", decode[weather.State](t, body).Weather.Location)

	status, body = env.get(t, "/api/v1/foods/recommendations")
	require.Equal(t, http.StatusOK, status)
	rec := decode[listResponse](t, body)
	assert.Equal(t, ViewRecommended, rec.View)
	assert.Equal(t, "Perfect for 5°C rainy weather", rec.Heading)
	assert.Equal(t, recommend.DefaultLimit, rec.Count)
	require.NotNil(t, rec.Weather)
	assert.Equal(t, weather.ConditionRainy, rec.Weather.Condition)

	seen := map[string]bool{}
	for _, it := range rec.Items {
		assert.False(t, seen[it.ID])
		seen[it.ID] = true
	}
}

func TestChangeLocationByCoordinatesBody(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/weather/location", strings.NewReader(`{"lat":51.5,"lon":-0.12}`))
	req.Header.Set("Content-Type", "application/json")

	status, body := env.do(t, req)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Somewhere", decode[weather.State](t, body).Weather.Location)
}

func TestChangeLocationFailureKeepsPreviousWeather(t *testing.T) {
	env := newTestEnv(t)

	status, _ := env.post(t, "/api/v1/weather/location?city=London")
	require.Equal(t, http.StatusOK, status)

	status, body := env.post(t, "/api/v1/weather/location?city=Atlantis")
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, "Failed to fetch weather data", decode[errorBody](t, body).Message)

	status, body = env.get(t, "/api/v1/weather/current")
	require.Equal(t, http.StatusOK, status)
	st := decode[weather.State](t, body)
	assert.Equal(t, "London, GB", st.Weather.Location)
	assert.Equal(t, "Failed to fetch weather data", st.Error)
}

func TestChangeLocationValidation(t *testing.T) {
	env := newTestEnv(t)

	for _, target := range []string{
		"/api/v1/weather/location",
		"/api/v1/weather/location?lat=10",
		"/api/v1/weather/location?lat=north&lon=0",
		"/api/v1/weather/location?lat=95&lon=0",
		"/api/v1/weather/location?lat=0&lon=200",
	} {
		status, _ := env.post(t, target)
		assert.Equal(t, http.StatusBadRequest, status, target)
	}

	assert.Nil(t, env.svc.State().Weather)
}
