package openweather

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/climacrave/internal/weather"
)

var errNoHTTPClient = errors.New("http client not configured")

func newCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
		// 4xx responses do not count against the provider.
		IsSuccessful: func(err error) bool {
			var netErr *weather.NetworkError
			if errors.As(err, &netErr) && netErr.StatusCode >= 400 && netErr.StatusCode < 500 {
				return true
			}
			return err == nil
		},
	})
}

// doRequest executes req exactly once through the circuit breaker. Every
// failure, including an open breaker, comes back as *weather.NetworkError.
// On success the caller owns the response body.
func doRequest(client *http.Client, cb *gobreaker.CircuitBreaker, req *http.Request) (*http.Response, error) {
	if client == nil {
		return nil, &weather.NetworkError{Err: errNoHTTPClient}
	}

	result, err := cb.Execute(func() (interface{}, error) {
		resp, execErr := client.Do(req)
		if execErr != nil {
			return nil, execErr
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			resp.Body.Close()
			return nil, &weather.NetworkError{StatusCode: resp.StatusCode}
		}
		return resp, nil
	})
	if err != nil {
		var netErr *weather.NetworkError
		if errors.As(err, &netErr) {
			return nil, err
		}
		return nil, &weather.NetworkError{Err: err}
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return nil, &weather.NetworkError{Err: fmt.Errorf("unexpected result type from circuit breaker")}
	}
	return resp, nil
}
