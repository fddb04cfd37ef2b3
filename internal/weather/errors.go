package weather

import (
	"errors"
	"fmt"
)

const (
	networkErrorMessage = "Failed to fetch weather data"
	genericErrorMessage = "Failed to fetch weather"
)

var (
	// ErrFetchFailed is returned for fetch failures that are not network errors,
	// such as an undecodable provider payload.
	ErrFetchFailed = errors.New("failed to fetch weather")

	// ErrNoLocation is returned by RefreshCurrent before any location is known.
	ErrNoLocation = errors.New("no location to refresh")
)

// NetworkError reports a transport failure or a non-success HTTP status from
// the weather provider. StatusCode is zero for transport failures.
type NetworkError struct {
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("weather request failed: status %d", e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("weather request failed: %v", e.Err)
	default:
		return "weather request failed"
	}
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Message returns the user-facing message for a fetch error.
func Message(err error) string {
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return networkErrorMessage
	}
	return genericErrorMessage
}

// normalizeError keeps network errors as they are and folds everything else
// into ErrFetchFailed.
func normalizeError(err error) error {
	var netErr *NetworkError
	if errors.As(err, &netErr) || errors.Is(err, ErrFetchFailed) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrFetchFailed, err)
}
