package weather

import (
	"errors"
	"fmt"
)

// ErrUnauthorized means the provider rejected the configured credential
// (or none was configured at all).
var ErrUnauthorized = errors.New("invalid OpenWeather API key")

// NotFoundError means the provider has no data for the requested city name.
type NotFoundError struct {
	City string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("city not found: %s", e.City)
}

// ProviderError is any non-success provider response other than 401/404.
type ProviderError struct {
	Status int
	Detail string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("weather API error (status %d): %s", e.Status, e.Detail)
}

// TransportError covers network failures, timeouts and malformed
// responses; nothing usable reached us from the provider.
type TransportError struct {
	Detail string
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Detail, e.Err)
	}
	return e.Detail
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Retryable reports whether another attempt against the provider could
// plausibly succeed. Credential and unknown-city failures are terminal.
func Retryable(err error) bool {
	var pe *ProviderError
	var te *TransportError
	return errors.As(err, &pe) || errors.As(err, &te)
}
