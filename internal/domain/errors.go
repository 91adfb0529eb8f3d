package domain

import "fmt"

// ConfigError reports a missing credential or a README without its markers.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return "configuration error: " + e.Message
}

// TransportError reports a non-2xx HTTP response from the API.
type TransportError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("GitHub API request failed: %d %s: %s", e.StatusCode, e.Status, e.Body)
}

// APIError reports errors returned in the GraphQL response body.
// Errors holds the serialized "errors" array.
type APIError struct {
	Errors string
}

func (e *APIError) Error() string {
	return "GitHub API returned errors: " + e.Errors
}

// DataError reports a response that lacks the structure we expect.
type DataError struct {
	Message string
}

func (e *DataError) Error() string {
	return "unexpected API data: " + e.Message
}
