package gateway

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/naka-gawa/readme-streak/internal/domain"
)

// statusTransport turns every non-2xx response into a domain.TransportError
// carrying the status and the raw body.
type statusTransport struct {
	base http.RoundTripper
}

func (t *statusTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return nil, &domain.TransportError{
		StatusCode: resp.StatusCode,
		Status:     statusText(resp.Status, resp.StatusCode),
		Body:       string(body),
	}
}

// graphQLErrorTransport reports a GraphQL body with a non-empty "errors" array
// as a domain.APIError. Other bodies are passed through untouched.
type graphQLErrorTransport struct {
	base http.RoundTripper
}

func (t *graphQLErrorTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Errors json.RawMessage `json:"errors"`
	}
	if json.Unmarshal(body, &envelope) == nil && hasErrors(envelope.Errors) {
		return nil, &domain.APIError{Errors: string(envelope.Errors)}
	}
	resp.Body = io.NopCloser(bytes.NewReader(body))
	return resp, nil
}

// hasErrors reports whether the raw "errors" field carries anything besides null or [].
func hasErrors(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	return trimmed != "" && trimmed != "null" && trimmed != "[]"
}

// statusText strips the numeric prefix net/http puts on Status ("404 Not Found").
func statusText(status string, code int) string {
	return strings.TrimPrefix(status, strconv.Itoa(code)+" ")
}
