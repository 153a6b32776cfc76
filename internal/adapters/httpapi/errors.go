package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrTimeout        = errors.New("request timed out")
	ErrUnknownRequest = errors.New("unknown request error")
	// ErrResponseTooLarge is returned when a body exceeds the configured cap.
	ErrResponseTooLarge = errors.New("response body too large")
)

// HTTPError is returned for every non-2xx response that is not recovered by
// a token refresh.
type HTTPError struct {
	StatusCode int
	Status     string
	Message    string
	Body       []byte
}

func (e *HTTPError) Error() string {
	return e.Message
}

// StatusCode reports the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}

func newHTTPError(statusCode int, body []byte) *HTTPError {
	status := http.StatusText(statusCode)
	message := errorMessage(body)
	if message == "" {
		message = fmt.Sprintf("HTTP %d: %s", statusCode, status)
	}

	return &HTTPError{
		StatusCode: statusCode,
		Status:     status,
		Message:    message,
		Body:       body,
	}
}

type errorBody struct {
	Message json.RawMessage `json:"message"`
	Error   json.RawMessage `json:"error"`
}

func errorMessage(body []byte) string {
	var payload errorBody
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}

	if message := flattenMessage(payload.Message); message != "" {
		return message
	}
	return flattenMessage(payload.Error)
}

// flattenMessage accepts a string or a list of strings, the latter being what
// validation pipes send back.
func flattenMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return strings.TrimSpace(single)
	}

	var many []string
	if err := json.Unmarshal(raw, &many); err == nil {
		parts := make([]string, 0, len(many))
		for _, item := range many {
			if item = strings.TrimSpace(item); item != "" {
				parts = append(parts, item)
			}
		}
		return strings.Join(parts, "; ")
	}

	return ""
}
