package clients

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrNotFound is returned for any 404 from the remote API.
var ErrNotFound = errors.New("resource not found")

// APIError is a non-2xx answer other than 404.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api returned status %d: %s", e.Status, e.Message)
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// newAPIError builds an error from a failed response body. The server
// message wins over the fallback when present.
func newAPIError(status int, body []byte, fallback string) error {
	if status == http.StatusNotFound {
		return ErrNotFound
	}
	msg := fallback
	var eb errorBody
	if len(body) > 0 && json.Unmarshal(body, &eb) == nil {
		switch {
		case strings.TrimSpace(eb.Message) != "":
			msg = eb.Message
		case strings.TrimSpace(eb.Error) != "":
			msg = eb.Error
		}
	}
	return &APIError{Status: status, Message: msg}
}

// Message extracts the text worth showing to a user.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
