package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/scmclient/internal/common"
)

// ErrNoResponse marks transport failures: the request never got a response.
var ErrNoResponse = errors.New("no response from server")

// ErrMissingData marks a 2xx response whose body lacks the expected record.
var ErrMissingData = errors.New("missing data in response")

// Error is a non-2xx response from the backend.
type Error struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Message is the backend's {"error": ...} text, verbatim when present.
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// IsUnauthorized reports a 401; the session has already been wiped.
func (e *Error) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

func (e *Error) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// Is lets errors.Is match a 401 against common.ErrorUnauthorized and a 404
// against common.ErrorNotFound.
func (e *Error) Is(target error) bool {
	switch target {
	case common.ErrorUnauthorized:
		return e.IsUnauthorized()
	case common.ErrorNotFound:
		return e.IsNotFound()
	}
	return false
}

// IsValidationError reports a 400 or 422 raised by backend validation.
func (e *Error) IsValidationError() bool {
	return e.StatusCode == http.StatusBadRequest || e.StatusCode == http.StatusUnprocessableEntity
}

// parseError builds an *Error from an error response body. The backend
// answers {"error": "..."}; {"message": "..."} is accepted as a fallback.
func parseError(statusCode int, body []byte) error {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	msg := http.StatusText(statusCode)
	if err := json.Unmarshal(body, &payload); err == nil {
		switch {
		case payload.Error != "":
			msg = payload.Error
		case payload.Message != "":
			msg = payload.Message
		}
	}
	return &Error{StatusCode: statusCode, Message: msg}
}

// AsError unwraps an *Error from err.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// Message turns err into the text shown to the user: the backend message
// verbatim, "no response from server" for transport failures, fallback for
// anything else.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	if apiErr, ok := AsError(err); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, ErrNoResponse) {
		return ErrNoResponse.Error()
	}
	return fallback
}
