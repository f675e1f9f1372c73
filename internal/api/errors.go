package api

import (
	"errors"
	"net/http"
)

// ErrUnauthorized is returned when a call requires auth and no token is
// present, or when the backend answers 401. The session has already been
// cleared and the redirect hook fired by the time a caller sees it.
var ErrUnauthorized = errors.New("unauthorized")

// Error carries a non-2xx backend response: the message extracted from the
// JSON error body when present, otherwise the HTTP status text.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return http.StatusText(e.Status)
}

// errorBody is the JSON error shape the backends return. Some endpoints use
// "message", others "error".
type errorBody struct {
	Message string `json:"message"`
	Err     string `json:"error"`
}

func (b errorBody) text() string {
	if b.Message != "" {
		return b.Message
	}
	return b.Err
}
