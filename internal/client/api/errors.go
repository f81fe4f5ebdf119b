package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error is the rejected result of an API call. StatusCode 0 means the
// request never produced a response (network failure); otherwise the backend
// failure envelope is decoded into Errors and Message.
type Error struct {
	StatusCode int
	// Errors carries the 422 validation envelope: attribute -> messages.
	Errors map[string][]string
	// Message is the high-level failure from {status:{message}}.
	Message string
	// Err is the underlying transport error, when there was no response.
	Err error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("api: request failed: %v", e.Err)
	case e.Message != "":
		return fmt.Sprintf("api: %d: %s", e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("api: unexpected status %d", e.StatusCode)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// IsNetwork reports a failure with no response at all.
func (e *Error) IsNetwork() bool { return e.StatusCode == 0 }

// IsAuthExpired reports a 401; by the time the caller sees it the session
// has already been evicted.
func (e *Error) IsAuthExpired() bool { return e.StatusCode == http.StatusUnauthorized }

// IsValidation reports a 422 with field-level errors.
func (e *Error) IsValidation() bool { return e.StatusCode == http.StatusUnprocessableEntity }

// IsServerFault reports any 5xx.
func (e *Error) IsServerFault() bool { return e.StatusCode >= 500 }

// failureEnvelope matches the backend's two error body shapes.
type failureEnvelope struct {
	Errors map[string][]string `json:"errors"`
	Status struct {
		Message string `json:"message"`
	} `json:"status"`
}

func errorFromResponse(status int, body []byte) *Error {
	e := &Error{StatusCode: status}
	var env failureEnvelope
	if err := json.Unmarshal(body, &env); err == nil {
		e.Errors = env.Errors
		e.Message = env.Status.Message
	}
	return e
}
