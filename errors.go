package wit

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the conversation loop. Callers should
// match them with errors.Is.
var (
	// ErrNoActions is returned by RunActions when the client was built
	// without WithActions.
	ErrNoActions = errors.New("wit: no actions configured (pass WithActions to New)")

	// ErrStepLimit is returned when a conversation exceeds its step
	// budget without reaching a stop response.
	ErrStepLimit = errors.New("wit: max conversation steps reached")

	// ErrMissingResponseType is returned when a converse response
	// carries no type field.
	ErrMissingResponseType = errors.New("wit: converse response has no type")

	// ErrConverseRefused is returned when the API answers a converse
	// step with an error-typed response.
	ErrConverseRefused = errors.New("wit: converse returned an error response")
)

// UnknownActionError is returned when a converse response dispatches to
// an action name with no registered handler, or requests a message send
// while no Send handler is configured.
type UnknownActionError struct {
	Action string
}

func (e *UnknownActionError) Error() string {
	return fmt.Sprintf("wit: no handler registered for action %q", e.Action)
}

// UnknownResponseTypeError is returned when a converse response carries
// a type outside the known set (msg, action, stop, error, merge).
type UnknownResponseTypeError struct {
	Type string
}

func (e *UnknownResponseTypeError) Error() string {
	return fmt.Sprintf("wit: unknown converse response type %q", e.Type)
}

// HTTPError is returned when the API answers with a non-200 status.
// Body holds a truncated copy of the response body for diagnostics.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("wit: API error %d: %s", e.StatusCode, e.Body)
}

// APIError is returned when the API answers 200 but the JSON body
// carries an error field (bad token, malformed query, and so on).
type APIError struct {
	Message string
	Code    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("wit: %s (code %s)", e.Message, e.Code)
	}
	return "wit: " + e.Message
}

// SchemaError is returned when a mutating entity payload carries a
// field whose value has the wrong shape.
type SchemaError struct {
	Field string
	Want  string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("wit: field %q must be a %s", e.Field, e.Want)
}
