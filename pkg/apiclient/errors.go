package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error is a non-2xx response from the API.
type Error struct {
	// Status is the HTTP status code of the response.
	Status int

	// Message is the server "error" field, or "Erro <status>" when the body
	// carried none.
	Message string

	// RequestID is the X-Request-ID sent with the failed request.
	RequestID string
}

// Error implements the error interface. It returns Message verbatim so it
// can be shown to users as-is.
func (e *Error) Error() string {
	return e.Message
}

// Rejected reports whether the API refused the credentials or token.
func (e *Error) Rejected() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

// TransportError is a failure to get any HTTP response at all.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("api unreachable: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsTransport reports whether err (or anything it wraps) is a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// StatusOf returns the HTTP status carried by an *Error in err's chain, or 0.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// parseErrorResponse turns a non-2xx response into an *Error.
func parseErrorResponse(status int, isJSON bool, body []byte, requestID string) *Error {
	msg := fmt.Sprintf("Erro %d", status)

	if isJSON {
		var payload map[string]any
		if err := json.Unmarshal(body, &payload); err == nil {
			if s, ok := payload["error"].(string); ok && s != "" {
				msg = s
			}
		}
	}

	return &Error{Status: status, Message: msg, RequestID: requestID}
}
