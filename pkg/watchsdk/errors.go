package watchsdk

import (
	"fmt"
	"net/http"

	"github.com/forumwatch/threadwatch/pkg/httpx"
)

// Error codes shared by the server handlers and the SDK client.
const (
	ErrorCodeInvalidRequest     = "invalid_request"
	ErrorCodeInvalidCredentials = "invalid_credentials"
	ErrorCodeConflict           = "conflict"
	ErrorCodeCodeMismatch       = "code_mismatch"
	ErrorCodeTooManyAttempts    = "too_many_attempts"
	ErrorCodeCodeNotVerified    = "code_not_verified"
	ErrorCodeNotFound           = "not_found"
	ErrorCodeServerError        = "server_error"
)

// APIError is the JSON error payload for every failed request. It implements
// the error interface and is used both by the server (to write HTTP
// responses) and by the SDK client (to represent errors).
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the machine-readable error code
	Code string `json:"error"`

	// Message is a human-readable description
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	httpx.WriteJSON(w, e.StatusCode, e)
}

// RedirectError is returned by the SDK when the server answered with a
// redirect instead of a page: guards send unauthenticated callers to /login
// and non-admins to /dashboard, and every successful form post redirects.
type RedirectError struct {
	StatusCode int
	Location   string
}

// Error implements the error interface.
func (e *RedirectError) Error() string {
	return fmt.Sprintf("redirected (%d) to %s", e.StatusCode, e.Location)
}
