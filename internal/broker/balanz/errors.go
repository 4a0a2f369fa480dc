// Package balanz provides a client for the Balanz clientes REST API.
package balanz

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrAuthInit indicates the nonce request to auth/init failed.
	ErrAuthInit = errors.New("auth init failed")

	// ErrAuthLogin indicates the credentialed login to auth/login failed.
	ErrAuthLogin = errors.New("auth login failed")

	// ErrNotAuthenticated indicates a request was made before Login.
	ErrNotAuthenticated = errors.New("not authenticated - call Login first")
)

// RequestError is a non-200 response from an authenticated endpoint.
// It carries the raw response body for diagnostics.
type RequestError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Body)
}

// isAuthFailure reports whether err is a 401 from the broker.
func isAuthFailure(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr) && reqErr.StatusCode == http.StatusUnauthorized
}
