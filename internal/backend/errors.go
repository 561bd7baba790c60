package backend

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConfigured is returned by every data operation of the mock client.
	ErrNotConfigured = errors.New("Supabase not configured")
	// ErrAuthNotConfigured is returned by the mock client's password sign-in.
	ErrAuthNotConfigured = errors.New("Not configured")
	// ErrNoSession is returned by calls that need a signed-in user.
	ErrNoSession = errors.New("auth session missing")
)

// APIError is an error response decoded from the backend.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Hint    string `json:"hint,omitempty"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (code %s, status %d)", e.Message, e.Code, e.Status)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}
