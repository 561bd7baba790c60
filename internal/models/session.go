package models

import "time"

// Session provenances.
const (
	ProvenanceBackend = "backend"
	ProvenanceMock    = "mock"
)

// UserMetadata carries profile fields attached to an auth user.
type UserMetadata struct {
	FullName string `json:"full_name,omitempty"`
}

// User is the identity bound to a session.
type User struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	UserMetadata UserMetadata `json:"user_metadata"`
}

// Session is the active identity token. ExpiresAt is in unix milliseconds.
type Session struct {
	User        User   `json:"user"`
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
	Provenance  string `json:"provenance,omitempty"`
}

// Expiry returns ExpiresAt as a time value.
func (s *Session) Expiry() time.Time {
	return time.UnixMilli(s.ExpiresAt).UTC()
}

// IsMock reports whether the session was synthesized locally.
func (s *Session) IsMock() bool {
	return s != nil && s.Provenance == ProvenanceMock
}
