package config

import "errors"

// SessionConfig contains signed-cookie session configuration.
//
// Session payloads are signed (HMAC-SHA256), not encrypted: integrity is
// what prevents a client from forging a session, and confidentiality is
// bounded by the cookie transport attributes (httpOnly, secure, sameSite).
type SessionConfig struct {
	// Secret is the HMAC signing secret for session and transient cookies.
	Secret string `env:"SESSION_SECRET,required"`
}

// Validate checks the session signing secret is usable.
func (s *SessionConfig) Validate() error {
	if s.Secret == "" {
		return errors.New("SESSION_SECRET must not be empty")
	}
	return nil
}
