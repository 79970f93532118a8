package config

import (
	"crypto/subtle"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// AuthKind names an auth mode.
type AuthKind string

const (
	// AuthDisabled lets every request through.
	AuthDisabled AuthKind = "disabled"
	// AuthBasic requires HTTP basic auth on non-API routes.
	AuthBasic AuthKind = "basic"
)

// AuthMode is the resolved auth setting. User and PasswordHash are set only
// for AuthBasic.
type AuthMode struct {
	Kind         AuthKind
	User         string
	PasswordHash []byte
}

// Enabled reports whether requests must authenticate.
func (m AuthMode) Enabled() bool {
	return m.Kind == AuthBasic
}

// Verify reports whether user and password match the configured credentials.
func (m AuthMode) Verify(user, password string) bool {
	if !m.Enabled() {
		return true
	}
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(m.User)) == 1
	passOK := bcrypt.CompareHashAndPassword(m.PasswordHash, []byte(password)) == nil
	return userOK && passOK
}

// ResolveAuthMode turns the auth section into an AuthMode. It is called once
// at start-up. Basic mode without a user or password is a ConfigurationError;
// credentials alone never switch auth on.
func (c *AppConfig) ResolveAuthMode() (AuthMode, error) {
	a := c.Auth
	switch AuthKind(a.Mode) {
	case "", AuthDisabled:
		if a.Basic.User != "" || a.Basic.PasswordHash != "" || a.Basic.Password != "" {
			log.Warn().Msg("Basic auth credentials are set but auth.mode is disabled; requests are not authenticated")
		}
		return AuthMode{Kind: AuthDisabled}, nil
	case AuthBasic:
	default:
		return AuthMode{}, configurationError("auth", "unsupported auth mode %q", a.Mode)
	}

	if a.Basic.User == "" {
		return AuthMode{}, configurationError("auth", "Missing BASIC_AUTH_USER")
	}

	if a.Basic.PasswordHash != "" {
		hash := []byte(a.Basic.PasswordHash)
		if _, err := bcrypt.Cost(hash); err != nil {
			return AuthMode{}, configurationError("auth", "BASIC_AUTH_PASSWORD_HASH is not a bcrypt hash: %v", err)
		}
		return AuthMode{Kind: AuthBasic, User: a.Basic.User, PasswordHash: hash}, nil
	}

	if a.Basic.Password == "" {
		return AuthMode{}, configurationError("auth", "Missing BASIC_AUTH_PASSWORD_HASH")
	}
	log.Warn().Msg("BASIC_AUTH_PASSWORD is plaintext; hashing it at start-up. Set BASIC_AUTH_PASSWORD_HASH instead")
	hash, err := bcrypt.GenerateFromPassword([]byte(a.Basic.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthMode{}, configurationError("auth", "failed to hash BASIC_AUTH_PASSWORD: %v", err)
	}
	return AuthMode{Kind: AuthBasic, User: a.Basic.User, PasswordHash: hash}, nil
}
