// Package common contains shared constants and sentinel errors used across
// the scmclient packages.
package common

// Storage keys of the local session store. They are the only names under
// which the bearer credential and the cached profile are persisted; every
// reader and writer goes through tokenstore, which uses these constants.
const (
	TokenKey   = "token"
	ProfileKey = "user"

	// LegacyTokenKey is the key older clients wrote the credential under.
	// tokenstore migrates it to TokenKey on open.
	LegacyTokenKey = "access_token"
)

// HTTP header names used on outbound API requests.
const (
	AuthorizationHeaderName = "Authorization"
	RequestIDHeaderName     = "X-Request-ID"
	BearerPrefix            = "Bearer "
)
