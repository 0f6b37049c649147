// Package tokenstore persists the client session: the opaque bearer
// credential and the cached user profile.
//
// Both values live under the canonical keys common.TokenKey and
// common.ProfileKey. Nothing else in the client names a storage key, so the
// API client, the forced-logout handler and the session always agree on
// where the credential is.
package tokenstore

import "context"

// Store is the persistent session storage.
//
// Token returns "" and Profile returns nil when nothing is stored. Clear is
// idempotent. Implementations are safe for concurrent use.
type Store interface {
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	Profile(ctx context.Context) ([]byte, error)
	// Save writes token and profile together.
	Save(ctx context.Context, token string, profile []byte) error
	Clear(ctx context.Context) error
}
