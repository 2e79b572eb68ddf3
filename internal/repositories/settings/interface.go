// Package settings implements the key/value settings store holding the
// password credential: verification hash, kdf salt, and the set/verified
// timestamps (decimal Unix-seconds strings).
package settings

import "context"

// Well-known setting keys. Hash and salt are always written together; one
// without the other is an inconsistent state.
const (
	KeyPasswordHash   = "password_hash"
	KeyKdfSalt        = "kdf_salt"
	KeyPasswordSetAt  = "password_set_at"
	KeyLastVerifiedAt = "last_verified_at"
)

// Repository is the settings store contract. Get returns
// common.ErrNotFound when the key has never been set.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
