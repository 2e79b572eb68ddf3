// Package keyringx caches the derived master key in the operating system's
// secret store (Credential Manager, Keychain or libsecret). It is the only
// place the key touches durable storage; the absence of the entry is the
// authoritative "locked" signal.
package keyringx

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/dmitrijs2005/tracediary/internal/common"
	"github.com/dmitrijs2005/tracediary/internal/cryptox"
)

// account names the single secret entry within the service namespace.
const account = "master_key"

// Cache stores and retrieves the master key. Implementations must treat a
// missing entry as (nil, nil) from Load, never as an error: that is how the
// rest of the application recognizes the locked state.
type Cache interface {
	Store(key []byte) error
	Load() ([]byte, error)
	Clear() error
}

// OSCache is a Cache backed by the OS secret store. A single named entry is
// overwritten on every Store; there is no history and no versioning.
type OSCache struct {
	service string
}

// NewOSCache returns an OSCache storing the key under the given service name.
func NewOSCache(service string) *OSCache {
	return &OSCache{service: service}
}

// Store persists the master key, replacing any prior value.
func (c *OSCache) Store(key []byte) error {
	if len(key) != cryptox.MasterKeyLen {
		return fmt.Errorf("%w: got %d bytes", common.ErrInvalidKeySize, len(key))
	}
	if err := keyring.Set(c.service, account, base64.StdEncoding.EncodeToString(key)); err != nil {
		return fmt.Errorf("failed to store master key: %w", err)
	}
	return nil
}

// Load returns the cached master key, or (nil, nil) when no entry exists. A
// present value that does not decode to exactly 32 bytes is corruption, not
// absence.
func (c *OSCache) Load() ([]byte, error) {
	value, err := keyring.Get(c.service, account)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load master key: %w", err)
	}

	key, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("%w: cached master key is not valid base64", common.ErrCorruptedRecord)
	}
	if len(key) != cryptox.MasterKeyLen {
		return nil, fmt.Errorf("%w: cached master key is %d bytes, want %d",
			common.ErrCorruptedRecord, len(key), cryptox.MasterKeyLen)
	}
	return key, nil
}

// Clear removes the cached master key. Clearing an already-empty cache is
// not an error.
func (c *OSCache) Clear() error {
	if err := keyring.Delete(c.service, account); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to clear master key: %w", err)
	}
	return nil
}
