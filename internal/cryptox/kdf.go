package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/argon2"

	"github.com/dmitrijs2005/tracediary/internal/common"
)

// MasterKeyLen is the length of the symmetric key all diary content is
// encrypted under.
const MasterKeyLen = 32

// DeriveNewMasterKey generates a fresh random 16-byte salt and derives a
// 32-byte master key from the password. The salt is returned base64-encoded,
// ready to be persisted next to the credential hash.
func DeriveNewMasterKey(password string) (string, []byte, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", nil, fmt.Errorf("failed to generate kdf salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, MasterKeyLen)
	return base64.StdEncoding.EncodeToString(salt), key, nil
}

// DeriveMasterKey reproduces the master key from the password and the stored
// salt. The derivation is deterministic: it is the only way to recover the
// key once the OS secret cache is empty, e.g. after an application restart.
func DeriveMasterKey(password, saltB64 string) ([]byte, error) {
	salt, err := base64.StdEncoding.DecodeString(saltB64)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed kdf salt: %v", common.ErrCorruptedRecord, err)
	}
	if len(salt) != saltLen {
		return nil, fmt.Errorf("%w: kdf salt is %d bytes, want %d", common.ErrCorruptedRecord, len(salt), saltLen)
	}

	return argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, MasterKeyLen), nil
}

// Zero overwrites b in place. Callers use it to wipe key material once it is
// no longer needed.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
