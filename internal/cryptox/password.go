// Package cryptox implements the credential and encryption primitives of
// trace diary: the argon2id password verification hash, master key
// derivation, and the AES-GCM envelope used for diary content at rest.
package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/dmitrijs2005/tracediary/internal/common"
)

// argon2id parameters shared by the credential hash and the master key
// derivation. They are embedded in the packed hash encoding, so stored
// hashes stay verifiable if the defaults ever change.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	hashLen      = 32
	saltLen      = 16
)

// HashPassword derives a verification hash from the password with a fresh
// random salt and packs it in the standard argon2id encoding:
//
//	$argon2id$v=19$m=65536,t=1,p=4$<b64 salt>$<b64 hash>
//
// The output is self-describing; no separate salt storage is needed to
// verify it later.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, hashLen)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash))
	return encoded, nil
}

// VerifyPassword re-derives the hash using the parameters and salt embedded
// in encoded and compares in constant time. A mismatch is
// common.ErrAuthenticationFailed. An encoded hash that cannot be parsed
// also fails authentication, with common.ErrCorruptedRecord matchable
// underneath for callers that need to tell the two apart.
func VerifyPassword(password, encoded string) error {
	salt, hash, params, err := parseEncodedHash(encoded)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrAuthenticationFailed, err)
	}

	candidate := argon2.IDKey([]byte(password), salt, params.time, params.memory, params.threads, uint32(len(hash)))

	if subtle.ConstantTimeCompare(hash, candidate) == 0 {
		return common.ErrAuthenticationFailed
	}
	return nil
}

type argonParams struct {
	memory  uint32
	time    uint32
	threads uint8
}

func parseEncodedHash(encoded string) ([]byte, []byte, argonParams, error) {
	var params argonParams

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return nil, nil, params, fmt.Errorf("%w: malformed password hash", common.ErrCorruptedRecord)
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return nil, nil, params, fmt.Errorf("%w: unsupported password hash version", common.ErrCorruptedRecord)
	}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.memory, &params.time, &params.threads); err != nil {
		return nil, nil, params, fmt.Errorf("%w: malformed password hash parameters", common.ErrCorruptedRecord)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, params, fmt.Errorf("%w: malformed password hash salt", common.ErrCorruptedRecord)
	}
	hash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(hash) == 0 {
		return nil, nil, params, fmt.Errorf("%w: malformed password hash digest", common.ErrCorruptedRecord)
	}

	return salt, hash, params, nil
}
