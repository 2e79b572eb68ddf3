// Package common defines shared sentinel errors used across trace diary
// components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Password policy and authentication errors. A corrupt stored hash and a
	// wrong password both surface as authentication failure to the user, but
	// the corrupt case additionally carries ErrCorruptedRecord so diagnostics can
	// tell them apart.
	ErrWeakPassword         = errors.New("password does not meet policy")
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrLocked means the operation needs the master key but none is cached.
	// Recoverable: the caller should prompt for password verification.
	ErrLocked = errors.New("locked: master key is not available")

	// Crypto and stored-record errors.
	ErrInvalidKeySize   = errors.New("key must be 32 bytes")
	ErrCorruptedRecord  = errors.New("corrupted record")
	ErrDecryptionFailed = errors.New("decryption failed")
	ErrInvalidEncoding  = errors.New("decrypted content is not valid UTF-8")

	// Validation errors.
	ErrInvalidDate = errors.New("invalid date")
)
