package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/dmitrijs2005/tracediary/internal/common"
)

const (
	// envelopeVersion is the only on-disk format version currently produced
	// or accepted.
	envelopeVersion = 1
	nonceLen        = 12
)

// envelope is the serialized form of one encrypted unit of content, stored
// as the literal file content of a diary blob.
type envelope struct {
	Version       int    `json:"v"`
	NonceB64      string `json:"nonce_b64"`
	CiphertextB64 string `json:"ciphertext_b64"`
}

// EncryptText encrypts plaintext under key with AES-256-GCM and returns the
// storable envelope text. A fresh random nonce is generated on every call:
// reusing a nonce under the same key breaks confidentiality, so the nonce
// must never come from a counter or from the content itself.
func EncryptText(key []byte, plaintext string) (string, error) {
	if len(key) != MasterKeyLen {
		return "", fmt.Errorf("%w: got %d bytes", common.ErrInvalidKeySize, len(key))
	}

	nonce := make([]byte, nonceLen)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("failed to init cipher: %w", err)
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("failed to init gcm: %w", err)
	}

	ciphertext := aesgcm.Seal(nil, nonce, []byte(plaintext), nil)

	out, err := json.Marshal(envelope{
		Version:       envelopeVersion,
		NonceB64:      base64.StdEncoding.EncodeToString(nonce),
		CiphertextB64: base64.StdEncoding.EncodeToString(ciphertext),
	})
	if err != nil {
		return "", fmt.Errorf("failed to serialize envelope: %w", err)
	}
	return string(out), nil
}

// DecryptText parses the envelope text and decrypts it under key. Malformed
// envelopes (bad JSON, unknown version, wrong nonce length, bad base64) are
// common.ErrCorruptedRecord. An authentication failure (wrong key or
// tampered ciphertext, indistinguishable by design) is
// common.ErrDecryptionFailed with no partial output. Decrypted bytes that
// are not valid UTF-8 are common.ErrInvalidEncoding.
func DecryptText(key []byte, envelopeText string) (string, error) {
	if len(key) != MasterKeyLen {
		return "", fmt.Errorf("%w: got %d bytes", common.ErrInvalidKeySize, len(key))
	}

	var env envelope
	if err := json.Unmarshal([]byte(envelopeText), &env); err != nil {
		return "", fmt.Errorf("%w: malformed envelope: %v", common.ErrCorruptedRecord, err)
	}
	if env.Version != envelopeVersion {
		return "", fmt.Errorf("%w: unsupported envelope version %d", common.ErrCorruptedRecord, env.Version)
	}

	nonce, err := base64.StdEncoding.DecodeString(env.NonceB64)
	if err != nil {
		return "", fmt.Errorf("%w: malformed envelope nonce: %v", common.ErrCorruptedRecord, err)
	}
	if len(nonce) != nonceLen {
		return "", fmt.Errorf("%w: envelope nonce is %d bytes, want %d", common.ErrCorruptedRecord, len(nonce), nonceLen)
	}
	ciphertext, err := base64.StdEncoding.DecodeString(env.CiphertextB64)
	if err != nil {
		return "", fmt.Errorf("%w: malformed envelope ciphertext: %v", common.ErrCorruptedRecord, err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("failed to init cipher: %w", err)
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("failed to init gcm: %w", err)
	}

	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", common.ErrDecryptionFailed
	}
	if !utf8.Valid(plaintext) {
		return "", common.ErrInvalidEncoding
	}
	return string(plaintext), nil
}
