// Package policy enforces the password strength rule. It runs before any
// hashing or key derivation is attempted.
package policy

import (
	"fmt"
	"unicode"

	"github.com/dmitrijs2005/tracediary/internal/common"
)

// MinLength is the minimum accepted password length in characters.
const MinLength = 8

// Validate checks the password against the strength rule: at least eight
// characters, at least one letter and at least one digit. Pure function,
// no side effects.
func Validate(password string) error {
	if len([]rune(password)) < MinLength {
		return fmt.Errorf("%w: at least %d characters required", common.ErrWeakPassword, MinLength)
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasLetter {
		return fmt.Errorf("%w: at least one letter required", common.ErrWeakPassword)
	}
	if !hasDigit {
		return fmt.Errorf("%w: at least one digit required", common.ErrWeakPassword)
	}
	return nil
}
