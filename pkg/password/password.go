// Package password generates temporary passwords for newly provisioned
// accounts and validates password strength.
package password

import (
	"math/rand"
	"regexp"
	"strings"
)

const (
	upper   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lower   = "abcdefghijklmnopqrstuvwxyz"
	digits  = "0123456789"
	symbols = "!@#$%^&*"

	// TemporaryLength is the fixed length of generated temporary passwords.
	TemporaryLength = 8
)

var alphabet = upper + lower + digits + symbols

// GenerateTemporary produces an 8-character password guaranteed to contain at
// least one uppercase letter, one lowercase letter, one digit and one symbol,
// with the remaining characters drawn uniformly from the full alphabet and the
// result order-shuffled.
//
// The source is math/rand, not crypto/rand: the password is superseded by the
// forced first-login reset flow and is not a long-lived secret.
func GenerateTemporary() string {
	chars := make([]byte, 0, TemporaryLength)
	chars = append(chars, upper[rand.Intn(len(upper))])
	chars = append(chars, lower[rand.Intn(len(lower))])
	chars = append(chars, digits[rand.Intn(len(digits))])
	chars = append(chars, symbols[rand.Intn(len(symbols))])

	for len(chars) < TemporaryLength {
		chars = append(chars, alphabet[rand.Intn(len(alphabet))])
	}

	rand.Shuffle(len(chars), func(i, j int) {
		chars[i], chars[j] = chars[j], chars[i]
	})
	return string(chars)
}

var specialChars = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)

// ValidateStrength reports whether the password meets the minimum strength
// rules: at least 8 characters with one uppercase letter, one lowercase
// letter, one digit and one special character.
func ValidateStrength(password string) bool {
	return StrengthError(password) == ""
}

// StrengthError returns a Portuguese user-facing message describing the first
// strength rule the password violates, or the empty string if it passes.
func StrengthError(password string) string {
	switch {
	case len(password) < 8:
		return "A senha deve ter pelo menos 8 caracteres"
	case !strings.ContainsAny(password, upper):
		return "A senha deve conter pelo menos uma letra maiúscula"
	case !strings.ContainsAny(password, lower):
		return "A senha deve conter pelo menos uma letra minúscula"
	case !strings.ContainsAny(password, digits):
		return "A senha deve conter pelo menos um número"
	case !specialChars.MatchString(password):
		return "A senha deve conter pelo menos um caractere especial"
	}
	return ""
}
