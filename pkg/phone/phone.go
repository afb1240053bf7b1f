// Package phone formats and validates Brazilian phone numbers using the
// canonical mask (DD) DDDD-DDDD for landlines and (DD) DDDDD-DDDD for mobiles.
package phone

import (
	"fmt"
	"regexp"
	"strings"
)

var validFormat = regexp.MustCompile(`^\(\d{2}\) \d{4,5}-\d{4}$`)

// Format applies the Brazilian phone mask progressively to whatever digits are
// present in the input. Non-digit characters are stripped first, so the
// function is idempotent on already-formatted input. Inputs longer than 11
// digits are truncated to the first 11.
func Format(phone string) string {
	numbers := Unformat(phone)
	n := len(numbers)

	switch {
	case n == 0:
		return ""
	case n <= 2:
		return numbers
	case n <= 6:
		return fmt.Sprintf("(%s) %s", numbers[:2], numbers[2:])
	case n <= 10:
		return fmt.Sprintf("(%s) %s-%s", numbers[:2], numbers[2:6], numbers[6:])
	case n == 11:
		return fmt.Sprintf("(%s) %s-%s", numbers[:2], numbers[2:7], numbers[7:])
	default:
		return fmt.Sprintf("(%s) %s-%s", numbers[:2], numbers[2:7], numbers[7:11])
	}
}

// Validate reports whether the phone matches the canonical mask. The empty
// string is accepted because the field is optional.
func Validate(phone string) bool {
	if strings.TrimSpace(phone) == "" {
		return true
	}
	return validFormat.MatchString(phone)
}

// Unformat strips every non-digit character, returning only the digits.
func Unformat(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
