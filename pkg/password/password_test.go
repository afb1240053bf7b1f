package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateTemporary(t *testing.T) {
	for i := 0; i < 200; i++ {
		pw := GenerateTemporary()

		assert.Len(t, pw, TemporaryLength)
		assert.True(t, strings.ContainsAny(pw, upper), "missing uppercase in %q", pw)
		assert.True(t, strings.ContainsAny(pw, lower), "missing lowercase in %q", pw)
		assert.True(t, strings.ContainsAny(pw, digits), "missing digit in %q", pw)
		assert.True(t, strings.ContainsAny(pw, symbols), "missing symbol in %q", pw)

		for _, r := range pw {
			assert.Contains(t, alphabet, string(r))
		}
	}
}

func TestGenerateTemporaryMeetsOwnStrengthPolicy(t *testing.T) {
	for i := 0; i < 50; i++ {
		assert.True(t, ValidateStrength(GenerateTemporary()))
	}
}

func TestStrengthError(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     string
	}{
		{"too short", "Ab1!", "A senha deve ter pelo menos 8 caracteres"},
		{"no uppercase", "abcdef1!", "A senha deve conter pelo menos uma letra maiúscula"},
		{"no lowercase", "ABCDEF1!", "A senha deve conter pelo menos uma letra minúscula"},
		{"no digit", "Abcdefg!", "A senha deve conter pelo menos um número"},
		{"no special char", "Abcdefg1", "A senha deve conter pelo menos um caractere especial"},
		{"valid", "Abcdef1!", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StrengthError(tt.password))
		})
	}
}
