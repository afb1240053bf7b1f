package core

import (
	"errors"
	"strings"

	"firebase.google.com/go/v4/auth"
)

// Sentinel errors shared by the services. Handlers map these to HTTP statuses
// and surface the Portuguese user-facing messages.
var (
	ErrColaboradorNotFound = errors.New("colaborador não encontrado")
	ErrUserNotFound        = errors.New("usuário não encontrado")
	ErrEmailConflict       = errors.New("Este email já está sendo usado por outro colaborador.")
)

// ValidationError carries field-level validation failures detected before any
// remote call is made.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, msg := range e.Fields {
		msgs = append(msgs, msg)
	}
	return strings.Join(msgs, ", ")
}

// NewValidationError builds a ValidationError from a field→message map.
func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// RemoteError wraps an identity-provider failure with a Portuguese
// user-facing message. The underlying error is kept for logging.
type RemoteError struct {
	Message string
	Err     error
}

func (e *RemoteError) Error() string { return e.Message }
func (e *RemoteError) Unwrap() error { return e.Err }

// translateAuthError maps the known identity-provider error conditions to
// Portuguese user-facing messages. Unmapped conditions fall back to a generic
// message; details stay server-side.
func translateAuthError(err error) *RemoteError {
	msg := "Erro ao processar a solicitação. Tente novamente."
	raw := err.Error()

	switch {
	case auth.IsEmailAlreadyExists(err) || strings.Contains(raw, "EMAIL_EXISTS") || strings.Contains(raw, "email-already-in-use"):
		msg = "Este email já está sendo usado por outro usuário no sistema."
	case auth.IsUserNotFound(err):
		msg = "Usuário não encontrado no sistema."
	case strings.Contains(raw, "INVALID_EMAIL") || strings.Contains(raw, "invalid-email"):
		msg = "Email inválido. Verifique o formato do email."
	case strings.Contains(raw, "WEAK_PASSWORD") || strings.Contains(raw, "weak-password"):
		msg = "Senha muito fraca. Tente uma senha mais forte."
	case strings.Contains(raw, "OPERATION_NOT_ALLOWED") || strings.Contains(raw, "operation-not-allowed"):
		msg = "Operação não permitida. Entre em contato com o administrador."
	case strings.Contains(raw, "TOO_MANY_ATTEMPTS") || strings.Contains(raw, "too-many-requests"):
		msg = "Muitas tentativas. Tente novamente em alguns minutos."
	}

	return &RemoteError{Message: msg, Err: err}
}
