package db

import (
	"context"

	"pdv-backend-go/internal/models"
)

// ColaboradorRepository defines the interface for colaborador data storage
// operations over the `colaboradores` collection.
type ColaboradorRepository interface {
	// Create writes the colaborador document keyed by its business ID
	// (the linked auth account UID).
	Create(ctx context.Context, c *models.Colaborador) error
	GetByID(ctx context.Context, id string) (*models.Colaborador, error)
	// GetAll returns every colaborador ordered by nome.
	GetAll(ctx context.Context) ([]*models.Colaborador, error)
	// GetByStatus returns colaboradores matching the status, ordered by nome.
	GetByStatus(ctx context.Context, status models.StatusColaborador) ([]*models.Colaborador, error)
	// FindByEmail returns colaboradores with an exact email match, skipping
	// excludeID when non-empty (used by the uniqueness check during edits).
	FindByEmail(ctx context.Context, email, excludeID string) ([]*models.Colaborador, error)
	// Update applies a partial field update and stamps dataUltimaAtualizacao.
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	// UpdatePermissoes replaces the full permission list of the colaborador.
	UpdatePermissoes(ctx context.Context, id string, permissoes []models.Permissao) error
	Delete(ctx context.Context, id string) error
}

// UserRepository defines the interface for backend auth-profile storage over
// the `users` collection, keyed by the Firebase Auth UID.
type UserRepository interface {
	Create(ctx context.Context, user *models.AuthUser) error
	GetByID(ctx context.Context, uid string) (*models.AuthUser, error)
	Update(ctx context.Context, user *models.AuthUser) error
	// MarkFirstLoginDone flips isFirstLogin to false and touches updatedAt.
	MarkFirstLoginDone(ctx context.Context, uid string) error
	UpdatePreferences(ctx context.Context, uid string, prefs models.UserPreferences) error
}

// AuditRepository defines the interface for audit log storage.
type AuditRepository interface {
	Create(ctx context.Context, logEntry models.AuditLog) error
}

// AuthAccounts abstracts the identity-provider admin operations used by the
// provisioning and session flows, so services can be tested against stubs.
type AuthAccounts interface {
	// CreateAccount creates an identity-provider account and returns its UID.
	CreateAccount(ctx context.Context, email, password, displayName string) (string, error)
	// DeleteAccount removes an account; used as the compensating action when
	// a document write fails after account creation.
	DeleteAccount(ctx context.Context, uid string) error
	SetPassword(ctx context.Context, uid, newPassword string) error
	// PasswordResetLink generates a reset link for the email.
	PasswordResetLink(ctx context.Context, email string) (string, error)
}
