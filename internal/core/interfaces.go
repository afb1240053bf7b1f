package core

import (
	"context"

	"pdv-backend-go/internal/models"
)

// PageSize is the fixed directory page size.
const PageSize = 10

// FilterAll is the value that disables a status/departamento/cargo filter.
const FilterAll = "todos"

// ListColaboradoresQuery carries the four independent directory filters plus
// the requested page. Empty or "todos" values disable the matching predicate.
type ListColaboradoresQuery struct {
	Busca        string
	Status       string
	Departamento string
	Cargo        string
	Page         int
}

// ColaboradorPage is one page of the filtered, sorted directory, together
// with the totals the client needs for pagination and the dynamically derived
// filter option lists.
type ColaboradorPage struct {
	Items         []*models.Colaborador `json:"items"`
	Total         int                   `json:"total"`
	Page          int                   `json:"page"`
	PageSize      int                   `json:"pageSize"`
	TotalPages    int                   `json:"totalPages"`
	Departamentos []string              `json:"departamentos"`
	Cargos        []string              `json:"cargos"`
}

// SessionInfo is the result of the post-login session bootstrap.
type SessionInfo struct {
	User                   *models.AuthUser `json:"user"`
	RequiresPasswordChange bool             `json:"requiresPasswordChange"`
}

// ColaboradorService defines the staff-management operations.
type ColaboradorService interface {
	List(ctx context.Context, query ListColaboradoresQuery) (*ColaboradorPage, error)
	GetByID(ctx context.Context, id string) (*models.Colaborador, error)
	// CreateWithAccount provisions a colaborador together with its auth
	// account and backend profile, then best-effort sends the welcome email.
	CreateWithAccount(ctx context.Context, criadoPor string, req models.CreateColaboradorRequest) (*models.Colaborador, error)
	Update(ctx context.Context, id string, req models.UpdateColaboradorRequest) (*models.Colaborador, error)
	Delete(ctx context.Context, id string) error
	// UpdatePermissoes persists the full permission list of the colaborador.
	UpdatePermissoes(ctx context.Context, id string, permissoes []models.Permissao) (*models.Colaborador, error)
	// TogglePermissao flips a single flag for one module, appending an entry
	// with every other flag false when the module has none yet.
	TogglePermissao(ctx context.Context, id string, modulo models.ModuloSistema, flag PermissaoFlag, value bool) (*models.Colaborador, error)
}

// AuthService defines the session and account operations.
type AuthService interface {
	// InitializeSession loads the backend profile after a client-side sign-in
	// and flips the first-login flag on the first successful call.
	InitializeSession(ctx context.Context, uid string) (*SessionInfo, error)
	GetProfile(ctx context.Context, uid string) (*models.AuthUser, error)
	ChangePassword(ctx context.Context, uid, newPassword string) error
	// RequestPasswordReset generates a reset link and best-effort dispatches
	// the reset email.
	RequestPasswordReset(ctx context.Context, email string) error
	GetPreferences(ctx context.Context, uid string) (*models.UserPreferences, error)
	UpdatePreferences(ctx context.Context, uid string, req models.UpdatePreferencesRequest) (*models.UserPreferences, error)
}

// MailService defines the three transactional email operations.
type MailService interface {
	SendWelcomeEmail(ctx context.Context, email, displayName, temporaryPassword string) error
	SendPasswordResetEmail(ctx context.Context, email, displayName, resetLink string) error
	SendStatusChangeEmail(ctx context.Context, email, displayName string, newStatus models.StatusColaborador) error
}

// AuditService defines the interface for audit logging operations.
type AuditService interface {
	CreateAuditLog(ctx context.Context, logEntry models.AuditLog) error
}
