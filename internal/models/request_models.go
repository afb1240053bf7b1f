package models

// CreateColaboradorRequest is the request body for provisioning a new
// colaborador together with its auth account.
type CreateColaboradorRequest struct {
	Nome         string            `json:"nome" binding:"required"`
	Email        string            `json:"email" binding:"required,email"`
	Telefone     string            `json:"telefone,omitempty"`
	Cargo        string            `json:"cargo" binding:"required"`
	Departamento string            `json:"departamento" binding:"required"`
	DataAdmissao string            `json:"dataAdmissao" binding:"required"`
	Status       StatusColaborador `json:"status" binding:"required"`
	Observacoes  string            `json:"observacoes,omitempty"`
}

// UpdateColaboradorRequest is the request body for a partial update.
// Pointers distinguish "clear the field" from "field not provided".
type UpdateColaboradorRequest struct {
	Nome         *string            `json:"nome,omitempty"`
	Email        *string            `json:"email,omitempty"`
	Telefone     *string            `json:"telefone,omitempty"`
	Cargo        *string            `json:"cargo,omitempty"`
	Departamento *string            `json:"departamento,omitempty"`
	DataAdmissao *string            `json:"dataAdmissao,omitempty"`
	Status       *StatusColaborador `json:"status,omitempty"`
	Observacoes  *string            `json:"observacoes,omitempty"`
}

// UpdatePermissoesRequest replaces the full permission list of a colaborador.
type UpdatePermissoesRequest struct {
	Permissoes []Permissao `json:"permissoes" binding:"required"`
}

// UpdatePreferencesRequest is the request body for persisting UI preferences.
type UpdatePreferencesRequest struct {
	Theme            *string `json:"theme,omitempty"`
	SidebarCollapsed *bool   `json:"sidebarCollapsed,omitempty"`
}

// ChangePasswordRequest is the request body for a password change.
type ChangePasswordRequest struct {
	NewPassword string `json:"newPassword" binding:"required"`
}

// PasswordResetRequest asks for a password-reset email to be dispatched.
type PasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}
