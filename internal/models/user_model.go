package models

import "time"

// Role distinguishes administrative accounts from colaborador accounts.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleColaborador Role = "colaborador"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleColaborador
}

// AuthUser is the backend profile for a Firebase Auth account. It is created
// 1:1 with a Colaborador when staff are onboarded; IsFirstLogin flips to false
// on the first successful sign-in.
type AuthUser struct {
	UID           string          `json:"uid" firestore:"uid"`
	Email         string          `json:"email" firestore:"email"`
	DisplayName   string          `json:"displayName,omitempty" firestore:"displayName"`
	Role          Role            `json:"role" firestore:"role"`
	ColaboradorID string          `json:"colaboradorId,omitempty" firestore:"colaboradorId,omitempty"`
	IsFirstLogin  bool            `json:"isFirstLogin" firestore:"isFirstLogin"`
	Preferences   UserPreferences `json:"preferences" firestore:"preferences"`
	CreatedAt     time.Time       `json:"createdAt" firestore:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt" firestore:"updatedAt"`
}

// UserPreferences holds the per-user UI flags the client persists between
// sessions: the selected theme name and whether the sidebar is collapsed.
type UserPreferences struct {
	Theme            string `json:"theme" firestore:"theme"`
	SidebarCollapsed bool   `json:"sidebarCollapsed" firestore:"sidebarCollapsed"`
}
