package core

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"pdv-backend-go/internal/db"
	"pdv-backend-go/internal/models"
	"pdv-backend-go/pkg/password"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// authService implements the AuthService interface.
type authService struct {
	userRepo        db.UserRepository
	colaboradorRepo db.ColaboradorRepository
	authAccounts    db.AuthAccounts
	mailService     MailService
	logger          *zap.Logger
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(
	ur db.UserRepository,
	cr db.ColaboradorRepository,
	aa db.AuthAccounts,
	ms MailService,
	logger *zap.Logger,
) AuthService {
	return &authService{
		userRepo:        ur,
		colaboradorRepo: cr,
		authAccounts:    aa,
		mailService:     ms,
		logger:          logger,
	}
}

// InitializeSession loads the profile of a freshly authenticated user. On the
// very first sign-in the first-login flag is flipped off and the caller is
// told a password change is required.
func (s *authService) InitializeSession(ctx context.Context, uid string) (*SessionInfo, error) {
	user, err := s.userRepo.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w (uid: %s)", ErrUserNotFound, uid)
		}
		return nil, fmt.Errorf("failed to load user profile '%s': %w", uid, err)
	}

	requiresPasswordChange := user.IsFirstLogin
	if user.IsFirstLogin {
		if err := s.userRepo.MarkFirstLoginDone(ctx, uid); err != nil {
			return nil, fmt.Errorf("failed to clear first-login flag for '%s': %w", uid, err)
		}
		user.IsFirstLogin = false
	}

	return &SessionInfo{
		User:                   user,
		RequiresPasswordChange: requiresPasswordChange,
	}, nil
}

// GetProfile returns the stored profile of the given user.
func (s *authService) GetProfile(ctx context.Context, uid string) (*models.AuthUser, error) {
	user, err := s.userRepo.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w (uid: %s)", ErrUserNotFound, uid)
		}
		return nil, fmt.Errorf("failed to load user profile '%s': %w", uid, err)
	}
	return user, nil
}

// ChangePassword validates the new password against the strength policy and
// applies it to the identity-provider account.
func (s *authService) ChangePassword(ctx context.Context, uid, newPassword string) error {
	if msg := password.StrengthError(newPassword); msg != "" {
		return NewValidationError(map[string]string{"newPassword": msg})
	}

	if err := s.authAccounts.SetPassword(ctx, uid, newPassword); err != nil {
		return translateAuthError(err)
	}

	// Touch the profile so updatedAt reflects the change.
	if user, err := s.userRepo.GetByID(ctx, uid); err == nil {
		if err := s.userRepo.Update(ctx, user); err != nil {
			s.logger.Warn("failed to touch user profile after password change",
				zap.String("uid", uid),
				zap.Error(err),
			)
		}
	}
	return nil
}

// RequestPasswordReset generates a reset link for the given address and
// best-effort delivers it by email. To avoid leaking which addresses exist,
// an unknown account produces no error.
func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	link, err := s.authAccounts.PasswordResetLink(ctx, email)
	if err != nil {
		s.logger.Warn("password reset link generation failed",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil
	}

	displayName := email
	if matches, err := s.colaboradorRepo.FindByEmail(ctx, email, ""); err == nil && len(matches) > 0 {
		displayName = matches[0].Nome
	}

	if err := s.mailService.SendPasswordResetEmail(ctx, email, displayName, link); err != nil {
		s.logger.Warn("password reset email dispatch failed",
			zap.String("email", email),
			zap.Error(err),
		)
	}
	return nil
}

// GetPreferences returns the stored UI preferences of the given user.
func (s *authService) GetPreferences(ctx context.Context, uid string) (*models.UserPreferences, error) {
	user, err := s.GetProfile(ctx, uid)
	if err != nil {
		return nil, err
	}
	prefs := user.Preferences
	if prefs.Theme == "" {
		prefs.Theme = ThemeLight
	}
	return &prefs, nil
}

// UpdatePreferences merges the provided fields into the stored preferences
// and persists the result onto the user profile.
func (s *authService) UpdatePreferences(ctx context.Context, uid string, req models.UpdatePreferencesRequest) (*models.UserPreferences, error) {
	current, err := s.GetPreferences(ctx, uid)
	if err != nil {
		return nil, err
	}

	prefs := *current
	if req.Theme != nil {
		if *req.Theme != ThemeLight && *req.Theme != ThemeDark {
			return nil, NewValidationError(map[string]string{"theme": "Tema desconhecido: " + *req.Theme})
		}
		prefs.Theme = *req.Theme
	}
	if req.SidebarCollapsed != nil {
		prefs.SidebarCollapsed = *req.SidebarCollapsed
	}

	if err := s.userRepo.UpdatePreferences(ctx, uid, prefs); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w (uid: %s)", ErrUserNotFound, uid)
		}
		return nil, fmt.Errorf("failed to update preferences for '%s': %w", uid, err)
	}
	return &prefs, nil
}
