package db

import (
	"context"
	"errors"
	"fmt"
	"log"

	"firebase.google.com/go/v4/auth"
)

// firebaseAuthAccounts implements AuthAccounts over the Firebase Admin Auth client.
type firebaseAuthAccounts struct {
	client *auth.Client
}

// NewFirebaseAuthAccounts creates an AuthAccounts adapter over the Firebase
// Admin Auth client.
func NewFirebaseAuthAccounts(client *auth.Client) AuthAccounts {
	if client == nil {
		log.Fatal("Firebase Auth client is not initialized for AuthAccounts.")
	}
	return &firebaseAuthAccounts{client: client}
}

// CreateAccount creates an identity-provider account and returns its UID.
func (a *firebaseAuthAccounts) CreateAccount(ctx context.Context, email, password, displayName string) (string, error) {
	if email == "" {
		return "", errors.New("email cannot be empty for CreateAccount operation")
	}
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName).
		EmailVerified(false).
		Disabled(false)

	record, err := a.client.CreateUser(ctx, params)
	if err != nil {
		return "", fmt.Errorf("failed to create auth account for '%s': %w", email, err)
	}
	return record.UID, nil
}

// DeleteAccount removes the auth account. Used as the compensating action of
// the provisioning flow when a document write fails after account creation.
func (a *firebaseAuthAccounts) DeleteAccount(ctx context.Context, uid string) error {
	if uid == "" {
		return errors.New("uid cannot be empty for DeleteAccount operation")
	}
	if err := a.client.DeleteUser(ctx, uid); err != nil {
		return fmt.Errorf("failed to delete auth account '%s': %w", uid, err)
	}
	return nil
}

// SetPassword updates the account password.
func (a *firebaseAuthAccounts) SetPassword(ctx context.Context, uid, newPassword string) error {
	if uid == "" {
		return errors.New("uid cannot be empty for SetPassword operation")
	}
	params := (&auth.UserToUpdate{}).Password(newPassword)
	if _, err := a.client.UpdateUser(ctx, uid, params); err != nil {
		return fmt.Errorf("failed to update password for auth account '%s': %w", uid, err)
	}
	return nil
}

// PasswordResetLink generates a password-reset link for the email.
func (a *firebaseAuthAccounts) PasswordResetLink(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", errors.New("email cannot be empty for PasswordResetLink operation")
	}
	link, err := a.client.PasswordResetLink(ctx, email)
	if err != nil {
		return "", fmt.Errorf("failed to generate password reset link for '%s': %w", email, err)
	}
	return link, nil
}
