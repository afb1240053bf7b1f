package db

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"pdv-backend-go/internal/models"
)

const usersCollection = "users"

// firestoreUserRepository implements the UserRepository interface using Firestore.
type firestoreUserRepository struct {
	client *firestore.Client
}

// NewFirestoreUserRepository creates a new instance of firestoreUserRepository.
func NewFirestoreUserRepository(client *firestore.Client) UserRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for UserRepository.")
	}
	return &firestoreUserRepository{client: client}
}

// Create adds a new user document to Firestore.
// The user.UID (Firebase Auth UID) is used as the Firestore document ID.
func (r *firestoreUserRepository) Create(ctx context.Context, user *models.AuthUser) error {
	if user.UID == "" {
		return errors.New("user UID cannot be empty for Create operation")
	}
	_, err := r.client.Collection(usersCollection).Doc(user.UID).Create(ctx, user)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return fmt.Errorf("user with UID '%s' already exists: %w", user.UID, err)
		}
		return fmt.Errorf("failed to create user with UID '%s': %w", user.UID, err)
	}
	return nil
}

// GetByID retrieves a user document from Firestore by Firebase Auth UID.
func (r *firestoreUserRepository) GetByID(ctx context.Context, uid string) (*models.AuthUser, error) {
	if uid == "" {
		return nil, errors.New("uid cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(usersCollection).Doc(uid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("user with UID '%s' not found: %w", uid, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user with UID '%s': %w", uid, err)
	}

	var user models.AuthUser
	if err := docSnap.DataTo(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user data for UID '%s': %w", uid, err)
	}
	user.UID = docSnap.Ref.ID
	return &user, nil
}

// Update overwrites the user document with the given state, merging so that
// partial models do not clear fields they omit.
func (r *firestoreUserRepository) Update(ctx context.Context, user *models.AuthUser) error {
	if user.UID == "" {
		return errors.New("user UID cannot be empty for Update operation")
	}
	user.UpdatedAt = time.Now().UTC()
	_, err := r.client.Collection(usersCollection).Doc(user.UID).Set(ctx, user, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to update user with UID '%s': %w", user.UID, err)
	}
	return nil
}

// MarkFirstLoginDone flips isFirstLogin to false and touches updatedAt.
func (r *firestoreUserRepository) MarkFirstLoginDone(ctx context.Context, uid string) error {
	if uid == "" {
		return errors.New("uid cannot be empty for MarkFirstLoginDone operation")
	}
	_, err := r.client.Collection(usersCollection).Doc(uid).Update(ctx, []firestore.Update{
		{Path: "isFirstLogin", Value: false},
		{Path: "updatedAt", Value: time.Now().UTC()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("user with UID '%s' not found: %w", uid, ErrNotFound)
		}
		return fmt.Errorf("failed to mark first login done for UID '%s': %w", uid, err)
	}
	return nil
}

// UpdatePreferences persists the theme and sidebar flags on the user document.
func (r *firestoreUserRepository) UpdatePreferences(ctx context.Context, uid string, prefs models.UserPreferences) error {
	if uid == "" {
		return errors.New("uid cannot be empty for UpdatePreferences operation")
	}
	_, err := r.client.Collection(usersCollection).Doc(uid).Update(ctx, []firestore.Update{
		{Path: "preferences", Value: prefs},
		{Path: "updatedAt", Value: time.Now().UTC()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("user with UID '%s' not found: %w", uid, ErrNotFound)
		}
		return fmt.Errorf("failed to update preferences for UID '%s': %w", uid, err)
	}
	return nil
}
