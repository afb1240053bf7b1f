package db

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"pdv-backend-go/internal/models"
)

const colaboradoresCollection = "colaboradores"

// ErrNotFound is a common error for when a document is not found in Firestore.
var ErrNotFound = errors.New("document not found")

// firestoreColaboradorRepository implements ColaboradorRepository using Firestore.
type firestoreColaboradorRepository struct {
	client *firestore.Client
}

// NewFirestoreColaboradorRepository creates a new Firestore-backed colaborador repository.
func NewFirestoreColaboradorRepository(client *firestore.Client) ColaboradorRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for ColaboradorRepository.")
	}
	return &firestoreColaboradorRepository{client: client}
}

// Create adds a new colaborador document. The business ID (auth account UID)
// is used as the Firestore document ID so joins land on the same key.
func (r *firestoreColaboradorRepository) Create(ctx context.Context, c *models.Colaborador) error {
	if c.ID == "" {
		return errors.New("colaborador ID cannot be empty for Create operation")
	}
	_, err := r.client.Collection(colaboradoresCollection).Doc(c.ID).Create(ctx, c)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return fmt.Errorf("colaborador with ID '%s' already exists: %w", c.ID, err)
		}
		return fmt.Errorf("failed to create colaborador with ID '%s': %w", c.ID, err)
	}
	return nil
}

// GetByID retrieves a colaborador document by its ID.
func (r *firestoreColaboradorRepository) GetByID(ctx context.Context, id string) (*models.Colaborador, error) {
	if id == "" {
		return nil, errors.New("id cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(colaboradoresCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("colaborador with ID '%s' not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get colaborador with ID '%s': %w", id, err)
	}

	var c models.Colaborador
	if err := docSnap.DataTo(&c); err != nil {
		return nil, fmt.Errorf("failed to decode colaborador data for ID '%s': %w", id, err)
	}
	c.ID = docSnap.Ref.ID
	return &c, nil
}

// GetAll returns the entire collection ordered by nome. The working set is
// small enough that the directory reads it wholesale on every load.
func (r *firestoreColaboradorRepository) GetAll(ctx context.Context) ([]*models.Colaborador, error) {
	q := r.client.Collection(colaboradoresCollection).OrderBy("nome", firestore.Asc)
	return r.collect(ctx, q.Documents(ctx))
}

// GetByStatus returns colaboradores with the given status, ordered by nome.
func (r *firestoreColaboradorRepository) GetByStatus(ctx context.Context, st models.StatusColaborador) ([]*models.Colaborador, error) {
	q := r.client.Collection(colaboradoresCollection).
		Where("status", "==", string(st)).
		OrderBy("nome", firestore.Asc)
	return r.collect(ctx, q.Documents(ctx))
}

// FindByEmail queries for an exact email match. When excludeID is non-empty
// the document with that ID is skipped, so an edit does not collide with the
// record being edited.
func (r *firestoreColaboradorRepository) FindByEmail(ctx context.Context, email, excludeID string) ([]*models.Colaborador, error) {
	q := r.client.Collection(colaboradoresCollection).Where("email", "==", email)
	all, err := r.collect(ctx, q.Documents(ctx))
	if err != nil {
		return nil, err
	}
	if excludeID == "" {
		return all, nil
	}
	matches := make([]*models.Colaborador, 0, len(all))
	for _, c := range all {
		if c.ID != excludeID {
			matches = append(matches, c)
		}
	}
	return matches, nil
}

// Update applies a partial update to the document and stamps
// dataUltimaAtualizacao. Unknown fields are the caller's responsibility.
func (r *firestoreColaboradorRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	if id == "" {
		return errors.New("id cannot be empty for Update operation")
	}
	updates := make([]firestore.Update, 0, len(fields)+1)
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}
	updates = append(updates, firestore.Update{Path: "dataUltimaAtualizacao", Value: time.Now().UTC()})

	_, err := r.client.Collection(colaboradoresCollection).Doc(id).Update(ctx, updates)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fmt.Errorf("colaborador with ID '%s' not found: %w", id, ErrNotFound)
		}
		return fmt.Errorf("failed to update colaborador with ID '%s': %w", id, err)
	}
	return nil
}

// UpdatePermissoes replaces the full permission list on the document.
func (r *firestoreColaboradorRepository) UpdatePermissoes(ctx context.Context, id string, permissoes []models.Permissao) error {
	return r.Update(ctx, id, map[string]interface{}{"permissoes": permissoes})
}

// Delete removes the colaborador document.
func (r *firestoreColaboradorRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("id cannot be empty for Delete operation")
	}
	_, err := r.client.Collection(colaboradoresCollection).Doc(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete colaborador with ID '%s': %w", id, err)
	}
	return nil
}

func (r *firestoreColaboradorRepository) collect(ctx context.Context, iter *firestore.DocumentIterator) ([]*models.Colaborador, error) {
	defer iter.Stop()
	var out []*models.Colaborador
	for {
		docSnap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate colaboradores: %w", err)
		}
		var c models.Colaborador
		if err := docSnap.DataTo(&c); err != nil {
			return nil, fmt.Errorf("failed to decode colaborador document '%s': %w", docSnap.Ref.ID, err)
		}
		c.ID = docSnap.Ref.ID
		out = append(out, &c)
	}
	return out, nil
}
