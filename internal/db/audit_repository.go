package db

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"

	"pdv-backend-go/internal/models"
)

const auditLogsCollection = "audit_logs"

// firestoreAuditRepository implements AuditRepository using Firestore.
type firestoreAuditRepository struct {
	client *firestore.Client
}

// NewFirestoreAuditRepository creates a new Firestore-backed audit repository.
func NewFirestoreAuditRepository(client *firestore.Client) AuditRepository {
	if client == nil {
		log.Fatal("Firestore client is not initialized for AuditRepository.")
	}
	return &firestoreAuditRepository{client: client}
}

// Create appends an audit log entry with an autogenerated document ID.
func (r *firestoreAuditRepository) Create(ctx context.Context, logEntry models.AuditLog) error {
	_, _, err := r.client.Collection(auditLogsCollection).Add(ctx, logEntry)
	if err != nil {
		return fmt.Errorf("failed to create audit log entry (action: %s): %w", logEntry.Action, err)
	}
	return nil
}
