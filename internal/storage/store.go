// Package storage provides abstractions for group and payment storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/giftpool/internal/models"
)

// ErrNotFound is returned when a group or payment record does not exist.
// Callers match it with errors.Is.
var ErrNotFound = errors.New("not found")

// Store defines the interface for group storage operations.
// This abstraction keeps the reconciliation logic storage-agnostic, so the
// SQLite backend can be swapped for a key-value or relational one without
// touching the services.
type Store interface {
	// CreateGroup persists a new group together with all of its payment
	// records, atomically. A missing ID is populated by the store.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group by ID, including its payment records.
	// Returns an error wrapping ErrNotFound if the group does not exist.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroups retrieves all groups, oldest first.
	ListGroups(ctx context.Context) ([]*models.Group, error)

	// FindByOrderID resolves a gateway order ID to the (groupID, email)
	// of the payment record it was created for. Returns an error wrapping
	// ErrNotFound for an unknown order ID.
	FindByOrderID(ctx context.Context, orderID string) (groupID, email string, err error)

	// MarkPaid flips the Paid flag of one payment record. It reports
	// whether this call performed the false-to-true transition; a record
	// that is already paid (or absent) yields false with a nil error.
	// Concurrent callers for the same record serialize here: exactly one
	// observes true.
	MarkPaid(ctx context.Context, groupID, email string) (bool, error)

	// Close releases any resources held by the store.
	Close() error
}
