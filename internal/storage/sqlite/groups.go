package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/giftpool/internal/models"
	"github.com/mmynk/giftpool/internal/storage"
)

// CreateGroup persists a new group and all of its payment records.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group) error {
	// Generate IDs if not set
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Insert group
	_, err = tx.ExecContext(ctx,
		"INSERT INTO groups (id, mode, recipient, budget, created_at) VALUES (?, ?, ?, ?, ?)",
		group.ID, string(group.Mode), group.Recipient, group.Budget, group.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}

	// Insert payment records, preserving participant order
	for i, email := range group.Participants {
		rec := group.Payments[email]
		if rec == nil {
			return fmt.Errorf("missing payment record for participant %s", email)
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO payments (group_id, email, position, name, external_order_id, approval_link, paid) VALUES (?, ?, ?, ?, ?, ?, ?)",
			group.ID, email, i, rec.Name, rec.OrderID, rec.ApprovalLink, rec.Paid,
		)
		if err != nil {
			return fmt.Errorf("failed to insert payment record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetGroup retrieves a group by ID, including all payment records.
func (s *SQLiteStore) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	group := &models.Group{}
	var mode string
	err := s.db.QueryRowContext(ctx,
		"SELECT id, mode, recipient, budget, created_at FROM groups WHERE id = ?",
		groupID,
	).Scan(&group.ID, &mode, &group.Recipient, &group.Budget, &group.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	group.Mode = models.Mode(mode)
	group.Payments = make(map[string]*models.PaymentRecord)

	rows, err := s.db.QueryContext(ctx,
		"SELECT email, name, external_order_id, approval_link, paid FROM payments WHERE group_id = ? ORDER BY position",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var email string
		rec := &models.PaymentRecord{}
		if err := rows.Scan(&email, &rec.Name, &rec.OrderID, &rec.ApprovalLink, &rec.Paid); err != nil {
			return nil, fmt.Errorf("failed to scan payment record: %w", err)
		}
		group.Participants = append(group.Participants, email)
		group.Payments[email] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payment records: %w", err)
	}

	return group, nil
}

// ListGroups retrieves all groups, oldest first.
func (s *SQLiteStore) ListGroups(ctx context.Context) ([]*models.Group, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id FROM groups ORDER BY created_at, id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan group id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	groups := make([]*models.Group, 0, len(ids))
	for _, id := range ids {
		group, err := s.GetGroup(ctx, id)
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, nil
}
