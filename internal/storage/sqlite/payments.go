package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mmynk/giftpool/internal/storage"
)

// FindByOrderID resolves a gateway order ID to its (groupID, email).
// Records whose order creation failed carry an empty order ID and are
// never matched.
func (s *SQLiteStore) FindByOrderID(ctx context.Context, orderID string) (string, string, error) {
	if orderID == "" {
		return "", "", fmt.Errorf("empty order id: %w", storage.ErrNotFound)
	}

	var groupID, email string
	err := s.db.QueryRowContext(ctx,
		"SELECT group_id, email FROM payments WHERE external_order_id = ?",
		orderID,
	).Scan(&groupID, &email)
	if err == sql.ErrNoRows {
		return "", "", fmt.Errorf("order %s: %w", orderID, storage.ErrNotFound)
	}
	if err != nil {
		return "", "", fmt.Errorf("failed to find order: %w", err)
	}
	return groupID, email, nil
}

// MarkPaid flips one payment record to paid. The WHERE paid = 0 guard makes
// the read-modify-write atomic: of any number of concurrent callers for the
// same record, exactly one sees an affected row.
func (s *SQLiteStore) MarkPaid(ctx context.Context, groupID, email string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE payments SET paid = 1 WHERE group_id = ? AND email = ? AND paid = 0",
		groupID, email,
	)
	if err != nil {
		return false, fmt.Errorf("failed to mark paid: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected > 0, nil
}
