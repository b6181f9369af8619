package sqlite

import "database/sql"

// migrations contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
// The payments order-id index backs FindByOrderID so webhook correlation
// is a lookup, not a scan over every group.
const schema = `
CREATE TABLE IF NOT EXISTS groups (
    id TEXT PRIMARY KEY,
    mode TEXT NOT NULL,
    recipient TEXT NOT NULL,
    budget INTEGER NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS payments (
    group_id TEXT NOT NULL,
    email TEXT NOT NULL,
    position INTEGER NOT NULL,
    name TEXT NOT NULL,
    external_order_id TEXT NOT NULL DEFAULT '',
    approval_link TEXT NOT NULL DEFAULT '#',
    paid INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (group_id, email),
    FOREIGN KEY (group_id) REFERENCES groups(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_payments_group_id ON payments(group_id);
CREATE INDEX IF NOT EXISTS idx_payments_order_id ON payments(external_order_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
