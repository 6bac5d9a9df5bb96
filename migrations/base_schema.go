package migrations

import (
	"database/sql"
	"fmt"
)

// CreateBaseSchema creates the users, transactions and meals tables.
//
// Transactions carry a session_token rather than a user reference: the
// ledger predates registered accounts and partitions rows by the bare
// cookie token. Meal dates are stored as epoch milliseconds.
func CreateBaseSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			session_token TEXT NOT NULL UNIQUE,
			created_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS transactions (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			amount TEXT NOT NULL,
			session_token TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS meals (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id),
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			on_diet BOOLEAN NOT NULL DEFAULT 0,
			date INTEGER NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create base schema: %w", err)
	}

	return nil
}
