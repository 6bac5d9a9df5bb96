package migrations

import (
	"database/sql"
	"fmt"
)

// AddOwnerIndexes indexes the owner filters applied on every request:
// transactions by session token, meals by user and date for the
// date-descending listing.
func AddOwnerIndexes(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_transactions_session_token
			ON transactions(session_token);

		CREATE INDEX IF NOT EXISTS idx_meals_user_date
			ON meals(user_id, date DESC);
	`)
	if err != nil {
		return fmt.Errorf("failed to add owner indexes: %w", err)
	}

	return nil
}
