package database

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// ConnectSQLite opens a SQLite database in WAL mode. Use ":memory:" for a
// private in-memory database (one per connection).
func ConnectSQLite(dbName string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(500)", dbName))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", dbName, err)
	}
	return db, nil
}
