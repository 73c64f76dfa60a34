package data

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// NewDB opens the sqlite database and bootstraps the schema.
func NewDB(dbPath string) (*sql.DB, error) {
	// Make sure the directory exists
	dir := filepath.Dir(dbPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	// Enable foreign keys on every pooled connection, not just the first.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			is_expert INTEGER NOT NULL DEFAULT 0,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			gender TEXT NOT NULL,
			birth_date TEXT,
			email TEXT NOT NULL UNIQUE COLLATE NOCASE,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create users table: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS domains (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create domains table: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS user_domain (
			user_id TEXT NOT NULL,
			domain_id TEXT NOT NULL,
			PRIMARY KEY (user_id, domain_id),
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
			FOREIGN KEY (domain_id) REFERENCES domains(id) ON DELETE CASCADE
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create user_domain table: %w", err)
	}

	db.Exec("CREATE INDEX IF NOT EXISTS idx_user_domain_domain_id ON user_domain(domain_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_domains_name ON domains(name)")

	return db, nil
}
