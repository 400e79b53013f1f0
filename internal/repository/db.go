// Package repository provides data access interfaces and their SQLite-backed
// implementations.
package repository

import (
	"fmt"

	"github.com/pocketbase/dbx"
	_ "modernc.org/sqlite"
)

const busyTimeoutMS = 5000

// Open initializes the SQLite database at the provided path and ensures the
// schema exists. Call Close on the returned handle when done.
func Open(path string) (*dbx.DB, error) {
	if path == "" {
		path = "socialnet.db"
	}

	db, err := dbx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	db.DB().SetMaxOpenConns(1)
	db.DB().SetMaxIdleConns(1)

	if _, err := db.NewQuery(fmt.Sprintf("PRAGMA busy_timeout=%d", busyTimeoutMS)).Execute(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}
	if _, err := db.NewQuery("PRAGMA foreign_keys=ON").Execute(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// migrate creates all tables if they do not exist yet.
func migrate(db *dbx.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_id INTEGER PRIMARY KEY AUTOINCREMENT,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			username TEXT NOT NULL UNIQUE,
			role TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			alias TEXT NOT NULL DEFAULT '',
			date_of_birth DATE,
			gender TEXT NOT NULL DEFAULT '',
			avatar TEXT NOT NULL DEFAULT '',
			is_logged BOOLEAN NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS posts (
			post_id INTEGER PRIMARY KEY AUTOINCREMENT,
			content TEXT NOT NULL,
			user_id INTEGER REFERENCES users(user_id) ON DELETE SET NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS post_ratings (
			post_rating_id INTEGER PRIMARY KEY AUTOINCREMENT,
			rating TEXT NOT NULL,
			user_id INTEGER NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
			post_id INTEGER NOT NULL REFERENCES posts(post_id) ON DELETE CASCADE,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS notifications (
			notification_id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			message TEXT NOT NULL,
			is_read BOOLEAN NOT NULL DEFAULT 0,
			user_id INTEGER NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
			is_active BOOLEAN NOT NULL DEFAULT 1,
			created_by TEXT NOT NULL,
			notification_channel TEXT NOT NULL,
			notification_type TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS audit_logs (
			audit_log_id INTEGER PRIMARY KEY AUTOINCREMENT,
			entity TEXT NOT NULL,
			action TEXT NOT NULL,
			detail TEXT NOT NULL DEFAULT '',
			ip_address TEXT NOT NULL DEFAULT '',
			created_by INTEGER NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS request_logs (
			request_log_id INTEGER PRIMARY KEY AUTOINCREMENT,
			endpoint TEXT NOT NULL,
			method TEXT NOT NULL,
			status_code INTEGER NOT NULL,
			response_time INTEGER NOT NULL DEFAULT 0,
			ip_address TEXT NOT NULL DEFAULT '',
			user_agent TEXT NOT NULL DEFAULT '',
			username TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_posts_user ON posts(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_ratings_post ON post_ratings(post_id)`,
		`CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_audit_logs_entity ON audit_logs(entity)`,
	}

	for _, stmt := range stmts {
		if _, err := db.NewQuery(stmt).Execute(); err != nil {
			return fmt.Errorf("schema migration failed: %w", err)
		}
	}
	return nil
}
