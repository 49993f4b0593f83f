package database

import (
	"database/sql"

	_ "modernc.org/sqlite" // SQLite driver
)

// New creates a new database connection pool.
func New(dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dataSourceName+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate runs the SQL statements to set up the database schema.
func Migrate(db *sql.DB) error {
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		phone TEXT,
		education TEXT,
		role TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		avatar_id TEXT NOT NULL,
		avatar_url TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS blogs (
		id TEXT NOT NULL PRIMARY KEY,
		title TEXT NOT NULL,
		intro TEXT NOT NULL,
		category TEXT NOT NULL,
		main_image_id TEXT NOT NULL,
		main_image_url TEXT NOT NULL,
		para_one_image_id TEXT,
		para_one_image_url TEXT,
		para_one_title TEXT,
		para_one_description TEXT,
		para_two_image_id TEXT,
		para_two_image_url TEXT,
		para_two_title TEXT,
		para_two_description TEXT,
		created_by TEXT NOT NULL REFERENCES users(id),
		author_name TEXT NOT NULL,
		author_avatar TEXT NOT NULL,
		published INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS events (
		id TEXT NOT NULL PRIMARY KEY,
		type TEXT NOT NULL,
		level TEXT NOT NULL,
		message TEXT NOT NULL,
		subject_id TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS orphan_assets (
		public_id TEXT NOT NULL PRIMARY KEY,
		reason TEXT NOT NULL,
		queued_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := db.Exec(sqlStmt)
	return err
}
