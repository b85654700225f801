package database

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

type DB struct {
	*sqlx.DB
}

// NewDB creates a new database connection
func NewDB(databaseURL string) (*DB, error) {
	if databaseURL == "" {
		databaseURL = "memoirly.db" // Default SQLite file
	}

	db, err := sqlx.Connect("sqlite3", databaseURL+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	dbWrapper := &DB{DB: db}

	// Initialize database schema
	if err := dbWrapper.createTables(); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	log.Println("Database connection established and tables initialized")
	return dbWrapper, nil
}

// createTables creates the necessary database tables
func (db *DB) createTables() error {
	// Users table
	usersTable := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT UNIQUE NOT NULL,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		display_name TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		last_login_at DATETIME,
		is_active BOOLEAN DEFAULT TRUE
	);`

	// Chapter packs are seeded from data files at startup; prompt_count is
	// what chapter completion is measured against.
	chaptersTable := `
	CREATE TABLE IF NOT EXISTS chapters (
		id TEXT PRIMARY KEY,
		collection TEXT NOT NULL,
		title TEXT NOT NULL,
		prompt_count INTEGER NOT NULL
	);`

	// Saved memories (one answered prompt each)
	memoriesTable := `
	CREATE TABLE IF NOT EXISTS memories (
		id TEXT PRIMARY KEY,
		user_id INTEGER NOT NULL,
		chapter_id TEXT NOT NULL,
		prompt_index INTEGER NOT NULL,
		question TEXT NOT NULL,
		answer TEXT NOT NULL,
		word_count INTEGER NOT NULL DEFAULT 0,
		time_to_complete INTEGER NOT NULL DEFAULT 0,
		decade INTEGER,
		has_audio BOOLEAN DEFAULT FALSE,
		has_photo BOOLEAN DEFAULT FALSE,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);`

	// One row per (user, calendar day) with any contribution. The UNIQUE
	// constraint makes activity writes idempotent per day.
	activityTable := `
	CREATE TABLE IF NOT EXISTS activity_days (
		user_id INTEGER NOT NULL,
		activity_date TEXT NOT NULL,
		UNIQUE(user_id, activity_date),
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);`

	// Unlock records. The UNIQUE constraint is the exactly-once guarantee:
	// concurrent evaluations racing on the same key get exactly one insert.
	unlocksTable := `
	CREATE TABLE IF NOT EXISTS achievement_unlocks (
		user_id INTEGER NOT NULL,
		achievement_key TEXT NOT NULL,
		unlocked_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(user_id, achievement_key),
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);`

	// Distinct people and places, normalized before insert
	peopleTable := `
	CREATE TABLE IF NOT EXISTS memory_people (
		user_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		UNIQUE(user_id, name),
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);`

	placesTable := `
	CREATE TABLE IF NOT EXISTS memory_places (
		user_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		UNIQUE(user_id, name),
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	);`

	// Create indexes for better performance
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_users_username ON users(username);`,
		`CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);`,
		`CREATE INDEX IF NOT EXISTS idx_memories_user_id ON memories(user_id);`,
		`CREATE INDEX IF NOT EXISTS idx_memories_chapter ON memories(user_id, chapter_id);`,
		`CREATE INDEX IF NOT EXISTS idx_activity_user_id ON activity_days(user_id);`,
		`CREATE INDEX IF NOT EXISTS idx_unlocks_user_id ON achievement_unlocks(user_id);`,
	}

	tables := []string{usersTable, chaptersTable, memoriesTable, activityTable, unlocksTable, peopleTable, placesTable}

	// Execute table creation
	for _, query := range tables {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	// Create indexes
	for _, index := range indexes {
		if _, err := db.Exec(index); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}
