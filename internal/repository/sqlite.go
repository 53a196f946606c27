package repository

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteDB wraps the database connection
type SQLiteDB struct {
	db *sql.DB
}

// NewSQLiteDB creates a new SQLite database connection with connection pool settings
func NewSQLiteDB(dbPath string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// SQLite benefits from limited connections due to write locking
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &SQLiteDB{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

// InitSchema creates the database tables
func (s *SQLiteDB) InitSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS titles (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		tmdb_id TEXT NOT NULL,
		name TEXT NOT NULL,
		media_type TEXT NOT NULL,
		release_year TEXT DEFAULT 'Unknown',
		genre_ids TEXT DEFAULT '',
		genres TEXT DEFAULT '',
		popularity REAL DEFAULT 0,
		overview TEXT DEFAULT '',
		is_watched BOOLEAN DEFAULT FALSE,
		added_at TEXT NOT NULL,
		watched_at TEXT DEFAULT '',
		rating INTEGER DEFAULT 0,
		UNIQUE(tmdb_id, media_type)
	);

	CREATE TABLE IF NOT EXISTS genre_cache (
		media_type TEXT PRIMARY KEY,
		payload_json TEXT NOT NULL,
		fetched_at TEXT NOT NULL,
		language TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_titles_watched ON titles(is_watched);
	CREATE INDEX IF NOT EXISTS idx_titles_key ON titles(tmdb_id, media_type);
	`

	_, err := s.db.Exec(schema)
	return err
}
