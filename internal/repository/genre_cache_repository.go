package repository

import (
	"database/sql"
)

// GenreCacheRepository stores raw TMDB genre list snapshots per media type.
type GenreCacheRepository struct {
	db *sql.DB
}

// NewGenreCacheRepository creates a new GenreCacheRepository.
func NewGenreCacheRepository(sqliteDB *SQLiteDB) *GenreCacheRepository {
	return &GenreCacheRepository{db: sqliteDB.db}
}

// Get returns the cached payload JSON for a media type.
func (r *GenreCacheRepository) Get(mediaType string) (string, bool, error) {
	var payload string
	err := r.db.QueryRow(`
		SELECT payload_json
		FROM genre_cache
		WHERE media_type = ?
	`, mediaType).Scan(&payload)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return payload, true, nil
}

// Upsert writes the latest genre list payload JSON.
func (r *GenreCacheRepository) Upsert(mediaType, payloadJSON, fetchedAt, language string) error {
	_, err := r.db.Exec(`
		INSERT INTO genre_cache (media_type, payload_json, fetched_at, language)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(media_type) DO UPDATE SET
			payload_json = excluded.payload_json,
			fetched_at = excluded.fetched_at,
			language = excluded.language
	`, mediaType, payloadJSON, fetchedAt, language)
	return err
}
