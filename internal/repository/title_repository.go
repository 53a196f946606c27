package repository

import (
	"database/sql"
	"strconv"
	"strings"

	"reel-tracker/internal/models"
	"reel-tracker/internal/timeutil"
)

type titleDBTX interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

const titleColumns = `tmdb_id, name, media_type, release_year, genre_ids, genres,
	popularity, overview, is_watched, added_at, watched_at, rating`

// TitleRepository handles Title database operations. Rows store genre id
// and name lists comma-joined, the way the original spreadsheet rows did,
// so reconstruction re-splits them rather than re-resolving from the
// provider.
type TitleRepository struct {
	db titleDBTX
}

// NewTitleRepository creates a new TitleRepository
func NewTitleRepository(sqliteDB *SQLiteDB) *TitleRepository {
	return &TitleRepository{db: sqliteDB.db}
}

// Create inserts a new Title into the store. AddedAt is stamped when the
// caller has not set it.
func (r *TitleRepository) Create(title *models.Title) error {
	if title.AddedAt == "" {
		title.AddedAt = timeutil.Timestamp()
	}
	_, err := r.db.Exec(`
		INSERT INTO titles (`+titleColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, title.ID, title.Name, string(title.MediaType), title.ReleaseYear,
		joinInts(title.GenreIDs), joinStrings(title.Genres),
		title.Popularity, title.Overview,
		title.Watched, title.AddedAt, title.WatchedAt, title.Rating)
	return err
}

// Find retrieves a Title by its natural key. Returns (nil, nil) when the
// title is not in the list.
func (r *TitleRepository) Find(id string, mediaType models.MediaType) (*models.Title, error) {
	row := r.db.QueryRow(`
		SELECT `+titleColumns+` FROM titles WHERE tmdb_id = ? AND media_type = ?
	`, id, string(mediaType))
	title, err := scanTitle(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return title, nil
}

// GetByWatchStatus retrieves all Titles with the given watched flag, in
// insertion order.
func (r *TitleRepository) GetByWatchStatus(watched bool) ([]models.Title, error) {
	rows, err := r.db.Query(`
		SELECT `+titleColumns+` FROM titles WHERE is_watched = ? ORDER BY id
	`, watched)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var titles []models.Title
	for rows.Next() {
		title, err := scanTitle(rows)
		if err != nil {
			return nil, err
		}
		titles = append(titles, *title)
	}
	return titles, rows.Err()
}

// Update rewrites a Title's stored row. AddedAt is deliberately excluded:
// it records when the title first entered the list.
func (r *TitleRepository) Update(title *models.Title) error {
	_, err := r.db.Exec(`
		UPDATE titles
		SET name = ?, release_year = ?, genre_ids = ?, genres = ?, popularity = ?,
			overview = ?, is_watched = ?, watched_at = ?, rating = ?
		WHERE tmdb_id = ? AND media_type = ?
	`, title.Name, title.ReleaseYear, joinInts(title.GenreIDs), joinStrings(title.Genres),
		title.Popularity, title.Overview,
		title.Watched, title.WatchedAt, title.Rating,
		title.ID, string(title.MediaType))
	return err
}

// Delete removes a Title by its natural key
func (r *TitleRepository) Delete(id string, mediaType models.MediaType) error {
	_, err := r.db.Exec(`
		DELETE FROM titles WHERE tmdb_id = ? AND media_type = ?
	`, id, string(mediaType))
	return err
}

// Count returns the number of stored titles
func (r *TitleRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM titles`).Scan(&count)
	return count, err
}

// CountByWatchStatus returns the number of stored titles with the given
// watched flag
func (r *TitleRepository) CountByWatchStatus(watched bool) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM titles WHERE is_watched = ?`, watched).Scan(&count)
	return count, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanTitle reconstructs a Title from a stored row. This is the persisted
// factory: user state is restored verbatim, genre lists are re-split from
// their comma-joined storage form.
func scanTitle(row rowScanner) (*models.Title, error) {
	var (
		title            models.Title
		mediaType        string
		genreIDs, genres string
	)
	err := row.Scan(&title.ID, &title.Name, &mediaType, &title.ReleaseYear,
		&genreIDs, &genres, &title.Popularity, &title.Overview,
		&title.Watched, &title.AddedAt, &title.WatchedAt, &title.Rating)
	if err != nil {
		return nil, err
	}
	title.MediaType = models.MediaType(mediaType)
	title.GenreIDs = splitInts(genreIDs)
	title.Genres = splitStrings(genres)
	return &title, nil
}

// joinInts renders an id list in the stored comma-joined form
func joinInts(ids []int) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.Itoa(id))
	}
	return strings.Join(parts, ", ")
}

// splitInts parses a stored id list, dropping anything non-numeric
func splitInts(s string) []int {
	var ids []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func joinStrings(values []string) string {
	return strings.Join(values, ", ")
}

func splitStrings(s string) []string {
	var values []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		values = append(values, part)
	}
	return values
}
