package repository

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reel-tracker/internal/models"
)

func newTestDB(t *testing.T) *SQLiteDB {
	t.Helper()
	db, err := NewSQLiteDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.InitSchema())
	return db
}

// User state and genre lists written to the store must come back exactly:
// string timestamps, the unrated sentinel and comma-joined genre lists
// all round-trip.
func TestTitleRoundTrip(t *testing.T) {
	repo := NewTitleRepository(newTestDB(t))

	original := models.Title{
		ID:          "603",
		Name:        "The Matrix",
		MediaType:   models.MediaTypeMovie,
		ReleaseYear: "1999",
		GenreIDs:    []int{28, 878},
		Genres:      []string{"Action", "Science Fiction"},
		Popularity:  82.49,
		Overview:    "A computer hacker learns about the true nature of reality.",
		Watched:     true,
		AddedAt:     "2025-07-01 10:00:00",
		WatchedAt:   "2025-07-15 21:30:00",
		Rating:      5,
	}
	require.NoError(t, repo.Create(&original))

	restored, err := repo.Find("603", models.MediaTypeMovie)
	require.NoError(t, err)
	require.NotNil(t, restored)
	assert.Equal(t, original, *restored)
}

func TestTitleRoundTripUnrated(t *testing.T) {
	repo := NewTitleRepository(newTestDB(t))

	original := models.Title{
		ID:        "1399",
		Name:      "Game of Thrones",
		MediaType: models.MediaTypeTV,
		AddedAt:   "2025-07-01 10:00:00",
	}
	require.NoError(t, repo.Create(&original))

	restored, err := repo.Find("1399", models.MediaTypeTV)
	require.NoError(t, err)
	require.NotNil(t, restored)
	assert.False(t, restored.Watched)
	assert.Empty(t, restored.WatchedAt)
	assert.Equal(t, models.RatingUnrated, restored.Rating)
	assert.Empty(t, restored.GenreIDs)
	assert.Empty(t, restored.Genres)
}

func TestCreateStampsAddedAt(t *testing.T) {
	repo := NewTitleRepository(newTestDB(t))

	title := models.Title{ID: "1", Name: "X", MediaType: models.MediaTypeMovie}
	require.NoError(t, repo.Create(&title))
	assert.NotEmpty(t, title.AddedAt)
}

// The natural key is (id, media type): a movie and a show sharing a
// provider id are distinct rows.
func TestNaturalKeyAcrossMediaTypes(t *testing.T) {
	repo := NewTitleRepository(newTestDB(t))

	movie := models.Title{ID: "603", Name: "Movie", MediaType: models.MediaTypeMovie}
	show := models.Title{ID: "603", Name: "Show", MediaType: models.MediaTypeTV}
	require.NoError(t, repo.Create(&movie))
	require.NoError(t, repo.Create(&show))

	// A second movie with the same id violates the unique key.
	duplicate := models.Title{ID: "603", Name: "Movie again", MediaType: models.MediaTypeMovie}
	assert.Error(t, repo.Create(&duplicate))

	found, err := repo.Find("603", models.MediaTypeTV)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Show", found.Name)
}

func TestFindMissing(t *testing.T) {
	repo := NewTitleRepository(newTestDB(t))

	found, err := repo.Find("404", models.MediaTypeMovie)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestGetByWatchStatusAndCounts(t *testing.T) {
	repo := NewTitleRepository(newTestDB(t))

	for _, title := range []models.Title{
		{ID: "1", Name: "A", MediaType: models.MediaTypeMovie, Watched: true, Rating: 4},
		{ID: "2", Name: "B", MediaType: models.MediaTypeMovie},
		{ID: "3", Name: "C", MediaType: models.MediaTypeTV},
	} {
		require.NoError(t, repo.Create(&title))
	}

	watched, err := repo.GetByWatchStatus(true)
	require.NoError(t, err)
	require.Len(t, watched, 1)
	assert.Equal(t, "A", watched[0].Name)

	watchlist, err := repo.GetByWatchStatus(false)
	require.NoError(t, err)
	assert.Len(t, watchlist, 2)

	total, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, total)

	watchedCount, err := repo.CountByWatchStatus(true)
	require.NoError(t, err)
	assert.Equal(t, 1, watchedCount)
}

func TestUpdatePreservesAddedAt(t *testing.T) {
	repo := NewTitleRepository(newTestDB(t))

	title := models.Title{ID: "1", Name: "A", MediaType: models.MediaTypeMovie, AddedAt: "2025-07-01 10:00:00"}
	require.NoError(t, repo.Create(&title))

	title.Watched = true
	title.WatchedAt = "2025-08-01 20:00:00"
	title.Rating = 4
	title.AddedAt = "2099-01-01 00:00:00" // must be ignored by Update
	require.NoError(t, repo.Update(&title))

	restored, err := repo.Find("1", models.MediaTypeMovie)
	require.NoError(t, err)
	require.NotNil(t, restored)
	assert.True(t, restored.Watched)
	assert.Equal(t, 4, restored.Rating)
	assert.Equal(t, "2025-07-01 10:00:00", restored.AddedAt)
}

func TestDelete(t *testing.T) {
	repo := NewTitleRepository(newTestDB(t))

	title := models.Title{ID: "1", Name: "A", MediaType: models.MediaTypeMovie}
	require.NoError(t, repo.Create(&title))
	require.NoError(t, repo.Delete("1", models.MediaTypeMovie))

	found, err := repo.Find("1", models.MediaTypeMovie)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestGenreCacheRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewGenreCacheRepository(db)

	_, ok, err := repo.Get("movie")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Upsert("movie", `[{"id":18,"name":"Drama"}]`, "2025-08-01 10:00:00", "en-US"))

	payload, ok, err := repo.Get("movie")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Contains(t, payload, "Drama")

	// Upsert replaces the snapshot.
	require.NoError(t, repo.Upsert("movie", `[]`, "2025-08-02 10:00:00", "en-US"))
	payload, ok, err = repo.Get("movie")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", payload)
}
