package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reel-tracker/internal/models"
	"reel-tracker/internal/repository"
	"reel-tracker/internal/tmdb"
)

func newTestClient(baseURL string) *tmdb.Client {
	client := tmdb.NewClient("test-api-key")
	client.SetBaseURL(baseURL)
	return client
}

func newCatalogFixture(t *testing.T) (*GenreCatalog, *repository.GenreCacheRepository, *int) {
	t.Helper()

	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{
			"genres": []map[string]any{
				{"id": 18, "name": "Drama"},
				{"id": 35, "name": "Comedy"},
			},
		})
	}))
	t.Cleanup(server.Close)

	db, err := repository.NewSQLiteDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.InitSchema())

	client := newTestClient(server.URL)
	repo := repository.NewGenreCacheRepository(db)
	return NewGenreCatalog(client, repo), repo, &calls
}

func TestGenreCatalogResolvesAndDrops(t *testing.T) {
	catalog, _, _ := newCatalogFixture(t)

	// 999 has no mapping and is dropped silently.
	names := catalog.Names([]int{18, 999, 35}, models.MediaTypeMovie)
	assert.Equal(t, []string{"Drama", "Comedy"}, names)
}

func TestGenreCatalogCachesSnapshot(t *testing.T) {
	catalog, repo, calls := newCatalogFixture(t)

	catalog.Names([]int{18}, models.MediaTypeMovie)
	catalog.Names([]int{35}, models.MediaTypeMovie)
	assert.Equal(t, 1, *calls)

	// A fresh catalog over the same store reads the SQLite snapshot
	// instead of fetching again.
	fresh := NewGenreCatalog(newTestClient("http://127.0.0.1:0"), repo)
	names := fresh.Names([]int{18}, models.MediaTypeMovie)
	assert.Equal(t, []string{"Drama"}, names)
	assert.Equal(t, 1, *calls)
}

func TestGenreCatalogUnknownMediaType(t *testing.T) {
	catalog, _, calls := newCatalogFixture(t)

	// No genre list exists for unknown; resolution yields no names.
	assert.Nil(t, catalog.Names([]int{18}, models.MediaTypeUnknown))
	assert.Equal(t, 0, *calls)
}
