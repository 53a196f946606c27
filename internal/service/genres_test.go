package service

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"

	"reel-tracker/internal/models"
)

// small genre alphabet so generated titles actually overlap
var genreAlphabet = gen.SliceOf(gen.OneConstOf(
	"Drama", "Comedy", "Action", "Horror", "Sci-Fi", "Romance",
))

// For any two titles, genre similarity is symmetric.
func TestGenreSimilaritySymmetry(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("similarity(a, b) == similarity(b, a)", prop.ForAll(
		func(genresA, genresB []string) bool {
			a := models.Title{ID: "a", Genres: genresA}
			b := models.Title{ID: "b", Genres: genresB}
			return GenreSimilarity(a, b) == GenreSimilarity(b, a)
		},
		genreAlphabet,
		genreAlphabet,
	))

	properties.TestingRun(t)
}

// For any title, self-similarity equals the size of its genre set
// (duplicates collapse).
func TestGenreSimilaritySelf(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("similarity(a, a) == |set(a.genres)|", prop.ForAll(
		func(genres []string) bool {
			unique := make(map[string]bool)
			for _, genre := range genres {
				unique[genre] = true
			}
			a := models.Title{ID: "a", Genres: genres}
			return GenreSimilarity(a, a) == len(unique)
		},
		genreAlphabet,
	))

	properties.TestingRun(t)
}

func TestGenreSimilarityDisjoint(t *testing.T) {
	a := models.Title{Genres: []string{"Drama", "Comedy"}}
	b := models.Title{Genres: []string{"Horror"}}
	assert.Equal(t, 0, GenreSimilarity(a, b))

	assert.Equal(t, 0, GenreSimilarity(a, models.Title{}))
	assert.Equal(t, 0, GenreSimilarity(models.Title{}, models.Title{}))
}

func TestPreferredGenre(t *testing.T) {
	// Drama occurs twice, Comedy and Action once each.
	titles := []models.Title{
		{ID: "a", Genres: []string{"Drama", "Comedy"}},
		{ID: "b", Genres: []string{"Drama"}},
		{ID: "c", Genres: []string{"Action"}},
	}

	genre, ok := PreferredGenre(titles)
	assert.True(t, ok)
	assert.Equal(t, "Drama", genre)
}

func TestPreferredGenreTieBreak(t *testing.T) {
	// Comedy and Drama tie; the first encountered in iteration order wins.
	titles := []models.Title{
		{ID: "a", Genres: []string{"Comedy"}},
		{ID: "b", Genres: []string{"Drama"}},
	}

	genre, ok := PreferredGenre(titles)
	assert.True(t, ok)
	assert.Equal(t, "Comedy", genre)
}

func TestPreferredGenreNone(t *testing.T) {
	_, ok := PreferredGenre(nil)
	assert.False(t, ok)

	_, ok = PreferredGenre([]models.Title{{ID: "a"}, {ID: "b"}})
	assert.False(t, ok)
}
