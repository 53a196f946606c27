package service

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"

	"reel-tracker/internal/models"
)

// For any list of titles, TopRated returns a subset whose every element is
// rated 3 or higher, excludes unrated titles, and is idempotent.
func TestTopRatedProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("output is a rating-threshold subset and idempotent", prop.ForAll(
		func(ratings []int) bool {
			titles := make([]models.Title, len(ratings))
			for i, rating := range ratings {
				titles[i] = models.Title{
					ID:      fmt.Sprintf("%d", i),
					Name:    fmt.Sprintf("Title %d", i),
					Watched: true,
					Rating:  rating,
				}
			}

			topRated := TopRated(titles)

			// Every element is rated >= 3 and appears in the input.
			seen := make(map[string]models.Title, len(titles))
			for _, title := range titles {
				seen[title.ID] = title
			}
			for _, title := range topRated {
				if title.Rating < 3 || !title.IsRated() {
					return false
				}
				if _, ok := seen[title.ID]; !ok {
					return false
				}
			}

			// Idempotent: filtering again changes nothing.
			twice := TopRated(topRated)
			if len(twice) != len(topRated) {
				return false
			}
			for i := range twice {
				if twice[i].ID != topRated[i].ID {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(models.RatingUnrated, 5)),
	))

	properties.TestingRun(t)
}

// For any list of titles, PartitionByMediaType splits it into two lists
// whose concatenation preserves the input as a multiset, with every
// matching element in the first and none in the second.
func TestPartitionByMediaTypeProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("partition is a stable two-way split", prop.ForAll(
		func(isMovie []bool) bool {
			titles := make([]models.Title, len(isMovie))
			for i, movie := range isMovie {
				mediaType := models.MediaTypeTV
				if movie {
					mediaType = models.MediaTypeMovie
				}
				titles[i] = models.Title{ID: fmt.Sprintf("%d", i), MediaType: mediaType}
			}

			match, nonMatch := PartitionByMediaType(titles, models.MediaTypeMovie)

			if len(match)+len(nonMatch) != len(titles) {
				return false
			}
			for _, title := range match {
				if title.MediaType != models.MediaTypeMovie {
					return false
				}
			}
			for _, title := range nonMatch {
				if title.MediaType == models.MediaTypeMovie {
					return false
				}
			}

			// Stability: each partition preserves input order, which for
			// unique IDs in input order means strictly increasing IDs.
			if !idsAscending(match) || !idsAscending(nonMatch) {
				return false
			}
			return true
		},
		gen.SliceOf(gen.Bool()),
	))

	properties.TestingRun(t)
}

// idsAscending checks numeric ID order for titles built with ascending ids
func idsAscending(titles []models.Title) bool {
	prev := -1
	for _, title := range titles {
		id, err := strconv.Atoi(title.ID)
		if err != nil || id <= prev {
			return false
		}
		prev = id
	}
	return true
}

func TestFilterByGenre(t *testing.T) {
	titles := []models.Title{
		{ID: "1", Genres: []string{"Drama", "Comedy"}},
		{ID: "2", Genres: []string{"Drama"}},
		{ID: "3", Genres: []string{"Action"}},
	}

	drama := FilterByGenre(titles, "Drama")
	assert.Len(t, drama, 2)
	assert.Equal(t, "1", drama[0].ID)
	assert.Equal(t, "2", drama[1].ID)

	// No match is a meaningful empty result, not an error condition.
	horror := FilterByGenre(titles, "Horror")
	assert.Empty(t, horror)

	// Matching is exact, not substring.
	assert.Empty(t, FilterByGenre(titles, "Dra"))
}

func TestPreferredMediaTypeAndGenre(t *testing.T) {
	titles := []models.Title{
		{ID: "1", MediaType: models.MediaTypeMovie, GenreIDs: []int{18, 35}},
		{ID: "2", MediaType: models.MediaTypeMovie, GenreIDs: []int{18}},
		{ID: "3", MediaType: models.MediaTypeTV, GenreIDs: []int{18}},
	}

	mediaType, genreID, ok := PreferredMediaTypeAndGenre(titles)
	assert.True(t, ok)
	assert.Equal(t, models.MediaTypeMovie, mediaType)
	assert.Equal(t, 18, genreID)
}

func TestPreferredMediaTypeAndGenreTieBreak(t *testing.T) {
	// (movie, 18) and (tv, 10765) both occur once; the first encountered wins.
	titles := []models.Title{
		{ID: "1", MediaType: models.MediaTypeMovie, GenreIDs: []int{18}},
		{ID: "2", MediaType: models.MediaTypeTV, GenreIDs: []int{10765}},
	}

	mediaType, genreID, ok := PreferredMediaTypeAndGenre(titles)
	assert.True(t, ok)
	assert.Equal(t, models.MediaTypeMovie, mediaType)
	assert.Equal(t, 18, genreID)
}

func TestPreferredMediaTypeAndGenreNone(t *testing.T) {
	_, _, ok := PreferredMediaTypeAndGenre(nil)
	assert.False(t, ok)

	// Titles without genre ids or without a usable media type derive nothing.
	_, _, ok = PreferredMediaTypeAndGenre([]models.Title{
		{ID: "1", MediaType: models.MediaTypeMovie},
		{ID: "2", MediaType: models.MediaTypeUnknown, GenreIDs: []int{18}},
	})
	assert.False(t, ok)
}
