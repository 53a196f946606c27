package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reel-tracker/internal/timeutil"
)

func fixedClock(t *testing.T, value string) {
	t.Helper()
	parsed, err := time.Parse(timeutil.TimestampLayout, value)
	require.NoError(t, err)
	timeutil.SetNowFunc(func() time.Time { return parsed })
	t.Cleanup(func() { timeutil.SetNowFunc(nil) })
}

func TestToggleWatched(t *testing.T) {
	fixedClock(t, "2025-08-01 19:30:00")

	title := Title{ID: "1", MediaType: MediaTypeMovie, AddedAt: "2025-07-01 10:00:00"}

	require.NoError(t, title.ToggleWatched(4))
	assert.True(t, title.Watched)
	assert.Equal(t, "2025-08-01 19:30:00", title.WatchedAt)
	assert.Equal(t, 4, title.Rating)
	// Toggling never touches the added timestamp.
	assert.Equal(t, "2025-07-01 10:00:00", title.AddedAt)

	// Toggling back clears the watched timestamp and the rating.
	require.NoError(t, title.ToggleWatched(RatingUnrated))
	assert.False(t, title.Watched)
	assert.Empty(t, title.WatchedAt)
	assert.Equal(t, RatingUnrated, title.Rating)
	assert.False(t, title.IsRated())
}

func TestToggleWatchedWithoutRating(t *testing.T) {
	fixedClock(t, "2025-08-01 19:30:00")

	title := Title{ID: "1", MediaType: MediaTypeTV}
	require.NoError(t, title.ToggleWatched(RatingUnrated))

	assert.True(t, title.Watched)
	assert.False(t, title.IsRated())
}

func TestSetRatingValidation(t *testing.T) {
	title := Title{ID: "1", MediaType: MediaTypeMovie, Watched: true, Rating: 3}

	for _, invalid := range []int{-1, 0, 6, 11} {
		err := title.SetRating(invalid)
		assert.Error(t, err)
		// Rejected ratings leave the title untouched.
		assert.Equal(t, 3, title.Rating)
	}

	require.NoError(t, title.SetRating(5))
	assert.Equal(t, 5, title.Rating)
}

func TestKey(t *testing.T) {
	movie := Title{ID: "603", MediaType: MediaTypeMovie}
	show := Title{ID: "603", MediaType: MediaTypeTV}

	// Provider IDs collide across media types; the key must not.
	assert.NotEqual(t, movie.Key(), show.Key())
	assert.Equal(t, "movie/603", movie.Key())
}
