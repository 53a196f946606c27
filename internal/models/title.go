package models

import (
	"fmt"

	"reel-tracker/internal/timeutil"
)

// MediaType identifies the kind of title a provider record describes.
type MediaType string

const (
	MediaTypeMovie   MediaType = "movie"
	MediaTypeTV      MediaType = "tv"
	MediaTypeUnknown MediaType = "unknown"
)

// RatingUnrated is the sentinel for a title the user has not rated yet.
// Valid ratings are 1 through 5.
const RatingUnrated = 0

// Title represents a movie or TV show combining provider metadata with
// the user's local list state. Metadata fields are set once at creation
// and treated as read-only; user state changes only through the mutators.
type Title struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	MediaType   MediaType `json:"media_type"`
	ReleaseYear string    `json:"release_year"`
	GenreIDs    []int     `json:"genre_ids"`
	Genres      []string  `json:"genres"`
	Popularity  float64   `json:"popularity"`
	Overview    string    `json:"overview"`

	Watched   bool   `json:"watched"`
	AddedAt   string `json:"added_at"`
	WatchedAt string `json:"watched_at"`
	Rating    int    `json:"rating"`
}

// Key returns the natural key of a title. Provider IDs are only unique
// within a media type, so a movie and a show may share the same numeric ID.
func (t *Title) Key() string {
	return fmt.Sprintf("%s/%s", t.MediaType, t.ID)
}

// IsRated reports whether the user has assigned a rating.
func (t *Title) IsRated() bool {
	return t.Rating != RatingUnrated
}

// ToggleWatched flips the watched flag. Transitioning to watched stamps
// WatchedAt and optionally records a rating; transitioning back clears
// WatchedAt and the rating. AddedAt is never touched.
func (t *Title) ToggleWatched(rating int) error {
	t.Watched = !t.Watched
	if !t.Watched {
		t.WatchedAt = ""
		t.Rating = RatingUnrated
		return nil
	}
	t.WatchedAt = timeutil.Timestamp()
	if rating != RatingUnrated {
		return t.SetRating(rating)
	}
	return nil
}

// SetRating records the user's rating. Out-of-range values are rejected
// and leave the title unchanged.
func (t *Title) SetRating(rating int) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5, got %d", rating)
	}
	t.Rating = rating
	return nil
}
