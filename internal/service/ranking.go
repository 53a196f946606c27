package service

import (
	"fmt"
	"sort"

	"reel-tracker/internal/models"
)

// Relevance sort modes. Watched mode orders by the user's own ratings and
// viewing recency; watchlist mode orders by genre similarity to a
// reference title.
const (
	ModeWatched   = "watched"
	ModeWatchlist = "watchlist"
)

// SortByRelevance returns a new slice ordered by mode-dependent relevance.
//   - ModeWatched: rating descending, then watched timestamp descending.
//     The reference title is unused.
//   - ModeWatchlist: genre similarity to ref descending, then popularity
//     descending. ref is required.
//
// An unknown mode, or watchlist mode without a reference, is a caller bug
// and returns an error rather than silently passing input through.
func SortByRelevance(titles []models.Title, mode string, ref *models.Title) ([]models.Title, error) {
	sorted := make([]models.Title, len(titles))
	copy(sorted, titles)

	switch {
	case mode == ModeWatched:
		sort.SliceStable(sorted, func(i, j int) bool {
			if sorted[i].Rating != sorted[j].Rating {
				return sorted[i].Rating > sorted[j].Rating
			}
			// Timestamps sort lexicographically in chronological order.
			return sorted[i].WatchedAt > sorted[j].WatchedAt
		})
	case mode == ModeWatchlist && ref != nil:
		sort.SliceStable(sorted, func(i, j int) bool {
			si, sj := GenreSimilarity(sorted[i], *ref), GenreSimilarity(sorted[j], *ref)
			if si != sj {
				return si > sj
			}
			return sorted[i].Popularity > sorted[j].Popularity
		})
	case mode == ModeWatchlist:
		return nil, fmt.Errorf("relevance sort: mode %q requires a reference title", mode)
	default:
		return nil, fmt.Errorf("relevance sort: unknown mode %q", mode)
	}

	return sorted, nil
}

// TopByRelevance returns the most relevant title under SortByRelevance,
// or nil for an empty list.
func TopByRelevance(titles []models.Title, mode string, ref *models.Title) (*models.Title, error) {
	sorted, err := SortByRelevance(titles, mode, ref)
	if err != nil {
		return nil, err
	}
	if len(sorted) == 0 {
		return nil, nil
	}
	return &sorted[0], nil
}

// ReorderByMediaType moves titles of the preferred media type to the
// front, keeping relevance order within each partition.
func ReorderByMediaType(titles []models.Title, preferred models.MediaType) []models.Title {
	match, nonMatch := PartitionByMediaType(titles, preferred)
	return append(match, nonMatch...)
}

// SortByPopularity returns a new slice ordered by popularity descending.
func SortByPopularity(titles []models.Title) []models.Title {
	sorted := make([]models.Title, len(titles))
	copy(sorted, titles)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Popularity > sorted[j].Popularity
	})
	return sorted
}
