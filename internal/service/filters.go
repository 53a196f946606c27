package service

import (
	"reel-tracker/internal/models"
)

// minimum rating for a title to count as liked
const topRatedThreshold = 3

// TopRated returns the titles the user rated 3 or higher. Unrated titles
// are excluded, not treated as zero. Input order is preserved.
func TopRated(titles []models.Title) []models.Title {
	var topRated []models.Title
	for _, title := range titles {
		if title.IsRated() && title.Rating >= topRatedThreshold {
			topRated = append(topRated, title)
		}
	}
	return topRated
}

// FilterByGenre returns the titles whose genre names include genre.
// An empty result is a meaningful outcome, not an error: callers fall
// back to ranking the unfiltered list.
func FilterByGenre(titles []models.Title, genre string) []models.Title {
	var matched []models.Title
	for _, title := range titles {
		for _, g := range title.Genres {
			if g == genre {
				matched = append(matched, title)
				break
			}
		}
	}
	return matched
}

// PartitionByMediaType splits titles into those matching the target media
// type and the rest. The split is stable: relative order is preserved
// within each partition.
func PartitionByMediaType(titles []models.Title, target models.MediaType) (match, nonMatch []models.Title) {
	for _, title := range titles {
		if title.MediaType == target {
			match = append(match, title)
		} else {
			nonMatch = append(nonMatch, title)
		}
	}
	return match, nonMatch
}

type mediaTypeGenre struct {
	mediaType models.MediaType
	genreID   int
}

// PreferredMediaTypeAndGenre determines the user's preferred (media type,
// genre id) pair by frequency across all title/genre combinations. Ties
// break toward the first pair encountered in iteration order. Returns
// ok=false when no title carries both a media type and a genre id.
func PreferredMediaTypeAndGenre(titles []models.Title) (models.MediaType, int, bool) {
	counts := make(map[mediaTypeGenre]int)
	for _, title := range titles {
		if title.MediaType == "" || title.MediaType == models.MediaTypeUnknown {
			continue
		}
		for _, genreID := range title.GenreIDs {
			counts[mediaTypeGenre{title.MediaType, genreID}]++
		}
	}
	if len(counts) == 0 {
		return "", 0, false
	}

	// Walk titles in order rather than ranging over the map so the
	// tie-break is stable.
	var best mediaTypeGenre
	bestCount := 0
	for _, title := range titles {
		for _, genreID := range title.GenreIDs {
			pair := mediaTypeGenre{title.MediaType, genreID}
			if count, ok := counts[pair]; ok && count > bestCount {
				best = pair
				bestCount = count
			}
		}
	}
	return best.mediaType, best.genreID, true
}
