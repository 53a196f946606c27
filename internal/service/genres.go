package service

import (
	"reel-tracker/internal/models"
)

// PreferredGenre determines the user's preferred genre name by plain
// occurrence count across all title/genre combinations. Ties break toward
// the first genre encountered in iteration order. Returns ok=false when
// the list is empty or no title carries genres.
func PreferredGenre(titles []models.Title) (string, bool) {
	counts := make(map[string]int)
	for _, title := range titles {
		for _, genre := range title.Genres {
			counts[genre]++
		}
	}
	if len(counts) == 0 {
		return "", false
	}

	var best string
	bestCount := 0
	for _, title := range titles {
		for _, genre := range title.Genres {
			if count := counts[genre]; count > bestCount {
				best = genre
				bestCount = count
			}
		}
	}
	return best, true
}

// GenreSimilarity scores two titles by the size of their shared genre set.
// Symmetric; zero when disjoint or either title has no genres.
func GenreSimilarity(a, b models.Title) int {
	if len(a.Genres) == 0 || len(b.Genres) == 0 {
		return 0
	}
	set := make(map[string]bool, len(a.Genres))
	for _, genre := range a.Genres {
		set[genre] = true
	}
	shared := make(map[string]bool)
	for _, genre := range b.Genres {
		if set[genre] {
			shared[genre] = true
		}
	}
	return len(shared)
}
