package service

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"reel-tracker/internal/models"
	"reel-tracker/internal/timeutil"
	"reel-tracker/internal/tmdb"
)

const (
	fallbackName     = "No title available"
	fallbackOverview = "No overview available"
)

// GenreResolver maps provider genre ids to human-readable names.
type GenreResolver interface {
	Names(genreIDs []int, mediaType models.MediaType) []string
}

// WeightedPopularity combines raw popularity with vote-count confidence.
// The logarithm keeps titles with huge vote counts from dominating.
func WeightedPopularity(res tmdb.RawResult) float64 {
	return res.Popularity * math.Log10(float64(res.VoteCount)+1)
}

// TitleFromResult normalizes a raw provider record into a Title with fresh
// user state. Defaulting rules: movies carry title/release_date while TV
// shows carry name/first_air_date, either may be absent; missing media
// types become unknown; unparseable dates become "Unknown"; newlines are
// stripped from the overview.
func TitleFromResult(res tmdb.RawResult, mediaType models.MediaType, resolver GenreResolver) models.Title {
	name := res.Title
	if name == "" {
		name = res.Name
	}
	if name == "" {
		name = fallbackName
	}

	if mediaType == "" {
		mediaType = models.MediaTypeUnknown
		if res.MediaType != "" {
			mediaType = models.MediaType(res.MediaType)
		}
	}

	date := res.ReleaseDate
	if date == "" {
		date = res.FirstAirDate
	}
	year := "Unknown"
	if date != "" {
		year = timeutil.ExtractYear(date)
	}

	overview := strings.ReplaceAll(res.Overview, "\n", "")
	if overview == "" {
		overview = fallbackOverview
	}

	var genres []string
	if resolver != nil && len(res.GenreIDs) > 0 {
		genres = resolver.Names(res.GenreIDs, mediaType)
	}

	return models.Title{
		ID:          strconv.Itoa(res.ID),
		Name:        name,
		MediaType:   mediaType,
		ReleaseYear: year,
		GenreIDs:    res.GenreIDs,
		Genres:      genres,
		Popularity:  math.Round(WeightedPopularity(res)*100) / 100,
		Overview:    overview,
		Rating:      models.RatingUnrated,
		AddedAt:     timeutil.Timestamp(),
	}
}

// PrepareTitles filters, scores and converts raw provider results into
// display-ready Titles ordered by weighted popularity. When override is
// empty, records without a movie or tv media type are dropped (multi
// search mixes in people); a non-empty override skips the filter and
// stamps every record, which discover endpoints need since their records
// omit media_type.
func PrepareTitles(results []tmdb.RawResult, override models.MediaType, resolver GenreResolver) []models.Title {
	kept := results
	if override == "" {
		kept = filterByAllowedMediaType(results)
	}
	if len(kept) == 0 {
		return nil
	}

	sorted := make([]tmdb.RawResult, len(kept))
	copy(sorted, kept)
	sort.SliceStable(sorted, func(i, j int) bool {
		return WeightedPopularity(sorted[i]) > WeightedPopularity(sorted[j])
	})

	titles := make([]models.Title, 0, len(sorted))
	for _, res := range sorted {
		titles = append(titles, TitleFromResult(res, override, resolver))
	}
	return titles
}

// filterByAllowedMediaType keeps only movie and tv records
func filterByAllowedMediaType(results []tmdb.RawResult) []tmdb.RawResult {
	var kept []tmdb.RawResult
	for _, res := range results {
		if res.MediaType == string(models.MediaTypeMovie) || res.MediaType == string(models.MediaTypeTV) {
			kept = append(kept, res)
		}
	}
	return kept
}
