package service

import (
	"encoding/json"
	"fmt"
	"log"

	"reel-tracker/internal/models"
	"reel-tracker/internal/repository"
	"reel-tracker/internal/timeutil"
	"reel-tracker/internal/tmdb"
)

const genreCacheLanguage = "en-US"

// GenreCatalog resolves provider genre ids to names. Lookups hit an
// in-memory map first, then the SQLite snapshot, then the provider; the
// provider response is written back to both.
type GenreCatalog struct {
	client *tmdb.Client
	repo   *repository.GenreCacheRepository
	memo   map[models.MediaType]map[int]string
}

// NewGenreCatalog creates a new GenreCatalog.
func NewGenreCatalog(client *tmdb.Client, repo *repository.GenreCacheRepository) *GenreCatalog {
	return &GenreCatalog{
		client: client,
		repo:   repo,
		memo:   make(map[models.MediaType]map[int]string),
	}
}

// Names maps genre ids to names for a media type. Unmapped ids are
// dropped silently, so the result may be shorter than the input. A
// resolution failure yields nil: titles then simply carry no genre names.
func (c *GenreCatalog) Names(genreIDs []int, mediaType models.MediaType) []string {
	mapping, err := c.mapping(mediaType)
	if err != nil {
		log.Printf("genre catalog: could not resolve %s genres: %v", mediaType, err)
		return nil
	}

	var names []string
	for _, id := range genreIDs {
		if name, ok := mapping[id]; ok {
			names = append(names, name)
		}
	}
	return names
}

// mapping returns the id to name table for a media type.
func (c *GenreCatalog) mapping(mediaType models.MediaType) (map[int]string, error) {
	if mediaType != models.MediaTypeMovie && mediaType != models.MediaTypeTV {
		return nil, fmt.Errorf("no genre list for media type %q", mediaType)
	}
	if mapping, ok := c.memo[mediaType]; ok {
		return mapping, nil
	}

	genres, err := c.load(mediaType)
	if err != nil {
		return nil, err
	}

	mapping := make(map[int]string, len(genres))
	for _, genre := range genres {
		mapping[genre.ID] = genre.Name
	}
	c.memo[mediaType] = mapping
	return mapping, nil
}

// load fetches the genre list from the SQLite snapshot or the provider.
func (c *GenreCatalog) load(mediaType models.MediaType) ([]tmdb.Genre, error) {
	if c.repo != nil {
		payload, ok, err := c.repo.Get(string(mediaType))
		if err != nil {
			return nil, err
		}
		if ok {
			var genres []tmdb.Genre
			if err := json.Unmarshal([]byte(payload), &genres); err != nil {
				return nil, fmt.Errorf("failed to decode cached genre list: %w", err)
			}
			return genres, nil
		}
	}

	genres, err := c.client.GenreList(string(mediaType))
	if err != nil {
		return nil, err
	}

	if c.repo != nil {
		payload, err := json.Marshal(genres)
		if err != nil {
			return nil, fmt.Errorf("failed to encode genre list: %w", err)
		}
		if err := c.repo.Upsert(string(mediaType), string(payload), timeutil.Timestamp(), genreCacheLanguage); err != nil {
			return nil, err
		}
	}

	return genres, nil
}
