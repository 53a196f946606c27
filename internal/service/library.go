package service

import (
	"fmt"

	"reel-tracker/internal/models"
	"reel-tracker/internal/repository"
)

// LibraryService manages the user's stored watched/watchlist titles.
type LibraryService struct {
	repo *repository.TitleRepository
}

// NewLibraryService creates a new LibraryService.
func NewLibraryService(repo *repository.TitleRepository) *LibraryService {
	return &LibraryService{repo: repo}
}

// Add stores a title. Duplicates are detected on the (id, media type)
// natural key; when the title already exists the existing entry is
// returned with added=false so callers can report its watch status.
func (s *LibraryService) Add(title models.Title) (*models.Title, bool, error) {
	existing, err := s.repo.Find(title.ID, title.MediaType)
	if err != nil {
		return nil, false, fmt.Errorf("failed to check for duplicate: %w", err)
	}
	if existing != nil {
		return existing, false, nil
	}

	if err := s.repo.Create(&title); err != nil {
		return nil, false, fmt.Errorf("failed to save title: %w", err)
	}
	return &title, true, nil
}

// Get returns a stored title by natural key, nil when absent.
func (s *LibraryService) Get(id string, mediaType models.MediaType) (*models.Title, error) {
	return s.repo.Find(id, mediaType)
}

// List returns the stored titles with the given watched flag.
func (s *LibraryService) List(watched bool) ([]models.Title, error) {
	return s.repo.GetByWatchStatus(watched)
}

// ToggleWatched flips a stored title between watchlist and watched,
// optionally rating it in the same step, and persists the result.
func (s *LibraryService) ToggleWatched(id string, mediaType models.MediaType, rating int) (*models.Title, error) {
	title, err := s.repo.Find(id, mediaType)
	if err != nil {
		return nil, err
	}
	if title == nil {
		return nil, fmt.Errorf("title %s/%s not in list", mediaType, id)
	}

	if err := title.ToggleWatched(rating); err != nil {
		return nil, err
	}
	if err := s.repo.Update(title); err != nil {
		return nil, fmt.Errorf("failed to update title: %w", err)
	}
	return title, nil
}

// SetRating changes the rating of a stored watched title.
func (s *LibraryService) SetRating(id string, mediaType models.MediaType, rating int) (*models.Title, error) {
	title, err := s.repo.Find(id, mediaType)
	if err != nil {
		return nil, err
	}
	if title == nil {
		return nil, fmt.Errorf("title %s/%s not in list", mediaType, id)
	}
	if !title.Watched {
		return nil, fmt.Errorf("cannot rate %q: not marked as watched", title.Name)
	}

	if err := title.SetRating(rating); err != nil {
		return nil, err
	}
	if err := s.repo.Update(title); err != nil {
		return nil, fmt.Errorf("failed to update title: %w", err)
	}
	return title, nil
}

// Remove deletes a stored title by natural key.
func (s *LibraryService) Remove(id string, mediaType models.MediaType) error {
	title, err := s.repo.Find(id, mediaType)
	if err != nil {
		return err
	}
	if title == nil {
		return fmt.Errorf("title %s/%s not in list", mediaType, id)
	}
	return s.repo.Delete(id, mediaType)
}
