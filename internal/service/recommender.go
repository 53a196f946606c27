package service

import (
	"fmt"
	"log"

	"reel-tracker/internal/models"
	"reel-tracker/internal/repository"
	"reel-tracker/internal/tmdb"
)

// watchlist-only recommendations are capped at the reference display size
const recommendLimit = 6

// ListState captures the user's list at the moment recommendations are
// requested. The watched and watchlist sets are disjoint by construction.
type ListState struct {
	HasItems     bool
	HasWatched   bool
	HasWatchlist bool
	Watched      []models.Title
	Watchlist    []models.Title
}

// Recommender turns the user's list state into a ranked suggestion list.
// Depending on the state it recommends from the provider (trending,
// per-title recommendations, genre discovery) or from the user's own
// watchlist.
type Recommender struct {
	client  *tmdb.Client
	repo    *repository.TitleRepository
	catalog *GenreCatalog
}

// NewRecommender creates a new Recommender.
func NewRecommender(client *tmdb.Client, repo *repository.TitleRepository, catalog *GenreCatalog) *Recommender {
	return &Recommender{
		client:  client,
		repo:    repo,
		catalog: catalog,
	}
}

// BuildListState materializes the current list state from the store.
func (r *Recommender) BuildListState() (ListState, error) {
	watched, err := r.repo.GetByWatchStatus(true)
	if err != nil {
		return ListState{}, fmt.Errorf("failed to load watched titles: %w", err)
	}
	watchlist, err := r.repo.GetByWatchStatus(false)
	if err != nil {
		return ListState{}, fmt.Errorf("failed to load watchlist titles: %w", err)
	}
	return ListState{
		HasItems:     len(watched)+len(watchlist) > 0,
		HasWatched:   len(watched) > 0,
		HasWatchlist: len(watchlist) > 0,
		Watched:      watched,
		Watchlist:    watchlist,
	}, nil
}

// Recommend produces an ordered recommendation list for the given state.
// An empty result means "nothing to recommend" and is a normal outcome:
// provider failures degrade to it rather than aborting.
//
// Strategy by state:
//   - no items at all: this week's trending titles
//   - watchlist only: the user's own watchlist by popularity, top 6
//   - watched only: per-title provider recommendations anchored on the top
//     title in the preferred genre
//   - both: the user's watchlist ranked by similarity to that top title
func (r *Recommender) Recommend(state ListState) ([]models.Title, error) {
	switch {
	case !state.HasItems:
		return r.recommendTrending(), nil
	case !state.HasWatched:
		return r.recommendFromWatchlistPopularity(state.Watchlist), nil
	case !state.HasWatchlist:
		return r.recommendFromWatchedHistory(state.Watched)
	default:
		return r.recommendPersonalized(state.Watched, state.Watchlist)
	}
}

// recommendTrending handles the cold start: nothing saved yet, so surface
// what is trending this week in provider popularity order.
func (r *Recommender) recommendTrending() []models.Title {
	results, err := r.client.Trending()
	if err != nil {
		log.Printf("recommender: trending fetch failed: %v", err)
		return nil
	}
	return PrepareTitles(results, "", r.catalog)
}

// recommendFromWatchlistPopularity handles a watchlist without any watched
// titles. No ratings exist to rank on, so fall back to popularity.
func (r *Recommender) recommendFromWatchlistPopularity(watchlist []models.Title) []models.Title {
	sorted := SortByPopularity(watchlist)
	if len(sorted) > recommendLimit {
		sorted = sorted[:recommendLimit]
	}
	return sorted
}

// recommendFromWatchedHistory handles watched titles without a watchlist:
// anchor on the top title in the preferred genre and ask the provider for
// similar titles. Without any liked title, fall back to genre discovery.
func (r *Recommender) recommendFromWatchedHistory(watched []models.Title) ([]models.Title, error) {
	topRated := TopRated(watched)
	if len(topRated) == 0 {
		return r.discoverFallback(watched), nil
	}

	top, err := r.topTitleByPreferredGenre(topRated)
	if err != nil {
		return nil, err
	}
	if top == nil {
		return r.discoverFallback(watched), nil
	}

	results, err := r.client.RecommendationsFor(string(top.MediaType), top.ID)
	if err != nil {
		log.Printf("recommender: recommendations fetch for %s failed: %v", top.Key(), err)
		return nil, nil
	}
	return PrepareTitles(results, "", r.catalog), nil
}

// recommendPersonalized handles the fully populated state. This is the one
// path that recommends from the user's own watchlist: filter it to the
// preferred genre (falling back to the whole watchlist when nothing
// matches), rank by similarity to the top watched title, then put the
// preferred media type first.
func (r *Recommender) recommendPersonalized(watched, watchlist []models.Title) ([]models.Title, error) {
	topRated := TopRated(watched)
	if len(topRated) == 0 {
		combined := append(append([]models.Title{}, watched...), watchlist...)
		return r.discoverFallback(combined), nil
	}

	top, err := r.topTitleByPreferredGenre(topRated)
	if err != nil {
		return nil, err
	}
	if top == nil {
		return nil, nil
	}

	genre, _ := PreferredGenre(topRated)
	candidates := FilterByGenre(watchlist, genre)
	if len(candidates) == 0 {
		candidates = watchlist
	}

	ranked, err := SortByRelevance(candidates, ModeWatchlist, top)
	if err != nil {
		return nil, err
	}
	return ReorderByMediaType(ranked, top.MediaType), nil
}

// topTitleByPreferredGenre finds the most relevant title within the
// preferred genre of an already top-rated list. Returns nil when no
// preference is derivable.
func (r *Recommender) topTitleByPreferredGenre(topRated []models.Title) (*models.Title, error) {
	genre, ok := PreferredGenre(topRated)
	if !ok {
		return nil, nil
	}
	inGenre := FilterByGenre(topRated, genre)
	if len(inGenre) == 0 {
		return nil, nil
	}
	return TopByRelevance(inGenre, ModeWatched, nil)
}

// discoverFallback asks the provider's discovery endpoint for titles
// matching the dominant (media type, genre) pair of the given list. Used
// when no watched title is rated highly enough to anchor personalization.
func (r *Recommender) discoverFallback(titles []models.Title) []models.Title {
	mediaType, genreID, ok := PreferredMediaTypeAndGenre(titles)
	if !ok {
		return nil
	}

	results, err := r.client.DiscoverByGenre(string(mediaType), genreID)
	if err != nil {
		log.Printf("recommender: discover fetch for %s genre %d failed: %v", mediaType, genreID, err)
		return nil
	}
	// Discover records carry no media_type of their own.
	return PrepareTitles(results, mediaType, r.catalog)
}
