package tmdb

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultBaseURL  = "https://api.themoviedb.org/3"
	defaultLanguage = "en-US"
	defaultTimeout  = 10 * time.Second
	requestInterval = 100 * time.Millisecond // spacing between requests to stay under the rate limit
)

// Client handles all interactions with the TMDB API
type Client struct {
	apiKey      string
	baseURL     string
	httpClient  *http.Client
	lastRequest time.Time
}

// RawResult is a single title record as TMDB returns it. Search, trending,
// recommendation and discover endpoints all share this shape; movies carry
// title/release_date while TV shows carry name/first_air_date.
type RawResult struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	MediaType    string  `json:"media_type"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	GenreIDs     []int   `json:"genre_ids"`
	Popularity   float64 `json:"popularity"`
	VoteCount    int     `json:"vote_count"`
	Overview     string  `json:"overview"`
}

// Genre is a single entry of a TMDB genre list.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// resultsResponse wraps the TMDB list endpoints' response envelope
type resultsResponse struct {
	Results []RawResult `json:"results"`
}

// genreListResponse wraps the TMDB genre list response
type genreListResponse struct {
	Genres []Genre `json:"genres"`
}

// APIError represents an error returned by the TMDB API
type APIError struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("TMDB API error (code %d): %s", e.StatusCode, e.StatusMessage)
}

// NewClient creates a new TMDB API client
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// NewClientWithHTTP creates a new TMDB API client with a custom HTTP client
func NewClientWithHTTP(apiKey string, httpClient *http.Client) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: httpClient,
	}
}

// SetBaseURL allows overriding the base URL (useful for testing)
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

// SearchMulti searches movies and TV shows by query string.
// Calls the TMDB /search/multi API.
func (c *Client) SearchMulti(query string) ([]RawResult, error) {
	if query == "" {
		return []RawResult{}, nil
	}

	endpoint := fmt.Sprintf("%s/search/multi?api_key=%s&query=%s&language=%s&include_adult=false",
		c.baseURL, c.apiKey, url.QueryEscape(query), defaultLanguage)

	return c.fetchResults(endpoint, "search titles")
}

// Trending fetches this week's trending movies and TV shows.
// Calls the TMDB /trending/all/week API.
func (c *Client) Trending() ([]RawResult, error) {
	endpoint := fmt.Sprintf("%s/trending/all/week?api_key=%s&language=%s&include_adult=false",
		c.baseURL, c.apiKey, defaultLanguage)

	return c.fetchResults(endpoint, "fetch trending titles")
}

// RecommendationsFor fetches per-title recommendations.
// Calls the TMDB /{mediaType}/{id}/recommendations API.
func (c *Client) RecommendationsFor(mediaType string, titleID string) ([]RawResult, error) {
	if mediaType == "" || titleID == "" {
		return nil, fmt.Errorf("invalid recommendation request: media type %q, id %q", mediaType, titleID)
	}

	endpoint := fmt.Sprintf("%s/%s/%s/recommendations?api_key=%s&language=%s",
		c.baseURL, mediaType, url.PathEscape(titleID), c.apiKey, defaultLanguage)

	return c.fetchResults(endpoint, "fetch title recommendations")
}

// DiscoverByGenre fetches titles of a media type matching a genre.
// Calls the TMDB /discover/{mediaType} API.
func (c *Client) DiscoverByGenre(mediaType string, genreID int) ([]RawResult, error) {
	if mediaType == "" {
		return nil, fmt.Errorf("invalid discover request: empty media type")
	}

	endpoint := fmt.Sprintf("%s/discover/%s?api_key=%s&language=%s&with_genres=%d",
		c.baseURL, mediaType, c.apiKey, defaultLanguage, genreID)

	return c.fetchResults(endpoint, "discover titles by genre")
}

// GenreList fetches the genre id to name mapping for a media type.
// Calls the TMDB /genre/{mediaType}/list API.
func (c *Client) GenreList(mediaType string) ([]Genre, error) {
	if mediaType == "" {
		return nil, fmt.Errorf("invalid genre list request: empty media type")
	}

	c.rateLimit()

	endpoint := fmt.Sprintf("%s/genre/%s/list?api_key=%s&language=%s",
		c.baseURL, mediaType, c.apiKey, defaultLanguage)

	resp, err := c.httpClient.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch genre list: %w", err)
	}
	defer resp.Body.Close()

	if err := c.checkResponse(resp); err != nil {
		return nil, err
	}

	var result genreListResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode genre list response: %w", err)
	}

	return result.Genres, nil
}

// fetchResults performs a GET against a results-envelope endpoint
func (c *Client) fetchResults(endpoint, action string) ([]RawResult, error) {
	c.rateLimit()

	resp, err := c.httpClient.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to %s: %w", action, err)
	}
	defer resp.Body.Close()

	if err := c.checkResponse(resp); err != nil {
		return nil, err
	}

	var result resultsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", action, err)
	}

	return result.Results, nil
}

// checkResponse checks the HTTP response for errors
func (c *Client) checkResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{
			StatusCode:    resp.StatusCode,
			StatusMessage: fmt.Sprintf("HTTP %d: failed to read error response", resp.StatusCode),
		}
	}

	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err != nil {
		return &APIError{
			StatusCode:    resp.StatusCode,
			StatusMessage: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, string(body)),
		}
	}

	if apiErr.StatusCode == 0 {
		apiErr.StatusCode = resp.StatusCode
	}
	if apiErr.StatusMessage == "" {
		apiErr.StatusMessage = fmt.Sprintf("HTTP %d error", resp.StatusCode)
	}

	return &apiErr
}

// rateLimit ensures requests are spaced out to avoid hitting API limits
func (c *Client) rateLimit() {
	elapsed := time.Since(c.lastRequest)
	if elapsed < requestInterval {
		time.Sleep(requestInterval - elapsed)
	}
	c.lastRequest = time.Now()
}
