package handler

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"reel-tracker/internal/models"
	"reel-tracker/internal/notify"
	"reel-tracker/internal/service"
	"reel-tracker/internal/tmdb"
)

// Handler handles all HTTP requests
type Handler struct {
	tmdbClient  *tmdb.Client
	library     *service.LibraryService
	recommender *service.Recommender
	catalog     *service.GenreCatalog
	backupSvc   *service.BackupService
	notifier    *notify.TelegramNotifier
	apiToken    string
}

// NewHandler creates a new Handler
func NewHandler(
	tmdbClient *tmdb.Client,
	library *service.LibraryService,
	recommender *service.Recommender,
	catalog *service.GenreCatalog,
	backupSvc *service.BackupService,
	notifier *notify.TelegramNotifier,
	apiToken string,
) *Handler {
	return &Handler{
		tmdbClient:  tmdbClient,
		library:     library,
		recommender: recommender,
		catalog:     catalog,
		backupSvc:   backupSvc,
		notifier:    notifier,
		apiToken:    strings.TrimSpace(apiToken),
	}
}

// RegisterRoutes registers all API routes
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	// Health check must allow unauthenticated ping for probes
	r.GET("/api/health", h.Health)

	api := r.Group("/api")
	api.Use(h.authMiddleware)
	{
		api.GET("/search", h.Search)
		api.GET("/trending", h.Trending)
		api.GET("/recommendations", h.Recommendations)

		api.GET("/list", h.GetList)
		api.POST("/list", h.AddTitle)
		api.POST("/list/:type/:id/toggle", h.ToggleWatched)
		api.PUT("/list/:type/:id/rating", h.SetRating)
		api.DELETE("/list/:type/:id", h.DeleteTitle)

		api.POST("/digest", h.SendDigest)
		api.POST("/backup", h.Backup)
	}
}

// authMiddleware enforces the bearer token when one is configured
func (h *Handler) authMiddleware(c *gin.Context) {
	if h.apiToken == "" {
		c.Next()
		return
	}

	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if subtle.ConstantTimeCompare([]byte(strings.TrimSpace(token)), []byte(h.apiToken)) != 1 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "Invalid or missing API token",
		})
		return
	}
	c.Next()
}

// Health returns a liveness response
// GET /api/health
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Search searches movies and TV shows via the TMDB API
// GET /api/search?q=<query>
func (h *Handler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Search query is required",
		})
		return
	}

	results, err := h.tmdbClient.SearchMulti(query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to search titles: " + err.Error(),
		})
		return
	}

	titles := service.PrepareTitles(results, "", h.catalog)
	if titles == nil {
		titles = []models.Title{}
	}

	c.JSON(http.StatusOK, gin.H{
		"results": titles,
	})
}

// Trending returns this week's trending titles
// GET /api/trending
func (h *Handler) Trending(c *gin.Context) {
	results, err := h.tmdbClient.Trending()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch trending titles: " + err.Error(),
		})
		return
	}

	titles := service.PrepareTitles(results, "", h.catalog)
	if titles == nil {
		titles = []models.Title{}
	}

	c.JSON(http.StatusOK, gin.H{
		"results": titles,
	})
}

// Recommendations returns the ranked recommendation list for the current
// list state. An empty list means nothing to recommend.
// GET /api/recommendations
func (h *Handler) Recommendations(c *gin.Context) {
	state, err := h.recommender.BuildListState()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load list state: " + err.Error(),
		})
		return
	}

	titles, err := h.recommender.Recommend(state)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate recommendations: " + err.Error(),
		})
		return
	}
	if titles == nil {
		titles = []models.Title{}
	}

	c.JSON(http.StatusOK, gin.H{
		"results": titles,
	})
}

// GetList returns stored titles by watch status
// GET /api/list?watched=true|false
func (h *Handler) GetList(c *gin.Context) {
	watched := c.DefaultQuery("watched", "false") == "true"

	titles, err := h.library.List(watched)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load list: " + err.Error(),
		})
		return
	}
	if titles == nil {
		titles = []models.Title{}
	}

	c.JSON(http.StatusOK, gin.H{
		"titles": titles,
	})
}

// AddTitle saves a title to the list
// POST /api/list
func (h *Handler) AddTitle(c *gin.Context) {
	var title models.Title
	if err := c.ShouldBindJSON(&title); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid title payload",
		})
		return
	}
	if title.ID == "" || title.MediaType == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "id and media_type are required",
		})
		return
	}

	saved, added, err := h.library.Add(title)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to save title: " + err.Error(),
		})
		return
	}
	if !added {
		c.JSON(http.StatusConflict, gin.H{
			"error": "Title already in list",
			"title": saved,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Title saved",
		"title":   saved,
	})
}

// toggleRequest carries the optional rating for a toggle to watched
type toggleRequest struct {
	Rating int `json:"rating"`
}

// ToggleWatched flips a title between watchlist and watched
// POST /api/list/:type/:id/toggle
func (h *Handler) ToggleWatched(c *gin.Context) {
	mediaType, ok := parseMediaType(c)
	if !ok {
		return
	}

	var req toggleRequest
	_ = c.ShouldBindJSON(&req) // body is optional

	title, err := h.library.ToggleWatched(c.Param("id"), mediaType, req.Rating)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Failed to toggle watch status: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title": title,
	})
}

// ratingRequest carries a new rating
type ratingRequest struct {
	Rating int `json:"rating" binding:"required"`
}

// SetRating changes the rating of a watched title
// PUT /api/list/:type/:id/rating
func (h *Handler) SetRating(c *gin.Context) {
	mediaType, ok := parseMediaType(c)
	if !ok {
		return
	}

	var req ratingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: rating is required",
		})
		return
	}

	title, err := h.library.SetRating(c.Param("id"), mediaType, req.Rating)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Failed to set rating: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title": title,
	})
}

// DeleteTitle removes a title from the list
// DELETE /api/list/:type/:id
func (h *Handler) DeleteTitle(c *gin.Context) {
	mediaType, ok := parseMediaType(c)
	if !ok {
		return
	}

	if err := h.library.Remove(c.Param("id"), mediaType); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Failed to delete title: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Title deleted",
	})
}

// SendDigest pushes the current recommendations via Telegram
// POST /api/digest
func (h *Handler) SendDigest(c *gin.Context) {
	if h.notifier == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Telegram notifier not configured",
		})
		return
	}

	state, err := h.recommender.BuildListState()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load list state: " + err.Error(),
		})
		return
	}

	titles, err := h.recommender.Recommend(state)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate recommendations: " + err.Error(),
		})
		return
	}

	if err := h.notifier.SendDigest(titles); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to send digest: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Digest sent successfully",
	})
}

// Backup creates a database backup
// POST /api/backup
func (h *Handler) Backup(c *gin.Context) {
	backupPath, err := h.backupSvc.Backup()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"backup_path": backupPath,
	})
}

// parseMediaType validates the :type route parameter
func parseMediaType(c *gin.Context) (models.MediaType, bool) {
	mediaType := models.MediaType(c.Param("type"))
	if mediaType != models.MediaTypeMovie && mediaType != models.MediaTypeTV {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "media type must be movie or tv",
		})
		return "", false
	}
	return mediaType, true
}
