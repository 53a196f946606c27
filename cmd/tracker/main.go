package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"

	"reel-tracker/internal/cli"
	"reel-tracker/internal/handler"
	"reel-tracker/internal/notify"
	"reel-tracker/internal/repository"
	"reel-tracker/internal/service"
	"reel-tracker/internal/tmdb"
)

// Config holds the application configuration
type Config struct {
	TMDBAPIKey       string
	TelegramBotToken string
	TelegramChatID   int64
	DBPath           string
	BackupDir        string
	HTTPAddr         string
	APIToken         string
}

func main() {
	// Parse CLI flags
	serveMode := flag.Bool("serve", false, "Run the HTTP API instead of the interactive menu")
	digestMode := flag.Bool("digest", false, "Send a recommendation digest via Telegram and exit")
	flag.Parse()

	config := loadConfig()

	// Initialize database
	db, err := repository.NewSQLiteDB(config.DBPath)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.InitSchema(); err != nil {
		log.Fatalf("Failed to initialize database schema: %v", err)
	}

	// Initialize repositories
	titleRepo := repository.NewTitleRepository(db)
	genreCacheRepo := repository.NewGenreCacheRepository(db)

	// Initialize TMDB client
	tmdbClient := tmdb.NewClient(config.TMDBAPIKey)

	// Initialize services
	catalog := service.NewGenreCatalog(tmdbClient, genreCacheRepo)
	library := service.NewLibraryService(titleRepo)
	recommender := service.NewRecommender(tmdbClient, titleRepo, catalog)
	backupSvc := service.NewBackupService(config.DBPath, config.BackupDir)

	// Telegram is optional; the digest features need it, the rest do not
	var notifier *notify.TelegramNotifier
	if config.TelegramBotToken != "" && config.TelegramChatID != 0 {
		notifier, err = notify.NewTelegramNotifier(config.TelegramBotToken, config.TelegramChatID)
		if err != nil {
			log.Printf("Warning: Telegram notifier disabled: %v", err)
		}
	}

	// Digest mode: compute recommendations, push them, exit
	if *digestMode {
		if notifier == nil {
			log.Fatal("Telegram not configured. Set TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID environment variables.")
		}
		state, err := recommender.BuildListState()
		if err != nil {
			log.Fatalf("Failed to load list state: %v", err)
		}
		titles, err := recommender.Recommend(state)
		if err != nil {
			log.Fatalf("Failed to generate recommendations: %v", err)
		}
		if err := notifier.SendDigest(titles); err != nil {
			log.Fatalf("Failed to send digest: %v", err)
		}
		fmt.Println("Digest sent successfully!")
		return
	}

	// Serve mode: HTTP API (blocking)
	if *serveMode {
		h := handler.NewHandler(tmdbClient, library, recommender, catalog, backupSvc, notifier, config.APIToken)
		r := gin.Default()
		h.RegisterRoutes(r)

		log.Printf("ReelTracker API listening on %s", config.HTTPAddr)
		if err := r.Run(config.HTTPAddr); err != nil {
			log.Fatalf("HTTP server failed: %v", err)
		}
		return
	}

	// Default: interactive terminal menu
	ui := cli.New(os.Stdin, os.Stdout, tmdbClient, library, recommender, catalog, backupSvc)
	ui.Run()
}

// loadConfig loads configuration from environment variables
func loadConfig() *Config {
	chatID, _ := strconv.ParseInt(getEnv("TELEGRAM_CHAT_ID", "0"), 10, 64)

	config := &Config{
		TMDBAPIKey:       getEnv("TMDB_API_KEY", ""),
		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:   chatID,
		DBPath:           getEnv("DB_PATH", "reel_tracker.db"),
		BackupDir:        getEnv("BACKUP_DIR", "backups"),
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		APIToken:         getEnv("API_TOKEN", ""),
	}

	if config.TMDBAPIKey == "" {
		log.Println("Warning: TMDB_API_KEY not set. TMDB API calls will fail.")
	}

	return config
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
