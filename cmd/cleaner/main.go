package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm/logger"

	"github.com/MellowMango/apartment-search-sub004/internal/config"
	"github.com/MellowMango/apartment-search-sub004/internal/database"
	"github.com/MellowMango/apartment-search-sub004/internal/jobs"
	"github.com/MellowMango/apartment-search-sub004/internal/match"
	slacknotify "github.com/MellowMango/apartment-search-sub004/internal/slack"
	"github.com/MellowMango/apartment-search-sub004/internal/standardize"
	"github.com/MellowMango/apartment-search-sub004/internal/store"
)

func main() {
	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found or error loading it (this is fine if using environment variables): %v", err)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting property cleaning daemon...")

	// Optional vocabulary overrides for new broker sources
	if cfg.CategoryConfigPath != "" {
		if err := standardize.LoadCategoryFile(cfg.CategoryConfigPath); err != nil {
			log.Fatalf("Failed to load category config: %v", err)
		}
		log.Printf("Loaded category synonyms from %s", cfg.CategoryConfigPath)
	}
	if cfg.WeightsConfigPath != "" {
		weights, err := match.LoadWeightsFile(cfg.WeightsConfigPath)
		if err != nil {
			log.Fatalf("Failed to load weights config: %v", err)
		}
		match.SetDefaultWeights(weights)
		log.Printf("Loaded similarity weights from %s", cfg.WeightsConfigPath)
	}

	// Initialize database connection
	if err := database.Connect(cfg.DatabaseURL, logger.Warn); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run database migrations
	if err := database.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Initialize default database records
	if err := database.InitializeDefaults(); err != nil {
		log.Fatalf("Failed to initialize database defaults: %v", err)
	}

	db := database.GetDB()
	settings, err := database.GetOrCreateCleaningSettings(db)
	if err != nil {
		log.Fatalf("Failed to load cleaning settings: %v", err)
	}

	// Slack notifier (disabled unless configured)
	notifier := slacknotify.NewNotifier(cfg.SlackBotToken, cfg.SlackChannel)
	if notifier.Enabled() {
		log.Printf("Slack notifications enabled for channel %s", cfg.SlackChannel)
	} else {
		log.Printf("Slack notifications disabled")
	}

	// The cleaning job: generation only, no destructive actions
	job := jobs.NewCleaningJob(
		db,
		store.NewGormPropertyDataSource(db),
		store.NewGormCandidateStore(db),
		notifier,
	)

	intervalMinutes := settings.CleaningIntervalMinutes
	if intervalMinutes <= 0 {
		intervalMinutes = cfg.CleaningIntervalMinutes
	}

	// The scheduler owns the timer; the job itself holds no schedule state
	scheduler := cron.New()
	spec := fmt.Sprintf("@every %dm", intervalMinutes)
	if _, err := scheduler.AddFunc(spec, func() {
		if _, err := job.Run(); err != nil {
			log.Printf("Cleaning job failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule cleaning job: %v", err)
	}
	scheduler.Start()
	log.Printf("Cleaning job scheduled every %d minute(s)", intervalMinutes)

	// Run one pass immediately so a fresh deployment produces candidates
	// without waiting a full interval
	go func() {
		if _, err := job.Run(); err != nil {
			log.Printf("Initial cleaning job failed: %v", err)
		}
	}()

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Printf("Received signal %v, shutting down...", sig)

	ctx := scheduler.Stop()
	<-ctx.Done()

	if err := database.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
	log.Println("Shutdown complete")
}
