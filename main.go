package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/slack-go/slack"
)

func main() {
	config := loadConfig()

	// Initialize logger with configured level
	SetLogLevel(config.LogLevel)

	if config.SlackBotToken == "" {
		Fatal("SLACK_BOT_TOKEN is required")
	}
	if !config.DryRun && config.LinearAPIKey == "" {
		Fatal("LINEAR_API_KEY is required")
	}

	settings, err := loadSettings(config.SettingsFile)
	if err != nil {
		Fatal("Failed to load settings: %v", err)
	}
	Info("Loaded %d reaction routing rules", len(settings.ReactionMentions))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup Redis client
	rdb := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
		DB:       0,
	})
	defer rdb.Close()

	// Test Redis connection
	if err := rdb.Ping(ctx).Err(); err != nil {
		Fatal("Failed to connect to Redis: %v", err)
	}
	Info("Connected to Redis")

	app := &App{
		chat:   newSlackGateway(slack.New(config.SlackBotToken)),
		linear: &LinearClient{APIURL: config.LinearAPIURL, APIKey: config.LinearAPIKey},
		summarizer: &Summarizer{
			APIKey: config.GeminiAPIKey,
			LLM:    settings.System.LLM,
		},
		settings: settings,
		config:   config,
	}

	if config.DryRun {
		Info("Dry-run mode is enabled; issues will not be created.")
	}

	// Start subscribers
	go app.subscribeToReactions(ctx, rdb)
	go app.subscribeToAppMentions(ctx, rdb)

	log.Println("ReactionIssue service started")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	Info("Shutting down...")
	cancel()
	time.Sleep(1 * time.Second)
}
