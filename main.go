package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/nutritrack/nutritrack/internal/bot"
	"github.com/nutritrack/nutritrack/internal/bot/handlers"
	"github.com/nutritrack/nutritrack/internal/bot/state"
	"github.com/nutritrack/nutritrack/internal/config"
	"github.com/nutritrack/nutritrack/internal/logger"
	"github.com/nutritrack/nutritrack/internal/services"
	"github.com/nutritrack/nutritrack/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.InitWithConfig(logger.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	}); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	logger.Info("Starting NutriTrack bot")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := storage.NewStore(cfg.DataPath)
	if err != nil {
		logger.Errorf("Failed to open store: %v", err)
		return
	}
	defer store.Close()
	logger.Info("Store opened", "path", cfg.DataPath)

	// Initialize services
	aiService := services.NewAIService(cfg.GeminiAPIKey, cfg.OpenAIAPIKey)
	nutritionService := services.NewNutritionService(ctx, store)
	weightService := services.NewWeightService(ctx, store)
	sleepService := services.NewSleepService(ctx, store)
	logger.Info("Services initialized")

	// Conversation state: Redis when configured, in-memory otherwise
	var stateManager state.StateManager = state.NewManager()
	if cfg.Redis.Host != "" {
		redisManager, err := state.NewRedisManager(cfg.Redis.Host, cfg.Redis.Port)
		if err != nil {
			logger.Warningf("Redis unavailable, using in-memory state: %v", err)
		} else {
			defer redisManager.Close()
			stateManager = redisManager
		}
	}

	deps := handlers.Dependencies{
		NutritionSvc: nutritionService,
		WeightSvc:    weightService,
		SleepSvc:     sleepService,
		Estimator:    aiService,
	}

	telegramBot, err := bot.NewBot(cfg.TelegramToken, deps, stateManager)
	if err != nil {
		logger.Errorf("Failed to create bot: %v", err)
		return
	}

	if err := telegramBot.Start(ctx); err != nil && ctx.Err() == nil {
		logger.Errorf("Bot stopped with error: %v", err)
	}
}
