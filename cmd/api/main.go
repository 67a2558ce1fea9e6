package main

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"speaker-event-finder/internal/api"
	"speaker-event-finder/internal/config"
	"speaker-event-finder/internal/logger"
	"speaker-event-finder/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log, err := logger.New(cfg.Environment)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting speaker event finder",
		zap.String("environment", cfg.Environment),
		zap.String("port", cfg.Port),
		zap.Int("top_n", cfg.TopN),
		zap.Int("max_concurrency", cfg.MaxConcurrency))

	serperClient := services.NewSerperClient(cfg, log)

	firecrawlClient, err := services.NewFirecrawlClient(cfg, log)
	if err != nil {
		log.Fatal("Failed to create Firecrawl client", zap.Error(err))
	}

	openAIClient := services.NewOpenAIClient(cfg, log)
	extractor := services.NewEventExtractor(firecrawlClient, openAIClient, log)
	workflow := services.NewEventWorkflow(serperClient, extractor, cfg, log)

	handler := api.NewHandler(workflow, log)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Info("API server starting", zap.String("address", addr))

	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatal("Failed to start API server", zap.Error(err))
	}
}
