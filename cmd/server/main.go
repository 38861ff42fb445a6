package main

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/beautybot/backend/config"
	httpDelivery "github.com/beautybot/backend/internal/delivery/http"
	"github.com/beautybot/backend/internal/infrastructure/openai"
	"github.com/beautybot/backend/internal/infrastructure/sephora"
	"github.com/beautybot/backend/internal/usecase"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Server.Environment == "production" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetLevel(logrus.DebugLevel)
	}

	log.WithFields(logrus.Fields{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"model":       cfg.OpenAI.Model,
	}).Info("starting Beauty Bot backend v1.0.0")

	// Initialize infrastructure dependencies
	scraper := sephora.NewScraper(cfg.Scraper.BaseURL, cfg.Scraper.Timeout, cfg.Scraper.Delay, log)
	log.WithField("base_url", cfg.Scraper.BaseURL).Info("scraper configured")

	generator := openai.NewClient(
		cfg.OpenAI.APIKey,
		cfg.OpenAI.BaseURL,
		cfg.OpenAI.Model,
		cfg.OpenAI.RequestsPerMinute,
		log,
	)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		generator.SetDebug(true)
		log.Info("OpenAI client debug mode enabled")
	}

	// Initialize usecase layer
	recommender := usecase.NewRecommendationService(generator, log, usecase.RecommendationConfig{
		TopN:        cfg.Recommend.TopN,
		Temperature: cfg.Recommend.Temperature,
		MaxTokens:   cfg.Recommend.MaxTokens,
	})

	log.WithFields(logrus.Fields{
		"top_n":       cfg.Recommend.TopN,
		"temperature": cfg.Recommend.Temperature,
		"max_tokens":  cfg.Recommend.MaxTokens,
	}).Info("recommendation service configured")

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(scraper, recommender, log)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.WithField("addr", addr).Info("server listening")

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
