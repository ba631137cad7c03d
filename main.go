package main

import (
	"log"

	api "maildash-backend/cmd/api"
	emaildomain "maildash-backend/internal/email/domain"
	emailRepo "maildash-backend/internal/email/repository"
	"maildash-backend/internal/email/seed"
	emailUsecase "maildash-backend/internal/email/usecase"
	"maildash-backend/pkg/ai"
	"maildash-backend/pkg/config"
	"maildash-backend/pkg/database"
	"maildash-backend/pkg/metrics"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer database.Close(db)

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&emaildomain.Email{}); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	serverMetrics := metrics.NewServerMetrics("maildash")

	// Summarizer is constructed here and injected; a missing API key
	// surfaces on the first summarization call, not at startup.
	summarizer := ai.NewOpenAIService(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
	summarizer.SetObserver(serverMetrics)

	// Initialize repository and use case (dependency injection)
	emailRepository := emailRepo.NewEmailRepository(db)
	emailUsecaseInstance := emailUsecase.NewEmailUsecase(emailRepository, summarizer, seed.Emails())

	// Initialize HTTP handler
	handler := api.NewHandler(emailUsecaseInstance, cfg, serverMetrics)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
