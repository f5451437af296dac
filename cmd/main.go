package main

import (
	"context"
	"fmt"
	"os"

	"github.com/edulearn/edulearn-backend/internal/catalog"
	"github.com/edulearn/edulearn-backend/internal/clients/embed"
	"github.com/edulearn/edulearn-backend/internal/clients/gemini"
	"github.com/edulearn/edulearn-backend/internal/clients/groq"
	"github.com/edulearn/edulearn-backend/internal/clients/wikipedia"
	"github.com/edulearn/edulearn-backend/internal/clients/youtube"
	"github.com/edulearn/edulearn-backend/internal/config"
	"github.com/edulearn/edulearn-backend/internal/handlers"
	"github.com/edulearn/edulearn-backend/internal/logger"
	"github.com/edulearn/edulearn-backend/internal/middleware"
	"github.com/edulearn/edulearn-backend/internal/server"
	"github.com/edulearn/edulearn-backend/internal/services"
	"github.com/edulearn/edulearn-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Config
	log.Info("Loading configuration from main...")
	configPath := utils.GetEnv("CONFIG_PATH", "config.yaml", log)
	cfg, err := config.Load(configPath, log)
	if err != nil {
		log.Error("Could not load config", "error", err)
		os.Exit(1)
	}

	// Catalogs (loaded once, read-only after startup)
	log.Info("Loading lesson catalog from main...")
	lessonCatalog := catalog.LoadAll(log, cfg.Catalog.DataDir, cfg.Catalog.DatasetFiles)
	courseCatalog := catalog.LoadCourses(log, cfg.Catalog.CoursePath())

	// Clients
	log.Info("Setting up upstream clients from main...")
	explainer := gemini.NewExplainer(context.Background(), log, cfg.GoogleAPIKey, cfg.Chat.GeminiModel)
	chatClient := groq.NewClient(log, cfg.Chat, cfg.GroqAPIKey)
	embedClient := embed.NewClient(log, cfg.Embed, cfg.EmbedAPIKey)
	wikiClient := wikipedia.NewClient(log)
	youtubeClient := youtube.NewClient(log)

	// Services
	log.Info("Setting up services from main...")
	searchService := services.NewSearchService(log, lessonCatalog, explainer)
	semanticService := services.NewSemanticService(log, wikiClient, youtubeClient, embedClient)
	chatService := services.NewChatService(log, chatClient, wikiClient)
	courseService := services.NewCourseService(log, courseCatalog)
	verifier, err := services.NewFirebaseVerifier(log, cfg.Auth.ProjectID)
	if err != nil {
		log.Warn("Firebase verifier init failed, auth routes will reject everything", "error", err)
		verifier = services.DenyAllVerifier()
	}

	// Handlers
	log.Info("Setting up handlers from main...")
	searchHandler := handlers.NewSearchHandler(log, searchService)
	semanticHandler := handlers.NewSemanticHandler(log, semanticService)
	chatHandler := handlers.NewChatHandler(log, chatService)
	courseHandler := handlers.NewCourseHandler(log, courseService)
	authHandler := handlers.NewAuthHandler(log)

	// Middleware
	log.Info("Setting up middleware from main...")
	authMiddleware := middleware.NewAuthMiddleware(log, verifier)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		Log:                  log,
		CORSOrigins:          cfg.CORSOrigins,
		SearchHandler:        searchHandler,
		SemanticHandler:      semanticHandler,
		ChatHandler:          chatHandler,
		CourseHandler:        courseHandler,
		AuthHandler:          authHandler,
		AuthMiddleware:       authMiddleware,
		RequireAuthForSearch: cfg.Auth.RequireForSearch,
	})

	fmt.Printf("Server listening on :%s\n", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
