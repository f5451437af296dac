package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/edulearn/edulearn-backend/internal/handlers"
	"github.com/edulearn/edulearn-backend/internal/logger"
	"github.com/edulearn/edulearn-backend/internal/middleware"
)

type RouterConfig struct {
	Log             *logger.Logger
	CORSOrigins     []string
	SearchHandler   *handlers.SearchHandler
	SemanticHandler *handlers.SemanticHandler
	ChatHandler     *handlers.ChatHandler
	CourseHandler   *handlers.CourseHandler
	AuthHandler     *handlers.AuthHandler
	AuthMiddleware  *middleware.AuthMiddleware
	// RequireAuthForSearch puts the search and chat routes behind the auth
	// gate. Off by default; the auth-only deployment of the original app
	// gated everything except the status routes.
	RequireAuthForSearch bool
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLog(cfg.Log))

	corsConfig := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Requested-With"},
	}
	if len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORSOrigins
		corsConfig.AllowCredentials = true
	}
	router.Use(cors.New(corsConfig))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	router.GET("/", handlers.Status)

	app := router.Group("/")
	if cfg.RequireAuthForSearch {
		app.Use(cfg.AuthMiddleware.RequireAuth())
	}
	// Lesson search
	app.GET("/get-class-videos", cfg.SearchHandler.GetClassVideos)
	app.POST("/smart-search", cfg.SearchHandler.SmartSearch)
	app.POST("/semantic-search", cfg.SemanticHandler.SemanticSearch)
	// Tutor chat
	app.POST("/tutor-chat", cfg.ChatHandler.TutorChat)
	// Courses
	app.GET("/get-class-data/:class_id", cfg.CourseHandler.GetClassData)
	app.POST("/get-course-quiz", cfg.CourseHandler.GetCourseQuiz)

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/auth")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	protected.GET("/me", cfg.AuthHandler.GetMe)

	return router
}
