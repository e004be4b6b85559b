package main

import (
	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/erfnk/kanban-board-api/internal/config"
	"github.com/erfnk/kanban-board-api/internal/database"
	"github.com/erfnk/kanban-board-api/internal/handlers"
	"github.com/erfnk/kanban-board-api/internal/middleware"
	"github.com/erfnk/kanban-board-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode and logging format
	gin.SetMode(cfg.GinMode)
	if cfg.GinMode == "release" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		logrus.WithError(err).Fatal("failed to run migrations")
	}

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		logrus.WithError(err).Fatal("failed to create Redis store")
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions("board_session", store))

	// Initialize services
	db := database.GetDB()
	accessService := services.NewBoardAccessService(db, cfg.Features)
	boardService := services.NewBoardService(db, accessService, cfg.Features)
	columnService := services.NewColumnService(db, accessService)
	taskService := services.NewTaskService(db, accessService)
	commentService := services.NewCommentService(db, accessService)

	// Initialize handlers
	boardHandler := handlers.NewBoardHandler(boardService)
	columnHandler := handlers.NewColumnHandler(columnService)
	taskHandler := handlers.NewTaskHandler(taskService)
	commentHandler := handlers.NewCommentHandler(commentService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Kanban Board API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		boards := api.Group("/boards")
		boards.Use(middleware.RequireAuth())
		{
			boards.POST("", boardHandler.CreateBoard)
			boards.GET("", boardHandler.ListBoards)
			boards.GET("/by-slug/:slug", boardHandler.GetBoardBySlug)
			boards.GET("/:id", boardHandler.GetBoard)
			boards.PUT("/:id", boardHandler.UpdateBoard)
			boards.DELETE("/:id", boardHandler.DeleteBoard)
			boards.POST("/:id/favorite", boardHandler.ToggleFavorite)

			boards.POST("/:id/columns", columnHandler.CreateColumn)
			boards.POST("/:id/columns/reorder", columnHandler.ReorderColumns)
			boards.PUT("/columns/:id", columnHandler.UpdateColumn)
			boards.DELETE("/columns/:id", columnHandler.DeleteColumn)

			boards.POST("/:id/tasks", taskHandler.CreateTask)
			boards.PUT("/tasks/:id", taskHandler.UpdateTask)
			boards.DELETE("/tasks/:id", taskHandler.DeleteTask)
			boards.POST("/tasks/:id/move", taskHandler.MoveTask)
			boards.POST("/columns/:id/tasks/reorder", taskHandler.ReorderTasks)

			boards.GET("/:id/tasks/:taskId/comments", commentHandler.ListComments)
			boards.POST("/:id/comments", commentHandler.CreateComment)
			boards.PUT("/comments/:id", commentHandler.UpdateComment)
			boards.DELETE("/comments/:id", commentHandler.DeleteComment)
		}
	}

	// Start server
	logrus.WithField("addr", cfg.ListenAddr).Info("server starting")
	if err := r.Run(cfg.ListenAddr); err != nil {
		logrus.WithError(err).Fatal("failed to start server")
	}
}
