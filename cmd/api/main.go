// @title TubeQuiz API
// @version 1.0
// @description Generates multiple-choice quizzes from YouTube video transcripts.
// @host localhost:8090
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"tubequiz/internal/adapter"
	"tubequiz/internal/adapter/quizgen"
	"tubequiz/internal/adapter/transcript"
	"tubequiz/internal/cache"
	"tubequiz/internal/config"
	"tubequiz/internal/handler"
	"tubequiz/internal/logger"
	"tubequiz/internal/middleware"
	"tubequiz/internal/repository"
	"tubequiz/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Initialize Redis Client
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	appLogger.Info("Successfully connected to Redis")
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)

	// Initialize adapters
	fetcher := transcript.NewYouTubeFetcher(appLogger)
	generator, err := quizgen.NewOpenAIQuizGenerator(cfg.OpenAI.APIKey, cfg.OpenAI.Model, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create quiz generator", zap.Error(err))
	}
	appLogger.Info("Quiz generator initialized", zap.String("model", cfg.OpenAI.Model))

	// Initialize repositories and services
	sessionRepository := repository.NewSessionRepository(cacheAdapter, cfg.CacheTTLs.Session)
	quizService := service.NewQuizService(fetcher, generator, sessionRepository, cacheAdapter, cfg)

	// Initialize handlers
	quizHandler := handler.NewQuizHandler(quizService)
	validationMiddleware := middleware.NewValidationMiddleware()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept", AllowCredentials: false, MaxAge: 300}))
	app.Use(recover.New())

	// Quiz routes
	apiGroup := app.Group("/api")
	quizGroup := apiGroup.Group("/quiz")
	quizGroup.Post("/generate", validationMiddleware.ValidateGenerateQuiz(), quizHandler.GenerateQuiz)
	quizGroup.Post("/answer", validationMiddleware.ValidateSelectAnswer(), quizHandler.SelectAnswer)
	quizGroup.Post("/submit", quizHandler.SubmitQuiz)
	quizGroup.Get("/session", quizHandler.GetSession)

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
