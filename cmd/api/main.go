package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"prepwise/interview-api/internal/config"
	"prepwise/interview-api/internal/handlers"
	"prepwise/interview-api/internal/repositories"
	"prepwise/interview-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	interviewRepo := repositories.NewInterviewRepository(db)
	messageRepo := repositories.NewMessageRepository(db)
	feedbackRepo := repositories.NewFeedbackRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	pdfParser := services.NewPDFParserService()
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini-backed interviewer
	interviewer, err := services.NewInterviewerService(
		cfg.Gemini.APIKey,
		cfg.Gemini.QuestionModel,
		cfg.Gemini.FeedbackModel,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize interviewer service: %v", err)
	}
	log.Println("✅ Interviewer service initialized successfully")

	// Initialize handlers
	interviewHandler := handlers.NewInterviewHandler(
		userRepo,
		interviewRepo,
		messageRepo,
		feedbackRepo,
		interviewer,
		storageService,
		pdfParser,
		cfg.Storage.MaxFileSize,
	)
	messageHandler := handlers.NewMessageHandler(interviewRepo, messageRepo, interviewer)
	feedbackHandler := handlers.NewFeedbackHandler(interviewRepo)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "AI Mock Interview API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 1024*1024,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api")

	// Health / DB connectivity probe
	api.Get("/test", func(c *fiber.Ctx) error {
		database := "Connected successfully!"
		if err := db.Exec("SELECT 1").Error; err != nil {
			database = "Database connection failed"
		}
		return c.JSON(fiber.Map{
			"message":  "Backend is working!",
			"database": database,
		})
	})

	interviews := api.Group("/interviews")
	interviews.Post("/start", interviewHandler.HandleStart)
	interviews.Get("/:id", interviewHandler.HandleGetInterview)
	interviews.Post("/:id/end", interviewHandler.HandleEnd)

	messages := api.Group("/messages")
	messages.Post("/:interviewId", messageHandler.HandleSend)
	messages.Get("/:interviewId", messageHandler.HandleGetMessages)

	api.Get("/feedback/:interviewId", feedbackHandler.HandleGetFeedback)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "AI Mock Interview API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/interviews/start",
				"GET /api/interviews/:id",
				"POST /api/interviews/:id/end",
				"POST /api/messages/:interviewId",
				"GET /api/messages/:interviewId",
				"GET /api/feedback/:interviewId",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
