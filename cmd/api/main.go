package main

import (
	"context"
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

	"tailorcv/resume-tailor/internal/config"
	"tailorcv/resume-tailor/internal/handlers"
	"tailorcv/resume-tailor/internal/repositories"
	"tailorcv/resume-tailor/internal/services"
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
	docRepo := repositories.NewDocumentRepository(db)
	analysisRepo := repositories.NewAnalysisRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	extractor := services.NewExtractorService(
		services.NewPDFExtractorService(),
		services.NewDocxExtractorService(),
		cfg.Limits.MaxExtractedChars,
	)
	resumeParser := services.NewResumeParserService()
	jobParser := services.NewJobParserService()
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Timeout)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Initialize the optional Qdrant skill index
	var skillIndex services.SkillIndexService
	var suggester services.SkillSuggester
	if cfg.SkillIndexEnabled() {
		skillIndex, err = services.NewSkillIndexService(
			cfg.Qdrant.URL,
			cfg.Qdrant.APIKey,
			cfg.Qdrant.Collection,
			geminiService,
		)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
		}

		if err := skillIndex.InitCollection(); err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
		}
		suggester = skillIndex
		log.Println("✅ Qdrant skill index initialized successfully")
	} else {
		log.Println("⚠️  QDRANT_URL not set, skill index disabled")
	}

	// Initialize the oracle and the services built on it
	oracle := services.NewGeminiOracle(geminiService, cfg.Worker.RetryMaxAttempts)
	interrogationService := services.NewInterrogationService(oracle, suggester)
	scorerService := services.NewAtsScorerService(oracle)
	scoreJobService := services.NewScoreJobService(analysisRepo, scorerService)
	log.Println("✅ Oracle services initialized")

	// Initialize worker
	worker := services.NewWorker(
		analysisRepo,
		scoreJobService,
		cfg.Worker.Concurrency,
	)
	log.Println("✅ Worker initialized successfully")

	// Start worker
	ctx := context.Background()
	worker.Start(ctx)
	log.Println("✅ Worker started successfully")

	// Initialize handlers
	uploadHandler := handlers.NewUploadHandler(
		docRepo,
		storageService,
		extractor,
		resumeParser,
		jobParser,
		cfg.Storage.MaxFileSize,
	)
	documentHandler := handlers.NewDocumentHandler(docRepo)
	parseHandler := handlers.NewParseHandler(resumeParser, jobParser)
	interrogationHandler := handlers.NewInterrogationHandler(interrogationService)
	scoreHandler := handlers.NewScoreHandler(scoreJobService, worker)
	skillsHandler := handlers.NewSkillsHandler(suggester)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Resume Tailor API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
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
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	api.Post("/upload", uploadHandler.HandleUpload)
	api.Get("/document/:id", documentHandler.HandleGetDocument)
	api.Post("/parse/resume", parseHandler.HandleParseResume)
	api.Post("/parse/job", parseHandler.HandleParseJob)
	api.Post("/interrogation", interrogationHandler.HandleStart)
	api.Get("/interrogation/:id", interrogationHandler.HandleGet)
	api.Post("/interrogation/:id/answer", interrogationHandler.HandleAnswer)
	api.Post("/score", scoreHandler.HandleScore)
	api.Get("/score/:id", scoreHandler.HandleGetResult)
	api.Get("/skills/suggest", skillsHandler.HandleSuggest)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Resume Tailor API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/upload",
				"GET /api/v1/document/:id",
				"POST /api/v1/parse/resume",
				"POST /api/v1/parse/job",
				"POST /api/v1/interrogation",
				"GET /api/v1/interrogation/:id",
				"POST /api/v1/interrogation/:id/answer",
				"POST /api/v1/score",
				"GET /api/v1/score/:id",
				"GET /api/v1/skills/suggest",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		worker.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
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
