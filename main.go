package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/resumeinsight/backend/analysis"
	"github.com/resumeinsight/backend/auth"
	"github.com/resumeinsight/backend/config"
	_ "github.com/resumeinsight/backend/docs"
	"github.com/resumeinsight/backend/gemini"
	"github.com/resumeinsight/backend/handlers"
	"github.com/resumeinsight/backend/logger"
	"github.com/resumeinsight/backend/mcp"
	"github.com/resumeinsight/backend/profiles"
	"github.com/resumeinsight/backend/storage"
	"github.com/resumeinsight/backend/tools"
	"github.com/resumeinsight/backend/utils"
)

// @title ResumeInsight API
// @version 1.0
// @description AI-powered resume analysis: text extraction, Gemini based evaluation with deterministic fallback, and job profile management

// @contact.name API Support
// @contact.email support@resumeinsight.dev

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the admin JWT

func main() {
	configPath := pflag.String("config", "", "optional YAML config file")
	envFile := pflag.String("env-file", ".env", "dotenv file loaded before reading the environment")
	issueToken := pflag.String("issue-admin-token", "", "print an admin token for the given subject and exit")
	tokenTTL := pflag.Duration("token-ttl", 24*time.Hour, "lifetime of an issued admin token")
	pflag.Parse()

	// Load .env file if present (for local development)
	envErr := godotenv.Load(*envFile)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	logger.Init(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log := logger.Component("main")
	if envErr != nil {
		log.Debug().Str("file", *envFile).Msg("no .env file found, using environment variables")
	}

	jwtService := auth.NewJWTService(cfg.AdminJWTSecret)

	if *issueToken != "" {
		if jwtService == nil {
			log.Fatal().Msg("ADMIN_JWT_SECRET must be set to issue admin tokens")
		}
		token, err := jwtService.GenerateToken(*issueToken, *tokenTTL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to issue admin token")
		}
		fmt.Println(token)
		return
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuration error")
	}

	// Set Gin mode based on debug setting
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	generator, closeGenerator, err := newGenerator(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.GeminiBackend).Msg("failed to initialize Gemini")
	}
	defer closeGenerator()
	log.Info().Str("backend", cfg.GeminiBackend).Str("model", cfg.GeminiModel).Msg("Gemini client initialized")

	store, closeStore, err := newStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.StorageBackend).Msg("failed to initialize upload storage")
	}
	defer closeStore()
	log.Info().Str("backend", cfg.StorageBackend).Msg("upload storage initialized")

	// Core services
	registry := profiles.NewRegistry(profiles.NewModelKeywordGenerator(generator))
	analyzer := analysis.NewAnalyzer(generator, registry, analysis.WithBackoff(analysis.Backoff{
		MaxAttempts: cfg.AIMaxAttempts,
		Initial:     time.Duration(cfg.AIInitialBackoffSeconds) * time.Second,
	}))
	pipeline := analysis.NewPipeline(store, utils.NewDocumentExtractor(), analyzer)

	// MCP server with tool registry
	toolRegistry := tools.NewToolRegistry()
	tools.RegisterAll(toolRegistry, pipeline, registry)
	mcpServer := mcp.NewServer(toolRegistry, "resumeinsight", handlers.Version)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(handlers.RequestLogger())
	router.Use(cors.New(corsConfig(cfg.AllowedOrigins)))
	router.MaxMultipartMemory = cfg.MaxUploadBytes

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", handlers.Health)

	api := router.Group("/api")
	handlers.RegisterRoutes(api,
		handlers.NewResumeHandler(pipeline, cfg.MaxUploadBytes),
		handlers.NewProfileHandler(registry),
		jwtService,
	)

	// MCP endpoints for external AI agents; they can mutate profiles, so they share the admin guard
	mcpServer.RegisterRoutes(api.Group("", auth.AdminMiddleware(jwtService)))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 180 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Bool("admin_guard", jwtService != nil).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return
	}

	log.Info().Msg("server exited gracefully")
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load(), nil
	}
	return config.LoadFile(path)
}

func newGenerator(ctx context.Context, cfg *config.Config) (gemini.Generator, func(), error) {
	switch cfg.GeminiBackend {
	case config.BackendVertex:
		client, err := gemini.NewVertexClient(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return client, func() { client.Close() }, nil
	default:
		httpClient := utils.NewHTTPClient(time.Duration(cfg.HTTPTimeoutSeconds) * time.Second)
		client, err := gemini.NewAPIKeyClient(ctx, cfg, httpClient)
		if err != nil {
			return nil, nil, err
		}
		return client, func() {}, nil
	}
}

func newStore(ctx context.Context, cfg *config.Config) (storage.DocumentStore, func(), error) {
	switch cfg.StorageBackend {
	case config.StorageGCS:
		store, err := storage.NewCloudStorageStore(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	case config.StorageS3:
		store, err := storage.NewS3Store(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	default:
		store, err := storage.NewLocalStore(cfg.UploadFolder)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	}
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", handlers.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", handlers.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
