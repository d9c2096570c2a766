package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/gofiber/fiber/v2"

	"github.com/schnauzenportal/server/internal/config"
	"github.com/schnauzenportal/server/internal/database"
	"github.com/schnauzenportal/server/internal/handler"
	"github.com/schnauzenportal/server/internal/logging"
	"github.com/schnauzenportal/server/internal/middleware"
	"github.com/schnauzenportal/server/internal/pipeline"
	"github.com/schnauzenportal/server/internal/repository"
	"github.com/schnauzenportal/server/internal/service"
)

// main is the single entry-point for the REST API. Every external client is
// constructed once here and handed into the services by reference; nothing is
// initialised lazily at request time.
func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	slog.Info("configuration loaded",
		"db", cfg.DBName,
		"collection", cfg.PetsCollection,
		"provider", cfg.LLMProvider,
		"workingLanguage", cfg.WorkingLanguage)

	// Connect to MongoDB (pet catalog + vector index).
	client, ctx, cancel, err := database.NewMongo(cfg.MongoURI)
	if err != nil {
		slog.Error("failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer cancel()
	defer client.Disconnect(ctx)
	slog.Info("connected to MongoDB")

	petRepo := repository.NewPetRepository(client.Database(cfg.DBName), cfg.PetsCollection, cfg.VectorIndexName)

	// Model clients, selected by provider.
	gen, embedder, err := newModelClients(cfg)
	if err != nil {
		slog.Error("failed to initialize model clients", "error", err)
		os.Exit(1)
	}
	if closer, ok := gen.(io.Closer); ok {
		defer closer.Close()
	}
	if closer, ok := embedder.(io.Closer); ok {
		defer closer.Close()
	}

	// Services + pipeline.
	completions := service.NewCompletionService(gen, cfg.WorkingLanguage)
	searchSvc := service.NewPetSearchService(petRepo, embedder, cfg.SearchLimit)
	catalogSvc := service.NewCatalogService(petRepo)

	pipe := pipeline.New(completions, searchSvc, cfg.WorkingLanguage, pipeline.FallbacksFor(cfg.ResponseLocale))

	// Create Fiber app.
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	// Add middleware.
	app.Use(middleware.Logging())

	// Register routes.
	handler.RegisterRoutes(app, pipe, catalogSvc)
	handler.NewHealthHandler(client).Register(app)

	// Start server.
	slog.Info("server starting", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		slog.Error("server failed to start", "error", err)
		os.Exit(1)
	}
}

// newModelClients builds the completion generator and the query embedder for
// the configured provider.
func newModelClients(cfg config.Config) (service.TextGenerator, service.Embedder, error) {
	switch cfg.LLMProvider {
	case "vertex":
		gen, err := service.NewVertexLLM(cfg.GCPProjectID, cfg.GCPLocation)
		if err != nil {
			return nil, nil, err
		}
		embedder, err := service.NewVertexEmbedder(cfg.GCPProjectID, cfg.GCPLocation)
		if err != nil {
			return nil, nil, err
		}
		return gen, embedder, nil
	case "dummy":
		return service.NewDummyLLM(), service.NewDummyEmbedder(), nil
	default: // "openai"
		gen, err := service.NewOpenAILLM(cfg.OpenAIToken, cfg.OpenAIModel)
		if err != nil {
			return nil, nil, err
		}
		embedder, err := service.NewOpenAIEmbedder(cfg.OpenAIToken, cfg.EmbeddingModel)
		if err != nil {
			return nil, nil, err
		}
		return gen, embedder, nil
	}
}
