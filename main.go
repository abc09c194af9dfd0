package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/haven-labs/sermon-engine/pkg/auth"
	"github.com/haven-labs/sermon-engine/pkg/config"
	"github.com/haven-labs/sermon-engine/pkg/database"
	"github.com/haven-labs/sermon-engine/pkg/handlers"
	"github.com/haven-labs/sermon-engine/pkg/llm"
	"github.com/haven-labs/sermon-engine/pkg/middleware"
	"github.com/haven-labs/sermon-engine/pkg/repositories"
	"github.com/haven-labs/sermon-engine/pkg/services"
	"github.com/haven-labs/sermon-engine/pkg/themes"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("env", cfg.Env),
		zap.String("version", cfg.Version),
		zap.Bool("auth_verification", cfg.Auth.EnableVerification),
		zap.String("database", cfg.Database.Database),
		zap.String("tagger_provider", cfg.Tagger.Provider))

	dbCfg := &database.Config{
		Host:           cfg.Database.Host,
		Port:           cfg.Database.Port,
		User:           cfg.Database.User,
		Password:       cfg.Database.Password,
		Database:       cfg.Database.Database,
		SSLMode:        cfg.Database.SSLMode,
		MaxConnections: cfg.Database.MaxConnections,
	}

	if err := database.RunMigrations(dbCfg, cfg.Database.MigrationsPath, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := database.NewConnection(ctx, dbCfg)
	cancel()
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	matcher := themes.NewMatcher()
	if path := cfg.Taxonomy.SynonymOverlayPath; path != "" {
		overlay, err := themes.LoadSynonymOverlay(path)
		if err != nil {
			logger.Fatal("Failed to load synonym overlay", zap.Error(err))
		}
		if err := matcher.AddSynonyms(overlay); err != nil {
			logger.Fatal("Failed to apply synonym overlay", zap.Error(err))
		}
		logger.Info("Loaded synonym overlay", zap.String("path", path))
	}

	tagger, err := newTagger(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to create theme tagger", zap.Error(err))
	}

	sermonRepo := repositories.NewSermonRepository(db)
	assignmentRepo := repositories.NewThemeAssignmentRepository(db)

	sermonService := services.NewSermonService(sermonRepo, logger)
	classificationService := services.NewClassificationService(sermonRepo, assignmentRepo, matcher, tagger, logger)
	overrideService := services.NewThemeOverrideService(sermonRepo, assignmentRepo, logger)

	jwksClient, err := auth.NewJWKSClient(&auth.JWKSConfig{
		EnableVerification: cfg.Auth.EnableVerification,
		Issuer:             cfg.Auth.Issuer,
		JWKSURL:            cfg.Auth.JWKSURL,
	})
	if err != nil {
		logger.Fatal("Failed to create JWKS client", zap.Error(err))
	}
	authService := auth.NewAuthService(jwksClient, logger)
	authMiddleware := auth.NewMiddleware(authService, logger)

	mux := http.NewServeMux()

	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewSermonHandler(sermonService, logger).RegisterRoutes(mux, authMiddleware)
	handlers.NewThemeHandler(classificationService, overrideService, logger).RegisterRoutes(mux, authMiddleware)

	server := &http.Server{
		Addr:         cfg.BindAddr + ":" + cfg.Port,
		Handler:      middleware.RequestLogger(logger)(mux),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	logger.Info("Starting sermon-engine",
		zap.String("addr", server.Addr),
		zap.String("version", cfg.Version))
	if err := server.ListenAndServe(); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

// newLogger builds a production logger except in local development,
// where the console encoder is easier to read.
func newLogger(env string) (*zap.Logger, error) {
	if env == "local" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// newTagger builds the configured LLM tagger, or nil when classification
// should rely on caller-supplied raw themes only.
func newTagger(cfg *config.Config, logger *zap.Logger) (llm.ThemeTagger, error) {
	switch cfg.Tagger.Provider {
	case "", "none":
		return nil, nil
	case "openai":
		return llm.NewOpenAITagger(&llm.OpenAIConfig{
			Endpoint: cfg.Tagger.OpenAIEndpoint,
			Model:    cfg.Tagger.OpenAIModel,
			APIKey:   cfg.Tagger.OpenAIAPIKey,
		}, logger)
	case "anthropic":
		return llm.NewAnthropicTagger(&llm.AnthropicConfig{
			Model:  cfg.Tagger.AnthropicModel,
			APIKey: cfg.Tagger.AnthropicAPIKey,
		}, logger)
	default:
		return nil, nil
	}
}
