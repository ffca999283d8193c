package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/gradtohired/talentsearch/internal/adapters/database"
	"github.com/gradtohired/talentsearch/internal/adapters/export"
	"github.com/gradtohired/talentsearch/internal/api/handlers"
	"github.com/gradtohired/talentsearch/internal/api/routes"
	"github.com/gradtohired/talentsearch/internal/application/services"
	"github.com/gradtohired/talentsearch/internal/infrastructure/clients/openai"
	"github.com/gradtohired/talentsearch/internal/infrastructure/clients/postgres"
	"github.com/gradtohired/talentsearch/internal/infrastructure/observability"
	"github.com/gradtohired/talentsearch/internal/schema"
	"github.com/gradtohired/talentsearch/pkg/config"
	"github.com/gradtohired/talentsearch/pkg/secrets"
)

func main() {
	// Local .env is optional; absence is not an error
	_ = godotenv.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Secrets from Vault before config reads the environment
	vaultResult, err := secrets.ApplyVaultSecrets(ctx, secrets.LoadVaultConfigFromEnv())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load secrets from vault")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)
	if vaultResult.Enabled {
		log.Info().
			Str("path", vaultResult.Path).
			Int("loaded", vaultResult.Loaded).
			Int("skipped", vaultResult.Skipped).
			Msg("vault secrets applied")
	}

	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()
				if err := shutdown(shutdownCtx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	pgClient, err := postgres.NewClient(&cfg.Warehouse)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize warehouse client")
	}
	defer pgClient.Close()

	translator, err := openai.NewClient(&cfg.OpenAI)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize translation client")
	}
	defer translator.Close()

	store := database.NewSearchAdapter(pgClient.DB(), cfg.Warehouse.QueryTimeout)
	pipeline := services.NewSearchPipelineService(
		translator,
		store,
		schema.DefaultCatalog(),
		cfg.Export.TopN,
		metrics,
	)

	searchHandler := handlers.NewSearchHandler(
		pipeline,
		export.NewCSVExporter(),
		export.NewExcelExporter(cfg.Export.MaxCellChars),
		metrics,
	)

	healthCheck := func() error {
		pingCtx, pingCancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer pingCancel()
		return pgClient.Ping(pingCtx)
	}

	router := routes.NewRouter(searchHandler, metrics, healthCheck)
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.SetupRoutes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  2 * time.Minute,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server stopped")
}
