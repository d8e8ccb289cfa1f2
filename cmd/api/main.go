package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/matthewbartlett-hub/apex-ai-backend/internal/adapters/httpapi"
	memdocrepo "github.com/matthewbartlett-hub/apex-ai-backend/internal/adapters/memory/docrepo"
	memextractionrepo "github.com/matthewbartlett-hub/apex-ai-backend/internal/adapters/memory/extractionrepo"
	"github.com/matthewbartlett-hub/apex-ai-backend/internal/adapters/postgres"
	pgdocrepo "github.com/matthewbartlett-hub/apex-ai-backend/internal/adapters/postgres/docrepo"
	pgextractionrepo "github.com/matthewbartlett-hub/apex-ai-backend/internal/adapters/postgres/extractionrepo"
	"github.com/matthewbartlett-hub/apex-ai-backend/internal/app/documents"
	"github.com/matthewbartlett-hub/apex-ai-backend/internal/app/extraction"
	"github.com/matthewbartlett-hub/apex-ai-backend/internal/extract"
	"github.com/matthewbartlett-hub/apex-ai-backend/internal/extract/architects"
	"github.com/matthewbartlett-hub/apex-ai-backend/internal/platform/config"
	"github.com/matthewbartlett-hub/apex-ai-backend/internal/ports/clock"
	"github.com/matthewbartlett-hub/apex-ai-backend/internal/ports/out/docrepo"
	"github.com/matthewbartlett-hub/apex-ai-backend/internal/ports/out/extractionrepo"
)

func main() {
	log := logrus.New()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	log.SetLevel(cfg.LogLevel)
	if cfg.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		docs    docrepo.Repository
		results extractionrepo.Repository
	)
	if cfg.DatabaseURL != "" {
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, postgres.PoolOptions{})
		if err != nil {
			log.Fatalf("postgres: %v", err)
		}
		defer pool.Close()
		docs = pgdocrepo.NewRepo(pool)
		results = pgextractionrepo.NewRepo(pool)
		log.Info("using postgres repositories")
	} else {
		docs = memdocrepo.NewRepo()
		results = memextractionrepo.NewRepo()
		log.Info("DATABASE_URL not set; using in-memory repositories")
	}

	registry := extract.NewRegistry(
		architects.New(),
		// Later: accountants, surveyors, engineers templates.
	)

	clk := clock.System{}
	docsSvc := documents.NewService(docs, clk, cfg.MaxUploadBytes, log)
	extractionSvc := extraction.NewService(registry, results, clk, log)

	handler := httpapi.NewRouterWithOptions(
		httpapi.NewServer(docsSvc, extractionSvc, log),
		httpapi.RouterOptions{CORSAllowedOrigins: cfg.CORSAllowedOrigins},
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Infof("api listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
