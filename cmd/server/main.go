package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fadedpez/gamesvc/internal/config"
	"github.com/fadedpez/gamesvc/internal/logging"
	"github.com/fadedpez/gamesvc/internal/server"
	"github.com/fadedpez/gamesvc/pkg/repositories/history"
	"github.com/fadedpez/gamesvc/pkg/repositories/session"
	"github.com/fadedpez/gamesvc/pkg/services/blackjack"
	"github.com/fadedpez/gamesvc/pkg/services/rps"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	level := logging.INFO
	if cfg.IsDevelopment() {
		level = logging.DEBUG
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	logger := logging.NewLogger(level)

	store, err := newStore(cfg)
	if err != nil {
		log.Fatalf("Error initializing the %s session store: %v", cfg.StoreBackend, err)
	}
	logger.Info("Using the %s session store", cfg.StoreBackend)

	hist := newHistory(cfg, logger)

	srv := server.New(
		blackjack.NewService(store, hist, logger),
		rps.NewService(nil),
		logger,
	)

	httpServer := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: srv.Handler(),
	}

	go func() {
		logger.Info("Listening on %s", cfg.ServerAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Error running the HTTP server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("Error shutting down the HTTP server: %v", err)
	}
	if err := store.Close(); err != nil {
		logger.Error("Error closing the session store: %v", err)
	}
	if hist != nil {
		if err := hist.Close(); err != nil {
			logger.Error("Error closing the history index: %v", err)
		}
	}
}

func newStore(cfg *config.Config) (session.Repository, error) {
	switch cfg.StoreBackend {
	case config.StoreMemory:
		return session.NewMemoryRepository(), nil
	case config.StoreSQLite:
		return session.NewSQLiteRepository(cfg.SQLitePath)
	case config.StorePostgres:
		return session.NewPostgresRepository(cfg.DatabaseURL, cfg.MaxPool)
	case config.StoreRedis:
		return session.NewRedisRepository(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	default:
		// config.Load already rejected unknown backends
		return session.NewMemoryRepository(), nil
	}
}

// newHistory builds the settled-game index. Indexing is optional, so a
// missing URL or a failed connection downgrades to no history instead
// of refusing to start.
func newHistory(cfg *config.Config, logger *logging.Logger) history.Repository {
	if cfg.ElasticsearchURL == "" {
		logger.Info("ELASTICSEARCH_URL not set, settled games will not be indexed")
		return nil
	}

	repo, err := history.NewElasticsearchRepository(&history.ElasticsearchConfig{
		URL:         cfg.ElasticsearchURL,
		Username:    cfg.ElasticsearchUsername,
		Password:    cfg.ElasticsearchPassword,
		IndexPrefix: cfg.ElasticsearchIndexPrefix,
	})
	if err != nil {
		logger.Warn("Error connecting to Elasticsearch, settled games will not be indexed: %v", err)
		return nil
	}

	logger.Info("Indexing settled games to Elasticsearch at %s", cfg.ElasticsearchURL)
	return repo
}
