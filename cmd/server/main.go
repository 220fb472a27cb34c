package main

import (
	"context"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kadarb/studyflash/internal/ai"
	"github.com/kadarb/studyflash/internal/api"
	"github.com/kadarb/studyflash/internal/config"
	"github.com/kadarb/studyflash/internal/logger"
	"github.com/kadarb/studyflash/internal/services"
	"github.com/kadarb/studyflash/internal/storage"
	"github.com/kadarb/studyflash/internal/store"
	"github.com/kadarb/studyflash/internal/textextract"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("StudyFlash Server Starting")
	log.Info("===========================================")
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("groq_model=%s", cfg.GroqModel)
	log.Debug("tika_url=%s", cfg.TikaURL)
	log.Debug("snapshot_keep=%d", cfg.SnapshotKeep)
	if cfg.GroqAPIKey == "" {
		log.Warn("GROQ_API_KEY not set, chat will respond with a configuration notice")
	}
	if cfg.ReplicateAPIToken == "" {
		log.Warn("REPLICATE_API_TOKEN not set, image generation disabled")
	}

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}

	driver, err := storage.Open(cfg.DBPath, cfg.SnapshotKeep)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		driver.Close()
	}()

	ctx := logger.NewContext(context.Background(), log)

	st, err := store.Open(ctx, driver)
	if err != nil {
		log.Error("failed to load application state: %v", err)
		os.Exit(1)
	}

	chatClient := ai.NewChatClient(ai.ChatConfig{
		APIKey:  cfg.GroqAPIKey,
		BaseURL: cfg.GroqBaseURL,
		Model:   cfg.GroqModel,
	})
	imageClient := ai.NewImageClient(cfg.ReplicateAPIToken)
	tikaClient := textextract.NewClient(cfg.TikaURL)

	srv := &api.Server{
		Store:       st,
		Chat:        services.NewChatService(st, chatClient),
		Plan:        services.NewPlanService(st),
		Quiz:        services.NewQuizService(st, rand.NewSource(time.Now().UnixNano())),
		Documents:   services.NewDocumentService(tikaClient),
		Images:      imageClient,
		Snapshots:   driver,
		CORSOrigins: cfg.CORSOrigins,
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Info("===========================================")
	log.Info("StudyFlash Server Stopped")
	log.Info("===========================================")
}
