package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/thsolutions/homesheet/internal/analysis"
	"github.com/thsolutions/homesheet/internal/backend"
	"github.com/thsolutions/homesheet/internal/config"
	"github.com/thsolutions/homesheet/internal/domain"
	"github.com/thsolutions/homesheet/internal/logging"
	"github.com/thsolutions/homesheet/internal/photocache"
	"github.com/thsolutions/homesheet/internal/report"
	"github.com/thsolutions/homesheet/internal/reportdb"
	"github.com/thsolutions/homesheet/internal/web"
	"github.com/thsolutions/homesheet/internal/web/templates"
)

func main() {
	cfg := config.Load()

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	database, err := reportdb.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	cache, err := photocache.New(cfg.PhotoCachePath)
	if err != nil {
		logger.Error("failed to initialize photo cache", "error", err)
		return
	}

	client := backend.New(cfg.BackendURL, cfg.BackendToken, http.DefaultClient)

	server := web.NewServer(web.Deps{
		Backend:       client,
		Reports:       report.NewAggregator(client, domain.Worksheets(), logger),
		Snapshots:     reportdb.NewStore(database),
		Summarizer:    newSummarizer(cfg, logger),
		PhotoCache:    cache,
		DebounceDelay: cfg.DebounceDelay,
	}, templates.FS, logger)

	// Flush pending debounced writes before the process dies.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("shutting down, flushing pending writes")
		server.Flush()
		os.Exit(0)
	}()

	if err := server.ListenAndServe(cfg.ListenAddr); err != nil {
		logger.Error("server error", "error", err)
	}
}

func newSummarizer(cfg *config.Config, logger *slog.Logger) analysis.Summarizer {
	if cfg.ClaudeAPIKey == "" {
		logger.Info("CLAUDE_API_KEY not set, report analysis disabled")
		return nil
	}
	logger.Info("report analysis enabled", "model", cfg.ClaudeModel)
	return analysis.NewClaudeSummarizer(cfg.ClaudeAPIKey, cfg.ClaudeModel)
}
