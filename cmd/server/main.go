package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"comment-screener/internal/config"
	"comment-screener/internal/csvbatch"
	"comment-screener/internal/handler"
	"comment-screener/internal/lexicon"
	"comment-screener/internal/ml_client"
	"comment-screener/internal/repository"
	"comment-screener/internal/scorer"
	"comment-screener/internal/server"
	"comment-screener/internal/service"
	"comment-screener/internal/threshold"

	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "configs/config.yml", "path to the YAML config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	missing := errors.Is(err, fs.ErrNotExist)
	if missing {
		cfg, err = config.Default(), nil
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := server.NewLogger(cfg.Logging.Mode)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("Starting Comment Screener...")
	if missing {
		logger.Warn("Config file not found, using defaults", zap.String("path", *configPath))
	}

	// Load lexicon
	lex := lexicon.Default()
	if cfg.Lexicon.Path != "" {
		lex, err = lexicon.Load(cfg.Lexicon.Path)
		if err != nil {
			logger.Fatal("Failed to load lexicon", zap.String("path", cfg.Lexicon.Path), zap.Error(err))
		}
	}
	logger.Info("Lexicon loaded", zap.Int("entries", lex.Len()))

	builder := service.NewBuilder(scorer.New(lex))

	// Initialize remote model client
	mlClient := ml_client.NewClient(cfg.MLService.URL, time.Duration(cfg.MLService.TimeoutSeconds)*time.Second)

	checkCtx, checkCancel := context.WithTimeout(context.Background(), 3*time.Second)
	if err := mlClient.HealthCheck(checkCtx); err != nil {
		logger.Warn("Model service is not reachable yet, /analyze will fail until it is",
			zap.String("url", cfg.MLService.URL), zap.Error(err))
	}
	checkCancel()

	// Initialize export store
	db, err := repository.NewSQLiteDB(repository.MemoryDSN, logger)
	if err != nil {
		logger.Fatal("Failed to open export store", zap.Error(err))
	}
	defer db.Close()

	if err := repository.MigrateDB(db, logger); err != nil {
		logger.Fatal("Failed to migrate export store", zap.Error(err))
	}

	// Initialize services
	analyzer := service.NewAnalyzer(builder, mlClient, logger)
	batch := service.NewBatchService(
		csvbatch.NewPipeline(builder),
		repository.NewExportRepository(db, logger),
		cfg.Exports.MaxRetained,
		logger,
	)

	// Initialize HTTP handler
	apiHandler := handler.NewHandler(analyzer, batch, mlClient, threshold.Strictness(cfg.Scoring.DefaultStrictness), logger)
	router := server.NewRouter(cfg, apiHandler, logger)

	// Start server
	serverAddr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:              serverAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	logger.Info("Comment Screener is running",
		zap.String("address", serverAddr),
		zap.String("model_service", cfg.MLService.URL),
		zap.String("default_strictness", threshold.Strictness(cfg.Scoring.DefaultStrictness).Description()))

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
