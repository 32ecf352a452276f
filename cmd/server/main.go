package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quizdeck/internal/api"
	"quizdeck/internal/config"
	"quizdeck/internal/db"
	"quizdeck/internal/logger"
	"quizdeck/internal/opentdb"
	"quizdeck/internal/questions"
	"quizdeck/internal/repository/sqlite"
	"quizdeck/internal/services"
	"quizdeck/internal/session"
	"quizdeck/internal/worker"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("QuizDeck Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("trivia_base_url=%s", cfg.TriviaBaseURL)
	log.Debug("trivia_timeout_seconds=%d", cfg.TriviaTimeoutSeconds)
	log.Debug("persist_worker_count=%d", cfg.PersistWorkerCount)
	log.Debug("persist_queue_size=%d", cfg.PersistQueueSize)
	log.Debug("passing_score=%d", cfg.PassingScore)
	log.Debug("default_question_count=%d", cfg.DefaultQuestionCount)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Initialize worker pool for background result persistence
	persistPool := worker.NewPool(cfg.PersistWorkerCount, cfg.PersistQueueSize)

	// Initialize services
	resultRepo := sqlite.NewResultRepository(database.DB, cfg.PassingScore)
	triviaClient := opentdb.New(cfg.TriviaBaseURL, time.Duration(cfg.TriviaTimeoutSeconds)*time.Second)
	source := questions.NewSource(triviaClient)

	machine := session.NewMachine()
	if err := machine.SetQuestionCount(cfg.DefaultQuestionCount); err != nil {
		log.Warn("ignoring default question count %d: %v", cfg.DefaultQuestionCount, err)
	}

	quizService := services.NewQuizService(machine, source, resultRepo, persistPool)

	srv := &api.Server{
		DB:          database,
		QuizService: quizService,
	}

	ctx, cancel := context.WithCancel(context.Background())
	persistPool.Start(ctx)

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Shutdown HTTP server first so no new saves are enqueued.
	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	// Drain pending result saves.
	log.Debug("stopping persistence pool")
	persistPool.Stop()
	cancel()

	log.Info("===========================================")
	log.Info("QuizDeck Server Stopped")
	log.Info("===========================================")
}
