package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ecetin/vocabmaster/internal/api"
	"github.com/ecetin/vocabmaster/internal/config"
	"github.com/ecetin/vocabmaster/internal/logger"
	"github.com/ecetin/vocabmaster/internal/quiz"
	"github.com/ecetin/vocabmaster/internal/report"
	"github.com/ecetin/vocabmaster/internal/speech"
	"github.com/ecetin/vocabmaster/internal/storage/sqlite"
	"github.com/ecetin/vocabmaster/internal/store"
	"github.com/ecetin/vocabmaster/internal/worker"
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
	log.Info("VocabMaster Server Starting")
	log.Info("===========================================")
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("daily_goal=%d", cfg.DailyGoal)
	log.Debug("quiz_min_words=%d", cfg.QuizMinWords)
	log.Debug("speech_timeout=%ds", cfg.SpeechTimeout)
	log.Debug("tts_lang=%s rate=%.2f", cfg.TTSLang, cfg.TTSRate)

	// Open database
	database, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Load the vocabulary into memory
	words := store.New(sqlite.NewKV(database.DB), cfg.DailyGoal)
	if err := words.Load(context.Background()); err != nil {
		// Malformed blobs are skipped, not fatal; the rest of the data loads.
		log.Warn("vocabulary loaded with errors: %v", err)
	}

	// Audio prefetching runs on a small bounded pool.
	ttsPool := worker.NewPool(2, 32)
	ctx, cancel := context.WithCancel(context.Background())
	ttsPool.Start(ctx)

	tts := speech.NewTTS("audio", cfg.TTSLang, cfg.TTSRate).WithPool(ttsPool)

	srv := &api.Server{
		Store:         words,
		Quizzes:       quiz.NewManager(tts),
		Reports:       report.NewHistory(database.DB),
		TTS:           tts,
		QuizMinWords:  cfg.QuizMinWords,
		SpeechTimeout: cfg.SpeechTimeout,
	}

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

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping audio prefetch pool")
	cancel()
	ttsPool.Stop()

	log.Info("===========================================")
	log.Info("VocabMaster Server Stopped")
	log.Info("===========================================")
}
