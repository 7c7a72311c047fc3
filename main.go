package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/uchaguzi-block/assistant"
	"github.com/danielhkuo/uchaguzi-block/cliparse"
	"github.com/danielhkuo/uchaguzi-block/db"
	"github.com/danielhkuo/uchaguzi-block/flow"
	"github.com/danielhkuo/uchaguzi-block/middleware"
	"github.com/danielhkuo/uchaguzi-block/router"
	"github.com/danielhkuo/uchaguzi-block/shell"
)

func main() {
	var err error

	// A missing .env is fine; flags and the real environment still apply
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	level, err := cliparse.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		slog.Error("Error parsing log level", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	// Connect to the candidate database
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema (tables) and load the sample ballot
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	if err := db.SeedCandidates(context.Background(), dbConn, db.SampleCandidates); err != nil {
		slog.Error("candidate seeding failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	gateway := assistant.NewGateway(assistant.Config{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		BaseURL: cfg.GeminiBaseURL,
		Timeout: cfg.AITimeout,
	})
	if gateway.Offline() {
		slog.Warn("no Gemini API key, assistant runs in demo mode")
	}

	sessions := shell.NewStore(shell.Deps{
		Candidates: db.NewCandidateStore(dbConn),
		Assistant:  gateway,
		Flow: flow.Config{
			ScanDuration:   cfg.ScanDuration,
			SubmitDuration: cfg.SubmitDuration,
			Location:       cfg.VoteLocation,
		},
	}, cfg.SessionTTL)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sessions.RunSweeper(ctx, time.Minute)

	// Create router
	mux := router.NewRouter(dbConn, gateway, sessions)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		cancel()
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		server.Shutdown(shutdownCtx)
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}

	sessions.CloseAll()
}
