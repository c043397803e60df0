package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/mock-ballot/cliparse"
	"github.com/danielhkuo/mock-ballot/db"
	"github.com/danielhkuo/mock-ballot/handlers"
	"github.com/danielhkuo/mock-ballot/middleware"
	"github.com/danielhkuo/mock-ballot/router"
	"github.com/danielhkuo/mock-ballot/session"
	"github.com/danielhkuo/mock-ballot/tally"
)

func main() {
	var err error

	// .env is optional; real environment variables win
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("could not load .env", "error", err)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the database
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready")

	// Load the persisted tally and voter registry
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	store, err := tally.Open(ctx, tally.NewSQLKV(dbConn), cfg.Candidates)
	cancel()
	if err != nil {
		slog.Error("tally load failed", "error", err)
		os.Exit(1)
	}

	// One session per process, shown to HTTP clients and the log
	feed := handlers.NewFeed()
	s := session.New(store, cfg, session.WithView(session.Views{feed, session.LogView{}}))

	// Create router
	mux := router.NewRouter(s, feed)

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
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "candidates", len(cfg.Candidates), "commit_delay", cfg.CommitDelay)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
