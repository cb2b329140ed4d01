// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/loopvote/cliparse"
	"github.com/danielhkuo/loopvote/db"
	"github.com/danielhkuo/loopvote/redirect"
	"github.com/danielhkuo/loopvote/router"
)

func main() {
	var err error

	// .env is optional
	if err := cliparse.LoadEnvFile(".env"); err != nil {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	dbConn, err := sql.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	if cfg.DatabaseType == "sqlite" {
		// One writer at a time avoids SQLITE_BUSY
		dbConn.SetMaxOpenConns(1)
	}

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema (tables) and seed the catalog
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	if err := db.SeedHouses(dbConn, db.DefaultHouses()); err != nil {
		slog.Error("seeding houses failed", "error", err)
		os.Exit(1)
	}
	if err := db.SeedMessages(dbConn, db.DefaultMessages(time.Now())); err != nil {
		slog.Error("seeding messages failed", "error", err)
		os.Exit(1)
	}
	if cfg.TargetID != 0 {
		if err := db.SetTarget(dbConn, cfg.TargetID); err != nil {
			slog.Error("setting target failed", "error", err, "target_id", cfg.TargetID)
			os.Exit(1)
		}
	}
	slog.Info("Database ready", "type", cfg.DatabaseType)

	target, err := db.TargetID(dbConn)
	if err != nil {
		slog.Error("target lookup failed", "error", err)
		os.Exit(1)
	}

	redirector := redirect.NewRedirector(target, redirect.NewSwitch(cfg.VotingMode), nil)
	if cfg.AdminKeySalt == "" {
		slog.Warn("ADMIN_KEY_SALT not set, voting mode is fixed", "mode", cfg.VotingMode)
	}

	// Create server
	server := http.Server{
		Handler:           router.NewRouter(dbConn, cfg, redirector),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal, then let in-flight votes finish
		<-ctrlc
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Warn("Shutdown timed out", "error", err)
			server.Close()
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "target", target, "mode", cfg.VotingMode)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
