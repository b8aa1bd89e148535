// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/sociogram/accesslog"
	"github.com/danielhkuo/sociogram/auth"
	"github.com/danielhkuo/sociogram/cliparse"
	"github.com/danielhkuo/sociogram/db"
	"github.com/danielhkuo/sociogram/middleware"
	"github.com/danielhkuo/sociogram/router"
	"github.com/danielhkuo/sociogram/sociogram"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve [flags]",
		Short: "Run the dashboard API",
		// Flags belong to cliparse so env fallbacks stay in one place
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cliparse.ParseFlags(args, cliparse.ModeServe)
			if err != nil {
				return fmt.Errorf("parsing flags: %w", err)
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

// buildCache wires the normalizer, loader and snapshot cache for cfg.
func buildCache(cfg cliparse.Config) (*sociogram.Cache, *sociogram.Normalizer, error) {
	corrections, err := sociogram.LoadCorrections(cfg.CorrectionsFile)
	if err != nil {
		return nil, nil, err
	}
	normalizer, err := sociogram.NewNormalizer(corrections, cfg.FoldAccents)
	if err != nil {
		return nil, nil, err
	}
	return sociogram.NewCache(sociogram.NewLoader(normalizer), cfg.DataDir), normalizer, nil
}

// openAccessLog returns the SQL log when a database is configured and the
// CSV file otherwise.
func openAccessLog(cfg cliparse.Config) (accesslog.Store, func(), error) {
	if cfg.DatabaseURL == "" {
		slog.Info("Access log", "path", cfg.AccessLogPath)
		return accesslog.NewCSVStore(cfg.AccessLogPath), func() {}, nil
	}

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := db.CreateSchema(conn); err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("schema creation failed: %w", err)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)
	return accesslog.NewSQLStore(conn, cfg.DatabaseType), func() { conn.Close() }, nil
}

func serve(ctx context.Context, cfg cliparse.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cache, normalizer, err := buildCache(cfg)
	if err != nil {
		return err
	}

	// Warm the cache so load warnings show up at startup
	snap, err := cache.Snapshot(ctx)
	if err != nil {
		return err
	}
	slog.Info("Records loaded",
		"participants", snap.Index.Len(),
		"collisions", len(snap.Index.Collisions()),
		"root", cfg.DataDir,
	)

	if cfg.Watch {
		watcher, err := sociogram.NewWatcher(cache)
		if err != nil {
			return fmt.Errorf("starting watcher: %w", err)
		}
		if err := watcher.Start(ctx); err != nil {
			return err
		}
		defer watcher.Stop()
	}

	store, closeStore, err := openAccessLog(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	mux := router.NewRouter(router.Deps{
		Cache:     cache,
		Users:     auth.NewAllowlist(cfg.AllowedUsers, cfg.AdminUser, normalizer),
		Sessions:  auth.NewSessions(cfg.SessionSalt, cfg.SessionTTL),
		AccessLog: store,
	}, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(ctrlc)
	go func() {
		// Wait for Ctrl-C signal
		select {
		case <-ctrlc:
		case <-ctx.Done():
		}
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
		return err
	}
	slog.Info("Server closed", "error", err)
	return nil
}
