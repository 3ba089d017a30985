package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	corecfg "github.com/salesboard-lab/salesboard/internal/core/config"
	"github.com/salesboard-lab/salesboard/internal/export"
	"github.com/salesboard-lab/salesboard/internal/query"
	"github.com/salesboard-lab/salesboard/internal/server"
	"github.com/salesboard-lab/salesboard/internal/store/csvstore"
)

func main() {
	configPath := flag.String("config", "salesboard.yaml", "Path to configuration file")
	flag.Parse()

	// 0. Initialize Logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.Info("Loaded config", "config", cfg)

	// 2. Initialize Record Store
	store := csvstore.New(cfg.Dataset.Path, csvstore.Options{
		Cache:  cfg.Dataset.Cache,
		Logger: logger,
	})

	// 3. Initialize Query and Export services
	querySvc := query.NewService(store, cfg.Dataset.EffectiveLoadTimeout())
	exportSvc := export.NewService(querySvc, cfg.Export.MaxRows)

	// 4. Initialize Server
	srv := server.New(fmtAddr(cfg.Server.Host, cfg.Server.Port), store, cfg.Server.Mode)
	querySvc.RegisterRoutes(srv.Engine)
	exportSvc.RegisterRoutes(srv.Engine)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Signal handler triggers the shutdown sequence below.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		slog.Info("Signal received, shutting down...")
		cancel()
	}()

	// HTTP server blocks until ctx is cancelled.
	if err := srv.Run(ctx); err != nil {
		slog.Error("Server stopped with error", "error", err)
	}

	slog.Info("Shutdown complete")
}

func fmtAddr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
