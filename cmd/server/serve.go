package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/hairizuan-noorazman/suitegen/broadcast"
	"github.com/hairizuan-noorazman/suitegen/cmd/server/handlers"
	"github.com/hairizuan-noorazman/suitegen/generate"
	"github.com/hairizuan-noorazman/suitegen/logger"
	"github.com/hairizuan-noorazman/suitegen/provider"
	"github.com/hairizuan-noorazman/suitegen/runner"
	"github.com/hairizuan-noorazman/suitegen/storage"
	"github.com/spf13/cobra"
)

var configFile string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServer,
}

func init() {
	serveCmd.Flags().StringVarP(&configFile, "config", "c", "", "config file path")
	rootCmd.AddCommand(serveCmd)
}

func runServer(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.NewLogrusLogger(cfg.Log.Level)
	log.Info(ctx, "starting server", map[string]interface{}{
		"version": Version,
		"commit":  Commit,
		"date":    BuildDate,
	})

	// Test directory must be local: the runner reads the files off disk.
	tests, err := storage.OpenTestDir(cfg.Tests.Dir)
	if err != nil {
		return fmt.Errorf("failed to initialize test directory: %w", err)
	}

	artifacts, err := storage.NewArchive(cfg.Artifacts.Kind, cfg.Artifacts.BaseDir, cfg.Artifacts.S3Bucket, cfg.Artifacts.S3Region)
	if err != nil {
		return fmt.Errorf("failed to initialize run-log archive: %w", err)
	}

	log.Info(ctx, "storage initialized", map[string]interface{}{
		"tests_dir": cfg.Tests.Dir,
		"artifacts": cfg.Artifacts.Kind,
	})

	hub := broadcast.NewHub(log)

	settings := handlers.NewProviderSettings(provider.Config{
		Kind:    provider.Kind(cfg.Provider.Kind),
		APIKey:  cfg.Provider.APIKey,
		Model:   cfg.Provider.Model,
		BaseURL: cfg.Provider.BaseURL,
		Region:  cfg.Provider.Region,
	})

	pipeline := generate.NewPipeline(provider.New, hub, log)
	execRunner := runner.NewExecRunner(cfg.Runner.Bin, cfg.Runner.Args, log)

	router := mux.NewRouter()

	router.HandleFunc("/health", handlers.HealthHandler).Methods("GET")

	suiteHandler := handlers.NewSuiteHandler(pipeline, tests, settings, hub, cfg.Tests.AppBaseURL, log)
	testHandler := handlers.NewTestHandler(tests, hub, cfg.Tests.AppBaseURL, log)
	runHandler := handlers.NewRunHandler(execRunner, tests, artifacts, hub, log)
	settingsHandler := handlers.NewSettingsHandler(settings, log)
	wsHandler := handlers.NewWSHandler(hub, log)

	router.HandleFunc("/api/v1/suites", suiteHandler.Generate).Methods("POST")
	router.HandleFunc("/api/v1/tests", testHandler.Generate).Methods("POST")
	router.HandleFunc("/api/v1/runs", runHandler.Run).Methods("POST")
	router.HandleFunc("/api/v1/settings/provider", settingsHandler.Get).Methods("GET")
	router.HandleFunc("/api/v1/settings/provider", settingsHandler.Update).Methods("PUT")
	router.HandleFunc("/ws", wsHandler.Handle)

	// Bundled browser UI.
	router.PathPrefix("/").Handler(http.FileServer(http.Dir(cfg.Static.Dir)))

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info(ctx, "server listening", map[string]interface{}{
			"address": addr,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(ctx, "server error", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info(ctx, "shutting down server", nil)

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info(ctx, "server stopped", nil)
	return nil
}
