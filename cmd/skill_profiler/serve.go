package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/jonathan/skill-profiler/internal/db"
	"github.com/jonathan/skill-profiler/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for analyzing skill profiles.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p, err := buildPipeline(ctx, cfg, true)
	if err != nil {
		return err
	}

	var store *db.DB
	if cfg.DatabaseURL != "" {
		store, err = db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to analysis store: %w", err)
		}
		if err := store.EnsureSchema(ctx); err != nil {
			return err
		}
	} else {
		log.Println("DATABASE_URL not set, analyses will not be persisted")
	}

	srv, err := server.New(server.Config{
		Port:     servePort,
		Pipeline: p,
		Store:    store,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
