package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var warmCacheCmd = &cobra.Command{
	Use:   "warm-cache",
	Short: "Precompute the competency embedding cache",
	Long:  `Embed every referential competency and persist the vectors, so the first analyze/serve call starts warm.`,
	RunE:  runWarmCache,
}

func init() {
	rootCmd.AddCommand(warmCacheCmd)
}

func runWarmCache(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Building the pipeline loads (or computes and persists) the cache.
	if _, err := buildPipeline(ctx, cfg, false); err != nil {
		return err
	}

	fmt.Println("Embedding cache is warm")
	return nil
}
