package main

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/skill-profiler/internal/config"
	"github.com/jonathan/skill-profiler/internal/embedding"
	"github.com/jonathan/skill-profiler/internal/llm"
	"github.com/jonathan/skill-profiler/internal/pipeline"
	"github.com/jonathan/skill-profiler/internal/referential"
)

// loadConfig resolves configuration from the optional --config file, the
// environment and defaults.
func loadConfig() (*config.Config, error) {
	cfg := &config.Config{}
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg.FillFromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildPipeline wires the referential, the embedding provider and (optionally)
// the generation client into a ready pipeline.
func buildPipeline(ctx context.Context, cfg *config.Config, withGeneration bool) (*pipeline.Pipeline, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	ref := referential.Load(cfg.ReferentialPath)
	if ref.Fallback {
		log.Printf("Running against the minimal fallback referential")
	}

	embedder, err := embedding.NewGeminiEmbedder(ctx, cfg.APIKey, cfg.EmbeddingModel)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding provider: %w", err)
	}

	opts := pipeline.Options{TopK: cfg.TopK}
	if withGeneration {
		generator, err := llm.NewGeminiClient(ctx, cfg.APIKey, cfg.GenerationModel)
		if err != nil {
			return nil, fmt.Errorf("failed to create generation client: %w", err)
		}
		opts.Generator = generator
	}

	cache := embedding.NewCache(cfg.CacheDir, embedder)
	return pipeline.New(ctx, ref, embedder, cache, opts)
}
