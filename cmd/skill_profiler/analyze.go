package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/skill-profiler/internal/observability"
	"github.com/jonathan/skill-profiler/internal/types"
)

var (
	analyzeResponsesPath string
	analyzeSkipGen       bool
	analyzeVerbose       bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a skill profile from a responses file",
	Long:  `Run the scoring pipeline on a JSON file of questionnaire responses and print the analysis result.`,
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeResponsesPath, "responses", "", "Path to responses JSON file (required)")
	analyzeCmd.Flags().BoolVar(&analyzeSkipGen, "skip-generation", false, "Skip the plan/bio generation stage")
	analyzeCmd.Flags().BoolVar(&analyzeVerbose, "verbose", false, "Print formatted summaries instead of raw JSON")
	_ = analyzeCmd.MarkFlagRequired("responses")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	data, err := os.ReadFile(analyzeResponsesPath)
	if err != nil {
		return fmt.Errorf("failed to read responses file: %w", err)
	}

	var responses types.UserResponses
	if err := json.Unmarshal(data, &responses); err != nil {
		return fmt.Errorf("failed to parse responses JSON: %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p, err := buildPipeline(ctx, cfg, !analyzeSkipGen)
	if err != nil {
		return err
	}

	result, err := p.Run(ctx, &responses, !analyzeSkipGen)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if analyzeVerbose || cfg.Verbose {
		printer := observability.NewPrinter(os.Stdout)
		printer.PrintBlockScores(result.BlockScores)
		printer.PrintRecommendations(result.Recommendations)
		printer.PrintSummary(result)
		if result.ProgressionPlan != "" {
			fmt.Printf("\nProgression plan:\n%s\n", result.ProgressionPlan)
		}
		if result.ProfessionalBio != "" {
			fmt.Printf("\nProfessional bio:\n%s\n", result.ProfessionalBio)
		}
		return nil
	}

	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Println(string(encoded))
	return nil
}
