// Package main provides the entry point for the skill profiler CLI and API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "skill_profiler",
	Short: "Data/AI skill profile analyzer",
	Long:  "Skill Profiler scores self-reported Data/AI skill profiles, recommends matching job roles and generates grounded progression plans via REST API or CLI.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to JSON config file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
