package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/paresh/review-cards/internal/llm"
	"github.com/paresh/review-cards/internal/profile"
)

var (
	enrichURL     string
	enrichBrowser bool
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Extract a business profile from a website",
	Long: `Fetch a business website and extract highlights and services with the
generation provider. Requires GEMINI_API_KEY.`,
	RunE: runEnrich,
}

func init() {
	enrichCmd.Flags().StringVar(&enrichURL, "url", "", "Business website URL (required)")
	enrichCmd.Flags().BoolVar(&enrichBrowser, "browser", false, "Force headless browser rendering")
	_ = enrichCmd.MarkFlagRequired("url")
	rootCmd.AddCommand(enrichCmd)
}

func runEnrich(cmd *cobra.Command, _ []string) error {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	prof, err := profile.NewEnricher(client).Enrich(ctx, enrichURL, enrichBrowser)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(prof)
}
