package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/paresh/review-cards/internal/llm"
	"github.com/paresh/review-cards/internal/review"
)

var (
	genBusiness   string
	genCategory   string
	genType       string
	genHighlights string
	genServices   []string
	genRating     int
	genLanguage   string
	genTone       string
	genMistakes   int
	genCount      int
	genSeed       int64
	genJSON       bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate reviews from the command line",
	Long: `Run the review pipeline without the server. Uses the Gemini provider when
GEMINI_API_KEY is set, otherwise serves curated fallback reviews.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&genBusiness, "business", "", "Business name (required)")
	generateCmd.Flags().StringVar(&genCategory, "category", "", "Business category (required)")
	generateCmd.Flags().StringVar(&genType, "type", "", "Business type, e.g. clinic, salon")
	generateCmd.Flags().StringVar(&genHighlights, "highlights", "", "What the business wants mentioned")
	generateCmd.Flags().StringSliceVar(&genServices, "services", nil, "Services to emphasize")
	generateCmd.Flags().IntVar(&genRating, "rating", 5, "Star rating (1-5)")
	generateCmd.Flags().StringVar(&genLanguage, "language", review.LanguageEnglish, "Review language")
	generateCmd.Flags().StringVar(&genTone, "tone", review.ToneProfessional, "Review tone")
	generateCmd.Flags().IntVar(&genMistakes, "mistakes", 0, "Deliberate misspellings to inject (1-3 exact, 0 picks a count at random; omit for none)")
	generateCmd.Flags().IntVar(&genCount, "count", 1, "Number of reviews to generate")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 0, "Random seed (0 means time-based)")
	generateCmd.Flags().BoolVar(&genJSON, "json", false, "Print results as JSON")
	_ = generateCmd.MarkFlagRequired("business")
	_ = generateCmd.MarkFlagRequired("category")
	rootCmd.AddCommand(generateCmd)
}

// cliResult is the JSON output shape of the generate command.
type cliResult struct {
	Text     string           `json:"text"`
	CopyText string           `json:"copy_text"`
	Hash     string           `json:"hash"`
	Language string           `json:"language"`
	Rating   int              `json:"rating"`
	Fallback bool             `json:"fallback"`
	Mistakes []review.Mistake `json:"mistakes,omitempty"`
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var generator review.Generator
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
		if err != nil {
			return fmt.Errorf("failed to create LLM client: %w", err)
		}
		defer func() { _ = client.Close() }()
		generator = client
	}

	opts := []review.Option{}
	if genSeed != 0 {
		opts = append(opts, review.WithRand(review.NewRand(genSeed)))
	}
	service := review.NewService(generator, review.NewSeenStore(), opts...)

	// --mistakes 0 hands the count choice to the injector; leaving the flag
	// off skips injection entirely.
	injectMistakes := cmd.Flags().Changed("mistakes")
	if injectMistakes && (genMistakes < 0 || genMistakes > review.MaxMistakes) {
		return fmt.Errorf("--mistakes must be between 0 and %d, got %d", review.MaxMistakes, genMistakes)
	}

	req := review.Request{
		BusinessName:     genBusiness,
		Category:         genCategory,
		BusinessType:     genType,
		Highlights:       genHighlights,
		SelectedServices: genServices,
		StarRating:       genRating,
		Language:         genLanguage,
		Tone:             genTone,
		Source:           review.SourceManual,
	}

	results := make([]cliResult, 0, genCount)
	for i := 0; i < genCount; i++ {
		res := service.Generate(ctx, req)

		text := res.Text
		var mistakes []review.Mistake
		if injectMistakes {
			text, mistakes = review.InjectMistakes(text, genMistakes, nil, service.Rand())
		}

		results = append(results, cliResult{
			Text:     text,
			CopyText: review.StripEmphasis(text),
			Hash:     res.Hash,
			Language: res.Language,
			Rating:   res.Rating,
			Fallback: res.Fallback,
			Mistakes: mistakes,
		})
	}

	if genJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	for i, r := range results {
		if genCount > 1 {
			fmt.Printf("--- review %d ---\n", i+1)
		}
		fmt.Println(r.CopyText)
		if r.Fallback {
			fmt.Println("(curated fallback)")
		}
	}
	return nil
}
