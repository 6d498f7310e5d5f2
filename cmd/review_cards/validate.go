package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/paresh/review-cards/internal/schemas"
)

var (
	validateFile   string
	validateSchema string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a card import file",
	Long: `Check a JSON card import file against the import schema before uploading
it through the admin API. A custom schema file can be supplied with --schema.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateFile, "file", "", "Path to the card import JSON file (required)")
	validateCmd.Flags().StringVar(&validateSchema, "schema", "", "Optional path to an alternative schema file")
	_ = validateCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, _ []string) error {
	if validateSchema != "" {
		schemaPath := schemas.ResolveSchemaPath(validateSchema)
		if schemaPath == "" {
			return fmt.Errorf("schema file not found: %s", validateSchema)
		}
		if err := schemas.ValidateJSON(schemaPath, validateFile); err != nil {
			return err
		}
		fmt.Printf("%s is valid\n", validateFile)
		return nil
	}

	content, err := os.ReadFile(validateFile)
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	if err := schemas.ValidateCardImport(string(content)); err != nil {
		return err
	}

	fmt.Printf("%s is valid\n", validateFile)
	return nil
}
