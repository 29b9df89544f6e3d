package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezonia/ubl-reader/internal/processor"
	"github.com/rezonia/ubl-reader/internal/validation"
)

var (
	strictValidation bool
)

var validateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Validate invoice files",
	Long: `Validate one or more invoice files for completeness and consistency.

Checks performed:
  - Required fields present (number, supplier NIT; date and currency in strict mode)
  - NIT format (5 to 15 digits, optional check digit)
  - LineCountNumeric matches the number of lines
  - Line amounts add up to LegalMonetaryTotal/LineExtensionAmount
  - Tax subtotals match their percent of the taxable amount
  - Every currencyID matches DocumentCurrencyCode

Examples:
  ubl-reader validate fv08001972680002.xml
  ubl-reader validate facturas/ --strict`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(&strictValidation, "strict", false, "Enable strict validation (all header fields required)")
}

// ValidationResult holds the result of validating a single file
type ValidationResult struct {
	File     string   `json:"file"`
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("no files found to validate")
	}

	pipeline := newPipeline()
	validator := &validation.Validator{Strict: strictValidation}
	results := make([]*ValidationResult, 0, len(files))
	allValid := true

	for _, file := range files {
		result := validateFile(pipeline, validator, file)
		results = append(results, result)

		if !result.Valid {
			allValid = false
			log.Warn().Str("file", file).Strs("errors", result.Errors).Msg("invalid")
		}
	}

	out := cmd.OutOrStdout()
	if outputFormat == "json" {
		if err := outputJSON(out, results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			if r.Valid {
				fmt.Fprintf(out, "✓ %s: VALID\n", r.File)
			} else {
				fmt.Fprintf(out, "✗ %s: INVALID\n", r.File)
				for _, e := range r.Errors {
					fmt.Fprintf(out, "  - %s\n", e)
				}
			}
			for _, w := range r.Warnings {
				fmt.Fprintf(out, "  ⚠ %s\n", w)
			}
		}
	}

	if !allValid {
		return fmt.Errorf("validation failed for some files")
	}

	return nil
}

func validateFile(pipeline *processor.Pipeline, validator *validation.Validator, filePath string) *ValidationResult {
	result := &ValidationResult{
		File:     filePath,
		Valid:    true,
		Errors:   []string{},
		Warnings: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("failed to read file: %v", err))
		return result
	}

	doc, err := pipeline.Parse(data, filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("parse error: %v", err))
		return result
	}

	report := validator.Validate(doc)
	result.Valid = report.Valid
	result.Errors = report.Errors
	result.Warnings = report.Warnings
	return result
}
