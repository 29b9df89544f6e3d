package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rezonia/ubl-reader/internal/container"
	"github.com/rezonia/ubl-reader/internal/model"
	"github.com/rezonia/ubl-reader/internal/processor"
)

var outputFile string

var parseCmd = &cobra.Command{
	Use:   "parse [files...]",
	Short: "Parse invoice files",
	Long: `Parse one or more invoice files and print the extracted document.

Supported inputs:
  - .xml: Invoice, CreditNote or AttachedDocument
  - .zip: archive holding one of the above

Output formats:
  - json: the full document graph
  - text: a console summary with parties, totals and lines

Examples:
  ubl-reader parse fv08001972680002.xml
  ubl-reader parse facturas/*.zip -o results.json
  ubl-reader parse nc0001.xml -f text`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
}

// ParseResult holds the result of parsing a single file
type ParseResult struct {
	File      string          `json:"file"`
	Container string          `json:"container,omitempty"`
	Source    string          `json:"source,omitempty"`
	Document  *model.Document `json:"document,omitempty"`
	Error     string          `json:"error,omitempty"`
}

func runParse(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("no files found to parse")
	}

	log.Debug().Int("files", len(files)).Msg("collected input files")

	pipeline := newPipeline()
	results := make([]*ParseResult, 0, len(files))
	failed := 0
	for _, file := range files {
		result := parseFile(pipeline, file)
		results = append(results, result)

		if result.Error != "" {
			failed++
			log.Warn().Str("file", file).Str("error", result.Error).Msg("parse failed")
		} else {
			log.Debug().Str("file", file).Str("source", result.Source).Msg("parsed")
		}
	}

	if err := outputResults(cmd.OutOrStdout(), results); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to parse", failed, len(files))
	}
	return nil
}

func parseFile(pipeline *processor.Pipeline, filePath string) *ParseResult {
	result := &ParseResult{File: filePath}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Error = fmt.Sprintf("failed to read file: %v", err)
		return result
	}

	processed, err := pipeline.Process(data, filePath)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.Container = string(processed.Container)
	result.Source = string(processed.Source)
	result.Document = processed.Document
	return result
}

// collectFiles expands globs and walks directories for .xml and .zip files.
// Files named explicitly are kept whatever their extension.
func collectFiles(args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", arg, err)
		}
		if len(matches) == 0 {
			matches = []string{arg}
		}

		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil {
				return nil, fmt.Errorf("file not found: %s", match)
			}

			if !info.IsDir() {
				files = append(files, match)
				continue
			}

			err = filepath.WalkDir(match, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if !d.IsDir() && isSupportedFile(path) {
					files = append(files, path)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
		}
	}

	return files, nil
}

func isSupportedFile(path string) bool {
	return container.Classify(path) != container.KindUnknown
}

func outputResults(stdout io.Writer, results []*ParseResult) error {
	writer := stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		writer = f
	}

	switch outputFormat {
	case "json":
		return outputJSON(writer, results)
	case "text":
		return outputText(writer, results)
	default:
		return fmt.Errorf("unsupported output format: %s", outputFormat)
	}
}

func outputJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func outputText(w io.Writer, results []*ParseResult) error {
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if r.Error != "" {
			fmt.Fprintf(w, "%s\n  ERROR: %s\n", r.File, r.Error)
			continue
		}
		if err := printSummary(w, r.File, r.Document); err != nil {
			return err
		}
	}
	return nil
}

func printSummary(w io.Writer, file string, doc *model.Document) error {
	supplier := doc.Supplier.Party
	customer := doc.Customer.Party

	fmt.Fprintf(w, "%s: %s %s\n", file, doc.Kind, doc.ID.Text)
	fmt.Fprintf(w, "  Supplier:  %s (NIT %s)\n", supplier.DisplayName(), supplier.TaxScheme.CompanyID.Text)
	fmt.Fprintf(w, "  Customer:  %s (NIT %s)\n", customer.DisplayName(), customer.TaxScheme.CompanyID.Text)
	fmt.Fprintf(w, "  Address:   %s\n", joinNonEmpty(supplier.PhysicalLocation.FirstLine(),
		supplier.PhysicalLocation.CityName, supplier.PhysicalLocation.CountrySubentity))
	fmt.Fprintf(w, "  Date:      %s %s\n", doc.IssueDate, doc.IssueTime)
	fmt.Fprintf(w, "  Currency:  %s\n", doc.CurrencyCode)
	fmt.Fprintf(w, "  Total:     %s\n", doc.MonetaryTotal.PayableAmount.Text)

	if len(doc.Lines) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  #\tDESCRIPTION\tQUANTITY\tPRICE\tDISCOUNT\tTOTAL")
	for _, l := range doc.Lines {
		var discount string
		if !l.AllowanceCharge.IsCharge() {
			discount = l.AllowanceCharge.Amount.Text
		}
		fmt.Fprintf(tw, "  %d\t%s\t%s %s\t%s\t%s\t%s\n",
			l.ID,
			l.Item.Description,
			l.Quantity.Text,
			l.Quantity.UnitCode(),
			l.Price.Amount.Text,
			discount,
			l.LineExtensionAmount.Text,
		)
	}
	return tw.Flush()
}

func joinNonEmpty(parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}
