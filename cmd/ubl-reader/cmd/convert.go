package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rezonia/ubl-reader/pkg/invoicelib"
)

var (
	convertOutDir      string
	convertConcurrency int
)

var convertCmd = &cobra.Command{
	Use:   "convert [dirs or files...]",
	Short: "Convert invoices to JSON files",
	Long: `Convert every .xml and .zip invoice found to a .json file.

Each output is written next to its input unless --out is given, in which
case paths below each input directory are mirrored under --out. Files
that fail to parse are skipped with a warning. When two inputs share a
name, such as factura.xml and factura.zip, the later one keeps its
extension (factura.zip.json).

Examples:
  ubl-reader convert facturas/
  ubl-reader convert facturas/ --out json/ -j 8`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVar(&convertOutDir, "out", "", "Output directory (default: next to each input)")
	convertCmd.Flags().IntVarP(&convertConcurrency, "concurrency", "j", 0, "Parallel parses (default: GOMAXPROCS)")
}

type convertInput struct {
	path string
	root string
}

func runConvert(cmd *cobra.Command, args []string) error {
	var (
		inputs []convertInput
		batch  []invoicelib.Input
	)
	for _, arg := range args {
		files, err := collectFiles([]string{arg})
		if err != nil {
			return err
		}
		root := arg
		if info, err := os.Stat(arg); err != nil || !info.IsDir() {
			root = filepath.Dir(arg)
		}

		for _, f := range files {
			data, err := os.ReadFile(f)
			if err != nil {
				log.Warn().Str("file", f).Err(err).Msg("skipping unreadable file")
				continue
			}
			inputs = append(inputs, convertInput{path: f, root: root})
			batch = append(batch, invoicelib.Input{Name: f, Data: data})
		}
	}

	if len(batch) == 0 {
		return fmt.Errorf("no files found to convert")
	}

	proc := invoicelib.NewProcessor(invoicelib.Options{
		LenientNumbers: cfg.Parse.Lenient,
		MaxMemberBytes: cfg.Parse.MaxMemberBytes,
		Concurrency:    convertConcurrency,
	})

	results, err := proc.ParseBatch(cmd.Context(), batch)
	if err != nil {
		return err
	}

	outputs := outputPaths(inputs)
	converted, skipped := 0, 0
	for i, r := range results {
		if r.Err != nil {
			skipped++
			log.Warn().Str("file", r.Name).Str("error", r.Err.Error()).Msg("skipping file")
			continue
		}

		out := outputs[i]
		if err := writeJSON(out, r.Document); err != nil {
			return err
		}
		converted++
		log.Debug().Str("file", r.Name).Str("output", out).Msg("converted")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Converted %d files, skipped %d\n", converted, skipped)
	return nil
}

// outputPaths assigns each input its .json path in input order. A path
// already taken falls back to the full input name plus .json.
func outputPaths(inputs []convertInput) []string {
	paths := make([]string, len(inputs))
	taken := make(map[string]bool, len(inputs))
	for i, in := range inputs {
		p := jsonPath(in, strings.TrimSuffix(in.path, filepath.Ext(in.path)))
		if taken[p] {
			p = jsonPath(in, in.path)
			log.Warn().Str("file", in.path).Str("output", p).Msg("output name taken, keeping source extension")
		}
		taken[p] = true
		paths[i] = p
	}
	return paths
}

// jsonPath appends .json to stem, mirroring the input tree under --out
// when set
func jsonPath(in convertInput, stem string) string {
	name := stem + ".json"
	if convertOutDir == "" {
		return name
	}

	rel, err := filepath.Rel(in.root, name)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = filepath.Base(name)
	}
	return filepath.Join(convertOutDir, rel)
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
