package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezonia/ubl-reader/internal/config"
	"github.com/rezonia/ubl-reader/internal/logger"
	"github.com/rezonia/ubl-reader/internal/processor"
)

var (
	version = "1.0.0"

	// Global flags
	verbose        bool
	outputFormat   string
	logLevel       string
	lenientNumbers bool
	maxMemberBytes int64

	cfg *config.Config
	log = logger.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "ubl-reader",
	Short: "Read Colombian DIAN UBL e-invoices and credit notes",
	Long: `ubl-reader extracts structured data from DIAN UBL 2.1 electronic invoices.

Supports:
  - Bare XML: Invoice, CreditNote or a signed AttachedDocument
  - Zip archives holding the XML document

Examples:
  # Parse a single invoice to JSON
  ubl-reader parse fv08001972680002.xml

  # Print a console summary of a zipped invoice
  ubl-reader parse fv08001972680002.zip -f text

  # Convert a directory of invoices to .json files
  ubl-reader convert facturas/

  # Validate an invoice
  ubl-reader validate fv08001972680002.xml`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose (debug) output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "json", "Output format (json, text)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (env: LOG_LEVEL)")
	rootCmd.PersistentFlags().BoolVar(&lenientNumbers, "lenient", false, "Read unparseable numeric fields as 0 (env: PARSE_LENIENT)")
	rootCmd.PersistentFlags().Int64Var(&maxMemberBytes, "max-member-bytes", 0, "Max decompressed size of a zip member (env: MAX_MEMBER_BYTES)")

	cobra.OnInitialize(initConfig)
}

// initConfig loads the environment, then lets explicitly set flags win
func initConfig() {
	loaded, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: config: %v\n", err)
		os.Exit(1)
	}
	cfg = loaded

	flags := rootCmd.PersistentFlags()
	if flags.Changed("log-level") {
		cfg.App.LogLevel = logLevel
	}
	if verbose {
		cfg.App.LogLevel = "debug"
	}
	if flags.Changed("lenient") {
		cfg.Parse.Lenient = lenientNumbers
	}
	if flags.Changed("max-member-bytes") {
		cfg.Parse.MaxMemberBytes = maxMemberBytes
	}

	log = logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
}

func pipelineOptions() []processor.Option {
	var opts []processor.Option
	if cfg.Parse.Lenient {
		opts = append(opts, processor.WithLenientNumbers())
	}
	if cfg.Parse.MaxMemberBytes > 0 {
		opts = append(opts, processor.WithMaxMemberSize(cfg.Parse.MaxMemberBytes))
	}
	return opts
}

func newPipeline() *processor.Pipeline {
	return processor.NewPipeline(pipelineOptions()...)
}
