package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/ubl-reader/internal/server"
)

var (
	serverAddr   string
	serverDebug  bool
	readTimeout  time.Duration
	writeTimeout time.Duration
	maxUpload    int64
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP API server for parsing invoices.

The API provides endpoints for:
  - POST /api/v1/invoice   - Parse an invoice (JSON, or HTML with Accept: text/html)
  - POST /api/v1/validate  - Validate an invoice
  - POST /api/v1/info      - Get container and root information
  - GET  /health           - Health check

Uploads are a multipart "file" field, or a raw body with ?filename=.

Examples:
  # Start server on the configured address (env: HTTP_ADDR)
  ubl-reader serve

  # Start on a custom port
  ubl-reader serve --address :9090

  # Start in debug mode
  ubl-reader serve --debug`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverAddr, "address", "", "Server listen address (env: HTTP_ADDR)")
	serveCmd.Flags().BoolVar(&serverDebug, "debug", false, "Enable debug mode")
	serveCmd.Flags().DurationVar(&readTimeout, "read-timeout", 0, "HTTP read timeout (env: HTTP_READ_TIMEOUT)")
	serveCmd.Flags().DurationVar(&writeTimeout, "write-timeout", 0, "HTTP write timeout (env: HTTP_WRITE_TIMEOUT)")
	serveCmd.Flags().Int64Var(&maxUpload, "max-upload-bytes", 0, "Max request body size (env: MAX_UPLOAD_BYTES)")
}

func runServe(cmd *cobra.Command, args []string) error {
	httpCfg := cfg.HTTP
	flags := cmd.Flags()
	if flags.Changed("address") {
		httpCfg.Addr = serverAddr
	}
	if flags.Changed("read-timeout") {
		httpCfg.ReadTimeout = readTimeout
	}
	if flags.Changed("write-timeout") {
		httpCfg.WriteTimeout = writeTimeout
	}
	if flags.Changed("max-upload-bytes") {
		httpCfg.MaxUploadBytes = maxUpload
	}

	srv := server.NewServer(&server.Config{
		Address:        httpCfg.Addr,
		ReadTimeout:    httpCfg.ReadTimeout,
		WriteTimeout:   httpCfg.WriteTimeout,
		MaxUploadBytes: httpCfg.MaxUploadBytes,
		MaxMemberBytes: cfg.Parse.MaxMemberBytes,
		LenientNumbers: cfg.Parse.Lenient,
		Debug:          serverDebug,
		Logger:         log,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().
		Str("address", httpCfg.Addr).
		Int64("max_upload_bytes", httpCfg.MaxUploadBytes).
		Bool("lenient", cfg.Parse.Lenient).
		Msg("starting server")

	if err := srv.Run(ctx); err != nil {
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}
