package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rezonia/invoice-qc/internal/config"
	"github.com/rezonia/invoice-qc/internal/server"
)

var (
	serveConfigFile string
	serveAddr       string
	serveDebug      bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP API server for extracting and validating invoices.

The API provides:
  - POST /api/v1/extract      - Extract records from document texts
  - POST /api/v1/validate     - Validate invoice records
  - POST /api/v1/process      - Extract and validate in one call
  - POST /api/v1/report/xlsx  - Validate and download an XLSX report
  - GET  /health              - Health check

Validation endpoints accept ?tolerance= and ?max_amount= overrides.

Examples:
  invoiceqc serve
  invoiceqc serve --address :9000 --debug
  invoiceqc serve --config invoiceqc.yaml`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveConfigFile, "config", "", "Config file (yaml); flags override it")
	serveCmd.Flags().StringVar(&serveAddr, "address", "", "Server listen address (default from config, :8080)")
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Enable debug mode")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(serveConfigFile)
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Address = serveAddr
	}
	if serveDebug {
		cfg.Server.Debug = true
	}

	var logger *zap.Logger
	if cfg.Server.Debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()

	srv := server.NewServer(&server.Config{
		Address:      cfg.Server.Address,
		Tolerance:    cfg.Validation.Tolerance,
		MaxAmount:    cfg.Validation.MaxAmount,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		Debug:        cfg.Server.Debug,
	}, logger)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutting down server")
		os.Exit(0)
	}()

	logger.Info("starting server", zap.String("address", cfg.Server.Address))
	return srv.Run()
}
