package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rezonia/invoice-qc/internal/model"
	"github.com/rezonia/invoice-qc/internal/money"
	"github.com/rezonia/invoice-qc/internal/validate"
)

var (
	version = "1.0.0"

	// Global flags
	verbose      bool
	outputFormat string
	tolerance    float64
	maxAmount    float64
)

var rootCmd = &cobra.Command{
	Use:   "invoiceqc",
	Short: "Extract and validate invoice data from business documents",
	Long: `invoiceqc is a first-pass quality-control tool for purchase orders
and invoices. It extracts typed records from document text and checks
them against completeness, format, arithmetic, and anomaly rules.

Supported inputs:
  - Text files (.txt): raw extracted document text
  - PDF files (.pdf): text is scraped from the page content
  - Invoice JSON: records produced by the extract command

Examples:
  # Extract invoices from a directory of documents
  invoiceqc extract orders/ -o invoices.json

  # Validate extracted records
  invoiceqc validate invoices.json --report report.json

  # Extract and validate in one pass
  invoiceqc process orders/*.pdf -f table

  # Export a validation report workbook
  invoiceqc export invoices.json -o report.xlsx

  # Start the HTTP API
  invoiceqc serve --address :8080`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "json", "Output format (json, table)")
	rootCmd.PersistentFlags().Float64Var(&tolerance, "tolerance", money.DefaultTolerance, "Absolute tolerance for financial sum checks (env: INVOICEQC_TOLERANCE)")
	rootCmd.PersistentFlags().Float64Var(&maxAmount, "max-amount", validate.DefaultMaxAmount, "Maximum acceptable gross total (env: INVOICEQC_MAX_AMOUNT)")

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	if !rootCmd.PersistentFlags().Changed("tolerance") {
		if v, err := strconv.ParseFloat(os.Getenv("INVOICEQC_TOLERANCE"), 64); err == nil {
			tolerance = v
		}
	}
	if !rootCmd.PersistentFlags().Changed("max-amount") {
		if v, err := strconv.ParseFloat(os.Getenv("INVOICEQC_MAX_AMOUNT"), 64); err == nil {
			maxAmount = v
		}
	}
}

func printVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

// collectFiles expands globs and directories into a flat list of
// supported document files.
func collectFiles(args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", arg, err)
		}

		if len(matches) == 0 {
			info, err := os.Stat(arg)
			if err != nil {
				return nil, fmt.Errorf("file not found: %s", arg)
			}

			if info.IsDir() {
				walked, err := walkDir(arg)
				if err != nil {
					return nil, err
				}
				files = append(files, walked...)
			} else {
				files = append(files, arg)
			}
		} else {
			for _, match := range matches {
				info, err := os.Stat(match)
				if err != nil {
					continue
				}
				// A bare directory name globs to itself.
				if info.IsDir() {
					walked, err := walkDir(match)
					if err != nil {
						return nil, err
					}
					files = append(files, walked...)
					continue
				}
				if isSupportedFile(match) {
					files = append(files, match)
				}
			}
		}
	}

	return files, nil
}

func walkDir(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && isSupportedFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func isSupportedFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".text", ".pdf":
		return true
	default:
		return false
	}
}

// loadInvoices reads a JSON array of invoice records from path.
func loadInvoices(path string) ([]model.Invoice, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var invoices []model.Invoice
	if err := json.Unmarshal(data, &invoices); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return invoices, nil
}

// writeJSON writes v as indented JSON to path, or stdout when path is "".
func writeJSON(path string, v interface{}) error {
	w := os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
