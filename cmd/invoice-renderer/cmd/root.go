package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	version = "1.0.0"

	// Global flags
	verbose    bool
	uploadsDir string
	optimize   bool
)

var rootCmd = &cobra.Command{
	Use:   "invoice-renderer",
	Short: "Render invoice snapshots to PDF",
	Long: `Invoice Renderer turns JSON invoice snapshots into finished PDF documents.

Supports:
  - India (CGST/SGST split), Japan (consumption tax) and flat-rate invoices
  - Company logos from upload storage, local paths or URLs
  - Branded footer with signature stamp and bank details

Examples:
  # Render a single invoice
  invoice-renderer render invoice.json

  # Render into a specific file
  invoice-renderer render invoice.json -o out.pdf

  # Validate a snapshot without rendering
  invoice-renderer validate invoice.json

  # Start the HTTP API
  invoice-renderer serve --address :8080`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&uploadsDir, "uploads-dir", "", "Directory with uploaded logo files (env: UPLOADS_DIR)")
	rootCmd.PersistentFlags().BoolVar(&optimize, "optimize", false, "Run an optimization pass over generated documents (env: PDF_OPTIMIZE)")

	// Load from environment variables if not set via flags
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	if uploadsDir == "" {
		uploadsDir = os.Getenv("UPLOADS_DIR")
	}
	if !optimize && os.Getenv("PDF_OPTIMIZE") == "true" {
		optimize = true
	}
}

// newLogger builds the process logger. Verbose mode switches to the
// human-readable development encoder at debug level.
func newLogger() *zap.Logger {
	if verbose {
		log, err := zap.NewDevelopment()
		if err == nil {
			return log
		}
	}
	log, err := zap.NewProduction()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

func printVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
