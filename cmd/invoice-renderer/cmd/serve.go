package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/rezonia/invoice-renderer/internal/server"
)

var (
	serverAddr   string
	serverDebug  bool
	readTimeout  time.Duration
	writeTimeout time.Duration
	envFile      string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP API server for rendering invoices.

The API provides endpoints for:
  - POST /api/v1/render    - Render an invoice snapshot to PDF
  - POST /api/v1/validate  - Validate a snapshot without rendering
  - GET  /health           - Health check

Examples:
  # Start server on default port
  invoice-renderer serve

  # Start on custom port with an upload store
  invoice-renderer serve --address :8080 --uploads-dir ./uploads

  # Start in debug mode
  invoice-renderer serve --debug`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverAddr, "address", ":8080", "Server listen address")
	serveCmd.Flags().BoolVar(&serverDebug, "debug", false, "Enable debug mode")
	serveCmd.Flags().DurationVar(&readTimeout, "read-timeout", 30*time.Second, "HTTP read timeout")
	serveCmd.Flags().DurationVar(&writeTimeout, "write-timeout", 2*time.Minute, "HTTP write timeout")
	serveCmd.Flags().StringVar(&envFile, "env-file", "", "Load environment from this file before starting")
}

func runServe(cmd *cobra.Command, args []string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("failed to load env file: %w", err)
		}
		initConfig()
	} else {
		// A local .env is optional.
		_ = godotenv.Load()
		initConfig()
	}

	config := &server.Config{
		Address:      serverAddr,
		UploadsDir:   uploadsDir,
		Optimize:     optimize,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		Debug:        serverDebug,
	}

	log := newLogger()
	defer log.Sync()

	srv := server.NewServer(config, log)

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		fmt.Println("\nShutting down server...")
		os.Exit(0)
	}()

	fmt.Printf("Starting server on %s\n", serverAddr)
	if uploadsDir != "" {
		fmt.Printf("Upload store: %s\n", uploadsDir)
	} else {
		fmt.Println("No upload store configured (local paths and URLs only)")
	}

	return srv.Run()
}
