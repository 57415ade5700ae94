package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/invoice-renderer/internal/assets"
	"github.com/rezonia/invoice-renderer/internal/model"
	"github.com/rezonia/invoice-renderer/internal/render"
)

var (
	outputFile string
	outputDir  string
	timeout    time.Duration
)

var renderCmd = &cobra.Command{
	Use:   "render [files...]",
	Short: "Render invoice snapshot files to PDF",
	Long: `Render one or more JSON invoice snapshots to PDF documents.

Each input file holds a single invoice snapshot. The output file name is
derived from the invoice number unless -o is given (single input only).

Examples:
  invoice-renderer render invoice.json
  invoice-renderer render invoice.json -o out.pdf
  invoice-renderer render *.json -d ./out
  invoice-renderer render invoice.json --uploads-dir ./uploads`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (single input only)")
	renderCmd.Flags().StringVarP(&outputDir, "dir", "d", ".", "Output directory for derived file names")
	renderCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Rendering timeout per invoice")
}

func runRender(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files found to render")
	}
	if outputFile != "" && len(files) > 1 {
		return fmt.Errorf("-o is only valid with a single input file")
	}

	printVerbose("Found %d files to render\n", len(files))

	engine := newEngine()
	for _, file := range files {
		printVerbose("Rendering: %s\n", file)
		if err := renderFile(engine, file); err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
	}
	return nil
}

func newEngine() *render.Engine {
	log := newLogger()

	var resolverOpts []assets.Option
	resolverOpts = append(resolverOpts, assets.WithLogger(log))
	if uploadsDir != "" {
		resolverOpts = append(resolverOpts, assets.WithStore(assets.NewDirStore(uploadsDir)))
	}

	opts := []render.Option{
		render.WithAssets(assets.NewResolver(resolverOpts...)),
		render.WithLogger(log),
	}
	if optimize {
		opts = append(opts, render.WithOptimization())
	}
	return render.New(opts...)
}

func renderFile(engine *render.Engine, file string) error {
	inv, err := loadInvoice(file)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Render fully before touching the filesystem so a failed render
	// leaves no partial file behind.
	data, err := engine.Render(ctx, inv)
	if err != nil {
		return err
	}

	out := outputFile
	if out == "" {
		out = filepath.Join(outputDir, outputName(inv, file))
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	printVerbose("  Wrote: %s\n", out)
	return nil
}

func loadInvoice(file string) (*model.Invoice, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var inv model.Invoice
	if err := json.Unmarshal(data, &inv); err != nil {
		return nil, fmt.Errorf("invalid invoice snapshot: %w", err)
	}
	return &inv, nil
}

// outputName derives a PDF file name from the invoice number, falling back
// to the input file's base name.
func outputName(inv *model.Invoice, file string) string {
	if inv.Number != "" {
		return inv.Number + ".pdf"
	}
	base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	return base + ".pdf"
}

func collectFiles(args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", arg, err)
		}

		if len(matches) == 0 {
			if _, err := os.Stat(arg); err != nil {
				return nil, fmt.Errorf("file not found: %s", arg)
			}
			files = append(files, arg)
			continue
		}
		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			files = append(files, match)
		}
	}

	return files, nil
}
