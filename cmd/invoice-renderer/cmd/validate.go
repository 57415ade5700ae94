package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezonia/invoice-renderer/internal/money"
	"github.com/rezonia/invoice-renderer/internal/tax"
)

var validateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Validate invoice snapshot files",
	Long: `Validate one or more JSON invoice snapshots without rendering.

Prints the derived totals for each valid snapshot so the numbers can be
checked before a document is produced.

Examples:
  invoice-renderer validate invoice.json
  invoice-renderer validate *.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files found to validate")
	}

	failed := 0
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	for _, file := range files {
		report := validateReport(file)
		if !report.Valid {
			failed++
		}
		if err := encoder.Encode(report); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d snapshots invalid", failed, len(files))
	}
	return nil
}

// ValidateReport is the per-file output of the validate command.
type ValidateReport struct {
	File       string   `json:"file"`
	Valid      bool     `json:"valid"`
	Errors     []string `json:"errors,omitempty"`
	Subtotal   string   `json:"subtotal,omitempty"`
	Tax        string   `json:"tax,omitempty"`
	GrandTotal string   `json:"grand_total,omitempty"`
}

func validateReport(file string) *ValidateReport {
	report := &ValidateReport{File: file}

	inv, err := loadInvoice(file)
	if err != nil {
		report.Errors = []string{err.Error()}
		return report
	}

	if inv.Number == "" {
		report.Errors = append(report.Errors, "missing invoice number")
	}
	if inv.BillTo.Name == "" {
		report.Errors = append(report.Errors, "missing bill-to name")
	}
	if len(report.Errors) > 0 {
		return report
	}

	sum := tax.Compute(inv)
	j := inv.Jurisdiction()

	report.Valid = true
	report.Subtotal = money.Format(sum.Subtotal, j)
	report.Tax = money.Format(sum.Tax, j)
	report.GrandTotal = money.Format(sum.GrandTotal, j)
	return report
}
