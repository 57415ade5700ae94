// Package invoicepdf provides a public API for rendering invoice snapshots
// to PDF documents.
//
// This package exposes the core types and the renderer for turning a
// jurisdiction-aware invoice snapshot into a finished PDF.
//
// Example usage:
//
//	renderer := invoicepdf.NewRenderer(invoicepdf.Options{})
//	data, err := renderer.Render(ctx, invoice)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("invoice.pdf", data, 0o644)
package invoicepdf

import "github.com/rezonia/invoice-renderer/internal/model"

// Re-export core types for public API
type (
	Invoice      = model.Invoice
	LineItem     = model.LineItem
	Party        = model.Party
	CompanyInfo  = model.CompanyInfo
	BankDetails  = model.BankDetails
	Jurisdiction = model.Jurisdiction
)

// Re-export jurisdiction constants
const (
	JurisdictionIndia = model.JurisdictionIndia
	JurisdictionJapan = model.JurisdictionJapan
	JurisdictionOther = model.JurisdictionOther
)

// BrandedCompanyName is the exact company name that unlocks the branded
// footer (logo, signature stamp, bank details).
const BrandedCompanyName = model.BrandedCompanyName

// Re-export error types
type (
	RenderError     = model.RenderError
	ValidationError = model.ValidationError
)
