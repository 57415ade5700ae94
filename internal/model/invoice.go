package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Jurisdiction selects the tax and currency-formatting regime for an invoice.
type Jurisdiction string

const (
	JurisdictionIndia Jurisdiction = "INDIA"
	JurisdictionJapan Jurisdiction = "JAPAN"
	JurisdictionOther Jurisdiction = "OTHER"
)

// ParseJurisdiction maps a free-form country field to a jurisdiction.
// Unrecognized values fall back to JurisdictionOther.
func ParseJurisdiction(country string) Jurisdiction {
	switch strings.ToLower(strings.TrimSpace(country)) {
	case "india":
		return JurisdictionIndia
	case "japan":
		return JurisdictionJapan
	default:
		return JurisdictionOther
	}
}

// BrandedCompanyName is the exact company name that enables the richer
// footer: bundled signature stamp, header logo and the full bank-details
// block. Any other company gets a generic blank signature line. This is a
// data-driven business rule keyed on the name, not a deployment flag.
const BrandedCompanyName = "Vision AI LLC"

// Invoice is a read-only snapshot assembled by the caller. The renderer
// never mutates it and never queries storage for missing pieces.
type Invoice struct {
	ID     string `json:"id,omitempty"`
	Number string `json:"invoice_number"`

	// Dates are carried as yyyy-MM-dd strings; the renderer re-emits them
	// long-form and falls back to the raw string when unparseable.
	Date    string `json:"date"`
	DueDate string `json:"due_date,omitempty"`

	Country string `json:"country,omitempty"` // "india", "japan" or other

	// TaxRate applies to the default jurisdiction and, when shown, to
	// Japan's consumption tax. India uses the split CGST/SGST rates
	// instead; unset split rates count as zero.
	TaxRate  decimal.Decimal `json:"tax_rate"`
	CGSTRate decimal.Decimal `json:"cgst_rate,omitempty"`
	SGSTRate decimal.Decimal `json:"sgst_rate,omitempty"`

	// ShowConsumptionTax gates the Japan tax line. False or absent means
	// no tax is computed or rendered for Japan.
	ShowConsumptionTax bool `json:"show_consumption_tax,omitempty"`

	BillTo Party      `json:"bill_to"`
	Items  []LineItem `json:"items"`

	// Company is a denormalized snapshot; nil renders a generic header.
	Company *CompanyInfo `json:"company,omitempty"`
}

// Jurisdiction derives the tax/formatting regime from the country field.
func (inv *Invoice) Jurisdiction() Jurisdiction {
	return ParseJurisdiction(inv.Country)
}

// Party is the billed party.
type Party struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// LineItem is a single billable row. Total is never trusted from input;
// callers may send it but the renderer always recomputes quantity x rate.
type LineItem struct {
	Description string          `json:"description"`
	Hours       decimal.Decimal `json:"hours"`
	Rate        decimal.Decimal `json:"rate"`
	Total       decimal.Decimal `json:"total,omitempty"`
}

// Amount recomputes the line total from quantity and rate.
func (li *LineItem) Amount() decimal.Decimal {
	return li.Hours.Mul(li.Rate).Round(2)
}

// CompanyInfo is the issuing company snapshot embedded in the invoice.
type CompanyInfo struct {
	Name    string       `json:"name"`
	Address string       `json:"address,omitempty"`
	LogoRef string       `json:"logo_ref,omitempty"` // URL, upload path or local file
	Bank    *BankDetails `json:"bank,omitempty"`
}

// Branded reports whether this company matches the exact-name rule that
// unlocks the stamp, logo and bank-details footer.
func (c *CompanyInfo) Branded() bool {
	return c != nil && strings.EqualFold(c.Name, BrandedCompanyName)
}

// DisplayName returns the company name or a placeholder when absent.
func (c *CompanyInfo) DisplayName() string {
	if c == nil || c.Name == "" {
		return "Your Company"
	}
	return c.Name
}

// BankDetails holds the optional footer bank block. Every field is
// individually optional; empty fields are simply not rendered.
type BankDetails struct {
	BankName    string `json:"bank_name,omitempty"`
	AccountNo   string `json:"account_number,omitempty"`
	HolderName  string `json:"account_holder_name,omitempty"`
	IFSCCode    string `json:"ifsc_code,omitempty"`
	BranchName  string `json:"branch_name,omitempty"`
	BranchCode  string `json:"branch_code,omitempty"`
	AccountType string `json:"account_type,omitempty"`
}

// Empty reports whether no bank field is set at all.
func (b *BankDetails) Empty() bool {
	if b == nil {
		return true
	}
	return b.BankName == "" && b.AccountNo == "" && b.HolderName == "" &&
		b.IFSCCode == "" && b.BranchName == "" && b.BranchCode == "" &&
		b.AccountType == ""
}
