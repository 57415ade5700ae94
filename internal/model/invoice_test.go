package model_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/invoice-renderer/internal/model"
)

func TestParseJurisdiction(t *testing.T) {
	tests := []struct {
		country  string
		expected model.Jurisdiction
	}{
		{"india", model.JurisdictionIndia},
		{"India", model.JurisdictionIndia},
		{"INDIA", model.JurisdictionIndia},
		{"japan", model.JurisdictionJapan},
		{" Japan ", model.JurisdictionJapan},
		{"germany", model.JurisdictionOther},
		{"", model.JurisdictionOther},
	}

	for _, tt := range tests {
		t.Run(tt.country, func(t *testing.T) {
			assert.Equal(t, tt.expected, model.ParseJurisdiction(tt.country))
		})
	}
}

func TestInvoice_Jurisdiction(t *testing.T) {
	inv := model.Invoice{Country: "japan"}
	assert.Equal(t, model.JurisdictionJapan, inv.Jurisdiction())

	inv.Country = "somewhere else"
	assert.Equal(t, model.JurisdictionOther, inv.Jurisdiction())
}

func TestLineItem_Amount(t *testing.T) {
	item := model.LineItem{
		Description: "Backend development",
		Hours:       decimal.NewFromFloat(7.5),
		Rate:        decimal.NewFromInt(4000),
	}

	// 7.5 * 4000 = 30,000
	assert.True(t, item.Amount().Equal(decimal.NewFromInt(30000)),
		"Expected amount 30000, got %s", item.Amount().String())
}

func TestLineItem_AmountIgnoresSuppliedTotal(t *testing.T) {
	item := model.LineItem{
		Description: "Consulting",
		Hours:       decimal.NewFromInt(10),
		Rate:        decimal.NewFromInt(100),
		Total:       decimal.NewFromInt(999999), // inconsistent on purpose
	}

	assert.True(t, item.Amount().Equal(decimal.NewFromInt(1000)),
		"Expected amount 1000, got %s", item.Amount().String())
}

func TestCompanyInfo_Branded(t *testing.T) {
	branded := &model.CompanyInfo{Name: "Vision AI LLC"}
	assert.True(t, branded.Branded())

	// Exact-name match is case-insensitive but nothing more
	mixedCase := &model.CompanyInfo{Name: "vision ai llc"}
	assert.True(t, mixedCase.Branded())

	other := &model.CompanyInfo{Name: "Acme Corp"}
	assert.False(t, other.Branded())

	var nilCompany *model.CompanyInfo
	assert.False(t, nilCompany.Branded())
}

func TestCompanyInfo_DisplayName(t *testing.T) {
	var nilCompany *model.CompanyInfo
	assert.Equal(t, "Your Company", nilCompany.DisplayName())

	empty := &model.CompanyInfo{}
	assert.Equal(t, "Your Company", empty.DisplayName())

	named := &model.CompanyInfo{Name: "Acme Corp"}
	assert.Equal(t, "Acme Corp", named.DisplayName())
}

func TestBankDetails_Empty(t *testing.T) {
	var nilBank *model.BankDetails
	assert.True(t, nilBank.Empty())

	assert.True(t, (&model.BankDetails{}).Empty())

	assert.False(t, (&model.BankDetails{AccountNo: "123456789012"}).Empty())
	assert.False(t, (&model.BankDetails{BranchCode: "01234"}).Empty())
}

func TestRenderError(t *testing.T) {
	err := &model.RenderError{
		Stage:   "output",
		Message: "writer rejected document",
	}

	require.Contains(t, err.Error(), "document generation failed")
	require.Contains(t, err.Error(), "output")
	require.Contains(t, err.Error(), "writer rejected document")
}

func TestRenderError_WithCause(t *testing.T) {
	cause := assert.AnError
	err := model.NewRenderError("compose", "backend write failed", cause)

	require.Contains(t, err.Error(), "compose")
	require.ErrorIs(t, err, cause)
}

func TestValidationError(t *testing.T) {
	err := model.NewValidationError("invoice_number", "is required")

	require.Contains(t, err.Error(), "invoice_number")
	require.Contains(t, err.Error(), "is required")
}
