package render_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/invoice-renderer/internal/fonts"
	"github.com/rezonia/invoice-renderer/internal/model"
	"github.com/rezonia/invoice-renderer/internal/render"
)

// builtinFonts pins rendering to the core font so tests do not depend on
// which TTF files the host happens to have installed.
func builtinFonts() fonts.Pair {
	return fonts.Pair{Family: fonts.BuiltinFamily}
}

func sampleInvoice() *model.Invoice {
	return &model.Invoice{
		Number:   "INV-2025-001",
		Date:     "2025-01-15",
		DueDate:  "2025-02-15",
		Country:  "india",
		CGSTRate: decimal.NewFromInt(9),
		SGSTRate: decimal.NewFromInt(9),
		BillTo: model.Party{
			Name:    "Acme Corp",
			Address: "221B Baker Street\nLondon",
			Email:   "billing@acme.example",
		},
		Items: []model.LineItem{
			{Description: "Consulting", Hours: decimal.NewFromInt(40), Rate: decimal.NewFromInt(250)},
			{Description: "Code review and deployment support", Hours: decimal.NewFromFloat(12.5), Rate: decimal.NewFromInt(180)},
		},
		Company: &model.CompanyInfo{
			Name:    "Example Studio",
			Address: "1 Studio Way",
		},
	}
}

func TestRender_ProducesPDF(t *testing.T) {
	e := render.New(render.WithFontPair(builtinFonts))

	out, err := e.Render(context.Background(), sampleInvoice())
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")), "output must start with a PDF header")
}

func TestRender_Deterministic(t *testing.T) {
	created := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	e := render.New(
		render.WithFontPair(builtinFonts),
		render.WithCreationDate(created),
	)

	first, err := e.Render(context.Background(), sampleInvoice())
	require.NoError(t, err)
	second, err := e.Render(context.Background(), sampleInvoice())
	require.NoError(t, err)

	assert.Equal(t, first, second, "same snapshot and creation date must yield identical bytes")
}

func TestRender_BrandedWithUnresolvableLogo(t *testing.T) {
	inv := sampleInvoice()
	inv.Company = &model.CompanyInfo{
		Name:    model.BrandedCompanyName,
		LogoRef: "https://nonexistent.invalid/uploads/logo.png",
		Bank: &model.BankDetails{
			BankName:  "First Example Bank",
			AccountNo: "000111222",
			IFSCCode:  "EXMP0001234",
		},
	}

	e := render.New(render.WithFontPair(builtinFonts))
	out, err := e.Render(context.Background(), inv)

	// Logo resolution failure degrades the page, it never fails the render.
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestRender_JapanInvoice(t *testing.T) {
	inv := sampleInvoice()
	inv.Country = "japan"
	inv.TaxRate = decimal.NewFromInt(10)
	inv.ShowConsumptionTax = true

	e := render.New(render.WithFontPair(builtinFonts))
	out, err := e.Render(context.Background(), inv)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestRender_NoItems(t *testing.T) {
	inv := sampleInvoice()
	inv.Items = nil

	e := render.New(render.WithFontPair(builtinFonts))
	out, err := e.Render(context.Background(), inv)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

// pageObjects counts PDF page dictionaries in the output. The page tree
// node ("/Type /Pages") matches the substring too, so a one-page document
// counts 2 and each further page adds 1.
func pageObjects(out []byte) int {
	return bytes.Count(out, []byte("/Type /Page"))
}

func TestRender_ManyItemsSpanPages(t *testing.T) {
	inv := sampleInvoice()
	inv.Items = nil
	for i := 0; i < 60; i++ {
		inv.Items = append(inv.Items, model.LineItem{
			Description: fmt.Sprintf("Sprint %d development and review", i+1),
			Hours:       decimal.NewFromInt(8),
			Rate:        decimal.NewFromInt(120),
		})
	}

	e := render.New(render.WithFontPair(builtinFonts))
	out, err := e.Render(context.Background(), inv)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.GreaterOrEqual(t, pageObjects(out), 3, "60 rows must continue onto a second page")
}

func TestRender_WrappedRowAtPageBreak(t *testing.T) {
	// Single-line rows fill the first page, then a heavily wrapped
	// description lands at the break and must move whole to page two.
	inv := sampleInvoice()
	inv.Items = nil
	for i := 0; i < 28; i++ {
		inv.Items = append(inv.Items, model.LineItem{
			Description: fmt.Sprintf("Task %d", i+1),
			Hours:       decimal.NewFromInt(4),
			Rate:        decimal.NewFromInt(150),
		})
	}
	inv.Items = append(inv.Items, model.LineItem{
		Description: strings.Repeat("cross-team integration work including rollout support ", 6),
		Hours:       decimal.NewFromInt(16),
		Rate:        decimal.NewFromInt(200),
	})

	e := render.New(render.WithFontPair(builtinFonts))
	out, err := e.Render(context.Background(), inv)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.GreaterOrEqual(t, pageObjects(out), 3)
}

func TestRender_MultiPageDeterministic(t *testing.T) {
	inv := sampleInvoice()
	for i := 0; i < 50; i++ {
		inv.Items = append(inv.Items, model.LineItem{
			Description: fmt.Sprintf("Milestone %d delivery", i+1),
			Hours:       decimal.NewFromInt(6),
			Rate:        decimal.NewFromInt(100),
		})
	}

	created := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	e := render.New(
		render.WithFontPair(builtinFonts),
		render.WithCreationDate(created),
	)

	first, err := e.Render(context.Background(), inv)
	require.NoError(t, err)
	second, err := e.Render(context.Background(), inv)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRender_NilInvoice(t *testing.T) {
	e := render.New()

	_, err := e.Render(context.Background(), nil)
	require.Error(t, err)

	var rerr *model.RenderError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "input", rerr.Stage)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestRenderTo_WriterFailure(t *testing.T) {
	e := render.New(render.WithFontPair(builtinFonts))

	err := e.RenderTo(context.Background(), sampleInvoice(), failingWriter{})
	require.Error(t, err)

	var rerr *model.RenderError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "write", rerr.Stage)
	assert.ErrorContains(t, err, "disk full")
}

func TestRender_OptimizedStillValid(t *testing.T) {
	e := render.New(
		render.WithFontPair(builtinFonts),
		render.WithOptimization(),
	)

	out, err := e.Render(context.Background(), sampleInvoice())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}
