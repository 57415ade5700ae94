// Package render lays out an invoice snapshot onto a single-page A4 PDF.
//
// The engine is deterministic for a given snapshot and creation date: the
// same input yields byte-identical output. All soft failures (missing logo,
// font fallback, unparseable dates) degrade the page; only document assembly
// and output writing can fail, and they surface as a *model.RenderError.
package render

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rezonia/invoice-renderer/internal/assets"
	"github.com/rezonia/invoice-renderer/internal/fonts"
	"github.com/rezonia/invoice-renderer/internal/model"
	"github.com/rezonia/invoice-renderer/internal/money"
	"github.com/rezonia/invoice-renderer/internal/tax"
)

// Page geometry in millimeters on A4 (210 x 297).
const (
	marginLeft  = 14.0
	marginTop   = 18.0
	marginRight = 14.0
	pageWidth   = 210.0
	pageHeight  = 297.0
	breakMargin = 20.0
	contentW    = pageWidth - marginLeft - marginRight
	logoWidth   = 40.0
	stampWidth  = 30.0
)

// Engine renders invoice snapshots to PDF bytes.
type Engine struct {
	assets   *assets.Resolver
	log      *zap.Logger
	fontPair func() fonts.Pair
	creation time.Time
	optimize bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithAssets sets the resolver used for company logos.
func WithAssets(r *assets.Resolver) Option {
	return func(e *Engine) { e.assets = r }
}

// WithLogger sets the logger for degraded-output events.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithCreationDate pins the document creation timestamp. Without it the PDF
// backend stamps the current time and output bytes vary between runs.
func WithCreationDate(t time.Time) Option {
	return func(e *Engine) { e.creation = t }
}

// WithFontPair overrides font discovery, bypassing the host filesystem scan.
func WithFontPair(f func() fonts.Pair) Option {
	return func(e *Engine) { e.fontPair = f }
}

// WithOptimization enables a post-generation optimization pass over the
// finished document. Optimization failures degrade to the unoptimized bytes.
func WithOptimization() Option {
	return func(e *Engine) { e.optimize = true }
}

// New creates an engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{
		assets:   assets.NewResolver(),
		log:      zap.NewNop(),
		fontPair: fonts.Load,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Render produces the finished PDF document for an invoice snapshot.
func (e *Engine) Render(ctx context.Context, inv *model.Invoice) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.RenderTo(ctx, inv, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderTo renders the invoice and writes the document to w. Any failure is
// reported as a *model.RenderError; nothing is written on assembly failure.
func (e *Engine) RenderTo(ctx context.Context, inv *model.Invoice, w io.Writer) error {
	if inv == nil {
		return model.NewRenderError("input", "nil invoice snapshot", nil)
	}

	pdf := e.compose(ctx, inv)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return model.NewRenderError("layout", "assembling document", err)
	}

	out := buf.Bytes()
	if e.optimize {
		out = e.optimized(out)
	}

	if _, err := w.Write(out); err != nil {
		return model.NewRenderError("write", "writing document", err)
	}
	return nil
}

// compose builds the page. Drawing calls on a broken document are no-ops in
// the backend, so errors are collected once at output time.
func (e *Engine) compose(ctx context.Context, inv *model.Invoice) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	if !e.creation.IsZero() {
		pdf.SetCreationDate(e.creation)
	}
	pdf.SetMargins(marginLeft, marginTop, marginRight)
	pdf.SetAutoPageBreak(true, breakMargin)

	l := &layout{
		pdf: pdf,
		tr:  func(s string) string { return s },
		inv: inv,
		j:   inv.Jurisdiction(),
		sum: tax.Compute(inv),
	}

	pair := e.fontPair()
	l.font = pair.Family
	if pair.Builtin() {
		l.tr = pdf.UnicodeTranslatorFromDescriptor("")
		e.log.Debug("unicode font unavailable, using core font",
			zap.String("family", pair.Family))
	} else {
		pdf.AddUTF8FontFromBytes(pair.Family, "", pair.Regular)
		pdf.AddUTF8FontFromBytes(pair.Family, "B", pair.Bold)
	}

	if inv.Company.Branded() {
		if ref := inv.Company.LogoRef; ref != "" {
			l.logo = e.assets.Resolve(ctx, ref)
		}
		if data, ok := assets.Bundled(assets.StampImage); ok {
			l.stamp = data
		} else {
			e.log.Warn("bundled signature stamp missing, using blank line")
		}
	}

	pdf.AddPage()
	l.header()
	l.billTo()
	l.itemsTable()
	l.totalsBlock()
	l.footer()
	return pdf
}

// layout carries per-document drawing state through the page sections.
type layout struct {
	pdf   *gofpdf.Fpdf
	tr    func(string) string
	font  string
	inv   *model.Invoice
	j     model.Jurisdiction
	sum   tax.Result
	logo  []byte
	stamp []byte
}

func (l *layout) header() {
	companyY := 16.0
	if len(l.logo) > 0 {
		l.image("company-logo", l.logo, marginLeft, 12, logoWidth)
		companyY = 38
	}

	// Right block: title, number and dates.
	l.pdf.SetFont(l.font, "B", 22)
	l.pdf.SetTextColor(6, 81, 237)
	l.pdf.SetXY(110, 14)
	l.pdf.CellFormat(86, 10, "INVOICE", "", 1, "R", false, 0, "")

	l.pdf.SetFont(l.font, "", 10)
	l.pdf.SetTextColor(0, 0, 0)
	l.rightLine("Invoice #: " + l.inv.Number)
	l.rightLine("Date: " + formatDate(l.inv.Date))
	if l.inv.DueDate != "" {
		l.rightLine("Due Date: " + formatDate(l.inv.DueDate))
	}

	// Left block: issuing company.
	l.pdf.SetXY(marginLeft, companyY)
	l.pdf.SetFont(l.font, "B", 13)
	l.pdf.CellFormat(96, 7, l.tr(l.inv.Company.DisplayName()), "", 1, "L", false, 0, "")
	if l.inv.Company != nil && l.inv.Company.Address != "" {
		l.pdf.SetFont(l.font, "", 9)
		l.pdf.SetTextColor(90, 90, 90)
		l.pdf.MultiCell(96, 4.5, l.tr(l.inv.Company.Address), "", "L", false)
		l.pdf.SetTextColor(0, 0, 0)
	}
}

func (l *layout) rightLine(s string) {
	l.pdf.SetX(110)
	l.pdf.CellFormat(86, 5.5, l.tr(s), "", 1, "R", false, 0, "")
}

func (l *layout) billTo() {
	y := l.pdf.GetY() + 8
	if y < 62 {
		y = 62
	}
	l.pdf.SetXY(marginLeft, y)

	l.pdf.SetFont(l.font, "B", 11)
	l.pdf.SetTextColor(6, 81, 237)
	l.pdf.CellFormat(96, 6, "Bill To", "", 1, "L", false, 0, "")
	l.pdf.SetTextColor(0, 0, 0)

	l.pdf.SetFont(l.font, "B", 10)
	l.pdf.CellFormat(96, 5.5, l.tr(l.inv.BillTo.Name), "", 1, "L", false, 0, "")

	l.pdf.SetFont(l.font, "", 9)
	if l.inv.BillTo.Address != "" {
		l.pdf.MultiCell(96, 4.5, l.tr(l.inv.BillTo.Address), "", "L", false)
	}
	if l.inv.BillTo.Email != "" {
		l.pdf.CellFormat(96, 4.5, l.tr(l.inv.BillTo.Email), "", 1, "L", false, 0, "")
	}
	if l.inv.BillTo.Phone != "" {
		l.pdf.CellFormat(96, 4.5, l.tr(l.inv.BillTo.Phone), "", 1, "L", false, 0, "")
	}
}

// Column widths: description 40%, hours 15%, rate 20%, amount 25%.
var colWidths = [4]float64{contentW * 0.40, contentW * 0.15, contentW * 0.20, contentW * 0.25}

const rowLine = 7.0

func (l *layout) tableHeader() {
	l.pdf.SetFont(l.font, "B", 10)
	l.pdf.SetFillColor(6, 81, 237)
	l.pdf.SetTextColor(255, 255, 255)
	l.pdf.CellFormat(colWidths[0], 8, "Description", "", 0, "L", true, 0, "")
	l.pdf.CellFormat(colWidths[1], 8, "Hours", "", 0, "C", true, 0, "")
	l.pdf.CellFormat(colWidths[2], 8, "Rate", "", 0, "R", true, 0, "")
	l.pdf.CellFormat(colWidths[3], 8, "Amount", "", 1, "R", true, 0, "")

	l.pdf.SetFont(l.font, "", 10)
	l.pdf.SetTextColor(0, 0, 0)
}

func (l *layout) itemsTable() {
	l.pdf.SetY(l.pdf.GetY() + 8)
	l.tableHeader()
	l.pdf.SetDrawColor(222, 226, 230)

	breakAt := pageHeight - breakMargin

	for i := range l.inv.Items {
		it := &l.inv.Items[i]

		// Pre-measure the wrapped description so each row is placed
		// whole. A row never straddles the page break; continuation
		// pages repeat the table header.
		desc := l.tr(it.Description)
		lines := len(l.pdf.SplitText(desc, colWidths[0]))
		if lines < 1 {
			lines = 1
		}
		rowH := float64(lines) * rowLine

		fitsOnePage := rowH <= breakAt-marginTop
		if fitsOnePage && l.pdf.GetY()+rowH > breakAt {
			l.pdf.AddPage()
			l.tableHeader()
		}

		startY := l.pdf.GetY()
		startPage := l.pdf.PageNo()
		l.pdf.SetX(marginLeft)
		l.pdf.MultiCell(colWidths[0], rowLine, desc, "", "L", false)

		if l.pdf.PageNo() == startPage {
			l.rowCells(it, startY, rowH)
			l.pdf.SetY(startY + rowH)
		} else {
			// Description taller than a full page; the numeric cells
			// stay beside its first line.
			endPage, endY := l.pdf.PageNo(), l.pdf.GetY()
			l.pdf.SetPage(startPage)
			l.rowCells(it, startY, rowLine)
			l.pdf.SetPage(endPage)
			l.pdf.SetY(endY)
		}
		l.pdf.Line(marginLeft, l.pdf.GetY(), pageWidth-marginRight, l.pdf.GetY())
	}
}

func (l *layout) rowCells(it *model.LineItem, y, h float64) {
	l.pdf.SetXY(marginLeft+colWidths[0], y)
	l.pdf.CellFormat(colWidths[1], h, it.Hours.String(), "", 0, "C", false, 0, "")
	l.pdf.CellFormat(colWidths[2], h, l.tr(money.Format(it.Rate, l.j)), "", 0, "R", false, 0, "")
	l.pdf.CellFormat(colWidths[3], h, l.tr(money.Format(it.Amount(), l.j)), "", 1, "R", false, 0, "")
}

func (l *layout) totalsBlock() {
	const labelW, valueW = 63.0, 28.0
	x := pageWidth - marginRight - labelW - valueW

	l.pdf.SetY(l.pdf.GetY() + 4)

	l.pdf.SetFont(l.font, "", 10)
	l.totalsRow(x, labelW, valueW, "Subtotal", l.sum.Subtotal, false)
	for _, line := range l.sum.Lines {
		l.totalsRow(x, labelW, valueW, line.Label, line.Amount, false)
	}

	l.pdf.SetFont(l.font, "B", 11)
	l.totalsRow(x, labelW, valueW, "Grand Total", l.sum.GrandTotal, true)
}

func (l *layout) totalsRow(x, labelW, valueW float64, label string, amount decimal.Decimal, fill bool) {
	if fill {
		l.pdf.SetFillColor(245, 245, 245)
	}
	l.pdf.SetX(x)
	l.pdf.CellFormat(labelW, 7.5, l.tr(label), "", 0, "R", fill, 0, "")
	l.pdf.CellFormat(valueW, 7.5, l.tr(money.Format(amount, l.j)), "", 1, "R", fill, 0, "")
}

func (l *layout) footer() {
	y := l.pdf.GetY() + 14

	// The footer block is ~42mm tall; move it to a fresh page when the
	// table ran long.
	if y+42 > pageHeight-breakMargin {
		l.pdf.AddPage()
		y = marginTop
	}

	if l.inv.Company.Branded() && !l.bank().Empty() {
		l.bankBlock(y)
	}
	l.signatureBlock(y)
}

func (l *layout) bank() *model.BankDetails {
	if l.inv.Company == nil {
		return nil
	}
	return l.inv.Company.Bank
}

func (l *layout) bankBlock(y float64) {
	l.pdf.SetXY(marginLeft, y)
	l.pdf.SetFont(l.font, "B", 10)
	l.pdf.SetTextColor(6, 81, 237)
	l.pdf.CellFormat(96, 6, "Bank Details", "", 1, "L", false, 0, "")
	l.pdf.SetTextColor(0, 0, 0)

	l.pdf.SetFont(l.font, "", 9)
	b := l.bank()
	l.bankLine("Bank Name", b.BankName)
	l.bankLine("Account No", b.AccountNo)
	l.bankLine("Account Holder", b.HolderName)
	l.bankLine("IFSC Code", b.IFSCCode)
	l.bankLine("Branch Name", b.BranchName)
	l.bankLine("Branch Code", b.BranchCode)
	l.bankLine("Account Type", b.AccountType)
}

// bankLine renders one bank field, skipping empty values entirely.
func (l *layout) bankLine(label, value string) {
	if value == "" {
		return
	}
	l.pdf.SetX(marginLeft)
	l.pdf.CellFormat(96, 4.5, l.tr(label+": "+value), "", 1, "L", false, 0, "")
}

func (l *layout) signatureBlock(y float64) {
	const sigX = 140.0
	const sigW = pageWidth - marginRight - sigX

	lineY := y + 22
	if len(l.stamp) > 0 {
		l.image("signature-stamp", l.stamp, sigX+(sigW-stampWidth)/2, y, stampWidth)
	} else {
		l.pdf.SetDrawColor(0, 0, 0)
		l.pdf.Line(sigX, lineY, sigX+sigW, lineY)
	}

	l.pdf.SetXY(sigX, lineY+2)
	l.pdf.SetFont(l.font, "", 9)
	l.pdf.CellFormat(sigW, 5, "Authorised Signature", "", 1, "C", false, 0, "")
}

// image registers raw bytes under a stable name and places them with the
// width given, height scaled to keep aspect ratio.
func (l *layout) image(name string, data []byte, x, y, w float64) {
	opts := gofpdf.ImageOptions{ImageType: assets.ImageType(data), ReadDpi: true}
	l.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	l.pdf.ImageOptions(name, x, y, w, 0, false, opts, 0, "")
}

// formatDate re-emits a yyyy-MM-dd date long-form; anything unparseable is
// printed verbatim.
func formatDate(s string) string {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return s
	}
	return t.Format("January 02, 2006")
}
