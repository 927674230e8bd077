// Package pdf lays out and writes invoice documents.
package pdf

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/diewo77/desk-invoicer/internal/config"
	"github.com/diewo77/desk-invoicer/internal/models"
)

// Renderer turns stored invoices into PDF files for one company profile.
type Renderer struct {
	profile config.Profile
	outDir  string
}

// NewRenderer returns a renderer writing into outDir.
func NewRenderer(p config.Profile, outDir string) *Renderer {
	return &Renderer{profile: p.Clone(), outDir: outDir}
}

// OutputDir is where Render writes files.
func (r *Renderer) OutputDir() string { return r.outDir }

// Path returns the absolute path Render uses for an invoice number.
func (r *Renderer) Path(invoiceNum string) (string, error) {
	return filepath.Abs(filepath.Join(r.outDir, FileName(invoiceNum)))
}

// Render writes the invoice to the output directory and returns the
// absolute path of the file.
func (r *Renderer) Render(inv models.Invoice) (string, error) {
	path, err := r.Path(inv.InvoiceNum)
	if err != nil {
		return "", fmt.Errorf("resolve output path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	c, _, err := r.compose(inv)
	if err != nil {
		return "", err
	}
	if err := c.pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// RenderTo writes the invoice to w and reports where everything landed.
func (r *Renderer) RenderTo(w io.Writer, inv models.Invoice) (Layout, error) {
	c, layout, err := r.compose(inv)
	if err != nil {
		return Layout{}, err
	}
	if err := c.pdf.Output(w); err != nil {
		return Layout{}, fmt.Errorf("write invoice %s: %w", inv.InvoiceNum, err)
	}
	return *layout, nil
}

// compose lays out the whole document and closes it. The footer is drawn
// by gofpdf at every page end, so the layout is only complete after Close.
func (r *Renderer) compose(inv models.Invoice) (*canvas, *Layout, error) {
	c := newCanvas()
	layout := &Layout{Totals: inv.Totals(r.profile.TaxRate)}

	f := newFooter(r.profile, inv.BankKey, inv.PaymentStatus, inv.PaidTo)
	c.pdf.SetFooterFunc(func() {
		layout.FooterHeight = c.drawFooter(f)
	})

	c.pdf.AddPage()
	c.header(r.profile)
	c.pdf.SetY(c.parties(inv))
	c.tableHeader(inv.Label())
	layout.Rows = c.rows(inv.LineItems)
	layout.TotalsPage, layout.TotalsY = c.totals(layout.Totals)
	layout.Pages = c.pdf.PageNo()

	c.pdf.Close()
	if err := c.pdf.Error(); err != nil {
		return nil, nil, fmt.Errorf("render invoice %s: %w", inv.InvoiceNum, err)
	}
	return c, layout, nil
}
