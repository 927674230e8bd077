package pdf

import (
	"fmt"
	"os"
	"strings"

	"github.com/diewo77/desk-invoicer/internal/config"
	"github.com/diewo77/desk-invoicer/internal/models"
)

// Body geometry, in mm.
const (
	pageBreakY = 210.0
	rowHeight  = 10.0
	blockTop   = 55.0
	columnGap  = 10.0
	rightColX  = 110.0
	rightColW  = 90.0
	leftColW   = 100.0
	totalsW    = 190.0
	labelW     = 160.0
	valueW     = 30.0
)

// table column widths: description, quantity, rate, price.
var columns = [4]float64{95, 30, 35, 30}

// RowPlacement is where a line item row was drawn.
type RowPlacement struct {
	Page int
	Y    float64
}

// Layout summarises a rendered document.
type Layout struct {
	Pages        int
	Rows         []RowPlacement
	TotalsPage   int
	TotalsY      float64
	FooterHeight float64
	Totals       models.Totals
}

func (c *canvas) header(p config.Profile) {
	pdf := c.pdf
	if p.LogoPath != "" {
		if _, err := os.Stat(p.LogoPath); err == nil {
			pdf.Image(p.LogoPath, 10, 8, 28, 0, false, "", 0, "")
		}
	}
	pdf.SetY(13)
	pdf.SetX(0)
	c.font("B", 20)
	c.cell(0, 10, p.CompanyName, "0", 2, "C", false)
	pdf.SetX(0)
	c.font("", 10)
	c.cell(0, 7, p.Subtitle, "0", 2, "C", false)

	pdf.SetY(35)
	for _, l := range p.AddressLines {
		c.cell(0, 5, l, "0", 1, "L", false)
	}
}

// parties draws the bill-to and quotation columns side by side and returns
// the y position below the longer one.
func (c *canvas) parties(inv models.Invoice) float64 {
	pdf := c.pdf
	pdf.SetY(blockTop)
	c.font("B", 12)
	c.cell(leftColW, 8, "Bill To: "+inv.ClientName, "0", 1, "L", false)
	c.font("B", 10)
	c.cell(leftColW, 5, "Business: "+inv.ClientBusiness, "0", 1, "L", false)
	c.cell(leftColW, 5, "Address:", "0", 1, "L", false)
	c.font("", 10)
	c.multi(leftColW, 5, inv.ClientAddress, "L", false)
	pdf.SetX(10)
	c.font("B", 10)
	c.cell(leftColW, 5, "Phone: "+inv.ClientPhone, "0", 1, "L", false)
	leftEnd := pdf.GetY()

	pdf.SetY(blockTop)
	right := []struct {
		style string
		h     float64
		text  string
	}{
		{"B", 8, "QUOTATION"},
		{"", 5, "DATE: " + inv.DateStr},
		{"", 5, "TIME: " + inv.TimeStr},
		{"", 5, "INVOICE #: " + inv.InvoiceNum},
	}
	for _, r := range right {
		pdf.SetX(rightColX)
		c.font(r.style, 10)
		c.cell(rightColW, r.h, r.text, "0", 1, "R", false)
	}
	return max(leftEnd, pdf.GetY()) + columnGap
}

func (c *canvas) tableHeader(qtyLabel string) {
	pdf := c.pdf
	c.font("B", 10)
	pdf.SetFillColor(34, 34, 34)
	pdf.SetTextColor(255, 255, 255)
	c.cell(columns[0], rowHeight, "ITEM DESCRIPTION", "1", 0, "L", true)
	c.cell(columns[1], rowHeight, strings.ToUpper(qtyLabel), "1", 0, "C", true)
	c.cell(columns[2], rowHeight, "RATE", "1", 0, "C", true)
	c.cell(columns[3], rowHeight, "PRICE", "1", 1, "C", true)
}

// rows draws one bordered row per item. A row is moved whole to a new page
// when the cursor is already past the break line.
func (c *canvas) rows(items []models.LineItem) []RowPlacement {
	pdf := c.pdf
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(0, 0, 0)
	c.font("", 10)

	placed := make([]RowPlacement, 0, len(items))
	for _, item := range items {
		if pdf.GetY() > pageBreakY {
			pdf.AddPage()
		}
		placed = append(placed, RowPlacement{Page: pdf.PageNo(), Y: pdf.GetY()})
		c.cell(columns[0], rowHeight, item.Desc, "1", 0, "L", true)
		c.cell(columns[1], rowHeight, Money(item.Qty), "1", 0, "C", true)
		c.cell(columns[2], rowHeight, Money(item.Rate), "1", 0, "R", true)
		c.cell(columns[3], rowHeight, Money(item.Price()), "1", 1, "R", true)
	}
	return placed
}

type totalsRow struct {
	label string
	value float64
}

func totalsRows(t models.Totals) []totalsRow {
	out := []totalsRow{{"SUBTOTAL", t.Subtotal.InexactFloat64()}}
	if t.HasTax() {
		out = append(out, totalsRow{fmt.Sprintf("TAX (%s%%)", Percent(t.TaxRate)), t.Tax.InexactFloat64()})
	}
	return append(out,
		totalsRow{"GRAND TOTAL", t.GrandTotal.InexactFloat64()},
		totalsRow{"AMOUNT PAID", t.Paid.InexactFloat64()},
		totalsRow{"REMAINING DUE", t.RemainingDue.InexactFloat64()},
	)
}

// totals draws the summary band and returns where it starts.
func (c *canvas) totals(t models.Totals) (int, float64) {
	pdf := c.pdf
	pdf.Ln(5)
	c.font("B", 10)

	rows := totalsRows(t)
	height := float64(len(rows)) * rowHeight
	top := pdf.GetY()
	if top+height > pageBreakY {
		pdf.AddPage()
		top = pdf.GetY()
	}

	pdf.SetFillColor(240, 240, 240)
	pdf.Rect(pdf.GetX(), top, totalsW, height, "F")
	pdf.SetY(top)
	for _, r := range rows {
		c.cell(labelW, rowHeight, r.label, "0", 0, "R", false)
		c.cell(valueW, rowHeight, Money(r.value), "0", 1, "R", false)
	}
	return pdf.PageNo(), top
}
