package pdf

import (
	"strings"

	"github.com/diewo77/desk-invoicer/internal/config"
)

// Footer geometry, in mm. Negative y values are measured from the page bottom.
const (
	footerTop  = -70.0
	barTop     = -15.0
	barHeight  = 8.0
	boxPadding = 2.0

	leftBoxX   = 10.0
	leftBoxW   = 85.0
	rightBoxX  = 105.0
	rightBoxW  = 95.0
	footerGrey = 230
)

// line is one text row of a footer block. Wrapped lines may span several
// rows of the given height.
type line struct {
	style  string
	size   float64
	height float64
	text   string
	wrap   bool
}

// block is a column of lines drawn top to bottom inside a box.
type block []line

// footer is what the page footer prints; it is fixed for the whole document.
type footer struct {
	bank    config.BankAccount
	status  string
	terms   string
	contact string
}

func newFooter(p config.Profile, bankKey, paymentStatus, paidTo string) footer {
	return footer{
		bank:    p.Bank(bankKey),
		status:  strings.ToUpper(paymentStatus),
		terms:   p.Terms,
		contact: p.ContactLine(paidTo),
	}
}

func (f footer) payment() block {
	return block{
		{style: "B", size: 10, height: 8, text: "Payable To"},
		{size: 9, height: 5, text: f.bank.Name},
		{style: "B", size: 10, height: 5, text: "Bank Details"},
		{size: 9, height: 5, text: f.bank.Bank + " | " + f.bank.Number},
		{style: "B", size: 10, height: 5, text: "Payment Status"},
		{style: "B", size: 10, height: 6, text: f.status},
	}
}

func (f footer) conditions() block {
	return block{
		{style: "B", size: 10, height: 8, text: "Terms and conditions:"},
		{size: 9, height: 5, text: f.terms, wrap: true},
	}
}

// measure returns the height b occupies at width w without drawing anything.
func (c *canvas) measure(b block, w float64) float64 {
	var h float64
	for _, l := range b {
		if !l.wrap {
			h += l.height
			continue
		}
		c.font(l.style, l.size)
		h += float64(c.lineCount(l.text, w)) * l.height
	}
	return h
}

// draw writes b from the top-left corner (x, y), one line under the other.
func (c *canvas) draw(b block, x, y, w float64) {
	c.pdf.SetXY(x, y)
	for _, l := range b {
		c.font(l.style, l.size)
		c.pdf.SetX(x)
		if l.wrap {
			c.multi(w, l.height, l.text, "L", false)
			continue
		}
		c.cell(w, l.height, l.text, "0", 1, "L", false)
	}
}

// drawFooter measures both blocks, fills two boxes as tall as the taller
// block, draws the text on top and finishes with the contact bar.
// It returns the box height.
func (c *canvas) drawFooter(f footer) float64 {
	pdf := c.pdf
	pdf.SetY(footerTop)
	top := pdf.GetY()

	left, right := f.payment(), f.conditions()
	height := max(c.measure(left, leftBoxW), c.measure(right, rightBoxW)) + boxPadding

	pdf.SetFillColor(footerGrey, footerGrey, footerGrey)
	pdf.Rect(leftBoxX, top, leftBoxW, height, "F")
	pdf.Rect(rightBoxX, top, rightBoxW, height, "F")

	pdf.SetTextColor(0, 0, 0)
	c.draw(left, leftBoxX, top, leftBoxW)
	c.draw(right, rightBoxX, top, rightBoxW)

	pdf.SetY(barTop)
	pdf.SetFillColor(50, 50, 50)
	pdf.SetTextColor(255, 255, 255)
	c.font("B", 8)
	c.cell(0, barHeight, f.contact, "0", 0, "C", true)
	pdf.SetTextColor(0, 0, 0)
	return height
}
