package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Display formats stored alongside every invoice.
const (
	DateLayout     = "01/02/2006"
	TimeLayout     = "03:04 PM"
	DateTimeLayout = DateLayout + " " + TimeLayout
)

// DefaultQtyLabel heads the quantity column when the form leaves it blank.
const DefaultQtyLabel = "QTY"

// Invoice is one issued invoice as kept in invoices.json.
// Records are appended once and never updated.
type Invoice struct {
	// ID identifies the stored record; InvoiceNum is not guaranteed unique.
	ID         string `json:"id,omitempty"`
	InvoiceNum string `json:"invoice_num"`

	// Client snapshot at the time of issue
	ClientName     string `json:"client_name"`
	ClientAddress  string `json:"client_address"`
	ClientBusiness string `json:"client_business"`
	ClientPhone    string `json:"client_phone"`

	// Payment information
	PaidTo        string  `json:"paid_to"`
	PaymentStatus string  `json:"payment_status"`
	BankKey       string  `json:"bank_key"`
	PaidAmount    float64 `json:"paid_amount"`

	LineItems  []LineItem `json:"line_items"`
	GrandTotal float64    `json:"grand_total"`
	QtyLabel   string     `json:"qty_label"`

	DateTimeStr string    `json:"date_time_str"`
	DateStr     string    `json:"date_str"`
	TimeStr     string    `json:"time_str"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
}

// Stamp records the issue time in every stored format.
func (i *Invoice) Stamp(t time.Time) {
	i.CreatedAt = t
	i.DateTimeStr = t.Format(DateTimeLayout)
	i.DateStr = t.Format(DateLayout)
	i.TimeStr = t.Format(TimeLayout)
}

// Label returns the quantity column header, falling back to DefaultQtyLabel.
func (i *Invoice) Label() string {
	if strings.TrimSpace(i.QtyLabel) == "" {
		return DefaultQtyLabel
	}
	return i.QtyLabel
}

// Subtotal sums the line prices.
func (i *Invoice) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range i.LineItems {
		total = total.Add(item.Amount())
	}
	return total
}

// Totals recomputes the summary block from the stored line items.
// Nothing here is read back from the record, so a re-rendered invoice always
// shows the same figures as the first render.
func (i *Invoice) Totals(taxRate float64) Totals {
	subtotal := i.Subtotal()
	tax := subtotal.Mul(decimal.NewFromFloat(taxRate))
	grand := subtotal.Add(tax)
	paid := decimal.NewFromFloat(i.PaidAmount)
	return Totals{
		TaxRate:      taxRate,
		Subtotal:     subtotal,
		Tax:          tax,
		GrandTotal:   grand,
		Paid:         paid,
		RemainingDue: grand.Sub(paid),
	}
}

// Matches reports whether query occurs, ignoring case, in the invoice
// number, client name, business or phone.
func (i *Invoice) Matches(query string) bool {
	q := strings.ToLower(query)
	if q == "" {
		return false
	}
	for _, field := range []string{i.InvoiceNum, i.ClientName, i.ClientBusiness, i.ClientPhone} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// LineItem is a single billed row.
type LineItem struct {
	Desc string  `json:"desc"`
	Qty  float64 `json:"qty"`
	Rate float64 `json:"rate"`
}

// Price is qty × rate. It is derived at render time and never stored.
func (item LineItem) Price() float64 {
	return item.Amount().InexactFloat64()
}

// Amount is Price as a decimal, used for summing.
func (item LineItem) Amount() decimal.Decimal {
	return decimal.NewFromFloat(item.Qty).Mul(decimal.NewFromFloat(item.Rate))
}

// Totals is the summary block printed under the line items.
type Totals struct {
	TaxRate      float64         `json:"tax_rate"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Tax          decimal.Decimal `json:"tax"`
	GrandTotal   decimal.Decimal `json:"grand_total"`
	Paid         decimal.Decimal `json:"paid"`
	RemainingDue decimal.Decimal `json:"remaining_due"`
}

// HasTax reports whether a tax row should be shown.
func (t Totals) HasTax() bool {
	return t.Tax.IsPositive()
}

// Rows is the number of summary rows: four, or five with a tax row.
func (t Totals) Rows() int {
	if t.HasTax() {
		return 5
	}
	return 4
}
