package services

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/diewo77/desk-invoicer/internal/config"
	"github.com/diewo77/desk-invoicer/internal/models"
	"github.com/diewo77/desk-invoicer/internal/numbering"
	"github.com/diewo77/desk-invoicer/internal/pdf"
	"github.com/diewo77/desk-invoicer/internal/store"
	"github.com/diewo77/desk-invoicer/internal/viewer"
)

// ErrNotFound is returned when no stored invoice has the requested number.
var ErrNotFound = errors.New("invoice not found")

// Submission is a new invoice as entered in the form.
type Submission struct {
	ClientName     string
	ClientAddress  string
	ClientBusiness string
	ClientPhone    string
	PaidTo         string
	PaymentStatus  string
	BankKey        string
	QtyLabel       string
	PaidAmount     float64
	Items          []models.LineItem
}

// Result describes an issued invoice.
type Result struct {
	Invoice models.Invoice
	Path    string
	Totals  models.Totals
}

// InvoiceService issues, finds and re-renders invoices.
type InvoiceService struct {
	files    *store.Files
	numbers  *numbering.Numberer
	renderer *pdf.Renderer
	opener   viewer.Opener
	taxRate  float64
	now      func() time.Time

	// mu serializes numbering and appends within this process.
	mu sync.Mutex
}

// NewInvoiceService wires the service to a data directory, a renderer and an opener.
func NewInvoiceService(files *store.Files, renderer *pdf.Renderer, opener viewer.Opener, p config.Profile) *InvoiceService {
	if opener == nil {
		opener = viewer.Noop{}
	}
	return &InvoiceService{
		files:    files,
		numbers:  numbering.New(files),
		renderer: renderer,
		opener:   opener,
		taxRate:  p.TaxRate,
		now:      time.Now,
	}
}

// SetClock replaces the time source used to stamp new invoices.
func (s *InvoiceService) SetClock(now func() time.Time) {
	s.now = now
}

// Directory returns the client lookup tables used for autofill.
func (s *InvoiceService) Directory() models.Directory {
	return models.NewDirectory(s.files.Clients())
}

// PreviewNumber returns the number the next invoice for name would get,
// without reserving it.
func (s *InvoiceService) PreviewNumber(name string) string {
	return s.numbers.Preview(name)
}

// ComputeTotals recomputes the summary figures of an invoice.
func (s *InvoiceService) ComputeTotals(inv *models.Invoice) models.Totals {
	return inv.Totals(s.taxRate)
}

// Submit numbers, stores, renders and opens a new invoice.
// Store write failures are logged and do not stop the invoice from being
// rendered; a render failure is returned.
func (s *InvoiceService) Submit(sub Submission) (Result, error) {
	inv := s.record(sub)

	path, err := s.renderer.Render(inv)
	if err != nil {
		return Result{Invoice: inv}, err
	}
	s.open(path)
	return Result{Invoice: inv, Path: path, Totals: s.ComputeTotals(&inv)}, nil
}

func (s *InvoiceService) record(sub Submission) models.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.numbers.Commit(sub.ClientName, numbering.Details{
		Address:  sub.ClientAddress,
		Business: sub.ClientBusiness,
		Phone:    sub.ClientPhone,
	})
	if err != nil {
		log.Printf("[WARN] client records not saved: %v", err)
	}

	inv := models.Invoice{
		ID:             uuid.NewString(),
		InvoiceNum:     a.Number,
		ClientName:     a.ClientName,
		ClientAddress:  sub.ClientAddress,
		ClientBusiness: sub.ClientBusiness,
		ClientPhone:    sub.ClientPhone,
		PaidTo:         sub.PaidTo,
		PaymentStatus:  sub.PaymentStatus,
		BankKey:        sub.BankKey,
		PaidAmount:     sub.PaidAmount,
		LineItems:      sub.Items,
		QtyLabel:       strings.TrimSpace(sub.QtyLabel),
	}
	if inv.LineItems == nil {
		inv.LineItems = []models.LineItem{}
	}
	inv.QtyLabel = inv.Label()
	inv.GrandTotal = inv.Subtotal().InexactFloat64()
	inv.Stamp(s.now())

	if err := s.files.AppendInvoice(inv); err != nil {
		log.Printf("[WARN] invoice %s not saved: %v", inv.InvoiceNum, err)
	}
	return inv
}

// Search returns invoices whose number, client name, business or phone
// contains query, ignoring case, newest first.
func (s *InvoiceService) Search(query string) []models.Invoice {
	query = strings.TrimSpace(query)
	results := []models.Invoice{}
	if query == "" {
		return results
	}
	invoices := s.files.Invoices()
	for i := len(invoices) - 1; i >= 0; i-- {
		if invoices[i].Matches(query) {
			results = append(results, invoices[i])
		}
	}
	return results
}

// Find returns the first stored invoice numbered num.
func (s *InvoiceService) Find(num string) (models.Invoice, error) {
	num = strings.TrimSpace(num)
	for _, inv := range s.files.Invoices() {
		if inv.InvoiceNum == num {
			return inv, nil
		}
	}
	return models.Invoice{}, fmt.Errorf("%w: %s", ErrNotFound, num)
}

// Reopen re-renders a stored invoice and opens it.
func (s *InvoiceService) Reopen(num string) (Result, error) {
	inv, err := s.Find(num)
	if err != nil {
		return Result{}, err
	}
	path, err := s.renderer.Render(inv)
	if err != nil {
		return Result{Invoice: inv}, err
	}
	s.open(path)
	return Result{Invoice: inv, Path: path, Totals: s.ComputeTotals(&inv)}, nil
}

// WritePDF renders a stored invoice to w.
func (s *InvoiceService) WritePDF(w io.Writer, num string) (models.Invoice, error) {
	inv, err := s.Find(num)
	if err != nil {
		return inv, err
	}
	if _, err := s.renderer.RenderTo(w, inv); err != nil {
		return inv, err
	}
	return inv, nil
}

func (s *InvoiceService) open(path string) {
	if err := s.opener.Open(path); err != nil {
		log.Printf("[WARN] %v", err)
	}
}
