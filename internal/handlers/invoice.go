package handlers

import (
	"bytes"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/diewo77/desk-invoicer/httpx"
	"github.com/diewo77/desk-invoicer/internal/config"
	"github.com/diewo77/desk-invoicer/internal/models"
	"github.com/diewo77/desk-invoicer/internal/pdf"
	"github.com/diewo77/desk-invoicer/internal/services"
	"github.com/diewo77/desk-invoicer/validation"
	"github.com/diewo77/desk-invoicer/view"
)

// InvoiceHandler serves the invoice form and the invoice endpoints it calls.
type InvoiceHandler struct {
	svc     *services.InvoiceService
	profile config.Profile
}

func NewInvoiceHandler(svc *services.InvoiceService, p config.Profile) *InvoiceHandler {
	return &InvoiceHandler{svc: svc, profile: p}
}

// Index: GET /
func (h *InvoiceHandler) Index(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{
		"Company":        h.profile.CompanyName,
		"Directory":      h.svc.Directory(),
		"BankAccounts":   h.profile.BankAccounts,
		"BankKeys":       h.profile.BankKeys(),
		"DefaultBank":    h.profile.DefaultBank,
		"Contacts":       h.profile.ContactKeys(),
		"DefaultContact": h.profile.DefaultContact,
		"QtyLabel":       models.DefaultQtyLabel,
	}
	if err := view.Render(w, r, "index.html", data); err != nil {
		log.Printf("[ERROR] render index: %v", err)
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

// NextNumber: GET /invoices/next-number?client_name=
func (h *InvoiceHandler) NextNumber(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("client_name")
	v := make(validation.Violations)
	validation.Required("client_name", name, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"invoice_num": h.svc.PreviewNumber(name)})
}

// Create: POST /invoices – form; JSON reply when asked for
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_form", nil)
		return
	}
	sub := submissionFromForm(r)

	v := make(validation.Violations)
	validation.Required("client_name", sub.ClientName, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}

	res, err := h.svc.Submit(sub)
	if err != nil {
		log.Printf("[ERROR] create invoice: %v", err)
		httpx.JSONError(w, http.StatusInternalServerError, "render_failed", nil)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusCreated, map[string]any{
			"invoice_num": res.Invoice.InvoiceNum,
			"path":        res.Path,
			"totals":      res.Totals,
		})
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func submissionFromForm(r *http.Request) services.Submission {
	sub := services.Submission{
		ClientName:     strings.TrimSpace(r.FormValue("client_name")),
		ClientAddress:  r.FormValue("client_address"),
		ClientBusiness: r.FormValue("client_business"),
		ClientPhone:    r.FormValue("client_phone"),
		PaidTo:         r.FormValue("paid_to"),
		PaymentStatus:  r.FormValue("payment_status"),
		BankKey:        r.FormValue("bank_account"),
		QtyLabel:       r.FormValue("qty_label"),
		PaidAmount:     validation.Float(r.FormValue("paid_amount")),
	}

	descs := formList(r, "item_desc")
	qtys := formList(r, "item_qty")
	rates := formList(r, "item_rate")
	sub.Items = make([]models.LineItem, 0, len(descs))
	for i, desc := range descs {
		sub.Items = append(sub.Items, models.LineItem{
			Desc: desc,
			Qty:  validation.Float(at(qtys, i)),
			Rate: validation.Float(at(rates, i)),
		})
	}
	return sub
}

// formList reads a repeated field sent as either "name[]" or "name".
func formList(r *http.Request, name string) []string {
	if vals := r.Form[name+"[]"]; len(vals) > 0 {
		return vals
	}
	return r.Form[name]
}

func at(vals []string, i int) string {
	if i < len(vals) {
		return vals[i]
	}
	return ""
}

// Search: GET /invoices/search?query=
func (h *InvoiceHandler) Search(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.svc.Search(r.URL.Query().Get("query")))
}

// Open: GET /invoices/{num}/open
func (h *InvoiceHandler) Open(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Reopen(r.PathValue("num"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{
			"invoice_num": res.Invoice.InvoiceNum,
			"path":        res.Path,
			"totals":      res.Totals,
		})
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Opening PDF in external viewer..."))
}

// PDF: GET /invoices/{num}/pdf
func (h *InvoiceHandler) PDF(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	inv, err := h.svc.WritePDF(&buf, r.PathValue("num"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+pdf.FileName(inv.InvoiceNum)+`"`)
	_, _ = w.Write(buf.Bytes())
}

func (h *InvoiceHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, services.ErrNotFound) {
		if httpx.WantsJSON(r) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		http.Error(w, "Invoice not found.", http.StatusNotFound)
		return
	}
	log.Printf("[ERROR] %s %s: %v", r.Method, r.URL.Path, err)
	httpx.JSONError(w, http.StatusInternalServerError, "render_failed", nil)
}
