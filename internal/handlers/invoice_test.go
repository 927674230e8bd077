package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diewo77/desk-invoicer/internal/config"
	"github.com/diewo77/desk-invoicer/internal/models"
	"github.com/diewo77/desk-invoicer/internal/pdf"
	"github.com/diewo77/desk-invoicer/internal/services"
	"github.com/diewo77/desk-invoicer/internal/store"
	"github.com/diewo77/desk-invoicer/internal/viewer"
	"github.com/diewo77/desk-invoicer/view"
)

type testApp struct {
	invoices *InvoiceHandler
	clients  *ClientHandler
	files    *store.Files
	opener   *viewer.Recorder
}

func setupHandlers(t *testing.T) testApp {
	t.Helper()
	dir := t.TempDir()
	p := config.DefaultProfile()
	p.LogoPath = ""
	files := store.NewFiles(dir)
	opener := &viewer.Recorder{}
	svc := services.NewInvoiceService(files, pdf.NewRenderer(p, filepath.Join(dir, "pdf")), opener, p)
	return testApp{
		invoices: NewInvoiceHandler(svc, p),
		clients:  NewClientHandler(svc),
		files:    files,
		opener:   opener,
	}
}

func invoiceForm(name string) url.Values {
	return url.Values{
		"client_name":     {name},
		"client_address":  {"12 Canal Bank"},
		"client_business": {"BlackZero Media"},
		"client_phone":    {"0321 0000000"},
		"paid_to":         {"Ayyan Shiraz"},
		"payment_status":  {"Partial"},
		"bank_account":    {"ayyan_meezan"},
		"qty_label":       {"Hours"},
		"paid_amount":     {"100"},
		"item_desc[]":     {"Design", "Hosting"},
		"item_qty[]":      {"2", "1"},
		"item_rate[]":     {"100", "50"},
	}
}

func postForm(h http.HandlerFunc, form url.Values, accept string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/invoices", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func TestCreateJSON(t *testing.T) {
	app := setupHandlers(t)

	w := postForm(app.invoices.Create, invoiceForm("Acme"), "application/json")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var body struct {
		InvoiceNum string `json:"invoice_num"`
		Path       string `json:"path"`
		Totals     struct {
			Subtotal     string `json:"subtotal"`
			RemainingDue string `json:"remaining_due"`
		} `json:"totals"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "0001-01", body.InvoiceNum)
	assert.Equal(t, "250", body.Totals.Subtotal)
	assert.Equal(t, "150", body.Totals.RemainingDue)
	assert.Equal(t, []string{body.Path}, app.opener.Opened)

	stored := app.files.Invoices()
	require.Len(t, stored, 1)
	assert.Equal(t, "Hours", stored[0].QtyLabel)
	assert.Equal(t, 250.0, stored[0].GrandTotal)
	assert.Equal(t, []models.LineItem{{Desc: "Design", Qty: 2, Rate: 100}, {Desc: "Hosting", Qty: 1, Rate: 50}}, stored[0].LineItems)
}

func TestCreateHTMLRedirects(t *testing.T) {
	app := setupHandlers(t)

	w := postForm(app.invoices.Create, invoiceForm("Acme"), "text/html")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestCreateBadNumbersBecomeZero(t *testing.T) {
	app := setupHandlers(t)
	form := invoiceForm("Acme")
	form.Set("paid_amount", "lots")
	form["item_qty[]"] = []string{"two"}
	form["item_rate[]"] = []string{"100", "x"}

	w := postForm(app.invoices.Create, form, "application/json")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	inv := app.files.Invoices()[0]
	assert.Zero(t, inv.PaidAmount)
	require.Len(t, inv.LineItems, 2)
	assert.Equal(t, models.LineItem{Desc: "Design", Qty: 0, Rate: 100}, inv.LineItems[0])
	assert.Equal(t, models.LineItem{Desc: "Hosting", Qty: 0, Rate: 0}, inv.LineItems[1])
}

func TestCreateRequiresClientName(t *testing.T) {
	app := setupHandlers(t)

	w := postForm(app.invoices.Create, invoiceForm("   "), "application/json")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"validation_failed"`)
	assert.Contains(t, w.Body.String(), `"client_name":"required"`)
	assert.Empty(t, app.files.Invoices())
	assert.Zero(t, app.files.Counter().LastClientID)
}

func TestNextNumber(t *testing.T) {
	app := setupHandlers(t)

	get := func(q string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		app.invoices.NextNumber(w, httptest.NewRequest(http.MethodGet, "/invoices/next-number?"+q, nil))
		return w
	}

	w := get("client_name=Acme")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"invoice_num":"0001-01"}`, w.Body.String())
	assert.JSONEq(t, `{"invoice_num":"0001-01"}`, get("client_name=Acme").Body.String())

	assert.Equal(t, http.StatusBadRequest, get("").Code)
	assert.Equal(t, http.StatusBadRequest, get("client_name=%20").Code)

	postForm(app.invoices.Create, invoiceForm("Acme"), "application/json")
	assert.JSONEq(t, `{"invoice_num":"0001-02"}`, get("client_name=Acme").Body.String())
}

func TestSearch(t *testing.T) {
	app := setupHandlers(t)
	postForm(app.invoices.Create, invoiceForm("Acme"), "application/json")
	other := invoiceForm("Zenith")
	other.Set("client_business", "Salon")
	postForm(app.invoices.Create, other, "application/json")

	search := func(q string) []models.Invoice {
		w := httptest.NewRecorder()
		app.invoices.Search(w, httptest.NewRequest(http.MethodGet, "/invoices/search?query="+url.QueryEscape(q), nil))
		require.Equal(t, http.StatusOK, w.Code)
		var out []models.Invoice
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		return out
	}

	got := search("BLACK")
	require.Len(t, got, 1)
	assert.Equal(t, "Acme", got[0].ClientName)

	got = search("-01")
	require.Len(t, got, 2)
	assert.Equal(t, "Zenith", got[0].ClientName, "newest first")

	w := httptest.NewRecorder()
	app.invoices.Search(w, httptest.NewRequest(http.MethodGet, "/invoices/search", nil))
	assert.Equal(t, "[]", w.Body.String())
}

func TestOpen(t *testing.T) {
	app := setupHandlers(t)
	postForm(app.invoices.Create, invoiceForm("Acme"), "application/json")

	req := httptest.NewRequest(http.MethodGet, "/invoices/0001-01/open", nil)
	req.SetPathValue("num", "0001-01")
	w := httptest.NewRecorder()
	app.invoices.Open(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Opening PDF")
	assert.Len(t, app.opener.Opened, 2)
}

func TestOpenNotFound(t *testing.T) {
	app := setupHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/invoices/0042-01/open", nil)
	req.SetPathValue("num", "0042-01")
	w := httptest.NewRecorder()
	app.invoices.Open(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	req.Header.Set("Accept", "application/json")
	w = httptest.NewRecorder()
	app.invoices.Open(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"not_found"}`, w.Body.String())
}

func TestPDFDownload(t *testing.T) {
	app := setupHandlers(t)
	postForm(app.invoices.Create, invoiceForm("Acme"), "application/json")

	req := httptest.NewRequest(http.MethodGet, "/invoices/0001-01/pdf", nil)
	req.SetPathValue("num", "0001-01")
	w := httptest.NewRecorder()
	app.invoices.PDF(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "invoice_0001-01.pdf")
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF-"))
}

func TestClientDirectory(t *testing.T) {
	app := setupHandlers(t)
	postForm(app.invoices.Create, invoiceForm("Acme"), "application/json")

	w := httptest.NewRecorder()
	app.clients.Directory(w, httptest.NewRequest(http.MethodGet, "/clients", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var d models.Directory
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &d))
	assert.Equal(t, "12 Canal Bank", d.ByName["Acme"].Address)
	assert.Equal(t, "Acme", d.ByBusiness["BlackZero Media"].Name)
}

func TestIndex(t *testing.T) {
	if _, err := os.Stat("../../templates/index.html"); err != nil {
		t.Skip("templates not available")
	}
	view.ResetForTests()
	view.SetBaseDir("../../templates")
	t.Cleanup(view.ResetForTests)

	app := setupHandlers(t)
	postForm(app.invoices.Create, invoiceForm("Acme"), "application/json")

	w := httptest.NewRecorder()
	app.invoices.Index(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "BLACK ZERO")
	assert.Contains(t, body, "ayyan_meezan")
	assert.Contains(t, body, `"Acme"`)
}
