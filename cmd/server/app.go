package main

import (
	"net/http"

	"github.com/diewo77/desk-invoicer/httpx"
	"github.com/diewo77/desk-invoicer/internal/config"
	"github.com/diewo77/desk-invoicer/internal/handlers"
	"github.com/diewo77/desk-invoicer/internal/pdf"
	"github.com/diewo77/desk-invoicer/internal/services"
	"github.com/diewo77/desk-invoicer/internal/store"
	"github.com/diewo77/desk-invoicer/internal/viewer"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux *http.ServeMux

	Invoices *services.InvoiceService

	clientHandler  *handlers.ClientHandler
	invoiceHandler *handlers.InvoiceHandler
}

// NewApp wires storage, rendering and handlers for one data directory.
// pdfViewer receives every rendered invoice path.
func NewApp(cfg *config.Config, profile config.Profile, pdfViewer viewer.Opener) *App {
	files := store.NewFiles(cfg.Storage.DataDir)
	renderer := pdf.NewRenderer(profile, cfg.Storage.OutputDir)
	svc := services.NewInvoiceService(files, renderer, pdfViewer, profile)

	app := &App{
		mux:            http.NewServeMux(),
		Invoices:       svc,
		clientHandler:  handlers.NewClientHandler(svc),
		invoiceHandler: handlers.NewInvoiceHandler(svc, profile),
	}
	app.setupRoutes()
	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	withRecover(a.mux).ServeHTTP(w, r)
}

// setupRoutes configures all application routes.
func (a *App) setupRoutes() {
	ih := a.invoiceHandler

	a.mux.HandleFunc("GET /{$}", ih.Index)
	a.mux.HandleFunc("GET /health", a.health)
	a.mux.HandleFunc("GET /clients", a.clientHandler.Directory)

	a.mux.HandleFunc("GET /invoices/next-number", ih.NextNumber)
	a.mux.HandleFunc("POST /invoices", ih.Create)
	a.mux.HandleFunc("GET /invoices/search", ih.Search)
	a.mux.HandleFunc("GET /invoices/{num}/open", ih.Open)
	a.mux.HandleFunc("GET /invoices/{num}/pdf", ih.PDF)
}

func (a *App) health(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
