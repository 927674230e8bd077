package handlers

import (
	"net/http"

	"github.com/diewo77/desk-invoicer/httpx"
	"github.com/diewo77/desk-invoicer/internal/services"
)

type ClientHandler struct {
	svc *services.InvoiceService
}

func NewClientHandler(svc *services.InvoiceService) *ClientHandler {
	return &ClientHandler{svc: svc}
}

// Directory: GET /clients – autofill data by name and by business
func (h *ClientHandler) Directory(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.svc.Directory())
}
