package store

import (
	"log"
	"path/filepath"

	"github.com/diewo77/desk-invoicer/internal/models"
)

// File names inside the data directory.
const (
	ClientsFile  = "clients.json"
	CounterFile  = "invoice_counter.json"
	InvoicesFile = "invoices.json"
)

// Files gives typed access to the three documents of a data directory.
// Read problems are logged and answered with the empty default.
type Files struct {
	dir string
}

// NewFiles binds the documents in dir.
func NewFiles(dir string) *Files {
	return &Files{dir: dir}
}

// Dir returns the data directory.
func (f *Files) Dir() string { return f.dir }

// Path returns the full path of a document name.
func (f *Files) Path(name string) string {
	return filepath.Join(f.dir, name)
}

// Clients loads clients.json.
func (f *Files) Clients() models.Clients {
	clients, err := Load(f.Path(ClientsFile), models.Clients{})
	warn(err)
	if clients == nil {
		clients = models.Clients{}
	}
	return clients
}

// SaveClients overwrites clients.json.
func (f *Files) SaveClients(clients models.Clients) error {
	return Save(f.Path(ClientsFile), clients)
}

// Counter loads invoice_counter.json.
func (f *Files) Counter() models.Counter {
	counter, err := Load(f.Path(CounterFile), models.Counter{})
	warn(err)
	return counter
}

// SaveCounter overwrites invoice_counter.json.
func (f *Files) SaveCounter(counter models.Counter) error {
	return Save(f.Path(CounterFile), counter)
}

// Invoices loads invoices.json in insertion order.
func (f *Files) Invoices() []models.Invoice {
	invoices, err := Load(f.Path(InvoicesFile), []models.Invoice{})
	warn(err)
	return invoices
}

// AppendInvoice adds inv at the end of invoices.json.
func (f *Files) AppendInvoice(inv models.Invoice) error {
	invoices := f.Invoices()
	invoices = append(invoices, inv)
	return Save(f.Path(InvoicesFile), invoices)
}

func warn(err error) {
	if err != nil {
		log.Printf("[WARN] using default data: %v", err)
	}
}
