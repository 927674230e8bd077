// Package numbering assigns client ids and per-client invoice numbers.
//
// An invoice number is "CCCC-NN": the client's four digit id and the client's
// invoice sequence, starting at 01. Preview and Commit compute the same value;
// only Commit writes it back, so previews of a new name do not reserve an id.
//
// Nothing here is safe for concurrent use across processes: the read, the
// increment and the write are separate file operations.
package numbering

import (
	"errors"
	"fmt"
	"strings"

	"github.com/diewo77/desk-invoicer/internal/models"
)

// Store is the persistence the Numberer needs.
type Store interface {
	Clients() models.Clients
	SaveClients(models.Clients) error
	Counter() models.Counter
	SaveCounter(models.Counter) error
}

// Assignment is the outcome of numbering one invoice.
type Assignment struct {
	ClientName   string
	ClientID     string
	InvoiceCount int
	Number       string
	NewClient    bool
}

// Format builds an invoice number from a client id and sequence.
func Format(clientID string, count int) string {
	return fmt.Sprintf("%s-%02d", clientID, count)
}

// FormatClientID zero-pads a numeric client id to four digits.
func FormatClientID(id int) string {
	return fmt.Sprintf("%04d", id)
}

// Next computes the assignment for name without side effects.
// Lookup is exact and case-sensitive after trimming surrounding space.
func Next(name string, clients models.Clients, counter models.Counter) Assignment {
	name = strings.TrimSpace(name)
	a := Assignment{ClientName: name}
	if c, ok := clients[name]; ok {
		a.ClientID = c.ClientID
		if a.ClientID == "" {
			a.ClientID = FormatClientID(0)
		}
		a.InvoiceCount = c.InvoiceCount + 1
	} else {
		a.ClientID = FormatClientID(counter.LastClientID + 1)
		a.InvoiceCount = 1
		a.NewClient = true
	}
	a.Number = Format(a.ClientID, a.InvoiceCount)
	return a
}

// Details are the client fields refreshed on every commit.
type Details struct {
	Address  string
	Business string
	Phone    string
}

// Numberer reads and advances the numbering state held in a Store.
type Numberer struct {
	store Store
}

// New returns a Numberer backed by s.
func New(s Store) *Numberer {
	return &Numberer{store: s}
}

// Preview returns the number the next invoice for name would get.
// It never writes.
func (n *Numberer) Preview(name string) string {
	return Next(name, n.store.Clients(), n.store.Counter()).Number
}

// Commit assigns the next number for name and persists it: the counter is
// advanced for a new client and the client record is upserted with the
// supplied details and the new invoice count.
//
// A write failure is returned after the assignment has been computed; the
// caller decides whether to continue with a possibly unsaved number.
func (n *Numberer) Commit(name string, d Details) (Assignment, error) {
	clients := n.store.Clients()
	counter := n.store.Counter()
	a := Next(name, clients, counter)

	var errs []error
	if a.NewClient {
		counter.LastClientID++
		if err := n.store.SaveCounter(counter); err != nil {
			errs = append(errs, err)
		}
	}
	clients[a.ClientName] = models.Client{
		Address:      d.Address,
		Business:     d.Business,
		Phone:        d.Phone,
		ClientID:     a.ClientID,
		InvoiceCount: a.InvoiceCount,
	}
	if err := n.store.SaveClients(clients); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return a, fmt.Errorf("commit %s: %w", a.Number, errors.Join(errs...))
	}
	return a, nil
}
