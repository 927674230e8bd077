package models

import "sort"

// Client is a billing entity, keyed by its exact name in clients.json.
type Client struct {
	Address  string `json:"address"`
	Business string `json:"business"`
	Phone    string `json:"phone"`

	// ClientID is the zero-padded four digit id assigned on first sight.
	ClientID string `json:"client_id"`
	// InvoiceCount is the sequence number of the client's latest invoice.
	InvoiceCount int `json:"invoice_count"`
}

// Clients maps client name to record.
type Clients map[string]Client

// Counter holds the last client id handed out.
type Counter struct {
	LastClientID int `json:"last_client_id"`
}

// Contact is the autofill payload for one client.
type Contact struct {
	Name     string `json:"name,omitempty"`
	Business string `json:"business,omitempty"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
}

// Directory is the client lookup used by the form: by name, and by business
// for clients that have one.
type Directory struct {
	ByName     map[string]Contact `json:"by_name"`
	ByBusiness map[string]Contact `json:"by_business"`
}

// NewDirectory builds the lookup maps. Names are visited in sorted order so
// that when two clients share a business the alphabetically last one wins.
func NewDirectory(clients Clients) Directory {
	d := Directory{
		ByName:     make(map[string]Contact, len(clients)),
		ByBusiness: make(map[string]Contact),
	}
	for _, name := range clients.Names() {
		c := clients[name]
		d.ByName[name] = Contact{Address: c.Address, Business: c.Business, Phone: c.Phone}
		if c.Business != "" {
			d.ByBusiness[c.Business] = Contact{Name: name, Address: c.Address, Phone: c.Phone}
		}
	}
	return d
}

// Names returns the client names in sorted order.
func (c Clients) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
