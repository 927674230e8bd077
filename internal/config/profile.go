package config

import (
	"fmt"
	"maps"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// BankAccount is one payee account that can be printed in the footer.
type BankAccount struct {
	Name   string `yaml:"name" json:"name"`
	Bank   string `yaml:"bank" json:"bank"`
	Number string `yaml:"number" json:"number"`
}

// Profile is the issuing company as printed on every invoice.
// It is loaded once at start and handed to the renderer by value.
type Profile struct {
	CompanyName  string   `yaml:"company_name"`
	Subtitle     string   `yaml:"subtitle"`
	AddressLines []string `yaml:"address_lines"`
	LogoPath     string   `yaml:"logo_path"`
	Terms        string   `yaml:"terms"`
	TaxRate      float64  `yaml:"tax_rate"`

	BankAccounts map[string]BankAccount `yaml:"bank_accounts"`
	DefaultBank  string                 `yaml:"default_bank"`

	// Contacts maps a "paid to" key to the line shown in the footer bar.
	Contacts       map[string]string `yaml:"contacts"`
	DefaultContact string            `yaml:"default_contact"`
}

// DefaultProfile returns the built-in company profile.
func DefaultProfile() Profile {
	return Profile{
		CompanyName: "BLACK ZERO",
		Subtitle:    "Marketing and IT Solutions Company",
		AddressLines: []string{
			"50-52, E - III, Al Fateh Ln.",
			"Commercial Area Gulberg III, Lahore.",
		},
		LogoPath: "templates/logo.png",
		Terms: "50% advance payment is required to commence the project. " +
			"The remaining 50% is due upon project completion, prior to final delivery. " +
			"This is not refundable after 24 hours.",
		TaxRate: 0,
		BankAccounts: map[string]BankAccount{
			"hashim_mcb":       {Name: "M Hashim Haroon", Bank: "MCB BANK", Number: "1570096861011575"},
			"ayyan_meezan":     {Name: "Ayyan Shiraz", Bank: "Meezan Bank", Number: "0256-0107101539"},
			"blackzero_faysal": {Name: "Black Zero", Bank: "Faysal Bank", Number: "3424301000004754"},
		},
		DefaultBank: "hashim_mcb",
		Contacts: map[string]string{
			"Main Hashim Haroon": "M Hashim Haroon | CEO | +92 324 4333267 | info@blackzero.org | www.blackzero.org",
			"Ayyan Shiraz":       "Ayyan Shiraz | Marketing and IT Manager | +92 333 4888324 | marketinghead@blackzero.org | www.blackzero.org",
		},
		DefaultContact: "Main Hashim Haroon",
	}
}

// LoadProfile returns the default profile overlaid with the YAML document at
// path. An empty path returns the default unchanged. Map entries in the file
// are added to, or replace, the built-in ones.
func LoadProfile(path string) (Profile, error) {
	p := DefaultProfile()
	if path == "" {
		return p, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("read company profile: %w", err)
	}
	if err := yaml.Unmarshal(b, &p); err != nil {
		return DefaultProfile(), fmt.Errorf("parse company profile %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return DefaultProfile(), fmt.Errorf("company profile %s: %w", path, err)
	}
	return p, nil
}

// Validate checks that the fallback keys resolve.
func (p Profile) Validate() error {
	if _, ok := p.BankAccounts[p.DefaultBank]; !ok {
		return fmt.Errorf("default_bank %q is not a bank account", p.DefaultBank)
	}
	if _, ok := p.Contacts[p.DefaultContact]; !ok {
		return fmt.Errorf("default_contact %q is not a contact", p.DefaultContact)
	}
	if p.TaxRate < 0 {
		return fmt.Errorf("tax_rate %v is negative", p.TaxRate)
	}
	return nil
}

// Clone returns a deep copy so callers cannot share maps.
func (p Profile) Clone() Profile {
	p.AddressLines = slices.Clone(p.AddressLines)
	p.BankAccounts = maps.Clone(p.BankAccounts)
	p.Contacts = maps.Clone(p.Contacts)
	return p
}

// Bank returns the account for key, or the default account.
func (p Profile) Bank(key string) BankAccount {
	if acct, ok := p.BankAccounts[key]; ok {
		return acct
	}
	return p.BankAccounts[p.DefaultBank]
}

// ContactLine returns the footer line for a "paid to" key, or the default one.
func (p Profile) ContactLine(key string) string {
	if line, ok := p.Contacts[key]; ok {
		return line
	}
	return p.Contacts[p.DefaultContact]
}

// BankKeys returns the account keys in sorted order.
func (p Profile) BankKeys() []string {
	return slices.Sorted(maps.Keys(p.BankAccounts))
}

// ContactKeys returns the contact keys in sorted order.
func (p Profile) ContactKeys() []string {
	return slices.Sorted(maps.Keys(p.Contacts))
}
