package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"HOST", "PORT", "DATA_DIR", "OUTPUT_DIR", "OPEN_VIEWER", "OPEN_BROWSER", "DEV", "COMPANY_PROFILE"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, "127.0.0.1:5055", cfg.Server.Addr())
	assert.Equal(t, "http://127.0.0.1:5055/", cfg.Server.URL())
	assert.Equal(t, 15, cfg.Server.ReadTimeout)
	assert.Equal(t, DefaultDataDir(), cfg.Storage.DataDir)
	assert.Equal(t, filepath.Join(cfg.Storage.DataDir, "pdf"), cfg.Storage.OutputDir)
	assert.True(t, cfg.App.OpenViewer)
	assert.True(t, cfg.App.OpenBrowser)
	assert.False(t, cfg.App.Dev)
}

func TestLoad_Env(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOST", "0.0.0.0")
	t.Setenv("PORT", "8080")
	t.Setenv("DATA_DIR", dir)
	t.Setenv("OUTPUT_DIR", "")
	t.Setenv("OPEN_VIEWER", "no")
	t.Setenv("DEV", "TRUE")
	t.Setenv("SERVER_READ_TIMEOUT", "bogus")

	cfg := Load()
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, "http://localhost:8080/", cfg.Server.URL())
	assert.Equal(t, 15, cfg.Server.ReadTimeout)
	assert.Equal(t, dir, cfg.Storage.DataDir)
	assert.Equal(t, filepath.Join(dir, "pdf"), cfg.Storage.OutputDir)
	assert.False(t, cfg.App.OpenViewer)
	assert.True(t, cfg.App.Dev)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	assert.Equal(t, filepath.Join(home, "invoices"), expandHome("~/invoices"))
	assert.Equal(t, "/tmp/x", expandHome("/tmp/x"))
}

func TestDefaultProfile(t *testing.T) {
	p := DefaultProfile()
	require.NoError(t, p.Validate())
	assert.Equal(t, []string{"ayyan_meezan", "blackzero_faysal", "hashim_mcb"}, p.BankKeys())
	assert.Equal(t, "MCB BANK", p.Bank("no_such_bank").Bank)
	assert.Contains(t, p.ContactLine("stranger"), "M Hashim Haroon | CEO")
	assert.Contains(t, p.ContactLine("Ayyan Shiraz"), "Marketing and IT Manager")
}

func TestLoadProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "company.yaml")
	doc := `
company_name: Northwind
tax_rate: 0.16
address_lines: ["1 Harbour St", "Karachi"]
bank_accounts:
  northwind_hbl:
    name: Northwind Ltd
    bank: HBL
    number: "0001-22"
default_bank: northwind_hbl
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	p, err := LoadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, "Northwind", p.CompanyName)
	assert.Equal(t, 0.16, p.TaxRate)
	assert.Equal(t, []string{"1 Harbour St", "Karachi"}, p.AddressLines)
	assert.Equal(t, "HBL", p.Bank("unknown").Bank)
	assert.Contains(t, p.BankAccounts, "hashim_mcb", "built-in accounts are kept")
	assert.Equal(t, DefaultProfile().Subtitle, p.Subtitle)
}

func TestLoadProfile_Invalid(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		doc  string
	}{
		{"bad yaml", "company_name: [unclosed"},
		{"unknown default bank", "default_bank: nowhere"},
		{"negative tax", "tax_rate: -0.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.doc), 0o644))

			p, err := LoadProfile(path)
			assert.Error(t, err)
			assert.Equal(t, DefaultProfile().CompanyName, p.CompanyName)
		})
	}

	_, err := LoadProfile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestProfileClone(t *testing.T) {
	p := DefaultProfile()
	c := p.Clone()
	c.BankAccounts["extra"] = BankAccount{Name: "x"}
	c.AddressLines[0] = "changed"

	assert.NotContains(t, p.BankAccounts, "extra")
	assert.NotEqual(t, "changed", p.AddressLines[0])
}
