// Command render_index renders templates/index.html with sample data and
// prints the result, to check the form page without starting the server.
package main

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"os"

	"github.com/diewo77/desk-invoicer/internal/config"
	"github.com/diewo77/desk-invoicer/internal/models"
	"github.com/diewo77/desk-invoicer/view"
)

func main() {
	path := "templates/index.html"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	if err := render(os.Stdout, path); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

func render(w io.Writer, path string) error {
	parsed, err := template.New("index.html").Funcs(view.Funcs()).ParseFiles(path)
	if err != nil {
		return fmt.Errorf("parse error: %w", err)
	}

	p := config.DefaultProfile()
	data := map[string]any{
		"Company": p.CompanyName,
		"Directory": models.NewDirectory(models.Clients{
			"Sample Client": {Address: "1 Sample Road", Business: "Sample Co", Phone: "000", ClientID: "0001", InvoiceCount: 1},
		}),
		"BankAccounts":   p.BankAccounts,
		"BankKeys":       p.BankKeys(),
		"DefaultBank":    p.DefaultBank,
		"Contacts":       p.ContactKeys(),
		"DefaultContact": p.DefaultContact,
		"QtyLabel":       models.DefaultQtyLabel,
	}

	var buf bytes.Buffer
	if err := parsed.Execute(&buf, data); err != nil {
		return fmt.Errorf("exec error: %w", err)
	}
	_, err = w.Write(buf.Bytes())
	return err
}
