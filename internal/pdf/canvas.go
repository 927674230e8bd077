package pdf

import (
	"github.com/jung-kurt/gofpdf"
)

const fontFamily = "Arial"

// canvas wraps a gofpdf document with the font family used throughout and
// the UTF-8 to cp1252 translation the core fonts need.
type canvas struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func newCanvas() *canvas {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(false, 0)
	return &canvas{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

func (c *canvas) font(style string, size float64) {
	c.pdf.SetFont(fontFamily, style, size)
}

func (c *canvas) cell(w, h float64, txt, border string, ln int, align string, fill bool) {
	c.pdf.CellFormat(w, h, c.tr(txt), border, ln, align, fill, 0, "")
}

func (c *canvas) multi(w, h float64, txt, align string, fill bool) {
	c.pdf.MultiCell(w, h, c.tr(txt), "0", align, fill)
}

// lineCount is the number of lines txt wraps to at width w in the current font.
func (c *canvas) lineCount(txt string, w float64) int {
	n := len(c.pdf.SplitLines([]byte(c.tr(txt)), w))
	if n == 0 {
		return 1
	}
	return n
}
