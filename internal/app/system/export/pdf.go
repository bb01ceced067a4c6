package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

// PDF renders the table on landscape A4 pages in a monospaced font, with a
// violet header band repeated on every page and a grey grid around each cell.
type PDF struct{}

const (
	pdfFontSize   = 7
	pdfLineHeight = 5.0
)

func (PDF) Format() Format { return FormatPDF }

func (PDF) ContentType() string { return "application/pdf" }

func (PDF) Render(w io.Writer, t Table) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetFont("Courier", "", pdfFontSize)
	pdf.SetDrawColor(0x80, 0x80, 0x80)
	pdf.SetLineWidth(0.2)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	widths := columnWidths(pdf, t)

	header := func() {
		pdf.SetFillColor(0x7c, 0x4d, 0xff)
		pdf.SetTextColor(0xff, 0xff, 0xff)
		pdf.SetFont("Courier", "B", pdfFontSize)
		for i, h := range t.Headers {
			pdf.CellFormat(widths[i], pdfLineHeight+1, tr(h), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Courier", "", pdfFontSize)
	}
	pdf.SetHeaderFunc(header)
	pdf.AddPage()

	for _, row := range t.Rows {
		for i, v := range row {
			pdf.CellFormat(widths[i], pdfLineHeight, tr(fitText(pdf, v, widths[i])), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// columnWidths shares the printable width between columns in proportion to
// their widest cell, with a floor so short columns stay legible.
func columnWidths(pdf *fpdf.Fpdf, t Table) []float64 {
	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	usable := pageW - left - right

	n := len(t.Headers)
	if n == 0 {
		return nil
	}
	want := make([]float64, n)
	total := 0.0
	for i, h := range t.Headers {
		w := pdf.GetStringWidth(h)
		for _, row := range t.Rows {
			if i < len(row) {
				w = max(w, pdf.GetStringWidth(row[i]))
			}
		}
		w = max(w+2, 12)
		want[i] = w
		total += w
	}
	if total <= usable {
		return want
	}
	scale := usable / total
	for i := range want {
		want[i] *= scale
	}
	return want
}

// fitText truncates s so it fits in a cell of width w.
func fitText(pdf *fpdf.Fpdf, s string, w float64) string {
	limit := w - 1.5
	if pdf.GetStringWidth(s) <= limit {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && pdf.GetStringWidth(string(r)+"...") > limit {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}
