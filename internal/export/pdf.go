package export

import (
	"bytes"

	"github.com/go-pdf/fpdf"
)

// Column widths in millimetres; sums to the A4 printable width.
var pdfWidths = []float64{40, 35, 20, 95}

// renderPDF uses the core Helvetica font, so text outside Windows-1252
// (Cyrillic, CJK, ...) is not representable. CSV and XLSX carry it fine.
func renderPDF(rows [][]string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Blood Pressure Diary", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 12, "Blood Pressure Diary", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetFillColor(173, 216, 230)
	for i, h := range header {
		pdf.CellFormat(pdfWidths[i], 9, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetFillColor(245, 245, 220)
	for _, r := range rows {
		for i, v := range r {
			pdf.CellFormat(pdfWidths[i], 8, tr(v), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
