package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/iwvelando/loan-calculator/pkg/format"
	"github.com/jung-kurt/gofpdf"
)

var pdfColumnWidths = []float64{14, 36, 34, 34, 34, 36}

// WritePDF renders the same result card as WritePNG into an A4 PDF. The core
// PDF fonts are Latin-1 only, so text is folded to ASCII.
func WritePDF(w io.Writer, d Document) error {
	if d.Result == nil {
		return ErrNoResult
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(format.ASCII(Title), false)
	pdf.SetCreator("loan-calculator", false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.SetTextColor(0x1f, 0x29, 0x37)
	pdf.CellFormat(0, 10, format.ASCII(Title), "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(0x25, 0x63, 0xeb)
	pdf.CellFormat(0, 6, format.ASCII(d.IdentityLine()), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetTextColor(0x1f, 0x29, 0x37)
	for _, line := range d.summaryWith(format.VNDCode) {
		pdf.CellFormat(60, 6, format.ASCII(line.Label), "B", 0, "L", false, 0, "")
		pdf.CellFormat(60, 6, format.ASCII(line.Value), "B", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(0x25, 0x63, 0xeb)
	pdf.SetTextColor(0xff, 0xff, 0xff)
	for i, h := range TableHeader {
		pdf.CellFormat(pdfColumnWidths[i], 7, format.ASCII(h), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(0x1f, 0x29, 0x37)
	pdf.SetFillColor(0xf3, 0xf4, 0xf6)
	for i, p := range d.Result.Periods {
		fill := i%2 == 1
		cols := []string{
			strconv.Itoa(p.Index),
			format.Number(p.StartingBalance),
			format.Number(p.Principal),
			format.Number(p.Interest),
			format.Number(p.Payment),
			format.Number(p.EndingBalance),
		}
		for j, col := range cols {
			align := "R"
			if j == 0 {
				align = "C"
			}
			pdf.CellFormat(pdfColumnWidths[j], 6, col, "1", 0, align, fill, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(0x4b, 0x55, 0x63)
	pdf.CellFormat(0, 5, format.ASCII(Footer), "", 1, "L", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}
