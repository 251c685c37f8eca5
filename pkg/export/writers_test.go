package export

import (
	"bytes"
	"encoding/csv"
	"image/png"
	"strconv"
	"strings"
	"testing"

	"github.com/iwvelando/loan-calculator/pkg/loans"
	"github.com/iwvelando/loan-calculator/pkg/testutil"
	"github.com/xuri/excelize/v2"
)

func TestWriteXLSX(t *testing.T) {
	doc := referenceDocument(t, loans.EqualInstallment)

	var buf bytes.Buffer
	if err := WriteXLSX(&buf, doc); err != nil {
		t.Fatalf("WriteXLSX() error = %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()

	if sheets := f.GetSheetList(); len(sheets) != 1 || sheets[0] != SheetName {
		t.Fatalf("sheets = %v, want [%s]", sheets, SheetName)
	}

	rows, err := f.GetRows(SheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 13 {
		t.Fatalf("len(rows) = %d, want 13", len(rows))
	}
	for i, h := range Header {
		if rows[0][i] != h {
			t.Errorf("header[%d] = %q, want %q", i, rows[0][i], h)
		}
	}
	if rows[1][0] != "1" || rows[12][0] != "12" {
		t.Errorf("period column = %q..%q", rows[1][0], rows[12][0])
	}

	payment, err := strconv.ParseFloat(rows[1][4], 64)
	if err != nil {
		t.Fatalf("payment cell %q: %v", rows[1][4], err)
	}
	testutil.AssertNear(t, "payment cell", payment, 43957943.62, 0.01)
}

func TestWriteCSV(t *testing.T) {
	doc := referenceDocument(t, loans.EqualPrincipal)

	var buf bytes.Buffer
	if err := WriteCSV(&buf, doc); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(records) != 13 {
		t.Fatalf("len(records) = %d, want 13", len(records))
	}
	if strings.Join(records[0], ",") != strings.Join(Header, ",") {
		t.Errorf("header = %v", records[0])
	}

	principal, err := strconv.ParseFloat(records[12][2], 64)
	if err != nil {
		t.Fatalf("principal %q: %v", records[12][2], err)
	}
	testutil.AssertNear(t, "final principal", principal, 41666666.67, 0.01)
}

func TestWritePNG(t *testing.T) {
	doc := referenceDocument(t, loans.EqualInstallment)

	var buf bytes.Buffer
	if err := WritePNG(&buf, doc); err != nil {
		t.Fatalf("WritePNG() error = %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != imageWidth {
		t.Errorf("width = %d, want %d", bounds.Dx(), imageWidth)
	}
	if bounds.Dy() <= len(doc.Result.Periods)*lineHeight {
		t.Errorf("height = %d is too short for %d periods", bounds.Dy(), len(doc.Result.Periods))
	}

	r, g, b, _ := img.At(0, 0).RGBA()
	if r != 0xffff || g != 0xffff || b != 0xffff {
		t.Errorf("background = (%d,%d,%d), want white", r, g, b)
	}
}

func TestWritePDF(t *testing.T) {
	doc := referenceDocument(t, loans.EqualPrincipal)

	var buf bytes.Buffer
	if err := WritePDF(&buf, doc); err != nil {
		t.Fatalf("WritePDF() error = %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("output of %d bytes does not start with a PDF header", buf.Len())
	}
}

func TestWritePDFLongSchedule(t *testing.T) {
	in := testutil.ReferenceLoan(loans.EqualInstallment)
	in.TermMonths = 360
	doc, err := NewDocument(in, loans.Compute(in), testutil.ReferenceParams().Metadata())
	if err != nil {
		t.Fatalf("NewDocument() error = %v", err)
	}

	var buf bytes.Buffer
	if err := WritePDF(&buf, doc); err != nil {
		t.Fatalf("WritePDF() error = %v", err)
	}
	if buf.Len() == 0 {
		t.Error("WritePDF() wrote nothing")
	}
}
