// Package export writes a computed repayment schedule to spreadsheet, CSV,
// image and PDF files.
package export

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/iwvelando/loan-calculator/pkg/banks"
	"github.com/iwvelando/loan-calculator/pkg/constants"
	"github.com/iwvelando/loan-calculator/pkg/format"
	"github.com/iwvelando/loan-calculator/pkg/loans"
	"github.com/iwvelando/loan-calculator/pkg/mathutil"
	"github.com/iwvelando/loan-calculator/pkg/query"
)

var (
	// ErrNoResult is returned when there is no schedule to export.
	ErrNoResult = errors.New("no repayment schedule to export")
	// ErrUnknownFormat is returned by Lookup for unsupported formats.
	ErrUnknownFormat = errors.New("unknown export format")
)

// Header is the first row of every tabular export.
var Header = []string{"Period", "StartingBalance", "Principal", "Interest", "TotalPayment", "EndingBalance"}

// SheetName names the worksheet holding the schedule.
const SheetName = "Lich tra no"

// Title heads the image and PDF renderings.
const Title = "Kết Quả Tính Lãi Vay Ngân Hàng"

// Footer credits the tool at the bottom of the image and PDF renderings.
const Footer = "*Công cụ tính lãi suất vay ngân hàng: BankerTool.Online"

// Document is everything an exporter needs: the computed schedule plus the
// identity fields shown on it.
type Document struct {
	Input  loans.Input
	Result *loans.Result
	Meta   query.Metadata
}

// NewDocument pairs a result with its input and metadata.
func NewDocument(in loans.Input, result *loans.Result, meta query.Metadata) (Document, error) {
	if result == nil || len(result.Periods) == 0 {
		return Document{}, ErrNoResult
	}
	return Document{Input: in, Result: result, Meta: meta}, nil
}

// Rows returns one row of raw values per period, in Header order.
func Rows(result *loans.Result) [][]float64 {
	if result == nil {
		return nil
	}
	rows := make([][]float64, 0, len(result.Periods))
	for _, p := range result.Periods {
		rows = append(rows, []float64{
			float64(p.Index),
			p.StartingBalance,
			p.Principal,
			p.Interest,
			p.Payment,
			p.EndingBalance,
		})
	}
	return rows
}

// BankName is the display name of the document's bank.
func (d Document) BankName() string {
	return banks.DisplayName(d.Meta.Bank)
}

// SummaryLine is a label and a formatted value.
type SummaryLine struct {
	Label string
	Value string
}

// Summary returns the loan details and totals shown above the schedule table.
func (d Document) Summary() []SummaryLine {
	return d.summaryWith(format.VND)
}

func (d Document) summaryWith(money func(float64) string) []SummaryLine {
	return []SummaryLine{
		{"Số tiền vay", money(d.Input.Principal)},
		{"Thời hạn vay", format.Term(d.Input.TermMonths)},
		{"Lãi suất", format.Rate(d.Input.AnnualRatePercent)},
		{"Phương thức trả", d.Input.Method.DisplayName()},
		{"Tổng tiền lãi", money(d.Result.TotalInterest)},
		{"Tổng tiền phải trả", money(d.Result.TotalPayment)},
		{d.Input.Method.PaymentLabel(), money(d.Result.FirstPeriodPayment)},
	}
}

// TableHeader labels the schedule columns as displayed on the result card.
var TableHeader = []string{"Kỳ", "Dư nợ đầu kỳ", "Trả gốc", "Trả lãi", "Tổng trả", "Dư nợ còn lại"}

// IdentityLine returns "Ngân hàng: X | Banker: Y | Liên hệ: Z", omitting empty parts.
func (d Document) IdentityLine() string {
	line := "Ngân hàng: " + d.BankName()
	if d.Meta.Banker != "" {
		line += " | Banker: " + d.Meta.Banker
	}
	if d.Meta.Contact != "" {
		line += " | Liên hệ: " + d.Meta.Contact
	}
	return line
}

// FileName builds "<banker>-<bank>-<term>thang-<amount>.<ext>", e.g.
// "nguyenvana-vietinbank-12thang-500tr.xlsx".
func FileName(d Document, ext string) string {
	return fmt.Sprintf("%s-%s-%dthang-%s.%s",
		format.Slug(d.Meta.Banker),
		format.Slug(d.Meta.Bank),
		d.Input.TermMonths,
		ShortAmount(d.Input.Principal),
		ext,
	)
}

// ShortAmount abbreviates an amount for file names: billions as "ty",
// millions as "tr", thousands as "k". Zero or negative amounts give "".
func ShortAmount(amount float64) string {
	num := math.Trunc(amount)
	switch {
	case num <= 0 || !mathutil.IsFinite(num):
		return ""
	case num >= 1e9:
		return strconv.FormatFloat(math.Round(num/1e9), 'f', 0, 64) + "ty"
	case num >= 1e6:
		return strconv.FormatFloat(math.Round(num/1e6), 'f', 0, 64) + "tr"
	case num >= 1e3:
		return strconv.FormatFloat(math.Round(num/1e3), 'f', 0, 64) + "k"
	}
	return strconv.FormatFloat(num, 'f', 0, 64)
}

// Writer renders a document to w.
type Writer func(w io.Writer, d Document) error

// Format describes one export target.
type Format struct {
	Name        string
	Extension   string
	ContentType string
	Write       Writer
}

var formats = map[string]Format{
	constants.OutputFormatXLSX: {
		Name:        constants.OutputFormatXLSX,
		Extension:   "xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Write:       WriteXLSX,
	},
	constants.OutputFormatCSV: {
		Name:        constants.OutputFormatCSV,
		Extension:   "csv",
		ContentType: "text/csv; charset=utf-8",
		Write:       WriteCSV,
	},
	constants.OutputFormatPNG: {
		Name:        constants.OutputFormatPNG,
		Extension:   "png",
		ContentType: "image/png",
		Write:       WritePNG,
	},
	constants.OutputFormatPDF: {
		Name:        constants.OutputFormatPDF,
		Extension:   "pdf",
		ContentType: "application/pdf",
		Write:       WritePDF,
	},
}

// Lookup returns the export format registered under name.
func Lookup(name string) (Format, error) {
	f, ok := formats[name]
	if !ok {
		return Format{}, fmt.Errorf("%w: %s", ErrUnknownFormat, name)
	}
	return f, nil
}
