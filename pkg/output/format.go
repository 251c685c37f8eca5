// Package output provides utilities for formatting and displaying repayment schedules.
package output

import (
	"fmt"
	"io"

	"github.com/iwvelando/loan-calculator/pkg/export"
	"github.com/iwvelando/loan-calculator/pkg/format"
)

// PrettyFormat outputs a human-readable rather than machine-readable table.
// Amounts are shown in whole dong, as on the result card.
func PrettyFormat(w io.Writer, doc export.Document) error {
	if doc.Result == nil {
		return export.ErrNoResult
	}

	lines := []string{
		fmt.Sprintf("--- %s ---\n", export.Title),
		doc.IdentityLine() + "\n",
	}
	for _, line := range doc.Summary() {
		lines = append(lines, fmt.Sprintf("%-20s %s\n", line.Label+":", line.Value))
	}
	lines = append(lines,
		"\n",
		"Period | Starting Balance | Principal        | Interest         | Total Payment    | Ending Balance\n",
		"______ | ________________ | ________________ | ________________ | ________________ | ________________\n",
	)
	for _, line := range lines {
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	}

	for _, period := range doc.Result.Periods {
		if _, err := fmt.Fprintf(w, "%6d | %16s | %16s | %16s | %16s | %16s\n",
			period.Index,
			format.Number(period.StartingBalance),
			format.Number(period.Principal),
			format.Number(period.Interest),
			format.Number(period.Payment),
			format.Number(period.EndingBalance),
		); err != nil {
			return err
		}
	}
	return nil
}

// CsvFormat outputs the schedule as comma-separated values, identical to the
// csv export.
func CsvFormat(w io.Writer, doc export.Document) error {
	return export.WriteCSV(w, doc)
}
