package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// WriteCSV writes the Header row followed by one row per period with
// unrounded values.
func WriteCSV(w io.Writer, d Document) error {
	if d.Result == nil {
		return ErrNoResult
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	record := make([]string, len(Header))
	for _, row := range Rows(d.Result) {
		record[0] = strconv.Itoa(int(row[0]))
		for j := 1; j < len(row); j++ {
			record[j] = strconv.FormatFloat(row[j], 'f', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write period %s: %w", record[0], err)
		}
	}

	cw.Flush()
	return cw.Error()
}
