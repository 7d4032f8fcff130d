package document

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"mfgtwin/pkg/core/extract"
)

// LinesFromCSV reads a two-or-more-column CSV where the first column is the
// line item label and the last non-empty column its value. Rows without both
// are skipped; unknown labels pass through and the extractor ignores them.
func LinesFromCSV(data []byte) ([]extract.Line, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var lines []extract.Line
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("document: csv read: %w", err)
		}
		if len(record) < 2 {
			continue
		}

		label := strings.TrimSpace(record[0])
		value := ""
		for i := len(record) - 1; i >= 1; i-- {
			if v := strings.TrimSpace(record[i]); v != "" {
				value = v
				break
			}
		}
		if label == "" || value == "" {
			continue
		}
		lines = append(lines, extract.Line{Label: label, RawValue: value})
	}
	return lines, nil
}
