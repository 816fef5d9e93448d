package extract

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSVExtractor handles CSV files, labeling each cell with its header so
// keyword classification sees the column names too.
type CSVExtractor struct{}

func (e *CSVExtractor) Extract(ctx context.Context, r io.Reader, filename string) (string, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return "", fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return "", nil
	}

	// First row is headers.
	headers := records[0]

	var out strings.Builder
	for _, row := range records[1:] {
		for j, cell := range row {
			if j < len(headers) {
				out.WriteString(headers[j] + ": " + cell)
			} else {
				out.WriteString(cell)
			}
			if j < len(row)-1 {
				out.WriteString(", ")
			}
		}
		out.WriteString("\n")
	}
	return out.String(), nil
}
