package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Preview is an uploaded CSV shown as-is. It never joins the analytic pipeline.
type Preview struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// ParsePreview reads any CSV with a header row. Short rows are padded and
// long rows truncated to the header width.
func ParsePreview(r io.Reader) (*Preview, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("uploaded file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(strings.TrimPrefix(headers[i], "\ufeff"))
	}

	preview := &Preview{Columns: headers, Rows: [][]string{}}
	for line := 2; ; line++ {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}
		row := make([]string, len(headers))
		copy(row, fields)
		preview.Rows = append(preview.Rows, row)
	}
	return preview, nil
}
