package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"broadcastdash/api/models"
	"broadcastdash/api/utils"
)

// Column headers of the session CSV. Matching is case-sensitive.
const (
	ColDate            = "Date"
	ColTime            = "Time"
	ColCountry         = "Country"
	ColEvent           = "Event"
	ColUserID          = "UserID"
	ColDevice          = "Device"
	ColUserAgent       = "User Agent"
	ColSessionDuration = "Session Duration"
	ColBufferingRate   = "Buffering Rate"
	ColResolution      = "Resolution"
	ColIPAddress       = "IP Address"
)

// Columns is the required header set in export order.
var Columns = []string{
	ColDate, ColTime, ColCountry, ColEvent, ColUserID, ColDevice,
	ColUserAgent, ColSessionDuration, ColBufferingRate, ColResolution, ColIPAddress,
}

// ErrMalformedDataset matches every load failure caused by the data itself.
var ErrMalformedDataset = errors.New("malformed dataset")

// MalformedDatasetError locates a load failure. Row is 1-based over data rows
// and zero for header problems.
type MalformedDatasetError struct {
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *MalformedDatasetError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("malformed dataset: column %q: %v", e.Column, e.Err)
	}
	return fmt.Sprintf("malformed dataset: row %d, column %q, value %q: %v", e.Row, e.Column, e.Value, e.Err)
}

func (e *MalformedDatasetError) Is(target error) bool { return target == ErrMalformedDataset }

func (e *MalformedDatasetError) Unwrap() error { return e.Err }

// LoadCSV reads a session CSV into a Table. There is no partial recovery:
// the first bad header or cell aborts the load.
func LoadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, &MalformedDatasetError{Column: "header", Err: fmt.Errorf("failed to read CSV headers: %w", err)}
	}

	index := make(map[string]int, len(headers))
	for i, h := range headers {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}
	for _, col := range Columns {
		if _, ok := index[col]; !ok {
			return nil, &MalformedDatasetError{Column: col, Err: errors.New("required column missing")}
		}
	}

	var records []models.SessionRecord
	for row := 1; ; row++ {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &MalformedDatasetError{Row: row, Err: err}
		}

		cell := func(col string) string {
			i := index[col]
			if i >= len(fields) {
				return ""
			}
			return strings.TrimSpace(fields[i])
		}

		rec, err := parseRecord(row, cell)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return NewTable(records), nil
}

func parseRecord(row int, cell func(string) string) (models.SessionRecord, error) {
	malformed := func(col string, err error) error {
		return &MalformedDatasetError{Row: row, Column: col, Value: cell(col), Err: err}
	}

	date, err := utils.ParseDate(cell(ColDate))
	if err != nil {
		return models.SessionRecord{}, malformed(ColDate, err)
	}
	clock, err := utils.ParseTime(cell(ColTime))
	if err != nil {
		return models.SessionRecord{}, malformed(ColTime, err)
	}
	duration, err := parseMeasure(cell(ColSessionDuration))
	if err != nil {
		return models.SessionRecord{}, malformed(ColSessionDuration, err)
	}
	buffering, err := parseMeasure(cell(ColBufferingRate))
	if err != nil {
		return models.SessionRecord{}, malformed(ColBufferingRate, err)
	}

	userID := cell(ColUserID)
	return models.SessionRecord{
		Date:            date,
		Time:            clock,
		Country:         cell(ColCountry),
		Event:           cell(ColEvent),
		UserID:          userID,
		UserWeight:      userWeight(userID),
		Device:          cell(ColDevice),
		UserAgent:       cell(ColUserAgent),
		SessionDuration: duration,
		BufferingRate:   buffering,
		Resolution:      cell(ColResolution),
		IPAddress:       cell(ColIPAddress),
	}, nil
}

// parseMeasure reads a numeric cell; an empty cell is a missing value (NaN).
func parseMeasure(value string) (float64, error) {
	if value == "" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(value, 64)
}

// userWeight is what a row contributes when user IDs are summed.
// Numeric IDs contribute their value, other non-empty IDs count once.
func userWeight(id string) float64 {
	if id == "" {
		return 0
	}
	if f, err := strconv.ParseFloat(id, 64); err == nil && !math.IsNaN(f) {
		return f
	}
	return 1
}

// ParseRow types one row of text cells given in Columns order, applying the
// same rules as LoadCSV. Database sources select every column as text and
// feed the result through here.
func ParseRow(row int, values []string) (models.SessionRecord, error) {
	if len(values) != len(Columns) {
		return models.SessionRecord{}, &MalformedDatasetError{
			Row: row,
			Err: fmt.Errorf("expected %d columns, got %d", len(Columns), len(values)),
		}
	}
	byName := make(map[string]string, len(Columns))
	for i, col := range Columns {
		byName[col] = strings.TrimSpace(values[i])
	}
	return parseRecord(row, func(col string) string { return byName[col] })
}
