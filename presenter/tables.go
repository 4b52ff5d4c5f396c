package presenter

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"broadcastdash/api/dataset"
	"broadcastdash/api/models"
	"broadcastdash/api/utils"
)

const highBufferingMessage = "High buffering rate detected in the following records:"

// VisitDetailsTable lists the filtered sessions in table order.
func VisitDetailsTable(records []models.SessionRecord) models.Table {
	t := models.Table{
		Title:   "Visits Details",
		Columns: []string{"IP Address", "Date", "Time", "Session Duration"},
		Rows:    make([][]string, 0, len(records)),
	}
	for _, r := range records {
		t.Rows = append(t.Rows, []string{
			r.IPAddress,
			utils.FormatDate(r.Date),
			utils.FormatTime(r.Time),
			formatMeasure(r.SessionDuration),
		})
	}
	return t
}

// HighBufferingAlert returns nil when no record crosses the threshold.
func HighBufferingAlert(records []models.SessionRecord) *models.Alert {
	if len(records) == 0 {
		return nil
	}
	t := models.Table{
		Title:   "High Buffering Rate",
		Columns: []string{"Time", "Buffering Rate", "IP Address", "Country"},
		Rows:    make([][]string, 0, len(records)),
	}
	for _, r := range records {
		t.Rows = append(t.Rows, []string{
			utils.FormatTime(r.Time),
			formatMeasure(r.BufferingRate),
			r.IPAddress,
			r.Country,
		})
	}
	return &models.Alert{Message: highBufferingMessage, Count: len(records), Table: t}
}

// PreviewTable renders an uploaded file as read, without typing.
func PreviewTable(p *dataset.Preview) models.Table {
	rows := make([][]string, 0, len(p.Rows))
	for _, row := range p.Rows {
		rows = append(rows, append([]string(nil), row...))
	}
	return models.Table{
		Title:   "Uploaded Data",
		Columns: append([]string(nil), p.Columns...),
		Rows:    rows,
	}
}

// FetchedTable renders remote records. Columns are the union of all keys in
// first-seen order; absent fields render empty.
func FetchedTable(records []models.FetchedRecord) models.Table {
	var columns []string
	seen := make(map[string]bool)
	for _, rec := range records {
		for _, k := range rec.Keys {
			if !seen[k] {
				seen[k] = true
				columns = append(columns, k)
			}
		}
	}

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		row := make([]string, len(columns))
		for i, c := range columns {
			if v, ok := rec.Values[c]; ok {
				row[i] = formatCell(v)
			}
		}
		rows = append(rows, row)
	}
	return models.Table{Title: "Fetched Data", Columns: columns, Rows: rows}
}

func formatMeasure(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	case map[string]any, []any:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(b)
	default:
		return fmt.Sprint(x)
	}
}
