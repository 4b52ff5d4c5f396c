package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"broadcastdash/api/models"
	"broadcastdash/api/utils"
)

// WriteCSV serialises records with a header row in the loader's column order.
// LoadCSV reads the output back to the same rows.
func WriteCSV(w io.Writer, records []models.SessionRecord) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for i, r := range records {
		row := []string{
			utils.FormatDate(r.Date),
			utils.FormatTime(r.Time),
			r.Country,
			r.Event,
			r.UserID,
			r.Device,
			r.UserAgent,
			formatMeasure(r.SessionDuration),
			formatMeasure(r.BufferingRate),
			r.Resolution,
			r.IPAddress,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i+1, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatMeasure(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
