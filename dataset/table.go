// Package dataset loads streaming session records into an immutable base table
// and serialises record sets back to CSV.
package dataset

import (
	"time"

	"broadcastdash/api/models"
)

// Table is the base table. It is read-only after construction and safe to
// share between concurrent render passes.
type Table struct {
	records   []models.SessionRecord
	minDate   time.Time
	maxDate   time.Time
	countries []string
	events    []string
}

// NewTable copies records into a new Table and indexes its selector values.
func NewTable(records []models.SessionRecord) *Table {
	t := &Table{records: make([]models.SessionRecord, len(records))}
	copy(t.records, records)

	seenCountry := make(map[string]bool)
	seenEvent := make(map[string]bool)
	for i, r := range t.records {
		if i == 0 || r.Date.Before(t.minDate) {
			t.minDate = r.Date
		}
		if i == 0 || r.Date.After(t.maxDate) {
			t.maxDate = r.Date
		}
		if r.Country != "" && !seenCountry[r.Country] {
			seenCountry[r.Country] = true
			t.countries = append(t.countries, r.Country)
		}
		if r.Event != "" && !seenEvent[r.Event] {
			seenEvent[r.Event] = true
			t.events = append(t.events, r.Event)
		}
	}
	return t
}

func (t *Table) Len() int { return len(t.records) }

// Record returns the i-th row by value.
func (t *Table) Record(i int) models.SessionRecord { return t.records[i] }

// Records returns a copy of every row.
func (t *Table) Records() []models.SessionRecord {
	out := make([]models.SessionRecord, len(t.records))
	copy(out, t.records)
	return out
}

// MinDate and MaxDate are zero for an empty table.
func (t *Table) MinDate() time.Time { return t.minDate }
func (t *Table) MaxDate() time.Time { return t.maxDate }

// Countries lists distinct non-empty countries in first-seen order.
func (t *Table) Countries() []string { return append([]string(nil), t.countries...) }

// Events lists distinct non-empty events in first-seen order.
func (t *Table) Events() []string { return append([]string(nil), t.events...) }
