// Package engine filters the base table and computes the dashboard aggregates.
// Every function here is pure: inputs are read, never modified.
package engine

import (
	"broadcastdash/api/dataset"
	"broadcastdash/api/models"
)

// View is a subset of the base table held as row indices into it.
// No rows are copied and the table is never written through a View.
type View struct {
	table   *dataset.Table
	indices []int
}

// All returns the unfiltered view over table.
func All(table *dataset.Table) View {
	indices := make([]int, table.Len())
	for i := range indices {
		indices[i] = i
	}
	return View{table: table, indices: indices}
}

func newView(table *dataset.Table, indices []int) View {
	return View{table: table, indices: indices}
}

func (v View) Len() int { return len(v.indices) }

// Record returns the i-th row of the view.
func (v View) Record(i int) models.SessionRecord {
	return v.table.Record(v.indices[i])
}

// Records copies the view's rows out in table order.
func (v View) Records() []models.SessionRecord {
	out := make([]models.SessionRecord, len(v.indices))
	for i, idx := range v.indices {
		out[i] = v.table.Record(idx)
	}
	return out
}

// where narrows the view to rows matching keep.
func (v View) where(keep func(models.SessionRecord) bool) View {
	indices := make([]int, 0, len(v.indices))
	for _, idx := range v.indices {
		if keep(v.table.Record(idx)) {
			indices = append(indices, idx)
		}
	}
	return newView(v.table, indices)
}
