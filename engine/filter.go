package engine

import (
	"time"

	"broadcastdash/api/dataset"
	"broadcastdash/api/models"
)

type predicate func(models.SessionRecord) bool

// Apply returns the rows of table matching every constraint in sel.
//
// Country and event use exact equality unless the selector is "All" (or
// empty), which matches every row including rows with no value. Dates are an
// inclusive range on the Date column; a start after the end yields an empty
// view rather than an error. A nil bound is open.
func Apply(table *dataset.Table, sel models.FilterSelection) View {
	return Narrow(All(table), sel)
}

// Narrow applies sel on top of an existing view. Predicates are applied one
// after another, so their order does not change the result.
func Narrow(v View, sel models.FilterSelection) View {
	if sel.StartDate != nil && sel.EndDate != nil && truncateDay(*sel.StartDate).After(truncateDay(*sel.EndDate)) {
		return newView(v.table, []int{})
	}
	for _, p := range predicates(sel) {
		v = v.where(p)
	}
	return v
}

func predicates(sel models.FilterSelection) []predicate {
	var preds []predicate
	if !models.IsAll(sel.Country) {
		country := sel.Country
		preds = append(preds, func(r models.SessionRecord) bool { return r.Country == country })
	}
	if !models.IsAll(sel.Event) {
		event := sel.Event
		preds = append(preds, func(r models.SessionRecord) bool { return r.Event == event })
	}
	if sel.StartDate != nil {
		start := truncateDay(*sel.StartDate)
		preds = append(preds, func(r models.SessionRecord) bool { return !r.Date.Before(start) })
	}
	if sel.EndDate != nil {
		end := truncateDay(*sel.EndDate)
		preds = append(preds, func(r models.SessionRecord) bool { return !r.Date.After(end) })
	}
	return preds
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
