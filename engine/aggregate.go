package engine

import (
	"errors"
	"math"
	"sort"

	"broadcastdash/api/models"
)

// ErrNoData marks an aggregate that has no value over its input, such as the
// mean or mode of an empty view. Callers must not substitute zero.
var ErrNoData = errors.New("no data")

// CategoryValue is one bar or slice of a categorical chart.
type CategoryValue struct {
	Category string
	Value    float64
}

// VisitsSummary is the total-visits KPI. Delta is never positive when the
// filtered view is a subset of base.
type VisitsSummary struct {
	Count     int
	BaseCount int
	Delta     int
}

// TotalVisits counts the filtered rows against the whole table.
func TotalVisits(filtered, base View) VisitsSummary {
	return VisitsSummary{
		Count:     filtered.Len(),
		BaseCount: base.Len(),
		Delta:     filtered.Len() - base.Len(),
	}
}

// DurationSummary is the average-session-duration KPI.
type DurationSummary struct {
	Mean      float64
	Reference float64
	Delta     float64
}

// AverageSessionDuration averages the non-missing session durations and
// compares the mean with reference. With nothing to average it returns
// ErrNoData.
func AverageSessionDuration(v View, reference float64) (DurationSummary, error) {
	mean, ok := meanOf(v, func(r models.SessionRecord) float64 { return r.SessionDuration })
	if !ok {
		return DurationSummary{Mean: math.NaN(), Reference: reference, Delta: math.NaN()}, ErrNoData
	}
	return DurationSummary{Mean: mean, Reference: reference, Delta: mean - reference}, nil
}

// EventViewsSummary expresses the filtered row count against a capacity.
// Percentage is not clamped and may exceed 100.
type EventViewsSummary struct {
	Views      int
	Capacity   int
	Percentage float64
}

func EventViews(v View, capacity int) EventViewsSummary {
	s := EventViewsSummary{Views: v.Len(), Capacity: capacity}
	if capacity > 0 {
		s.Percentage = float64(v.Len()) / float64(capacity) * 100
	}
	return s
}

// TopCountry is the most frequent non-empty country with its row count.
// Ties go to the country seen first. An empty view returns ErrNoData.
func TopCountry(v View) (CategoryValue, error) {
	counts := countBy(v, func(r models.SessionRecord) string { return r.Country })
	if len(counts) == 0 {
		return CategoryValue{}, ErrNoData
	}
	return counts[0], nil
}

// UserAgentDistribution counts rows per user agent, most frequent first.
func UserAgentDistribution(v View) []CategoryValue {
	return countBy(v, func(r models.SessionRecord) string { return r.UserAgent })
}

// ViewsByEvent counts rows per event, most frequent first.
func ViewsByEvent(v View) []CategoryValue {
	return countBy(v, func(r models.SessionRecord) string { return r.Event })
}

// DeviceDistribution sums the user ID column per device in first-seen order.
// It adds up identifiers rather than counting visitors; the dashboard has
// always charted it this way.
func DeviceDistribution(v View) []CategoryValue {
	return sumBy(v, func(r models.SessionRecord) string { return r.Device })
}

// TopCountriesByVisits sums the user ID column per country and keeps the
// largest limit entries, ties in first-seen order. The dashboard feeds it the
// unfiltered table.
func TopCountriesByVisits(base View, limit int) []CategoryValue {
	totals := sumBy(base, func(r models.SessionRecord) string { return r.Country })
	sortDescending(totals)
	if limit > 0 && len(totals) > limit {
		totals = totals[:limit]
	}
	return totals
}

// HighBuffering keeps rows whose buffering rate is strictly above threshold.
// Missing rates never qualify.
func HighBuffering(base View, threshold float64) View {
	return base.where(func(r models.SessionRecord) bool { return r.BufferingRate > threshold })
}

// VisitDetails lists the rows of the view for the details table.
func VisitDetails(v View) []models.SessionRecord {
	return v.Records()
}

// groupBy buckets row positions by key, skipping empty keys, and reports keys
// in first-seen order.
func groupBy(v View, key func(models.SessionRecord) string) ([]string, map[string][]int) {
	order := make([]string, 0)
	groups := make(map[string][]int)
	for i := 0; i < v.Len(); i++ {
		k := key(v.Record(i))
		if k == "" {
			continue
		}
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], i)
	}
	return order, groups
}

func countBy(v View, key func(models.SessionRecord) string) []CategoryValue {
	order, groups := groupBy(v, key)
	out := make([]CategoryValue, 0, len(order))
	for _, k := range order {
		out = append(out, CategoryValue{Category: k, Value: float64(len(groups[k]))})
	}
	sortDescending(out)
	return out
}

func sumBy(v View, key func(models.SessionRecord) string) []CategoryValue {
	order, groups := groupBy(v, key)
	out := make([]CategoryValue, 0, len(order))
	for _, k := range order {
		var total float64
		for _, i := range groups[k] {
			total += v.Record(i).UserWeight
		}
		out = append(out, CategoryValue{Category: k, Value: total})
	}
	return out
}

// sortDescending orders by value, keeping first-seen order among ties.
func sortDescending(values []CategoryValue) {
	sort.SliceStable(values, func(i, j int) bool { return values[i].Value > values[j].Value })
}

// meanOf averages the non-NaN values of field; ok is false when there are none.
func meanOf(v View, field func(models.SessionRecord) float64) (float64, bool) {
	var sum float64
	var n int
	for i := 0; i < v.Len(); i++ {
		x := field(v.Record(i))
		if math.IsNaN(x) {
			continue
		}
		sum += x
		n++
	}
	if n == 0 {
		return math.NaN(), false
	}
	return sum / float64(n), true
}
