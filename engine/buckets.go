package engine

import (
	"sort"
	"time"

	"broadcastdash/api/models"
	"broadcastdash/api/utils"
)

// BucketValue is one point of an hourly series.
type BucketValue struct {
	Bucket time.Time
	Value  float64
}

// HourResolutionCount is one cell of the resolution-by-hour stacked bars.
type HourResolutionCount struct {
	Hour       int
	Resolution string
	Count      int
}

// UniqueVisitorTrend counts distinct IP addresses per 1-hour bucket of the
// Time column, oldest bucket first. A visitor active in several hours is
// counted in each of them. Hours without rows are absent; see DensifyHourly.
func UniqueVisitorTrend(v View) []BucketValue {
	buckets, groups := groupByHour(v)
	out := make([]BucketValue, 0, len(buckets))
	for _, b := range buckets {
		seen := make(map[string]struct{})
		for _, i := range groups[b] {
			ip := v.Record(i).IPAddress
			if ip == "" {
				continue
			}
			seen[ip] = struct{}{}
		}
		out = append(out, BucketValue{Bucket: b, Value: float64(len(seen))})
	}
	return out
}

// BufferingRateTrend averages the buffering rate per 1-hour bucket. A bucket
// whose rates are all missing carries NaN.
func BufferingRateTrend(v View) []BucketValue {
	buckets, groups := groupByHour(v)
	out := make([]BucketValue, 0, len(buckets))
	for _, b := range buckets {
		rows := newView(v.table, make([]int, 0, len(groups[b])))
		for _, i := range groups[b] {
			rows.indices = append(rows.indices, v.indices[i])
		}
		mean, _ := meanOf(rows, func(r models.SessionRecord) float64 { return r.BufferingRate })
		out = append(out, BucketValue{Bucket: b, Value: mean})
	}
	return out
}

// DensifyHourly inserts zero-valued buckets for the hours missing between the
// first and last bucket of an ascending series.
func DensifyHourly(series []BucketValue) []BucketValue {
	if len(series) < 2 {
		return append([]BucketValue(nil), series...)
	}
	out := make([]BucketValue, 0, len(series))
	for i, bv := range series {
		if i > 0 {
			for gap := series[i-1].Bucket.Add(time.Hour); gap.Before(bv.Bucket); gap = gap.Add(time.Hour) {
				out = append(out, BucketValue{Bucket: gap})
			}
		}
		out = append(out, bv)
	}
	return out
}

// ResolutionChangesByHour counts rows per hour of day and resolution,
// collapsing all days together. Rows without a resolution are skipped.
// Output is ordered by hour, then resolution.
func ResolutionChangesByHour(base View) []HourResolutionCount {
	type key struct {
		hour       int
		resolution string
	}
	counts := make(map[key]int)
	for i := 0; i < base.Len(); i++ {
		r := base.Record(i)
		if r.Resolution == "" {
			continue
		}
		counts[key{r.Time.Hour(), r.Resolution}]++
	}

	out := make([]HourResolutionCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, HourResolutionCount{Hour: k.hour, Resolution: k.resolution, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Hour != out[j].Hour {
			return out[i].Hour < out[j].Hour
		}
		return out[i].Resolution < out[j].Resolution
	})
	return out
}

// groupByHour returns the distinct hour buckets in ascending order and the
// view positions falling into each.
func groupByHour(v View) ([]time.Time, map[time.Time][]int) {
	byUnix := make(map[int64][]int)
	starts := make(map[int64]time.Time)
	for i := 0; i < v.Len(); i++ {
		b := utils.HourBucket(v.Record(i).Time)
		k := b.Unix()
		if _, ok := starts[k]; !ok {
			starts[k] = b
		}
		byUnix[k] = append(byUnix[k], i)
	}

	buckets := make([]time.Time, 0, len(starts))
	groups := make(map[time.Time][]int, len(starts))
	for k, b := range starts {
		buckets = append(buckets, b)
		groups[b] = byUnix[k]
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Before(buckets[j]) })
	return buckets, groups
}
