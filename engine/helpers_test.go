package engine

import (
	"math"
	"testing"
	"time"

	"broadcastdash/api/dataset"
	"broadcastdash/api/models"
	"broadcastdash/api/utils"
)

func day(d int) time.Time {
	return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)
}

func clock(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := utils.ParseTime(value)
	if err != nil {
		t.Fatalf("ParseTime(%q): %v", value, err)
	}
	return parsed
}

func ptr[T any](v T) *T { return &v }

type recordOpt func(*models.SessionRecord)

func withCountry(c string) recordOpt    { return func(r *models.SessionRecord) { r.Country = c } }
func withEvent(e string) recordOpt      { return func(r *models.SessionRecord) { r.Event = e } }
func withDate(d time.Time) recordOpt    { return func(r *models.SessionRecord) { r.Date = d } }
func withTime(tm time.Time) recordOpt   { return func(r *models.SessionRecord) { r.Time = tm } }
func withIP(ip string) recordOpt        { return func(r *models.SessionRecord) { r.IPAddress = ip } }
func withDevice(d string) recordOpt     { return func(r *models.SessionRecord) { r.Device = d } }
func withAgent(a string) recordOpt      { return func(r *models.SessionRecord) { r.UserAgent = a } }
func withResolution(s string) recordOpt { return func(r *models.SessionRecord) { r.Resolution = s } }
func withDuration(d float64) recordOpt {
	return func(r *models.SessionRecord) { r.SessionDuration = d }
}
func withBuffering(b float64) recordOpt { return func(r *models.SessionRecord) { r.BufferingRate = b } }
func withUser(id string, weight float64) recordOpt {
	return func(r *models.SessionRecord) { r.UserID, r.UserWeight = id, weight }
}

func rec(opts ...recordOpt) models.SessionRecord {
	r := models.SessionRecord{
		Date:            day(1),
		Time:            time.Date(0, time.January, 1, 10, 0, 0, 0, time.UTC),
		Country:         "US",
		Event:           "Swimming",
		UserID:          "1",
		UserWeight:      1,
		Device:          "Mobile",
		UserAgent:       "Chrome",
		SessionDuration: 100,
		BufferingRate:   1,
		Resolution:      "1080p",
		IPAddress:       "10.0.0.1",
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func tableOf(records ...models.SessionRecord) *dataset.Table {
	return dataset.NewTable(records)
}

// fiveRowTable: 3 US rows out of 5, dates Jan 1 to Jan 5.
func fiveRowTable() *dataset.Table {
	return tableOf(
		rec(withCountry("US"), withEvent("Swimming"), withDate(day(1))),
		rec(withCountry("UK"), withEvent("Athletics"), withDate(day(2))),
		rec(withCountry("US"), withEvent("Athletics"), withDate(day(3))),
		rec(withCountry("KE"), withEvent("Swimming"), withDate(day(4))),
		rec(withCountry("US"), withEvent("Boxing"), withDate(day(5))),
	)
}

var nan = math.NaN()
