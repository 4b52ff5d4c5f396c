package dataset

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"broadcastdash/api/utils"
)

const sampleCSV = `Date,Time,Country,Event,UserID,Device,User Agent,Session Duration,Buffering Rate,Resolution,IP Address
2024-07-26,10:15:00,Kenya,Athletics,101,Mobile,Chrome,120,1.5,1080p,10.0.0.1
2024-07-27,10:45:00,Brazil,Swimming,102,Desktop,Firefox,80,2.5,720p,10.0.0.2
2024-07-28,11:05:00,Kenya,Swimming,103,Tablet,Safari,,0.5,480p,10.0.0.1
`

func TestLoadCSV(t *testing.T) {
	table, err := LoadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Equal(t, 3, table.Len())

	first := table.Record(0)
	assert.Equal(t, time.Date(2024, 7, 26, 0, 0, 0, 0, time.UTC), first.Date)
	assert.Equal(t, 10, first.Time.Hour())
	assert.True(t, utils.IsClockOnly(first.Time))
	assert.Equal(t, "Kenya", first.Country)
	assert.Equal(t, "101", first.UserID)
	assert.InDelta(t, 101.0, first.UserWeight, 1e-9)
	assert.Equal(t, "Chrome", first.UserAgent)
	assert.InDelta(t, 120.0, first.SessionDuration, 1e-9)
	assert.Equal(t, "10.0.0.1", first.IPAddress)

	assert.True(t, math.IsNaN(table.Record(2).SessionDuration), "empty numeric cell is a missing value")

	assert.Equal(t, []string{"Kenya", "Brazil"}, table.Countries())
	assert.Equal(t, []string{"Athletics", "Swimming"}, table.Events())
	assert.Equal(t, time.Date(2024, 7, 26, 0, 0, 0, 0, time.UTC), table.MinDate())
	assert.Equal(t, time.Date(2024, 7, 28, 0, 0, 0, 0, time.UTC), table.MaxDate())
}

func TestLoadCSV_ExtraColumnsAndReordering(t *testing.T) {
	csv := "IP Address,Extra,Resolution,Buffering Rate,Session Duration,User Agent,Device,UserID,Event,Country,Time,Date\n" +
		"10.0.0.9,x,4K,3,60,Edge,TV,abc,Boxing,Japan,2024-07-29 21:00:00,2024-07-29\n"
	table, err := LoadCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())

	rec := table.Record(0)
	assert.Equal(t, "Japan", rec.Country)
	assert.False(t, utils.IsClockOnly(rec.Time))
	assert.InDelta(t, 1.0, rec.UserWeight, 1e-9, "non-numeric IDs count once")
}

func TestLoadCSV_MissingColumn(t *testing.T) {
	csv := "Date,Time,Country,Event,UserID,Device,User Agent,Session Duration,Buffering Rate,Resolution\n"
	_, err := LoadCSV(strings.NewReader(csv))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedDataset))

	var malformed *MalformedDatasetError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, ColIPAddress, malformed.Column)
	assert.Equal(t, 0, malformed.Row)
}

func TestLoadCSV_HeadersAreCaseSensitive(t *testing.T) {
	csv := strings.Replace(sampleCSV, "User Agent", "user agent", 1)
	_, err := LoadCSV(strings.NewReader(csv))
	assert.ErrorIs(t, err, ErrMalformedDataset)
}

func TestLoadCSV_UnparseableCells(t *testing.T) {
	tests := []struct {
		name   string
		row    string
		column string
	}{
		{"bad date", "someday,10:00,US,E,1,D,UA,10,1,720p,1.1.1.1", ColDate},
		{"bad time", "2024-07-26,late,US,E,1,D,UA,10,1,720p,1.1.1.1", ColTime},
		{"empty time", "2024-07-26,,US,E,1,D,UA,10,1,720p,1.1.1.1", ColTime},
		{"bad duration", "2024-07-26,10:00,US,E,1,D,UA,long,1,720p,1.1.1.1", ColSessionDuration},
		{"bad buffering", "2024-07-26,10:00,US,E,1,D,UA,10,high,720p,1.1.1.1", ColBufferingRate},
	}

	header := strings.SplitN(sampleCSV, "\n", 2)[0]
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCSV(strings.NewReader(header + "\n" + tt.row + "\n"))
			var malformed *MalformedDatasetError
			require.True(t, errors.As(err, &malformed), "got %v", err)
			assert.Equal(t, 1, malformed.Row)
			assert.Equal(t, tt.column, malformed.Column)
		})
	}
}

func TestLoadCSV_EmptyInput(t *testing.T) {
	_, err := LoadCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrMalformedDataset)
}

func TestLoadCSV_HeaderOnly(t *testing.T) {
	header := strings.SplitN(sampleCSV, "\n", 2)[0]
	table, err := LoadCSV(strings.NewReader(header + "\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
	assert.True(t, table.MinDate().IsZero())
}

func TestTableIsDetachedFromInput(t *testing.T) {
	table, err := LoadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	records := table.Records()
	records[0].Country = "Mutated"
	assert.Equal(t, "Kenya", table.Record(0).Country)

	countries := table.Countries()
	countries[0] = "Mutated"
	assert.Equal(t, "Kenya", table.Countries()[0])
}

func TestParseRow(t *testing.T) {
	rec, err := ParseRow(4, []string{
		"2024-07-26", "2024-07-26 10:15:00", "Kenya", "Athletics", "guest", "Mobile",
		"Chrome", " 120 ", "", "1080p", "10.0.0.1",
	})
	require.NoError(t, err)
	assert.False(t, utils.IsClockOnly(rec.Time))
	assert.Equal(t, 1.0, rec.UserWeight)
	assert.Equal(t, 120.0, rec.SessionDuration)
	assert.True(t, math.IsNaN(rec.BufferingRate))

	_, err = ParseRow(5, []string{"2024-07-26"})
	assert.ErrorIs(t, err, ErrMalformedDataset)

	_, err = ParseRow(6, []string{
		"yesterday", "10:15", "Kenya", "Athletics", "1", "Mobile", "Chrome", "1", "1", "1080p", "10.0.0.1",
	})
	var malformed *MalformedDatasetError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, 6, malformed.Row)
	assert.Equal(t, ColDate, malformed.Column)
}
