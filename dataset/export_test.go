package dataset

import (
	"bytes"
	"encoding/csv"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV_RoundTrip(t *testing.T) {
	table, err := LoadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, table.Records()))

	header, err := csv.NewReader(bytes.NewReader(buf.Bytes())).Read()
	require.NoError(t, err)
	assert.Equal(t, Columns, header)

	reloaded, err := LoadCSV(&buf)
	require.NoError(t, err)
	require.Equal(t, table.Len(), reloaded.Len())

	for i := 0; i < table.Len(); i++ {
		want, got := table.Record(i), reloaded.Record(i)
		assert.Equal(t, want.Date, got.Date)
		assert.Equal(t, want.Time, got.Time)
		assert.Equal(t, want.Country, got.Country)
		assert.Equal(t, want.UserID, got.UserID)
		assert.Equal(t, want.IPAddress, got.IPAddress)
		if math.IsNaN(want.SessionDuration) {
			assert.True(t, math.IsNaN(got.SessionDuration))
		} else {
			assert.InDelta(t, want.SessionDuration, got.SessionDuration, 1e-9)
		}
	}
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, strings.Join(Columns, ",")+"\n", buf.String())
}

func TestWriteCSV_KeepsFractionalSeconds(t *testing.T) {
	in := `Date,Time,Country,Event,UserID,Device,User Agent,Session Duration,Buffering Rate,Resolution,IP Address
2024-07-26,10:15:00.750,Kenya,Athletics,101,Mobile,Chrome,120,1.5,1080p,10.0.0.1
2024-07-26,2024-07-26 11:00:00.5,Kenya,Athletics,101,Mobile,Chrome,120,1.5,1080p,10.0.0.1
`
	table, err := LoadCSV(strings.NewReader(in))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, table.Records()))
	assert.Contains(t, buf.String(), ",10:15:00.75,")
	assert.Contains(t, buf.String(), ",2024-07-26 11:00:00.5,")

	reloaded, err := LoadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, table.Record(0).Time, reloaded.Record(0).Time)
	assert.Equal(t, table.Record(1).Time, reloaded.Record(1).Time)
}
