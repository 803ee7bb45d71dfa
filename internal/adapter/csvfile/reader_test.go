package csvfile

import (
	"context"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/couchcryptid/disaster-map/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRows(t *testing.T) {
	in := "Magnitude,Longitude,Latitude,Date,Time\n5.0,10.0,20.0,01 15 1990,12:00\n6.1,\"-1,5\",3\n"

	rows, err := ReadRows(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, source.Row{
		"Magnitude": "5.0", "Longitude": "10.0", "Latitude": "20.0", "Date": "01 15 1990", "Time": "12:00",
	}, rows[0])
	assert.Equal(t, "-1,5", rows[1].Get("Longitude"))
	assert.Equal(t, "", rows[1].Get("Date"), "short records pad with empty cells")
}

func TestReadRows_StripsBOMAndHeaderSpace(t *testing.T) {
	in := "\xEF\xBB\xBFmag , time\n4.5,1931-08-16T11:40\n"

	rows, err := ReadRows(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "4.5", rows[0].Get("mag"))
	assert.Equal(t, "1931-08-16T11:40", rows[0].Get("time"))
}

func TestReadRows_Empty(t *testing.T) {
	_, err := ReadRows(strings.NewReader(""))
	require.ErrorIs(t, err, ErrEmptyFile)
}

func TestReadRows_HeaderOnly(t *testing.T) {
	rows, err := ReadRows(strings.NewReader("a,b\n"))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReader_Fetch(t *testing.T) {
	fsys := fstest.MapFS{
		"tsunami.csv": {Data: []byte("TS_INTENSI,LONGITUDE,LATITUDE\n2,1,1\n")},
	}
	r := NewFS(fsys)

	rows, err := r.Fetch(context.Background(), "tsunami.csv")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2", rows[0].Get("TS_INTENSI"))

	_, err = r.Fetch(context.Background(), "volcan.csv")
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "volcan.csv")
}

func TestReader_FetchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFS(fstest.MapFS{}).Fetch(ctx, "tsunami.csv")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReader_Header(t *testing.T) {
	fsys := fstest.MapFS{
		"american_winds.csv": {Data: []byte("max_wind_kt,year,track\n100,1992,25 80\n")},
		"empty.csv":          {Data: []byte{}},
	}
	r := NewFS(fsys)

	header, err := r.Header("american_winds.csv")
	require.NoError(t, err)
	assert.Equal(t, []string{"max_wind_kt", "year", "track"}, header)

	_, err = r.Header("empty.csv")
	assert.ErrorIs(t, err, ErrEmptyFile)
}
