package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTimeSortsLexically(t *testing.T) {
	base := time.Date(2025, 3, 9, 23, 59, 59, 999_000_000, time.FixedZone("MSK", 3*3600))
	earlier := FormatTime(base)
	later := FormatTime(base.Add(time.Millisecond))

	assert.Equal(t, "2025-03-09T20:59:59.999Z", earlier)
	assert.Equal(t, "2025-03-09T21:00:00.000Z", later)
	assert.Less(t, earlier, later)
}

func TestParseTime(t *testing.T) {
	want := time.Date(2025, 1, 2, 3, 4, 5, 6_000_000, time.UTC)

	got, err := ParseTime(FormatTime(want))
	require.NoError(t, err)
	assert.True(t, want.Equal(got))

	got, err = ParseTime("2025-01-02T03:04:05Z")
	require.NoError(t, err)
	assert.Equal(t, 5, got.Second())

	_, err = ParseTime("yesterday")
	assert.Error(t, err)
}

func TestRecordID(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		want   int
		wantOK bool
	}{
		{"int", 7, 7, true},
		{"int64", int64(8), 8, true},
		{"float64 integral", float64(9), 9, true},
		{"float64 fractional", 9.5, 0, false},
		{"json number", json.Number("10"), 10, true},
		{"string", "11", 0, false},
		{"missing", nil, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Record{}
			if tt.value != nil {
				r[FieldID] = tt.value
			}
			got, ok := r.ID()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecordClone(t *testing.T) {
	r := Record{"city": "Rome", "load": 10}
	c := r.Clone()
	c["city"] = "Milan"

	assert.Equal(t, "Rome", r.String("city"))
	assert.Equal(t, "Milan", c.String("city"))
	assert.Nil(t, Record(nil).Clone())
}

func TestToRecordFromRecord(t *testing.T) {
	s := Server{
		Meta:        Meta{ID: 3},
		Country:     "Italy",
		CountryCode: "IT",
		City:        "Rome",
		Load:        10,
		Ping:        20,
	}

	r, err := ToRecord(s)
	require.NoError(t, err)
	assert.Equal(t, "IT", r["country_code"])
	assert.Equal(t, false, r["is_premium"], "false booleans must survive so filters can match them")
	assert.Equal(t, float64(10), r["load"])

	back, err := FromRecord[Server](r)
	require.NoError(t, err)
	assert.Equal(t, s, back)

	_, err = ToRecord([]int{1, 2})
	assert.Error(t, err)
}
