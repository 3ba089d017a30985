package sales

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLeniency(t *testing.T) {
	require.Equal(t, Number(3), ParseInt(" 3 "))
	require.True(t, ParseInt("three").IsNaN())
	require.True(t, ParseInt("3.5").IsNaN(), "quantity must parse as an integer")

	require.Equal(t, Number(12.75), ParseDecimal("12.75"))
	require.True(t, ParseDecimal("").IsNaN())
	require.True(t, ParseDecimal("n/a").IsNaN())
}

func TestMonthKeyZeroPadded(t *testing.T) {
	require.Equal(t, "2024-03", ParseDate("2024-03-09").MonthKey())
	require.Equal(t, "2024-11", ParseDate("2024-11-30").MonthKey())
}

func TestNumberMarshalsNaNAsNull(t *testing.T) {
	b, err := json.Marshal(struct {
		Good Number `json:"good"`
		Bad  Number `json:"bad"`
	}{Good: 42.5, Bad: ParseDecimal("oops")})
	require.NoError(t, err)
	require.JSONEq(t, `{"good":42.5,"bad":null}`, string(b))
}

func TestRecordDateSerializesAsCalendarDate(t *testing.T) {
	b, err := json.Marshal(rec("2024-01-15", "East", "A", "Alice", "X", "Business", 100, 2))
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	require.Equal(t, "2024-01-15", m["date"])
}
