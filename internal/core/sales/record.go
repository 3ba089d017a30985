package sales

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the calendar-date format used across the dataset, the query
// parameters and the JSON output.
const DateLayout = "2006-01-02"

// Number is a float64 that serializes NaN and infinities as JSON null.
// Malformed numeric cells in the dataset degrade to NaN instead of rejecting
// the whole record, so the sentinel has to survive serialization.
type Number float64

func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

// IsNaN reports whether the field failed to parse.
func (n Number) IsNaN() bool {
	return math.IsNaN(float64(n))
}

// Date is a calendar date. Time-of-day is always midnight and is ignored by
// every comparison in this package.
type Date struct {
	time.Time
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

// MonthKey returns the "YYYY-MM" group key for the date, zero-padded.
func (d Date) MonthKey() string {
	return d.Format("2006-01")
}

// ParseDate parses a calendar date; failures return a zero Date and keep the
// record in play, mirroring the dataset's lenient parse rules.
func ParseDate(s string) Date {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}
	}
	return Date{t}
}

// ParseDecimal parses a decimal field permissively: failures become NaN.
func ParseDecimal(s string) Number {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return Number(math.NaN())
	}
	return Number(f)
}

// ParseInt parses an integer field permissively: failures become NaN.
func ParseInt(s string) Number {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return Number(math.NaN())
	}
	return Number(n)
}

// Record is one sales transaction parsed from the backing dataset.
// Records are immutable after load; total_price is stored as-is and is never
// recomputed from quantity * unit_price.
type Record struct {
	Date         Date   `json:"date"`
	SalesRep     string `json:"sales_rep"`
	Region       string `json:"region"`
	Category     string `json:"category"`
	Product      string `json:"product"`
	Quantity     Number `json:"quantity"`
	UnitPrice    Number `json:"unit_price"`
	TotalPrice   Number `json:"total_price"`
	CustomerType string `json:"customer_type"`
	CustomerName string `json:"customer_name"`
}
