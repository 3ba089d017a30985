package sales

import "time"

// Criteria narrows the record set before aggregation. Every field is
// optional: a zero value places no constraint on that dimension. Active
// constraints are AND-combined.
type Criteria struct {
	StartDate    time.Time
	EndDate      time.Time
	Region       string
	Product      string
	SalesRep     string
	Category     string
	CustomerType string
}

// IsZero reports whether the criteria constrain nothing.
func (c Criteria) IsZero() bool {
	return c.StartDate.IsZero() && c.EndDate.IsZero() &&
		c.Region == "" && c.Product == "" && c.SalesRep == "" &&
		c.Category == "" && c.CustomerType == ""
}

// Match reports whether a single record satisfies every active constraint.
// Date bounds are inclusive and compared as calendar days.
func (c Criteria) Match(r Record) bool {
	day := r.Date.Time
	if !c.StartDate.IsZero() && day.Before(truncateToDay(c.StartDate)) {
		return false
	}
	if !c.EndDate.IsZero() && day.After(truncateToDay(c.EndDate)) {
		return false
	}
	if c.Region != "" && r.Region != c.Region {
		return false
	}
	if c.Product != "" && r.Product != c.Product {
		return false
	}
	if c.SalesRep != "" && r.SalesRep != c.SalesRep {
		return false
	}
	if c.Category != "" && r.Category != c.Category {
		return false
	}
	if c.CustomerType != "" && r.CustomerType != c.CustomerType {
		return false
	}
	return true
}

// Apply returns the subsequence of records matching the criteria. The input
// is never mutated and applying the same criteria twice is a no-op.
func (c Criteria) Apply(records []Record) []Record {
	if c.IsZero() {
		return records
	}
	filtered := make([]Record, 0, len(records))
	for _, r := range records {
		if c.Match(r) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
