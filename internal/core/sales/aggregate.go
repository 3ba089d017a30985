package sales

import (
	"math"
	"slices"
	"strings"
)

// aggregateFunc reduces a filtered record set into one mode's result shape.
type aggregateFunc func([]Record) any

// modes is the registry of all aggregation modes. To add a mode: write its
// reduction and add an entry here. Dispatch never branches on strings
// anywhere else in the codebase.
var modes = map[Mode]aggregateFunc{
	ModeOverview:            overviewOf,
	ModeRevenueTrend:        revenueTrend,
	ModeRegionSales:         regionSales,
	ModeProductPerformance:  productPerformance,
	ModeSalesRepPerformance: repPerformance,
	ModeCategoryAnalysis:    categoryAnalysis,
	ModeCustomerType:        customerTypeAnalysis,
	ModeMonthlyGrowth:       monthlyGrowth,
}

// ValidMode reports whether m is a registered aggregation mode.
func ValidMode(m Mode) bool {
	_, ok := modes[m]
	return ok
}

// Aggregate groups and reduces records according to mode. Pure function:
// the input is never mutated and the same input always yields the same
// output. An unrecognized mode falls back to overview rather than failing.
func Aggregate(records []Record, mode Mode) any {
	fn, ok := modes[mode]
	if !ok {
		fn = modes[ModeOverview]
	}
	return fn(records)
}

func overviewOf(records []Record) any {
	var o Overview
	products := make(map[string]struct{})
	categories := make(map[string]struct{})
	regions := make(map[string]struct{})
	reps := make(map[string]struct{})
	customers := make(map[string]struct{})

	for _, r := range records {
		o.TotalRevenue += r.TotalPrice
		o.TotalUnits += r.Quantity
		products[r.Product] = struct{}{}
		categories[r.Category] = struct{}{}
		regions[r.Region] = struct{}{}
		reps[r.SalesRep] = struct{}{}
		customers[r.CustomerName] = struct{}{}
	}

	o.UniqueProducts = len(products)
	o.UniqueCategories = len(categories)
	o.UniqueRegions = len(regions)
	o.UniqueSalesReps = len(reps)
	o.UniqueCustomers = len(customers)
	o.DataPoints = len(records)
	return o
}

func revenueTrend(records []Record) any {
	rows, index := []MonthlyPoint{}, map[string]int{}
	for _, r := range records {
		key := r.Date.MonthKey()
		i, ok := index[key]
		if !ok {
			i = len(rows)
			index[key] = i
			rows = append(rows, MonthlyPoint{Month: key})
		}
		rows[i].Revenue += r.TotalPrice
		rows[i].Units += r.Quantity
	}
	slices.SortFunc(rows, func(a, b MonthlyPoint) int {
		return strings.Compare(a.Month, b.Month)
	})
	return rows
}

func regionSales(records []Record) any {
	rows, index := []RegionSales{}, map[string]int{}
	for _, r := range records {
		i, ok := index[r.Region]
		if !ok {
			i = len(rows)
			index[r.Region] = i
			rows = append(rows, RegionSales{Region: r.Region})
		}
		rows[i].Revenue += r.TotalPrice
		rows[i].Units += r.Quantity
	}
	sortByRevenueDesc(rows, func(r RegionSales) Number { return r.Revenue })
	return rows
}

func productPerformance(records []Record) any {
	rows, index := []ProductPerformance{}, map[string]int{}
	for _, r := range records {
		i, ok := index[r.Product]
		if !ok {
			i = len(rows)
			index[r.Product] = i
			rows = append(rows, ProductPerformance{Product: r.Product})
		}
		rows[i].Revenue += r.TotalPrice
		rows[i].Units += r.Quantity
	}
	sortByRevenueDesc(rows, func(r ProductPerformance) Number { return r.Revenue })
	return rows
}

func repPerformance(records []Record) any {
	rows, index := []RepPerformance{}, map[string]int{}
	for _, r := range records {
		i, ok := index[r.SalesRep]
		if !ok {
			i = len(rows)
			index[r.SalesRep] = i
			rows = append(rows, RepPerformance{Name: r.SalesRep})
		}
		rows[i].Revenue += r.TotalPrice
		rows[i].Units += r.Quantity
		rows[i].Deals++
	}
	sortByRevenueDesc(rows, func(r RepPerformance) Number { return r.Revenue })
	return rows
}

func categoryAnalysis(records []Record) any {
	rows, index := []CategorySales{}, map[string]int{}
	for _, r := range records {
		i, ok := index[r.Category]
		if !ok {
			i = len(rows)
			index[r.Category] = i
			rows = append(rows, CategorySales{Category: r.Category})
		}
		rows[i].Revenue += r.TotalPrice
		rows[i].Units += r.Quantity
	}
	sortByRevenueDesc(rows, func(r CategorySales) Number { return r.Revenue })
	return rows
}

func customerTypeAnalysis(records []Record) any {
	rows, index := []CustomerTypeSales{}, map[string]int{}
	for _, r := range records {
		i, ok := index[r.CustomerType]
		if !ok {
			i = len(rows)
			index[r.CustomerType] = i
			rows = append(rows, CustomerTypeSales{Type: r.CustomerType})
		}
		rows[i].Revenue += r.TotalPrice
		rows[i].Units += r.Quantity
		rows[i].Deals++
	}
	sortByRevenueDesc(rows, func(r CustomerTypeSales) Number { return r.Revenue })
	return rows
}

// monthlyGrowth produces ascending-by-month revenue totals, then a second
// pass computes month-over-month growth in percent. A zero previous month
// reports 0% growth even when the current month is positive; consumers treat
// growth-from-nothing as undefined rather than infinite.
func monthlyGrowth(records []Record) any {
	rows, index := []GrowthPoint{}, map[string]int{}
	for _, r := range records {
		key := r.Date.MonthKey()
		i, ok := index[key]
		if !ok {
			i = len(rows)
			index[key] = i
			rows = append(rows, GrowthPoint{Month: key})
		}
		rows[i].Revenue += r.TotalPrice
	}
	slices.SortFunc(rows, func(a, b GrowthPoint) int {
		return strings.Compare(a.Month, b.Month)
	})

	for i := 1; i < len(rows); i++ {
		prev := float64(rows[i-1].Revenue)
		cur := float64(rows[i].Revenue)
		growth := Number(0)
		if prev != 0 && !math.IsNaN(prev) {
			growth = Number((cur - prev) / prev * 100)
		}
		rows[i].Growth = &growth
	}
	return rows
}

// sortByRevenueDesc sorts descending by revenue. The sort is stable, so
// equal-revenue groups keep the order in which they were first encountered.
func sortByRevenueDesc[T any](rows []T, revenue func(T) Number) {
	slices.SortStableFunc(rows, func(a, b T) int {
		ra, rb := float64(revenue(a)), float64(revenue(b))
		switch {
		case ra > rb:
			return -1
		case ra < rb:
			return 1
		default:
			return 0
		}
	})
}
