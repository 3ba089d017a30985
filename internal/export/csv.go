// Package export renders query results as downloadable CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/salesboard-lab/salesboard/internal/core/sales"
)

// Write renders an aggregation result (or a raw record slice) as CSV.
// Money columns are rounded to exact two-decimal strings; NaN cells are
// left empty.
func Write(w io.Writer, result any) error {
	cw := csv.NewWriter(w)

	var err error
	switch rows := result.(type) {
	case sales.Overview:
		err = writeOverview(cw, rows)
	case []sales.MonthlyPoint:
		err = writeRows(cw, []string{"month", "revenue", "units"}, len(rows), func(i int) []string {
			return []string{rows[i].Month, money(rows[i].Revenue), units(rows[i].Units)}
		})
	case []sales.RegionSales:
		err = writeRows(cw, []string{"region", "revenue", "units"}, len(rows), func(i int) []string {
			return []string{rows[i].Region, money(rows[i].Revenue), units(rows[i].Units)}
		})
	case []sales.ProductPerformance:
		err = writeRows(cw, []string{"product", "revenue", "units"}, len(rows), func(i int) []string {
			return []string{rows[i].Product, money(rows[i].Revenue), units(rows[i].Units)}
		})
	case []sales.RepPerformance:
		err = writeRows(cw, []string{"name", "revenue", "units", "deals"}, len(rows), func(i int) []string {
			return []string{rows[i].Name, money(rows[i].Revenue), units(rows[i].Units), strconv.Itoa(rows[i].Deals)}
		})
	case []sales.CategorySales:
		err = writeRows(cw, []string{"category", "revenue", "units"}, len(rows), func(i int) []string {
			return []string{rows[i].Category, money(rows[i].Revenue), units(rows[i].Units)}
		})
	case []sales.CustomerTypeSales:
		err = writeRows(cw, []string{"type", "revenue", "units", "deals"}, len(rows), func(i int) []string {
			return []string{rows[i].Type, money(rows[i].Revenue), units(rows[i].Units), strconv.Itoa(rows[i].Deals)}
		})
	case []sales.GrowthPoint:
		err = writeRows(cw, []string{"month", "revenue", "growth"}, len(rows), func(i int) []string {
			growth := ""
			if rows[i].Growth != nil {
				growth = money(*rows[i].Growth)
			}
			return []string{rows[i].Month, money(rows[i].Revenue), growth}
		})
	case []sales.Record:
		err = writeRecords(cw, rows)
	default:
		return fmt.Errorf("unsupported export result type %T", result)
	}
	if err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}

func writeRows(cw *csv.Writer, header []string, n int, row func(int) []string) error {
	if err := cw.Write(header); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := cw.Write(row(i)); err != nil {
			return err
		}
	}
	return nil
}

func writeOverview(cw *csv.Writer, o sales.Overview) error {
	header := []string{
		"totalRevenue", "totalUnits", "uniqueProducts", "uniqueCategories",
		"uniqueRegions", "uniqueSalesReps", "uniqueCustomers", "dataPoints",
	}
	row := []string{
		money(o.TotalRevenue), units(o.TotalUnits),
		strconv.Itoa(o.UniqueProducts), strconv.Itoa(o.UniqueCategories),
		strconv.Itoa(o.UniqueRegions), strconv.Itoa(o.UniqueSalesReps),
		strconv.Itoa(o.UniqueCustomers), strconv.Itoa(o.DataPoints),
	}
	return writeRows(cw, header, 1, func(int) []string { return row })
}

func writeRecords(cw *csv.Writer, records []sales.Record) error {
	header := []string{
		"date", "sales_rep", "region", "category", "product",
		"quantity", "unit_price", "total_price", "customer_type", "customer_name",
	}
	return writeRows(cw, header, len(records), func(i int) []string {
		r := records[i]
		return []string{
			r.Date.Format(sales.DateLayout), r.SalesRep, r.Region, r.Category, r.Product,
			units(r.Quantity), money(r.UnitPrice), money(r.TotalPrice),
			r.CustomerType, r.CustomerName,
		}
	})
}

// money formats a revenue, price or percentage cell with exact two-decimal
// rounding. NaN and infinite cells are left empty.
func money(n sales.Number) string {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ""
	}
	return decimal.NewFromFloat(f).Round(2).StringFixed(2)
}

// units formats a unit count; whole numbers print without a fraction.
func units(n sales.Number) string {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ""
	}
	return decimal.NewFromFloat(f).String()
}
