package query

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	coreerrors "github.com/salesboard-lab/salesboard/internal/core/errors"
	"github.com/salesboard-lab/salesboard/internal/core/sales"
)

type stubStore struct {
	records []sales.Record
	err     error
}

func (s *stubStore) Load(ctx context.Context) ([]sales.Record, error) {
	return s.records, s.err
}

func record(date, rep, region, category, product, custType, custName string, qty, unit, total float64) sales.Record {
	return sales.Record{
		Date:         sales.ParseDate(date),
		SalesRep:     rep,
		Region:       region,
		Category:     category,
		Product:      product,
		Quantity:     sales.Number(qty),
		UnitPrice:    sales.Number(unit),
		TotalPrice:   sales.Number(total),
		CustomerType: custType,
		CustomerName: custName,
	}
}

func testRouter(store RecordStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewService(store, 0).RegisterRoutes(r)
	return r
}

func get(t *testing.T, r *gin.Engine, url string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	r.ServeHTTP(w, req)
	return w
}

func fixtureRecords() []sales.Record {
	return []sales.Record{
		record("2024-01-15", "Alice", "East", "Electronics", "Laptop", "Business", "Acme", 2, 50, 100),
		record("2024-02-10", "Bob", "East", "Accessories", "Mouse", "Consumer", "Jane", 1, 50, 50),
		record("2024-02-12", "Bob", "West", "Electronics", "Laptop", "Consumer", "Tom", 1, 75, 75),
	}
}

func TestHandleAnalytics_RevenueTrend(t *testing.T) {
	r := testRouter(&stubStore{records: fixtureRecords()})

	w := get(t, r, "/api/analytics?type=revenue-trend&region=East")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `[
		{"month":"2024-01","revenue":100,"units":2},
		{"month":"2024-02","revenue":50,"units":1}
	]`, w.Body.String())
}

func TestHandleAnalytics_MonthlyGrowth(t *testing.T) {
	r := testRouter(&stubStore{records: fixtureRecords()})

	w := get(t, r, "/api/analytics?type=monthly-growth&region=East")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `[
		{"month":"2024-01","revenue":100},
		{"month":"2024-02","revenue":50,"growth":-50}
	]`, w.Body.String())
}

func TestHandleAnalytics_DefaultsToOverview(t *testing.T) {
	r := testRouter(&stubStore{records: fixtureRecords()})

	w := get(t, r, "/api/analytics")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{
		"totalRevenue":225,"totalUnits":4,
		"uniqueProducts":2,"uniqueCategories":2,"uniqueRegions":2,
		"uniqueSalesReps":2,"uniqueCustomers":3,"dataPoints":3
	}`, w.Body.String())
}

func TestHandleAnalytics_UnknownModeMatchesOverview(t *testing.T) {
	r := testRouter(&stubStore{records: fixtureRecords()})

	overview := get(t, r, "/api/analytics?type=overview")
	unknown := get(t, r, "/api/analytics?type=scatter-matrix")

	require.Equal(t, http.StatusOK, unknown.Code)
	require.Equal(t, overview.Body.String(), unknown.Body.String())
}

func TestHandleAnalytics_DataUnavailable(t *testing.T) {
	r := testRouter(&stubStore{err: fmt.Errorf("open dataset: %w", coreerrors.ErrDataUnavailable)})

	w := get(t, r, "/api/analytics")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Contains(t, w.Body.String(), coreerrors.HttpDataUnavailable)
}

func TestHandleAnalytics_MalformedDateIsBadRequest(t *testing.T) {
	r := testRouter(&stubStore{records: fixtureRecords()})

	w := get(t, r, "/api/analytics?start_date=January")
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), coreerrors.HttpInvalidQueryError)
}

func TestHandleRecords_FiltersAndSerializesNumbers(t *testing.T) {
	r := testRouter(&stubStore{records: fixtureRecords()})

	w := get(t, r, "/api/sales?region=West")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `[{
		"date":"2024-02-12","sales_rep":"Bob","region":"West",
		"category":"Electronics","product":"Laptop","quantity":1,
		"unit_price":75,"total_price":75,
		"customer_type":"Consumer","customer_name":"Tom"
	}]`, w.Body.String())
}

func TestHandleRecords_EmptyMatchIsEmptyArray(t *testing.T) {
	r := testRouter(&stubStore{records: fixtureRecords()})

	w := get(t, r, "/api/sales?region=Nowhere")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `[]`, w.Body.String())
}

func TestHandleFilterOptions(t *testing.T) {
	r := testRouter(&stubStore{records: fixtureRecords()})

	w := get(t, r, "/api/filters")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{
		"regions":["East","West"],
		"products":["Laptop","Mouse"],
		"salesReps":["Alice","Bob"],
		"categories":["Electronics","Accessories"],
		"customerTypes":["Business","Consumer"]
	}`, w.Body.String())
}
