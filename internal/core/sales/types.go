package sales

// Mode selects which grouping dimension and metric set to compute.
type Mode string

const (
	ModeOverview            Mode = "overview"
	ModeRevenueTrend        Mode = "revenue-trend"
	ModeRegionSales         Mode = "region-sales"
	ModeProductPerformance  Mode = "product-performance"
	ModeSalesRepPerformance Mode = "sales-rep-performance"
	ModeCategoryAnalysis    Mode = "category-analysis"
	ModeCustomerType        Mode = "customer-type-analysis"
	ModeMonthlyGrowth       Mode = "monthly-growth"
)

// Overview summarizes the whole filtered set in one object.
type Overview struct {
	TotalRevenue     Number `json:"totalRevenue"`
	TotalUnits       Number `json:"totalUnits"`
	UniqueProducts   int    `json:"uniqueProducts"`
	UniqueCategories int    `json:"uniqueCategories"`
	UniqueRegions    int    `json:"uniqueRegions"`
	UniqueSalesReps  int    `json:"uniqueSalesReps"`
	UniqueCustomers  int    `json:"uniqueCustomers"`
	DataPoints       int    `json:"dataPoints"`
}

// MonthlyPoint is one month of the revenue trend.
type MonthlyPoint struct {
	Month   string `json:"month"`
	Revenue Number `json:"revenue"`
	Units   Number `json:"units"`
}

// RegionSales is revenue and units for one region.
type RegionSales struct {
	Region  string `json:"region"`
	Revenue Number `json:"revenue"`
	Units   Number `json:"units"`
}

// ProductPerformance is revenue and units for one product.
type ProductPerformance struct {
	Product string `json:"product"`
	Revenue Number `json:"revenue"`
	Units   Number `json:"units"`
}

// RepPerformance is the leaderboard row for one sales rep.
type RepPerformance struct {
	Name    string `json:"name"`
	Revenue Number `json:"revenue"`
	Units   Number `json:"units"`
	Deals   int    `json:"deals"`
}

// CategorySales is revenue and units for one category.
type CategorySales struct {
	Category string `json:"category"`
	Revenue  Number `json:"revenue"`
	Units    Number `json:"units"`
}

// CustomerTypeSales is revenue, units and deal count for one customer type.
type CustomerTypeSales struct {
	Type    string `json:"type"`
	Revenue Number `json:"revenue"`
	Units   Number `json:"units"`
	Deals   int    `json:"deals"`
}

// GrowthPoint is one month of the growth series. Growth is nil for the first
// month, which has nothing to compare against.
type GrowthPoint struct {
	Month   string  `json:"month"`
	Revenue Number  `json:"revenue"`
	Growth  *Number `json:"growth,omitempty"`
}
