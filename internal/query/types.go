package query

// FilterOptions lists the distinct values available for each filterable
// dimension, used by clients to populate filter dropdowns.
type FilterOptions struct {
	Regions       []string `json:"regions"`
	Products      []string `json:"products"`
	SalesReps     []string `json:"salesReps"`
	Categories    []string `json:"categories"`
	CustomerTypes []string `json:"customerTypes"`
}
