package query

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	coreerrors "github.com/salesboard-lab/salesboard/internal/core/errors"
	"github.com/salesboard-lab/salesboard/internal/core/sales"
)

// RegisterRoutes registers all query API routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/api/sales", s.HandleRecords)
	r.GET("/api/analytics", s.HandleAnalytics)
	r.GET("/api/filters", s.HandleFilterOptions)
}

// criteriaQuery is the shared filter parameter set of every query endpoint.
type criteriaQuery struct {
	StartDate    time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate      time.Time `form:"end_date" time_format:"2006-01-02"`
	Region       string    `form:"region"`
	Product      string    `form:"product"`
	SalesRep     string    `form:"sales_rep"`
	Category     string    `form:"category"`
	CustomerType string    `form:"customer_type"`
}

func (q criteriaQuery) criteria() sales.Criteria {
	return sales.Criteria{
		StartDate:    q.StartDate,
		EndDate:      q.EndDate,
		Region:       q.Region,
		Product:      q.Product,
		SalesRep:     q.SalesRep,
		Category:     q.Category,
		CustomerType: q.CustomerType,
	}
}

// BindCriteria binds the shared filter parameters, writing a 400 response
// and returning false when they are malformed.
func BindCriteria(c *gin.Context) (sales.Criteria, bool) {
	var q criteriaQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, coreerrors.ErrorResponse{
			ErrorType: coreerrors.HttpInvalidQueryError,
			Message:   "Invalid filter parameters",
			Details:   err.Error(),
		})
		return sales.Criteria{}, false
	}
	return q.criteria(), true
}

// HandleRecords handles GET /api/sales: the filtered raw record sequence.
func (s *Service) HandleRecords(c *gin.Context) {
	criteria, ok := BindCriteria(c)
	if !ok {
		return
	}

	records, err := s.Records(c.Request.Context(), criteria)
	if err != nil {
		writeServiceError(c, err, "Failed to process sales data")
		return
	}
	if records == nil {
		records = []sales.Record{}
	}
	c.JSON(http.StatusOK, records)
}

// HandleAnalytics handles GET /api/analytics?type=<mode>. An unrecognized
// mode falls back to overview rather than failing.
func (s *Service) HandleAnalytics(c *gin.Context) {
	criteria, ok := BindCriteria(c)
	if !ok {
		return
	}

	mode := sales.Mode(c.DefaultQuery("type", string(sales.ModeOverview)))
	result, err := s.Analytics(c.Request.Context(), criteria, mode)
	if err != nil {
		writeServiceError(c, err, "Failed to process analytics data")
		return
	}
	c.JSON(http.StatusOK, result)
}

// HandleFilterOptions handles GET /api/filters.
func (s *Service) HandleFilterOptions(c *gin.Context) {
	opts, err := s.FilterOptions(c.Request.Context())
	if err != nil {
		writeServiceError(c, err, "Failed to load filter options")
		return
	}
	c.JSON(http.StatusOK, opts)
}

func writeServiceError(c *gin.Context, err error, message string) {
	errType := coreerrors.HttpInternalError
	if errors.Is(err, coreerrors.ErrDataUnavailable) {
		errType = coreerrors.HttpDataUnavailable
	}
	c.JSON(http.StatusInternalServerError, coreerrors.ErrorResponse{
		ErrorType: errType,
		Message:   message,
		Details:   err.Error(),
	})
}
