package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	coreerrors "github.com/salesboard-lab/salesboard/internal/core/errors"
	"github.com/salesboard-lab/salesboard/internal/core/sales"
	"github.com/salesboard-lab/salesboard/internal/query"
)

// Queries is the slice of the query service the exporter needs.
type Queries interface {
	Records(ctx context.Context, criteria sales.Criteria) ([]sales.Record, error)
	Analytics(ctx context.Context, criteria sales.Criteria, mode sales.Mode) (any, error)
}

// Service serves CSV downloads of query results.
type Service struct {
	queries Queries
	maxRows int
	nowFn   func() time.Time
}

// NewService creates an export service. maxRows caps the exported row count;
// zero disables the cap.
func NewService(queries Queries, maxRows int) *Service {
	return &Service{
		queries: queries,
		maxRows: maxRows,
		nowFn:   time.Now,
	}
}

// RegisterRoutes registers the export route on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/api/export", s.HandleExport)
}

// HandleExport handles GET /api/export?type=<mode|records> plus the shared
// filter parameters, returning the result as a CSV attachment.
func (s *Service) HandleExport(c *gin.Context) {
	criteria, ok := query.BindCriteria(c)
	if !ok {
		return
	}

	kind := c.DefaultQuery("type", string(sales.ModeOverview))

	var (
		result any
		err    error
	)
	if kind == "records" {
		result, err = s.queries.Records(c.Request.Context(), criteria)
	} else {
		result, err = s.queries.Analytics(c.Request.Context(), criteria, sales.Mode(kind))
	}
	if err != nil {
		errType := coreerrors.HttpInternalError
		if errors.Is(err, coreerrors.ErrDataUnavailable) {
			errType = coreerrors.HttpDataUnavailable
		}
		c.JSON(http.StatusInternalServerError, coreerrors.ErrorResponse{
			ErrorType: errType,
			Message:   "Failed to export data",
			Details:   err.Error(),
		})
		return
	}

	if s.maxRows > 0 {
		if n := resultLen(result); n > s.maxRows {
			c.JSON(http.StatusBadRequest, coreerrors.ErrorResponse{
				ErrorType: coreerrors.HttpInvalidQueryError,
				Message:   "Export too large",
				Details:   fmt.Sprintf("%d rows exceeds the limit of %d", n, s.maxRows),
			})
			return
		}
	}

	var buf bytes.Buffer
	if err := Write(&buf, result); err != nil {
		c.JSON(http.StatusInternalServerError, coreerrors.ErrorResponse{
			ErrorType: coreerrors.HttpInternalError,
			Message:   "Failed to render export",
			Details:   err.Error(),
		})
		return
	}

	filename := fmt.Sprintf("%s-%s.csv", kind, s.nowFn().Format(sales.DateLayout))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func resultLen(result any) int {
	switch rows := result.(type) {
	case []sales.Record:
		return len(rows)
	case []sales.MonthlyPoint:
		return len(rows)
	case []sales.RegionSales:
		return len(rows)
	case []sales.ProductPerformance:
		return len(rows)
	case []sales.RepPerformance:
		return len(rows)
	case []sales.CategorySales:
		return len(rows)
	case []sales.CustomerTypeSales:
		return len(rows)
	case []sales.GrowthPoint:
		return len(rows)
	default:
		return 1
	}
}
