package errors

import "errors"

// Service-level failures. Both are converted to a generic server-error
// response at the request boundary; no partial results are ever returned.
var (
	// ErrDataUnavailable means the backing dataset is missing, unreadable or
	// structurally malformed. Per-field numeric issues are not covered here;
	// those degrade to NaN at parse time.
	ErrDataUnavailable = errors.New("sales dataset unavailable")

	// ErrInvalidResult marks an internal invariant violation, such as the
	// dispatcher producing no result for a recognized mode. It should be
	// unreachable.
	ErrInvalidResult = errors.New("invalid aggregation result")
)

const (
	HttpInternalError     = "internal_error"
	HttpDataUnavailable   = "data_unavailable"
	HttpInvalidQueryError = "invalid_query"
)

// ErrorResponse is the error response body for query failures.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}
