package sheetstat

import (
	"errors"
	"fmt"
)

// Common sentinel errors for the sheetstat package.
var (
	// ErrEmptyTable is returned when an operation requires at least one row.
	ErrEmptyTable = errors.New("table has no rows")

	// ErrUnknownColumn is returned when a request names a column the table
	// does not contain.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrUnknownChartType is returned for unrecognized chart types.
	ErrUnknownChartType = errors.New("unknown chart type")

	// ErrUnknownAggregation is returned for unrecognized aggregation kinds.
	ErrUnknownAggregation = errors.New("unknown aggregation")

	// ErrUnknownOperator is returned for unrecognized filter operators.
	ErrUnknownOperator = errors.New("unknown filter operator")

	// ErrInvalidRequest is returned for malformed analysis requests.
	ErrInvalidRequest = errors.New("invalid analysis request")

	// ErrNoNumericValues is returned when a numeric computation is asked to
	// run over a column with zero coercible values.
	ErrNoNumericValues = errors.New("no numeric values")

	// ErrNoDateValues is returned when a date computation is asked to run
	// over a column with zero parseable values.
	ErrNoDateValues = errors.New("no date values")

	// ErrInsufficientData is returned when a computation has too few rows to
	// be defined, such as regression with n-p-1 <= 0.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrSingularMatrix is returned when the regression normal matrix cannot
	// be inverted, typically because of collinear predictors.
	ErrSingularMatrix = errors.New("singular matrix")
)

// AnalysisError provides detailed information about analysis failures.
type AnalysisError struct {
	Op      string // operation that failed, e.g. "describe" or "regress"
	Column  string // column involved, if any
	Message string
	Err     error // sentinel or underlying cause
}

func (e *AnalysisError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	switch {
	case e.Column != "" && e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: column %q: %s: %v", e.Op, e.Column, e.Message, e.Err)
	case e.Column != "":
		return fmt.Sprintf("%s: column %q: %s", e.Op, e.Column, msg)
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Op, msg)
	}
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// newAnalysisError creates a new AnalysisError.
func newAnalysisError(op, column, message string, err error) *AnalysisError {
	return &AnalysisError{Op: op, Column: column, Message: message, Err: err}
}
